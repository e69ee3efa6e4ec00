package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

const (
	sortNearest = "nearest"
	sortChrono  = "chrono"
)

func newAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "add <name> <yyyy-mm-dd>",
		Short: "Add a person to the birthday list",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}
			return env.store.Add(args[0], args[1], now)
		},
	}
}

func newRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <index>",
		Short: "Remove a person by list position",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil {
				return err
			}

			env, err := loadEnv(time.Now())
			if err != nil {
				return err
			}
			// The list is shown 1-based.
			return env.store.Remove(index - 1)
		},
	}
}

func newListCmd() *cobra.Command {
	var sortOrder string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the birthday list with computed ages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}

			switch sortOrder {
			case "":
				// Keep the persisted order.
			case sortNearest:
				if err := env.store.SortByNearest(now); err != nil {
					return err
				}
			case sortChrono:
				if err := env.store.SortChronological(); err != nil {
					return err
				}
			default:
				return fmt.Errorf("unknown sort order %q", sortOrder)
			}

			out := cmd.OutOrStdout()
			for i, rec := range env.store.List() {
				fmt.Fprintf(out, "%3d. %-30s %s (%s)\n", i+1, rec.Name, rec.Date, rec.Age)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&sortOrder, "sort", "", "Re-sort and persist the list: nearest or chrono")
	return cmd
}
