package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/export"
	"github.com/pwalczyk/gcal-birthdays/internal/i18n"
	"github.com/pwalczyk/gcal-birthdays/internal/server"
	"github.com/pwalczyk/gcal-birthdays/internal/vcf"
)

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.vcf>",
		Short: "Import contacts with full birth dates from a vCard file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() { _ = f.Close() }()

			entries, err := vcf.ReadEntries(f)
			if err != nil {
				return err
			}

			imported, skipped := 0, 0
			for _, e := range entries {
				if env.store.Contains(e.Name, e.Date) {
					skipped++
					continue
				}
				if err := env.store.Add(e.Name, e.Date, now); err != nil {
					slog.Warn(config.MsgSkippedCard,
						config.LogKeyComponent, config.CompImport,
						config.LogKeyName, e.Name,
						config.LogKeyError, err,
					)
					skipped++
					continue
				}
				imported++
			}

			slog.Info(config.MsgImportDone,
				config.LogKeyComponent, config.CompImport,
				config.LogKeyImported, imported,
				config.LogKeySkipped, skipped,
			)
			fmt.Fprintln(cmd.OutOrStdout(), env.tr.MsgData(i18n.KeyImportDone, map[string]any{
				"Count":   imported,
				"Skipped": skipped,
			}))
			return nil
		},
	}
}

func newExportCmd() *cobra.Command {
	var outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the birthday list as an iCalendar file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}

			gen := &export.Generator{Format: env.tr.FormatSummary}
			data, err := gen.Generate(env.store.List(), now)
			if err != nil {
				return err
			}

			if err := os.WriteFile(outPath, data, config.FilePermUserRW); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), env.tr.MsgData(i18n.KeyExportWritten, map[string]any{
				"Path": outPath,
			}))
			return nil
		},
	}

	cmd.Flags().StringVar(&outPath, "out", "birthdays"+config.ExtICS, "Output file path")
	return cmd
}

func newServeCmd() *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the birthday list as an iCalendar feed on localhost",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}
			if port == "" {
				port = env.settings.ServerPort
			}

			gen := &export.Generator{Format: env.tr.FormatSummary}
			data, err := gen.Generate(env.store.List(), now)
			if err != nil {
				return err
			}

			srv := server.NewFeedServer(port)
			srv.Update(data)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, "port", "", "Localhost port (default from settings)")
	return cmd
}
