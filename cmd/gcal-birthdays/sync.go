package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pwalczyk/gcal-birthdays/internal/auth"
	"github.com/pwalczyk/gcal-birthdays/internal/i18n"
	enginesync "github.com/pwalczyk/gcal-birthdays/internal/sync"
)

func newSyncCmd() *cobra.Command {
	var assumeYes bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Export the birthday list to Google Calendar, skipping events that already exist",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			env, err := loadEnv(now)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			if !assumeYes && !confirm(cmd.InOrStdin(), out, env.tr.Msg(i18n.KeyConfirmExport)) {
				fmt.Fprintln(out, env.tr.Msg(i18n.KeySyncDeclined))
				return nil
			}

			session := &enginesync.Session{
				Auth:     auth.NewProvider(),
				Settings: env.settings,
				Format:   env.tr.FormatSummary,
			}
			sink := &consoleSink{ctx: cmd.Context(), out: out}

			outcome, err := session.Run(cmd.Context(), env.store.List(), sink)
			fmt.Fprintln(out) // end the progress line
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), env.tr.Msg(failureKey(err)))
				return err
			}

			key := i18n.KeySyncDone
			if outcome.Cancelled {
				key = i18n.KeySyncCancelled
			}
			fmt.Fprintln(out, env.tr.MsgData(key, map[string]any{
				"Created": outcome.Created,
				"Skipped": outcome.Skipped,
			}))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&assumeYes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

func newAuthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "auth",
		Short: "Authorize access to Google Calendar and store the token",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadEnv(time.Now())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			provider := auth.NewProvider()

			url, err := provider.ConsentURL()
			if err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), env.tr.Msg(failureKey(err)))
				return err
			}

			fmt.Fprintln(out, env.tr.MsgData(i18n.KeyAuthVisitURL, map[string]any{"URL": url}))
			fmt.Fprint(out, env.tr.Msg(i18n.KeyAuthEnterCode))

			scanner := bufio.NewScanner(cmd.InOrStdin())
			if !scanner.Scan() {
				return errors.New("no authorization code provided")
			}

			if err := provider.Exchange(cmd.Context(), strings.TrimSpace(scanner.Text())); err != nil {
				fmt.Fprintln(cmd.ErrOrStderr(), env.tr.Msg(failureKey(err)))
				return err
			}
			fmt.Fprintln(out, env.tr.Msg(i18n.KeyAuthSuccess))
			return nil
		},
	}
}

// confirm reads one line and accepts the usual affirmative answers in both
// supported languages ("tak" for Polish).
func confirm(in io.Reader, out io.Writer, prompt string) bool {
	fmt.Fprint(out, prompt)
	scanner := bufio.NewScanner(in)
	if !scanner.Scan() {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
	case "y", "yes", "t", "tak":
		return true
	default:
		return false
	}
}

// failureKey maps a classified sync or auth error to its message ID.
func failureKey(err error) string {
	var se *enginesync.Error
	if errors.As(err, &se) {
		switch se.Kind {
		case enginesync.KindConfigurationMissing:
			return i18n.KeyErrConfigMissing
		case enginesync.KindAuthorizationFailed:
			return i18n.KeyErrAuthFailed
		default:
			return i18n.KeyErrRemote
		}
	}

	var ae *auth.Error
	if errors.As(err, &ae) {
		if ae.Reason == auth.ReasonMissingClientConfig {
			return i18n.KeyErrConfigMissing
		}
		return i18n.KeyErrAuthFailed
	}
	return i18n.KeyErrRemote
}

// consoleSink renders a determinate progress counter and treats context
// cancellation (SIGINT) as the user's cancel request.
type consoleSink struct {
	ctx context.Context
	out io.Writer
}

func (s *consoleSink) Report(step, total int) {
	fmt.Fprintf(s.out, "\r%d/%d", step, total)
}

func (s *consoleSink) Cancelled() bool {
	return s.ctx.Err() != nil
}
