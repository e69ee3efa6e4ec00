package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/i18n"
	"github.com/pwalczyk/gcal-birthdays/internal/store"
)

var (
	debugMode   bool
	dataDirFlag string
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "gcal-birthdays",
		Short:         "Keep a birthday list and export it to Google Calendar",
		Version:       fmt.Sprintf("%s (%s, %s)", config.Version, config.Commit, config.Date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			setupLogging(debugMode)
			logStartupInfo()
		},
	}

	root.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	root.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "", "Override the application data directory")

	root.AddCommand(
		newAddCmd(),
		newRemoveCmd(),
		newListCmd(),
		newImportCmd(),
		newExportCmd(),
		newServeCmd(),
		newAuthCmd(),
		newSyncCmd(),
	)
	return root
}

// appEnv bundles what every command needs: the record store, the settings,
// and the translator for the configured language.
type appEnv struct {
	store    *store.Store
	settings config.Settings
	tr       *i18n.Translator
	dir      string
}

// loadEnv resolves the data directory, loads settings and the record list,
// and recomputes ages against "now".
func loadEnv(now time.Time) (*appEnv, error) {
	dir := dataDirFlag
	if dir == "" {
		var err error
		dir, err = config.DataDir()
		if err != nil {
			return nil, err
		}
	} else if err := os.MkdirAll(dir, config.DirPermUserRWX); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrCreateDir, err)
	}

	settings, err := config.LoadSettings(filepath.Join(dir, config.SettingsFileName))
	if err != nil {
		// Defaults are still returned; a broken settings file should not
		// block access to the data.
		slog.Warn(config.ErrSettingsLoad,
			config.LogKeyComponent, config.CompMain,
			config.LogKeyError, err,
		)
	}

	st, err := store.Open(filepath.Join(dir, config.DataFileName), now)
	if err != nil {
		return nil, err
	}

	return &appEnv{
		store:    st,
		settings: settings,
		tr:       i18n.New(settings.Language),
		dir:      dir,
	}, nil
}
