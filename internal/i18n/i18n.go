// Package i18n provides the translation bundle for user-facing strings,
// including the event summary template that participates in duplicate
// detection. Locales are embedded JSON files.
package i18n

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	goi18n "github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

//go:embed locales/*.json
var localeFS embed.FS

// Message IDs.
const (
	KeyEventSummary     = "event_summary"
	KeyConfirmExport    = "confirm_export"
	KeySyncDone         = "sync_done"
	KeySyncCancelled    = "sync_cancelled"
	KeySyncDeclined     = "sync_declined"
	KeyErrConfigMissing = "err_config_missing"
	KeyErrAuthFailed    = "err_auth_failed"
	KeyErrRemote        = "err_remote_unavailable"
	KeyAuthVisitURL     = "auth_visit_url"
	KeyAuthEnterCode    = "auth_enter_code"
	KeyAuthSuccess      = "auth_success"
	KeyImportDone       = "import_done"
	KeyExportWritten    = "export_written"
)

// Translator resolves message IDs for one configured language.
type Translator struct {
	localizer *goi18n.Localizer
}

// New loads the embedded locales and returns a Translator for lang,
// falling back to English for missing keys or unknown languages.
func New(lang string) *Translator {
	bundle := goi18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir("locales")
	if err != nil {
		slog.Error(config.ErrLocalesAccess,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyError, err,
		)
		return &Translator{localizer: goi18n.NewLocalizer(bundle, config.DefaultLanguage)}
	}

	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, "active.") || !strings.HasSuffix(name, ".json") {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		if _, err := bundle.LoadMessageFileFS(localeFS, "locales/"+name); err != nil {
			slog.Error(config.ErrLocaleLoad,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
				config.LogKeyError, err,
			)
			continue
		}
		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyFile, name,
		)
	}

	return &Translator{
		localizer: goi18n.NewLocalizer(bundle, lang, config.DefaultLanguage),
	}
}

// Msg translates a key without template data.
func (t *Translator) Msg(key string) string {
	return t.MsgData(key, nil)
}

// MsgData translates a key with template data, returning the key itself when
// no translation exists so output is never empty.
func (t *Translator) MsgData(key string, data map[string]any) string {
	msg, err := t.localizer.Localize(&goi18n.LocalizeConfig{
		MessageID:    key,
		TemplateData: data,
	})
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, key,
			config.LogKeyError, err,
		)
		return key
	}
	return msg
}

// FormatSummary renders the localized event title. Its output feeds the
// identity key, so the same language must be used across runs for duplicate
// detection to hold.
func (t *Translator) FormatSummary(name string, birthYear int) string {
	return t.MsgData(KeyEventSummary, map[string]any{
		"Name": name,
		"Year": fmt.Sprintf("%04d", birthYear),
	})
}
