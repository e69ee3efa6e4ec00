// Package auth is the credential provider for the sync session. It owns the
// OAuth2 client configuration (environment / .env), long-lived token storage
// in the OS keyring, and refresh. The sync engine only ever sees the
// resulting authenticated HTTP client or a classified failure.
package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/calendar/v3"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

// Reason classifies why authorization failed, mirroring the session-level
// error taxonomy.
type Reason int

const (
	// ReasonMissingClientConfig means the OAuth client ID/secret are absent.
	ReasonMissingClientConfig Reason = iota + 1
	// ReasonConsentRequired means no stored token exists; the user must run
	// the auth command.
	ReasonConsentRequired
	// ReasonTokenInvalid means the stored token could not be decoded or
	// refreshed.
	ReasonTokenInvalid
)

// Error is a classified authorization failure.
type Error struct {
	Reason Reason
	Err    error
}

func (e *Error) Error() string { return e.Err.Error() }
func (e *Error) Unwrap() error { return e.Err }

// Provider acquires and persists credentials. The zero value is not usable;
// construct it with NewProvider.
type Provider struct {
	service string // keyring service name
	account string // keyring account key
}

// NewProvider returns a Provider bound to the application keyring entry.
func NewProvider() *Provider {
	return &Provider{
		service: config.KeyringService,
		account: config.KeyringToken,
	}
}

// clientConfig builds the OAuth2 configuration from the environment,
// loading a .env file first when one is present in the working directory.
func (p *Provider) clientConfig() (*oauth2.Config, error) {
	if err := godotenv.Load(config.EnvFileName); err != nil {
		slog.Debug(config.MsgDotenvNotFound,
			config.LogKeyComponent, config.CompAuth,
		)
	}

	id := os.Getenv(config.EnvClientID)
	secret := os.Getenv(config.EnvClientSecret)
	if id == "" || secret == "" {
		return nil, &Error{
			Reason: ReasonMissingClientConfig,
			Err:    errors.New(config.ErrClientConfig),
		}
	}

	return &oauth2.Config{
		ClientID:     id,
		ClientSecret: secret,
		Endpoint:     google.Endpoint,
		Scopes:       []string{calendar.CalendarScope},
		RedirectURL:  config.OAuthRedirectURL,
	}, nil
}

// Authorize yields an authenticated HTTP client, refreshing the stored token
// when necessary. It never runs an interactive consent flow; when no valid
// token exists the caller is pointed at the auth command.
func (p *Provider) Authorize(ctx context.Context) (*http.Client, error) {
	cfg, err := p.clientConfig()
	if err != nil {
		return nil, err
	}

	raw, err := keyring.Get(p.service, p.account)
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return nil, &Error{
				Reason: ReasonConsentRequired,
				Err:    errors.New(config.ErrTokenMissing),
			}
		}
		return nil, &Error{Reason: ReasonTokenInvalid, Err: err}
	}

	var tok oauth2.Token
	if err := json.Unmarshal([]byte(raw), &tok); err != nil {
		return nil, &Error{
			Reason: ReasonTokenInvalid,
			Err:    fmt.Errorf("%s: %w", config.ErrTokenDecode, err),
		}
	}

	src := cfg.TokenSource(ctx, &tok)
	fresh, err := src.Token()
	if err != nil {
		return nil, &Error{
			Reason: ReasonTokenInvalid,
			Err:    fmt.Errorf("%s: %w", config.ErrTokenRefresh, err),
		}
	}

	if fresh.AccessToken != tok.AccessToken {
		// Best effort: a failed write only means another refresh next run.
		if err := p.saveToken(fresh); err != nil {
			slog.Warn(config.ErrKeyringStore,
				config.LogKeyComponent, config.CompAuth,
				config.LogKeyError, err,
			)
		} else {
			slog.Debug(config.MsgTokenRefreshed,
				config.LogKeyComponent, config.CompAuth,
			)
		}
	}

	return oauth2.NewClient(ctx, oauth2.ReuseTokenSource(fresh, src)), nil
}

// ConsentURL returns the URL the user must visit to grant calendar access.
func (p *Provider) ConsentURL() (string, error) {
	cfg, err := p.clientConfig()
	if err != nil {
		return "", err
	}
	return cfg.AuthCodeURL("state", oauth2.AccessTypeOffline, oauth2.ApprovalForce), nil
}

// Exchange trades the pasted authorization code for a token and persists it.
func (p *Provider) Exchange(ctx context.Context, code string) error {
	cfg, err := p.clientConfig()
	if err != nil {
		return err
	}

	tok, err := cfg.Exchange(ctx, code)
	if err != nil {
		return &Error{
			Reason: ReasonConsentRequired,
			Err:    fmt.Errorf("%s: %w", config.ErrTokenExchange, err),
		}
	}

	if err := p.saveToken(tok); err != nil {
		return err
	}
	slog.Info(config.MsgTokenStored, config.LogKeyComponent, config.CompAuth)
	return nil
}

func (p *Provider) saveToken(tok *oauth2.Token) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringStore, err)
	}
	if err := keyring.Set(p.service, p.account, string(data)); err != nil {
		return fmt.Errorf("%s: %w", config.ErrKeyringStore, err)
	}
	return nil
}
