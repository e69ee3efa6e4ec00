package auth

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"
	"golang.org/x/oauth2"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
)

func setClientEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvClientID, "client-id-123")
	t.Setenv(config.EnvClientSecret, "client-secret-456")
}

func storeToken(t *testing.T, p *Provider, tok oauth2.Token) {
	t.Helper()
	data, err := json.Marshal(tok)
	require.NoError(t, err)
	require.NoError(t, keyring.Set(p.service, p.account, string(data)))
}

func TestAuthorize_MissingClientConfig(t *testing.T) {
	keyring.MockInit()
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")

	client, err := NewProvider().Authorize(context.Background())

	assert.Nil(t, client)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonMissingClientConfig, ae.Reason)
}

func TestAuthorize_NoStoredTokenRequiresConsent(t *testing.T) {
	keyring.MockInit()
	setClientEnv(t)

	client, err := NewProvider().Authorize(context.Background())

	assert.Nil(t, client)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonConsentRequired, ae.Reason)
}

func TestAuthorize_CorruptStoredToken(t *testing.T) {
	keyring.MockInit()
	setClientEnv(t)
	p := NewProvider()
	require.NoError(t, keyring.Set(p.service, p.account, "not json"))

	client, err := p.Authorize(context.Background())

	assert.Nil(t, client)
	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonTokenInvalid, ae.Reason)
}

func TestAuthorize_ValidTokenYieldsClient(t *testing.T) {
	keyring.MockInit()
	setClientEnv(t)
	p := NewProvider()
	storeToken(t, p, oauth2.Token{
		AccessToken: "still-good",
		TokenType:   "Bearer",
		Expiry:      time.Now().Add(time.Hour),
	})

	client, err := p.Authorize(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, client)
}

func TestConsentURL_ContainsClientAndScope(t *testing.T) {
	keyring.MockInit()
	setClientEnv(t)

	url, err := NewProvider().ConsentURL()

	require.NoError(t, err)
	assert.Contains(t, url, "client-id-123")
	assert.Contains(t, url, "access_type=offline")
}

func TestConsentURL_MissingClientConfig(t *testing.T) {
	keyring.MockInit()
	t.Setenv(config.EnvClientID, "")
	t.Setenv(config.EnvClientSecret, "")

	_, err := NewProvider().ConsentURL()

	var ae *Error
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, ReasonMissingClientConfig, ae.Reason)
}
