package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pwalczyk/gcal-birthdays/internal/config"
	"github.com/pwalczyk/gcal-birthdays/internal/server"
)

// serve runs one request through the feed handler.
func serve(t *testing.T, s *server.FeedServer, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func TestFeed_BeforeFirstUpdate(t *testing.T) {
	s := server.NewFeedServer("0")
	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestFeed_ServesContentWithCachingHeaders(t *testing.T) {
	s := server.NewFeedServer("0")
	s.Update([]byte(config.StubVCalendar))

	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, config.StubVCalendar, rec.Body.String())
	assert.Equal(t, config.MimeTextCalendar, rec.Header().Get(config.HeaderContentType))
	assert.NotEmpty(t, rec.Header().Get(config.HeaderETag))
	assert.NotEmpty(t, rec.Header().Get(config.HeaderLastModified))
}

func TestFeed_ETagRoundTrip(t *testing.T) {
	s := server.NewFeedServer("0")
	s.Update([]byte(config.StubVCalendar))

	first := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	etag := first.Header().Get(config.HeaderETag)
	require.NotEmpty(t, etag)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(config.HeaderIfNoneMatch, etag)
	second := serve(t, s, req)

	assert.Equal(t, http.StatusNotModified, second.Code)
	assert.Empty(t, second.Body.String())
}

func TestFeed_HeadOmitsBody(t *testing.T) {
	s := server.NewFeedServer("0")
	s.Update([]byte(config.StubVCalendar))

	rec := serve(t, s, httptest.NewRequest(http.MethodHead, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Empty(t, rec.Body.String())
}

func TestFeed_MethodNotAllowed(t *testing.T) {
	s := server.NewFeedServer("0")
	s.Update([]byte(config.StubVCalendar))

	rec := serve(t, s, httptest.NewRequest(http.MethodPost, "/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, config.AllowedMethods, rec.Header().Get(config.HeaderAllow))
}

func TestFeed_UpdateReplacesContent(t *testing.T) {
	s := server.NewFeedServer("0")
	s.Update([]byte("old"))
	s.Update([]byte("new"))

	rec := serve(t, s, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, "new", rec.Body.String())
}
