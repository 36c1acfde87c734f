package snapshot

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/omarshaarawi/powerboard/internal/config"
)

func newTestClient(url string) *Client {
	return NewClient(config.Snapshot{URL: url})
}

func TestFetchDecodesSnapshotWithCachingDisabled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "no-cache", r.Header.Get("Cache-Control"))
		assert.Equal(t, "no-cache", r.Header.Get("Pragma"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"league":"L","week":3,"teams":[{"team_name":"Foo"},{"team_name":"Bar"}]}`))
	}))
	defer srv.Close()

	snapshot, err := newTestClient(srv.URL + "/chat_prompt.json").Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "L", snapshot.League)
	assert.Equal(t, "3", snapshot.Week)
	require.Len(t, snapshot.Teams, 2)
	assert.Equal(t, "Bar", snapshot.Teams[1].Name)
}

func TestFetchNonSuccessStatusIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "expected FetchError, got %T", err)
	assert.Equal(t, http.StatusNotFound, fetchErr.Status)
	assert.Contains(t, err.Error(), "404")
}

func TestFetchTransportFailureIsFetchError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := newTestClient(url).Fetch(context.Background())

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr), "expected FetchError, got %T", err)
	assert.Zero(t, fetchErr.Status)
	assert.Error(t, fetchErr.Unwrap())
}

func TestFetchMalformedBodyIsParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"teams": [`))
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Fetch(context.Background())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %T", err)
}

func TestFetchRejectsOversizedBody(t *testing.T) {
	body := `{"league":"L","teams":[]}`
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(body + strings.Repeat(" ", 64)))
	}))
	defer srv.Close()

	client := newTestClient(srv.URL)
	assert.Equal(t, int64(DefaultMaxBodyBytes), client.MaxBodyBytes)
	client.MaxBodyBytes = int64(len(body))

	_, err := client.Fetch(context.Background())

	var parseErr *ParseError
	require.True(t, errors.As(err, &parseErr), "expected ParseError, got %T", err)
	assert.ErrorIs(t, err, ErrBodyTooLarge)

	// A body exactly at the cap still decodes.
	client.MaxBodyBytes = int64(len(body) + 64)
	snapshot, err := client.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "L", snapshot.League)
}

func TestFetchRejectsNonHTTPOriginsWithoutRequest(t *testing.T) {
	var hits atomic.Int32
	transport := roundTripFunc(func(r *http.Request) (*http.Response, error) {
		hits.Add(1)
		return nil, errors.New("should not be called")
	})

	for _, location := range []string{
		"file:///home/me/chat_prompt.json",
		"FILE:///tmp/chat_prompt.json",
		"chat_prompt.json",
		"ftp://example.com/chat_prompt.json",
	} {
		client := NewClientWithHTTP(config.Snapshot{URL: location}, &http.Client{Transport: transport})
		_, err := client.Fetch(context.Background())

		var originErr *OriginRestriction
		require.True(t, errors.As(err, &originErr), "%s: expected OriginRestriction, got %T", location, err)
		assert.Equal(t, location, originErr.URL)
	}
	assert.Zero(t, hits.Load())
}

func TestFetchHonorsContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestClient(srv.URL).Fetch(ctx)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.ErrorIs(t, err, context.Canceled)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
