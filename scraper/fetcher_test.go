package scraper

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcherReturnsBody(t *testing.T) {
	var gotUA string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write([]byte("<html>playlist</html>"))
	}))
	defer ts.Close()

	markup, err := NewFetcher(ts.URL, time.Second).Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "<html>playlist</html>", markup)
	assert.Contains(t, gotUA, "Mozilla/5.0")
}

func TestFetcherNonSuccessStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer ts.Close()

	_, err := NewFetcher(ts.URL, time.Second).Fetch(context.Background())
	var fetchErr *FetchError
	require.ErrorAs(t, err, &fetchErr)
	assert.Equal(t, http.StatusServiceUnavailable, fetchErr.StatusCode)
}

func TestFetcherConnectionError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	ts.Close() // nothing listening any more

	_, err := NewFetcher(ts.URL, time.Second).Fetch(context.Background())
	var fetchErr *FetchError
	assert.ErrorAs(t, err, &fetchErr)
}

func TestFetcherTimeout(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
	}))
	defer ts.Close()

	start := time.Now()
	_, err := NewFetcher(ts.URL, 30*time.Millisecond).Fetch(context.Background())
	assert.Error(t, err)
	assert.Less(t, time.Since(start), time.Second)

	var fetchErr *FetchError
	assert.True(t, errors.As(err, &fetchErr))
}
