package joke

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchReturnsPlainText(t *testing.T) {
	var method, accept string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method, accept = r.Method, r.Header.Get("Accept")
		_, _ = w.Write([]byte("Why did the scarecrow win an award?\n"))
	}))
	t.Cleanup(srv.Close)

	joke, err := NewClient(srv.URL, time.Second, srv.Client()).Fetch(context.Background())
	require.NoError(t, err)
	require.Equal(t, "Why did the scarecrow win an award?", joke)
	require.Equal(t, http.MethodGet, method)
	require.Equal(t, "text/plain", accept)
}

func TestFetchEmptyBodyIsSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	t.Cleanup(srv.Close)

	joke, err := NewClient(srv.URL, time.Second, nil).Fetch(context.Background())
	require.NoError(t, err)
	require.Empty(t, joke)
}

func TestFetchNonSuccessStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "down", http.StatusServiceUnavailable)
	}))
	t.Cleanup(srv.Close)

	_, err := NewClient(srv.URL, time.Second, nil).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorContains(t, err, "status 503")
}

func TestFetchTimeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	_, err := NewClient(srv.URL, 50*time.Millisecond, nil).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetch)
	require.ErrorContains(t, err, "timed out")
}

func TestFetchNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewClient(url, time.Second, nil).Fetch(context.Background())
	require.ErrorIs(t, err, ErrFetch)
}
