package artist

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apphttp "github.com/handiism/allofart/internal/http"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) (*Client, *atomic.Int32) {
	t.Helper()
	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)
	return NewClient(apphttp.NewClient(), srv.URL+"/"), &calls
}

func TestClient_Fetch(t *testing.T) {
	var gotPath string
	c, _ := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		_, _ = w.Write([]byte(`{"name":"Claude Monet","year":"1840-1926","images":["/a.jpg","/b.jpg","/c.jpg"]}`))
	})

	a, err := c.Fetch(context.Background(), "12")
	require.NoError(t, err)
	assert.Equal(t, "/api/artist/detail/12", gotPath)
	assert.Equal(t, "Claude Monet", a.Name)
	assert.Len(t, a.Gallery(), 2)
}

func TestClient_FetchMissingIdentifier(t *testing.T) {
	c, calls := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	_, err := c.Fetch(context.Background(), "  ")
	assert.ErrorIs(t, err, ErrMissingIdentifier)
	assert.Zero(t, calls.Load(), "no request may be issued without an identifier")
}

func TestClient_FetchNotFound(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		http.NotFound(w, nil)
	})

	_, err := c.Fetch(context.Background(), "404")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestClient_FetchServerError(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	})

	_, err := c.Fetch(context.Background(), "1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestClient_FetchMalformed(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"images":[]}`))
	})

	_, err := c.Fetch(context.Background(), "1")
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestClient_FetchEmptyImagesAllowed(t *testing.T) {
	c, _ := newTestServer(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"name":"Anonymous","images":[]}`))
	})

	a, err := c.Fetch(context.Background(), "1")
	require.NoError(t, err)
	assert.Empty(t, a.Portrait())
	assert.Empty(t, a.Gallery())
}

func TestClient_DetailURLEscapes(t *testing.T) {
	c := NewClient(nil, "http://api")
	assert.Equal(t, "http://api/api/artist/detail/a%2Fb", c.DetailURL("a/b"))
}
