package http

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_GetJSON(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"name":"Monet"}`))
	}))
	defer srv.Close()

	c := NewClient(WithUserAgent("test-agent"))

	var v struct {
		Name string `json:"name"`
	}
	require.NoError(t, c.GetJSON(context.Background(), srv.URL, &v))
	assert.Equal(t, "Monet", v.Name)
	assert.Equal(t, "test-agent", gotUA)
}

func TestClient_StatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewClient().Get(context.Background(), srv.URL)
	require.Error(t, err)

	var se *StatusError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, http.StatusNotFound, se.Code)
}

func TestClient_DecodeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}))
	defer srv.Close()

	var v map[string]any
	err := NewClient().GetJSON(context.Background(), srv.URL, &v)
	assert.ErrorContains(t, err, "decode response")
}

func TestClient_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := NewClient().Get(ctx, srv.URL)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestClient_BodyTooLarge(t *testing.T) {
	oversized := bytes.Repeat([]byte{'x'}, maxBodySize+1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(oversized)
	}))
	defer srv.Close()

	data, err := NewClient().DownloadBytes(context.Background(), srv.URL)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.Nil(t, data)

	var v map[string]any
	err = NewClient().GetJSON(context.Background(), srv.URL, &v)
	assert.ErrorIs(t, err, ErrBodyTooLarge)
	assert.NotContains(t, err.Error(), "decode response")
}

// roundTripFunc serves responses without a network listener.
type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func TestClient_WithTransport(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		wantErr error
	}{
		{name: "empty", size: 0},
		{name: "at limit", size: maxBodySize},
		{name: "over limit", size: maxBodySize + 1, wantErr: ErrBodyTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotUA string
			c := NewClient(
				WithUserAgent("transport-test"),
				WithTransport(roundTripFunc(func(r *http.Request) (*http.Response, error) {
					gotUA = r.Header.Get("User-Agent")
					return &http.Response{
						StatusCode: http.StatusOK,
						Status:     "200 OK",
						Body:       io.NopCloser(bytes.NewReader(make([]byte, tt.size))),
						Request:    r,
					}, nil
				})),
			)

			data, err := c.DownloadBytes(context.Background(), "http://assets.test/img.png")
			assert.Equal(t, "transport-test", gotUA)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Len(t, data, tt.size)
		})
	}
}
