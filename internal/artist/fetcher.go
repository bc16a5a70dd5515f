// Package artist fetches artist records from the All of Art API.
package artist

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	apphttp "github.com/handiism/allofart/internal/http"
	"github.com/handiism/allofart/internal/model"
)

var (
	// ErrMissingIdentifier is returned when Fetch is called without an id.
	// No request is issued.
	ErrMissingIdentifier = errors.New("missing artist identifier")

	// ErrNotFound is returned when the API has no artist with the given id.
	ErrNotFound = errors.New("artist not found")

	// ErrMalformedRecord is returned when the API answers with a record
	// the page cannot render.
	ErrMalformedRecord = errors.New("malformed artist record")
)

// DetailPath is the API path of the artist detail endpoint.
const DetailPath = "/api/artist/detail/"

// Fetcher retrieves an artist record by identifier.
type Fetcher interface {
	Fetch(ctx context.Context, id string) (*model.Artist, error)
}

// FetcherFunc adapts a function to the Fetcher interface.
type FetcherFunc func(ctx context.Context, id string) (*model.Artist, error)

// Fetch calls f(ctx, id).
func (f FetcherFunc) Fetch(ctx context.Context, id string) (*model.Artist, error) {
	return f(ctx, id)
}

// Client fetches artist records over HTTP.
type Client struct {
	http    *apphttp.Client
	baseURL string
}

// NewClient creates a Client for the API rooted at baseURL.
func NewClient(httpClient *apphttp.Client, baseURL string) *Client {
	if httpClient == nil {
		httpClient = apphttp.NewClient()
	}
	return &Client{
		http:    httpClient,
		baseURL: strings.TrimSuffix(baseURL, "/"),
	}
}

// DetailURL returns the detail endpoint URL for id.
func (c *Client) DetailURL(id string) string {
	return c.baseURL + DetailPath + url.PathEscape(id)
}

// Fetch performs GET /api/artist/detail/{id}. The call is idempotent.
func (c *Client) Fetch(ctx context.Context, id string) (*model.Artist, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrMissingIdentifier
	}

	var a model.Artist
	if err := c.http.GetJSON(ctx, c.DetailURL(id), &a); err != nil {
		var se *apphttp.StatusError
		if errors.As(err, &se) && se.Code == http.StatusNotFound {
			return nil, fmt.Errorf("artist %s: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("fetch artist %s: %w", id, err)
	}

	if err := a.Validate(); err != nil {
		return nil, fmt.Errorf("artist %s: %w: %v", id, ErrMalformedRecord, err)
	}

	return &a, nil
}
