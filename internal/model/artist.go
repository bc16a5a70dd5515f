package model

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// Gallery bounds: positions 1..6 of Artist.Images.
const (
	galleryStart = 1
	galleryEnd   = 7
)

// MaxGallery is the maximum number of gallery images shown on the page.
const MaxGallery = galleryEnd - galleryStart

// Artist is an artist record as served by the detail endpoint.
//
// Images holds image paths relative to the asset server. Images[0] is the
// portrait; the rest is the gallery. Callers must not assume any minimum
// length.
type Artist struct {
	// Name is the artist display name.
	Name string `json:"name"`

	// Year is the active period, e.g. "1853-1890". The server sends either a
	// number or a string.
	Year Year `json:"year"`

	// Genre is the artist genre, e.g. "Post-Impressionism".
	Genre string `json:"genre"`

	// Nation is the artist nationality.
	Nation string `json:"nation"`

	// ShortDescription is shown in the About section.
	ShortDescription string `json:"desc_simple"`

	// LongDescription is shown in the Life section.
	LongDescription string `json:"desc_detail"`

	// Images lists image paths, portrait first.
	Images []string `json:"images"`
}

// Year holds a year or year range. It decodes from a JSON number or string.
type Year string

// UnmarshalJSON implements json.Unmarshaler.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year: %w", err)
	}
	*y = Year(n.String())
	return nil
}

// String returns the year as text.
func (y Year) String() string {
	return string(y)
}

// Validate checks the fields the page cannot render without.
// An empty image list is allowed.
func (a *Artist) Validate() error {
	if a == nil {
		return errors.New("nil artist")
	}
	if strings.TrimSpace(a.Name) == "" {
		return errors.New("artist has no name")
	}
	return nil
}

// Portrait returns the portrait image path, or "" if the record has no images.
func (a *Artist) Portrait() string {
	if a == nil || len(a.Images) == 0 {
		return ""
	}
	return a.Images[0]
}

// Gallery returns the gallery image paths: positions 1..6 of Images,
// clamped to what is available. It never panics.
func (a *Artist) Gallery() []string {
	if a == nil || len(a.Images) <= galleryStart {
		return nil
	}
	end := min(len(a.Images), galleryEnd)
	return a.Images[galleryStart:end]
}

// ImageURL joins an asset base URL and an image path.
func ImageURL(base, path string) string {
	if path == "" {
		return ""
	}
	if base == "" || strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	return strings.TrimSuffix(base, "/") + "/" + strings.TrimPrefix(path, "/")
}
