package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProgress(t *testing.T) {
	tests := []struct {
		tab  Tab
		want float64
	}{
		{TabAbout, 0.33},
		{TabLife, 0.58},
		{TabPaintings, 1.0},
		{Tab(-1), 1.0},
		{Tab(42), 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.tab.String(), func(t *testing.T) {
			if got := Progress(tt.tab); got != tt.want {
				t.Errorf("Progress(%d) = %v, want %v", tt.tab, got, tt.want)
			}
		})
	}
}

func TestTab_NextPrevWrap(t *testing.T) {
	assert.Equal(t, TabLife, TabAbout.Next())
	assert.Equal(t, TabAbout, TabPaintings.Next())
	assert.Equal(t, TabPaintings, TabAbout.Prev())
	assert.Equal(t, TabAbout, Tab(9).Next())
}

func TestParseTab(t *testing.T) {
	tab, ok := ParseTab("life")
	assert.True(t, ok)
	assert.Equal(t, TabLife, tab)

	_, ok = ParseTab("biography")
	assert.False(t, ok)
}

func TestArtist_Gallery(t *testing.T) {
	tests := []struct {
		name   string
		images []string
		want   []string
	}{
		{"no images", nil, nil},
		{"portrait only", []string{"p"}, nil},
		{"three images", []string{"p", "a", "b"}, []string{"a", "b"}},
		{"exactly seven", []string{"p", "1", "2", "3", "4", "5", "6"}, []string{"1", "2", "3", "4", "5", "6"}},
		{"more than seven", []string{"p", "1", "2", "3", "4", "5", "6", "7", "8"}, []string{"1", "2", "3", "4", "5", "6"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := &Artist{Name: "x", Images: tt.images}
			assert.Equal(t, tt.want, a.Gallery())
			assert.LessOrEqual(t, len(a.Gallery()), MaxGallery)
		})
	}
}

func TestArtist_PortraitEmpty(t *testing.T) {
	var a *Artist
	assert.Equal(t, "", a.Portrait())
	assert.Nil(t, a.Gallery())
	assert.Equal(t, "", (&Artist{}).Portrait())
}

func TestArtist_Unmarshal(t *testing.T) {
	body := `{
		"name": "Vincent van Gogh",
		"year": 1853,
		"genre": "Post-Impressionism",
		"nation": "Dutch",
		"desc_simple": "short",
		"desc_detail": "long",
		"images": ["/img/0.jpg", "/img/1.jpg"]
	}`

	var a Artist
	require.NoError(t, json.Unmarshal([]byte(body), &a))
	assert.Equal(t, Year("1853"), a.Year)
	assert.Equal(t, "short", a.ShortDescription)
	assert.Equal(t, "long", a.LongDescription)
	assert.Equal(t, "/img/0.jpg", a.Portrait())
	assert.NoError(t, a.Validate())

	require.NoError(t, json.Unmarshal([]byte(`{"name":"x","year":"1853-1890"}`), &a))
	assert.Equal(t, "1853-1890", a.Year.String())
}

func TestArtist_Validate(t *testing.T) {
	assert.Error(t, (&Artist{}).Validate())
	assert.Error(t, (*Artist)(nil).Validate())
	assert.NoError(t, (&Artist{Name: "Monet"}).Validate())
}

func TestImageURL(t *testing.T) {
	tests := []struct {
		base, path, want string
	}{
		{"http://api", "/img/a.jpg", "http://api/img/a.jpg"},
		{"http://api/", "/img/a.jpg", "http://api/img/a.jpg"},
		{"http://api", "img/a.jpg", "http://api/img/a.jpg"},
		{"", "/img/a.jpg", "/img/a.jpg"},
		{"http://api", "", ""},
		{"http://api", "https://cdn/x.jpg", "https://cdn/x.jpg"},
	}

	for _, tt := range tests {
		if got := ImageURL(tt.base, tt.path); got != tt.want {
			t.Errorf("ImageURL(%q, %q) = %q, want %q", tt.base, tt.path, got, tt.want)
		}
	}
}
