// Package share builds the KakaoTalk feed payload for an analysis result
// and hands it to a sharing SDK.
package share

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"

	"github.com/handiism/allofart/internal/errmsg"
)

// ErrUnavailable is returned when no sharing SDK can run in the current
// environment.
var ErrUnavailable = errors.New("sharing is not available")

// FailureNotice is shown to the user when sharing is unavailable.
const FailureNotice = "카카오로 공유하기에 실패했습니다"

const (
	feedTitle       = "나도 알고보니 명화가?!"
	feedDescription = "내 그림은 누구의 그림과 닮았을까? Hoxy?!"
	webButtonTitle  = "웹으로 보기"
	appButtonTitle  = "앱으로 보기"
)

// Link is a pair of mobile and desktop URLs.
type Link struct {
	MobileWebURL string `json:"mobileWebUrl"`
	WebURL       string `json:"webUrl"`
}

// Content is the feed body.
type Content struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"imageUrl"`
	Link        Link   `json:"link"`
}

// Button is a feed action button.
type Button struct {
	Title string `json:"title"`
	Link  Link   `json:"link"`
}

// Feed is the payload passed to SDK.SendDefault.
type Feed struct {
	ObjectType string   `json:"objectType"`
	Content    Content  `json:"content"`
	Buttons    []Button `json:"buttons"`
}

// NewFeed builds the feed for an analysis result. The result id is embedded
// into the image URL and every link.
func NewFeed(baseURL, resultID string) Feed {
	target := strings.TrimSuffix(baseURL, "/") + "/" + strings.TrimPrefix(resultID, "/")
	link := Link{MobileWebURL: target, WebURL: target}
	return Feed{
		ObjectType: "feed",
		Content: Content{
			Title:       feedTitle,
			Description: feedDescription,
			ImageURL:    target,
			Link:        link,
		},
		Buttons: []Button{
			{Title: webButtonTitle, Link: link},
			{Title: appButtonTitle, Link: link},
		},
	}
}

// SDK is a pre-initialized sharing SDK.
type SDK interface {
	SendDefault(feed Feed) error
}

// Share sends feed through sdk. A nil sdk yields ErrUnavailable.
func Share(sdk SDK, feed Feed) error {
	if sdk == nil {
		return ErrUnavailable
	}
	if err := sdk.SendDefault(feed); err != nil {
		if errors.Is(err, ErrUnavailable) {
			return err
		}
		return fmt.Errorf("send feed: %w", err)
	}
	return nil
}

// Notice returns the user-visible message for a Share error.
func Notice(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnavailable):
		return FailureNotice
	default:
		return errmsg.Format(errmsg.OpShare, err)
	}
}

// ClipboardSDK shares a feed by copying its web link to the system
// clipboard.
type ClipboardSDK struct {
	unsupported bool
	write       func(string) error
}

// NewClipboardSDK returns an SDK backed by the system clipboard.
func NewClipboardSDK() *ClipboardSDK {
	return &ClipboardSDK{
		unsupported: clipboard.Unsupported,
		write:       clipboard.WriteAll,
	}
}

// SendDefault implements SDK.
func (s *ClipboardSDK) SendDefault(feed Feed) error {
	if s == nil || s.unsupported || s.write == nil {
		return ErrUnavailable
	}
	if err := s.write(feed.Content.Link.WebURL); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}
