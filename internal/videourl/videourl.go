// Package videourl canonicalises user-supplied video links into share and
// embed URLs. YouTube and Facebook are the supported providers.
package videourl

import (
	"errors"
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// ErrUnsupportedURL is returned when the input is not a recognised video link.
var ErrUnsupportedURL = errors.New("unsupported video url")

// Provider identifies the hosting platform of a parsed link.
type Provider string

const (
	ProviderYouTube  Provider = "youtube"
	ProviderFacebook Provider = "facebook"
)

// Parsed holds the canonical share and embed forms of a video link.
type Parsed struct {
	Provider Provider
	ShareURL string
	EmbedURL string
}

// Parse canonicalises a video link, trying YouTube first, then Facebook.
func Parse(input string) (*Parsed, error) {
	if p, err := ParseYouTube(input); err == nil {
		return p, nil
	}
	if p, err := ParseFacebook(input); err == nil {
		return p, nil
	}
	return nil, ErrUnsupportedURL
}

var timeSpecRe = regexp.MustCompile(`^(?:(\d+)h)?(?:(\d+)m)?(?:(\d+)s)?$`)

// parseTimeToSeconds accepts "90", "90s" and "1h2m3s" forms.
func parseTimeToSeconds(raw string) int {
	trimmed := strings.ToLower(strings.TrimSpace(raw))
	if trimmed == "" {
		return 0
	}
	if n, err := strconv.Atoi(trimmed); err == nil {
		return n
	}
	if strings.HasSuffix(trimmed, "s") && !strings.ContainsAny(trimmed, "hm") {
		if n, err := strconv.Atoi(strings.TrimSuffix(trimmed, "s")); err == nil {
			return n
		}
		return 0
	}
	m := timeSpecRe.FindStringSubmatch(trimmed)
	if m == nil {
		return 0
	}
	total := 0
	if m[1] != "" {
		n, _ := strconv.Atoi(m[1])
		total += n * 3600
	}
	if m[2] != "" {
		n, _ := strconv.Atoi(m[2])
		total += n * 60
	}
	if m[3] != "" {
		n, _ := strconv.Atoi(m[3])
		total += n
	}
	return total
}

func youtubeEmbedURL(videoID string, startSeconds int) string {
	u := url.URL{Scheme: "https", Host: "www.youtube.com", Path: "/embed/" + videoID}
	if startSeconds > 0 {
		q := url.Values{}
		q.Set("start", strconv.Itoa(startSeconds))
		u.RawQuery = q.Encode()
	}
	return u.String()
}

func youtubeWatchURL(videoID string, startSeconds int) string {
	q := url.Values{}
	q.Set("v", videoID)
	if startSeconds > 0 {
		q.Set("t", fmt.Sprintf("%ds", startSeconds))
	}
	u := url.URL{Scheme: "https", Host: "www.youtube.com", Path: "/watch", RawQuery: q.Encode()}
	return u.String()
}

func youtubePlaylistParsed(playlistID string) *Parsed {
	return &Parsed{
		Provider: ProviderYouTube,
		ShareURL: "https://www.youtube.com/playlist?list=" + playlistID,
		EmbedURL: "https://www.youtube.com/embed/videoseries?list=" + playlistID,
	}
}

// ParseYouTube handles watch, youtu.be, shorts, embed and playlist links.
// Start-time query parameters (t= or start=) carry into both URLs.
func ParseYouTube(input string) (*Parsed, error) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Host == "" {
		return nil, ErrUnsupportedURL
	}
	hostname := strings.TrimPrefix(u.Hostname(), "www.")

	playlistID := u.Query().Get("list")
	videoIDFromQuery := u.Query().Get("v")
	startRaw := u.Query().Get("t")
	if startRaw == "" {
		startRaw = u.Query().Get("start")
	}
	startSeconds := parseTimeToSeconds(startRaw)

	pathSegment := func(i int) string {
		parts := strings.FieldsFunc(u.Path, func(r rune) bool { return r == '/' })
		if i < len(parts) {
			return parts[i]
		}
		return ""
	}

	if hostname == "youtu.be" {
		id := pathSegment(0)
		if id == "" {
			return nil, ErrUnsupportedURL
		}
		return &Parsed{Provider: ProviderYouTube, ShareURL: youtubeWatchURL(id, startSeconds), EmbedURL: youtubeEmbedURL(id, startSeconds)}, nil
	}

	if !strings.HasSuffix(hostname, "youtube.com") {
		return nil, ErrUnsupportedURL
	}

	switch {
	case u.Path == "/watch" && videoIDFromQuery != "":
		return &Parsed{Provider: ProviderYouTube, ShareURL: youtubeWatchURL(videoIDFromQuery, startSeconds), EmbedURL: youtubeEmbedURL(videoIDFromQuery, startSeconds)}, nil
	case u.Path == "/playlist" && playlistID != "":
		return youtubePlaylistParsed(playlistID), nil
	case strings.HasPrefix(u.Path, "/embed/"):
		id := pathSegment(1)
		if id == "" {
			return nil, ErrUnsupportedURL
		}
		return &Parsed{Provider: ProviderYouTube, ShareURL: youtubeWatchURL(id, startSeconds), EmbedURL: youtubeEmbedURL(id, startSeconds)}, nil
	case strings.HasPrefix(u.Path, "/shorts/"):
		id := pathSegment(1)
		if id == "" {
			return nil, ErrUnsupportedURL
		}
		share := url.URL{Scheme: "https", Host: "www.youtube.com", Path: "/shorts/" + id}
		if startSeconds > 0 {
			q := url.Values{}
			q.Set("t", fmt.Sprintf("%ds", startSeconds))
			share.RawQuery = q.Encode()
		}
		return &Parsed{Provider: ProviderYouTube, ShareURL: share.String(), EmbedURL: youtubeEmbedURL(id, startSeconds)}, nil
	case playlistID != "":
		return youtubePlaylistParsed(playlistID), nil
	}

	return nil, ErrUnsupportedURL
}

// ParseFacebook canonicalises facebook.com / fb.watch links. Facebook embeds
// work best with a clean href, so query and fragment are dropped from the
// share URL before it goes into the plugin embed.
func ParseFacebook(input string) (*Parsed, error) {
	u, err := url.Parse(strings.TrimSpace(input))
	if err != nil || u.Host == "" {
		return nil, ErrUnsupportedURL
	}
	hostname := strings.TrimPrefix(u.Hostname(), "www.")

	isFacebook := hostname == "facebook.com" ||
		strings.HasSuffix(hostname, ".facebook.com") ||
		hostname == "fb.watch"
	if !isFacebook {
		return nil, ErrUnsupportedURL
	}

	share := *u
	share.RawQuery = ""
	share.Fragment = ""
	shareURL := share.String()

	q := url.Values{}
	q.Set("href", shareURL)
	q.Set("show_text", "0")
	q.Set("width", "560")
	embed := url.URL{Scheme: "https", Host: "www.facebook.com", Path: "/plugins/video.php", RawQuery: q.Encode()}

	return &Parsed{Provider: ProviderFacebook, ShareURL: shareURL, EmbedURL: embed.String()}, nil
}
