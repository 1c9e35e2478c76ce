package service

import (
	"regexp"
	"strconv"
	"strings"
)

// Titles ending in "Episode N" or "Ep N" (optionally separated by a dash or
// colon) name an episode of a series.
var episodeSuffixRe = regexp.MustCompile(`(?i)^(.*?)(?:\s*[-–—:]?\s*)?(?:episode|ep)\s*(\d+)\s*$`)

var whitespaceRe = regexp.MustCompile(`\s+`)

// normalizeTitle trims and collapses internal whitespace. Series titles are
// normalized once here at write time and compared byte-for-byte afterwards.
func normalizeTitle(raw string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(raw), " ")
}

// ParseSeriesTitle splits a free-text title into its series key and episode
// number. When no trailing episode marker is present the whole normalized
// title is the series key and episode is 0.
func ParseSeriesTitle(raw string) (seriesTitle string, episode int) {
	title := normalizeTitle(raw)
	if title == "" {
		return "", 0
	}
	m := episodeSuffixRe.FindStringSubmatch(title)
	if m == nil {
		return title, 0
	}
	seriesTitle = normalizeTitle(m[1])
	if seriesTitle == "" {
		// A bare "Episode 3" keeps the full title as the series key.
		return title, 0
	}
	n, err := strconv.Atoi(m[2])
	if err != nil || n <= 0 {
		return seriesTitle, 0
	}
	return seriesTitle, n
}
