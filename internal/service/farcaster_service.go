package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeshuachrist/ycapi/pkg/utils/zaplogger"
)

const (
	feedUpstreamTimeout = 4 * time.Second
	feedCacheTTL        = 60 * time.Second
	feedCacheKeyPrefix  = "yc:farcaster:"
	searchCastLimit     = 25
	fidCastLimit        = 50

	// defaultFeedQuery is what the feed searches for when no query is given.
	defaultFeedQuery = "#YeshuaChrist"
)

// FarcasterService proxies cast search across the Farcaster and Warpcast
// upstream pair, with query expansion and a short Redis cache.
type FarcasterService struct {
	client              *http.Client
	redisClient         *redis.Client
	searchUpstreams     []string
	castsByFidUpstreams []string
}

// NewFarcasterService creates a new service for the cast feed proxy
func NewFarcasterService(redisClient *redis.Client) *FarcasterService {
	return &FarcasterService{
		client:      &http.Client{},
		redisClient: redisClient,
		searchUpstreams: []string{
			"https://client.farcaster.xyz/v2/search-casts",
			"https://client.warpcast.com/v2/search-casts",
		},
		castsByFidUpstreams: []string{
			"https://client.farcaster.xyz/v2/casts",
			"https://client.warpcast.com/v2/casts",
		},
	}
}

var camelBoundaryRe = regexp.MustCompile(`([a-z])([A-Z])`)

func uniqStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// expandQuery derives search variants from a raw query: the hashtag-stripped
// form, camelCase split into words, and dash/space swaps.
func expandQuery(input string) []string {
	raw := strings.TrimSpace(input)
	withoutHash := strings.TrimPrefix(raw, "#")

	variants := []string{raw, withoutHash}

	spaced := camelBoundaryRe.ReplaceAllString(withoutHash, "$1 $2")
	if spaced != withoutHash {
		variants = append(variants, spaced)
	}
	if strings.Contains(withoutHash, "-") {
		variants = append(variants, strings.ReplaceAll(withoutHash, "-", " "))
	}
	if strings.Contains(spaced, " ") {
		variants = append(variants, whitespaceRe.ReplaceAllString(spaced, "-"))
	}

	return uniqStrings(variants)
}

// hashtagFilter returns the query itself when it is a hashtag search, for
// post-filtering casts-by-fid results.
func hashtagFilter(q string) string {
	trimmed := strings.TrimSpace(q)
	if strings.HasPrefix(trimmed, "#") {
		return trimmed
	}
	return ""
}

type castsResult struct {
	Result struct {
		Casts []json.RawMessage `json:"casts"`
	} `json:"result"`
}

// SearchCasts queries the upstream pair with each expanded variant and
// returns the first non-empty result. An empty query searches for the
// default hashtag. An empty list with nil error means the upstreams answered
// but found nothing; ErrUpstreamUnavailable means no upstream answered at all.
func (s *FarcasterService) SearchCasts(ctx context.Context, q string) ([]json.RawMessage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		q = defaultFeedQuery
	}

	cacheKey := feedCacheKeyPrefix + "q:" + q
	if casts, ok := s.cacheGet(ctx, cacheKey); ok {
		return casts, nil
	}

	queries := expandQuery(q)
	attempted := 0
	anyOK := false

	for _, upstream := range s.searchUpstreams {
		for _, query := range queries {
			attempted++
			casts, err := s.fetchCasts(ctx, upstream, url.Values{
				"q":     []string{query},
				"limit": []string{strconv.Itoa(searchCastLimit)},
			})
			if err != nil {
				continue
			}
			anyOK = true
			if len(casts) == 0 {
				continue
			}
			s.cacheSet(ctx, cacheKey, casts)
			return casts, nil
		}
	}

	if attempted > 0 && !anyOK {
		return nil, ErrUpstreamUnavailable
	}
	return []json.RawMessage{}, nil
}

// CastsByFid fetches a user's recent casts, filtered to those containing the
// hashtag from the query. An empty query filters by the default hashtag.
func (s *FarcasterService) CastsByFid(ctx context.Context, fid int64, q string) ([]json.RawMessage, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		q = defaultFeedQuery
	}

	cacheKey := feedCacheKeyPrefix + "fid:" + strconv.FormatInt(fid, 10) + ":" + q
	if casts, ok := s.cacheGet(ctx, cacheKey); ok {
		return casts, nil
	}

	filter := hashtagFilter(q)

	for _, upstream := range s.castsByFidUpstreams {
		casts, err := s.fetchCasts(ctx, upstream, url.Values{
			"fid":   []string{strconv.FormatInt(fid, 10)},
			"limit": []string{strconv.Itoa(fidCastLimit)},
		})
		if err != nil {
			continue
		}
		if filter != "" {
			casts = filterCastsByText(casts, filter)
		}
		s.cacheSet(ctx, cacheKey, casts)
		return casts, nil
	}

	return nil, ErrUpstreamUnavailable
}

func filterCastsByText(casts []json.RawMessage, substring string) []json.RawMessage {
	filtered := make([]json.RawMessage, 0, len(casts))
	for _, raw := range casts {
		var cast struct {
			Text string `json:"text"`
		}
		if err := json.Unmarshal(raw, &cast); err != nil {
			continue
		}
		if strings.Contains(cast.Text, substring) {
			filtered = append(filtered, raw)
		}
	}
	return filtered
}

func (s *FarcasterService) fetchCasts(ctx context.Context, upstream string, params url.Values) ([]json.RawMessage, error) {
	ctx, cancel := context.WithTimeout(ctx, feedUpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, upstream+"?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %d", resp.StatusCode)
	}

	var data castsResult
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return nil, err
	}
	if data.Result.Casts == nil {
		return []json.RawMessage{}, nil
	}
	return data.Result.Casts, nil
}

func (s *FarcasterService) cacheGet(ctx context.Context, key string) ([]json.RawMessage, bool) {
	if s.redisClient == nil {
		return nil, false
	}
	raw, err := s.redisClient.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var casts []json.RawMessage
	if err := json.Unmarshal([]byte(raw), &casts); err != nil {
		return nil, false
	}
	return casts, true
}

func (s *FarcasterService) cacheSet(ctx context.Context, key string, casts []json.RawMessage) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(casts)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, key, raw, feedCacheTTL).Err(); err != nil {
		zaplogger.Warn("failed to cache feed result", zaplogger.Fields{"error": err.Error()})
	}
}
