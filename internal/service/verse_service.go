package service

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/yeshuachrist/ycapi/pkg/utils/zaplogger"
)

const (
	verseUpstreamTimeout = 4 * time.Second
	verseCacheTTL        = time.Hour
	verseCacheKeyPrefix  = "yc:daily_verse:"
)

var dateKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Verse is a single scripture verse
type Verse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	TranslationName string `json:"translation_name"`
}

// DailyVerse is the verse of the day with its provenance
type DailyVerse struct {
	Verse
	DateKey string `json:"dateKey"`
	Source  string `json:"source"`
}

// VerseService resolves the verse of the day through a fallback chain:
// dailybible.ca, then bible-api.com, then the offline pool. Results are
// cached in Redis per date key.
type VerseService struct {
	client            *http.Client
	redisClient       *redis.Client
	dailyBibleBaseURL string
	bibleAPIBaseURL   string
}

// NewVerseService creates a new service for the daily verse
func NewVerseService(redisClient *redis.Client) *VerseService {
	return &VerseService{
		client:            &http.Client{},
		redisClient:       redisClient,
		dailyBibleBaseURL: "https://dailybible.ca/api",
		bibleAPIBaseURL:   "https://bible-api.com",
	}
}

// LocalDateKey formats a time as the YYYY-MM-DD cache key
func LocalDateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsValidDateKey reports whether value is a YYYY-MM-DD date key
func IsValidDateKey(value string) bool {
	return dateKeyRe.MatchString(value)
}

// offlineVerseFor picks the pool verse for a date key. FNV-1a keeps the
// choice stable for a given day across processes.
func offlineVerseFor(dateKey string) Verse {
	h := fnv.New32a()
	h.Write([]byte(dateKey))
	return offlineVersePool[h.Sum32()%uint32(len(offlineVersePool))]
}

// toDailyBiblePath converts a verse reference into the dailybible.ca path form
func toDailyBiblePath(reference string) string {
	return whitespaceRe.ReplaceAllString(strings.TrimSpace(reference), "+")
}

// GetDailyVerse returns the verse of the day for the given date key (today
// when empty or malformed). Upstream failures fall through to the next
// source; the offline pool always answers.
func (s *VerseService) GetDailyVerse(ctx context.Context, dateKey string) (*DailyVerse, error) {
	if !IsValidDateKey(dateKey) {
		dateKey = LocalDateKey(time.Now())
	}

	if cached := s.cacheGet(ctx, dateKey); cached != nil {
		return cached, nil
	}

	fallback := offlineVerseFor(dateKey)

	if verse := s.fetchDailyBible(ctx, fallback.Reference); verse != nil {
		result := &DailyVerse{Verse: *verse, DateKey: dateKey, Source: "dailybible.ca"}
		s.cacheSet(ctx, dateKey, result)
		return result, nil
	}

	if verse := s.fetchBibleAPI(ctx, fallback.Reference); verse != nil {
		result := &DailyVerse{Verse: *verse, DateKey: dateKey, Source: "bible-api.com"}
		s.cacheSet(ctx, dateKey, result)
		return result, nil
	}

	return &DailyVerse{Verse: fallback, DateKey: dateKey, Source: "offline"}, nil
}

func (s *VerseService) cacheGet(ctx context.Context, dateKey string) *DailyVerse {
	if s.redisClient == nil {
		return nil
	}
	raw, err := s.redisClient.Get(ctx, verseCacheKeyPrefix+dateKey).Result()
	if err != nil {
		return nil
	}
	var verse DailyVerse
	if err := json.Unmarshal([]byte(raw), &verse); err != nil {
		return nil
	}
	return &verse
}

func (s *VerseService) cacheSet(ctx context.Context, dateKey string, verse *DailyVerse) {
	if s.redisClient == nil {
		return
	}
	raw, err := json.Marshal(verse)
	if err != nil {
		return
	}
	if err := s.redisClient.Set(ctx, verseCacheKeyPrefix+dateKey, raw, verseCacheTTL).Err(); err != nil {
		zaplogger.Warn("failed to cache daily verse", zaplogger.Fields{"error": err.Error()})
	}
}

func (s *VerseService) fetchJSON(ctx context.Context, rawURL string, out interface{}) error {
	ctx, cancel := context.WithTimeout(ctx, verseUpstreamTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("bad status: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

type dailyBibleResponse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	TranslationName string `json:"translation_name"`
}

func (s *VerseService) fetchDailyBible(ctx context.Context, reference string) *Verse {
	var data dailyBibleResponse
	url := s.dailyBibleBaseURL + "/" + toDailyBiblePath(reference)
	if err := s.fetchJSON(ctx, url, &data); err != nil {
		zaplogger.Debug("dailybible.ca fetch failed", zaplogger.Fields{"error": err.Error()})
		return nil
	}
	return parseDailyBibleVerse(data)
}

func parseDailyBibleVerse(data dailyBibleResponse) *Verse {
	if data.Reference == "" || data.Text == "" || data.TranslationName == "" {
		return nil
	}
	return &Verse{
		Reference:       data.Reference,
		Text:            strings.TrimSpace(data.Text),
		TranslationName: data.TranslationName,
	}
}

type bibleAPIResponse struct {
	Reference       string `json:"reference"`
	Text            string `json:"text"`
	TranslationName string `json:"translation_name"`
	Verses          []struct {
		Text string `json:"text"`
	} `json:"verses"`
}

func (s *VerseService) fetchBibleAPI(ctx context.Context, reference string) *Verse {
	var data bibleAPIResponse
	url := s.bibleAPIBaseURL + "/" + url.PathEscape(reference) + "?translation=kjv"
	if err := s.fetchJSON(ctx, url, &data); err != nil {
		zaplogger.Debug("bible-api.com fetch failed", zaplogger.Fields{"error": err.Error()})
		return nil
	}
	return parseBibleAPIVerse(data)
}

func parseBibleAPIVerse(data bibleAPIResponse) *Verse {
	if data.Reference == "" {
		return nil
	}
	translation := data.TranslationName
	if translation == "" {
		translation = "KJV"
	}
	if data.Text != "" {
		return &Verse{Reference: data.Reference, Text: strings.TrimSpace(data.Text), TranslationName: translation}
	}

	parts := make([]string, 0, len(data.Verses))
	for _, v := range data.Verses {
		if v.Text != "" {
			parts = append(parts, strings.TrimSpace(v.Text))
		}
	}
	text := strings.TrimSpace(strings.Join(parts, " "))
	if text == "" {
		return nil
	}
	return &Verse{Reference: data.Reference, Text: text, TranslationName: translation}
}
