package service

import (
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/yeshuachrist/ycapi/internal/models"
	"github.com/yeshuachrist/ycapi/internal/repository"
	"github.com/yeshuachrist/ycapi/internal/videourl"
	"gorm.io/gorm"
)

const (
	minSeasons = 1
	maxSeasons = 200
)

// VideoStore is the persistence surface the video service needs. Implemented
// by repository.VideoRepository.
type VideoStore interface {
	ListVideos() ([]models.VideoModel, error)
	MaxOrderInScope(tab models.VideoTab, seriesTitle string) (int, error)
	Create(video *models.VideoModel) error
	ApplyOrder(orderedIds []string, validate func(existing []models.VideoModel) error) error
	DeleteByID(id string) (int64, error)
}

// VideoService maintains the video directory and its display ordering.
type VideoService struct {
	repo VideoStore
}

// NewVideoService creates a new service for video entries
func NewVideoService(db *gorm.DB) *VideoService {
	return &VideoService{repo: repository.NewVideoRepository(db)}
}

// CreateVideoInput carries the fields of a video creation request
type CreateVideoInput struct {
	URL          string
	Tab          string
	Title        string
	Seasons      *int
	CreatedByFid *int64
}

// CreateVideo validates and stores a new entry. The URL is canonicalised, the
// series title is normalized once here, and the sort order is assigned per
// the append rule: parsed episode number when present, else max+1 in scope.
func (s *VideoService) CreateVideo(input CreateVideoInput) (*models.VideoModel, error) {
	if !models.IsValidTab(input.Tab) {
		return nil, fmt.Errorf("%w: unknown tab", ErrValidation)
	}
	tab := models.VideoTab(input.Tab)

	rawURL := strings.TrimSpace(input.URL)
	parsed, err := videourl.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: please provide a valid YouTube or Facebook link", ErrValidation)
	}

	title := normalizeTitle(input.Title)
	var seriesTitle string
	var episode int
	if tab == models.TabTVSeries {
		seriesTitle, episode = ParseSeriesTitle(title)
	}

	if input.Seasons != nil {
		if *input.Seasons < minSeasons || *input.Seasons > maxSeasons {
			return nil, fmt.Errorf("%w: seasons must be between %d and %d", ErrValidation, minSeasons, maxSeasons)
		}
		if episode > *input.Seasons {
			return nil, fmt.Errorf("%w: episode number exceeds season count", ErrValidation)
		}
	}

	order := episode
	if order == 0 {
		maxOrder, err := s.repo.MaxOrderInScope(tab, seriesTitle)
		if err != nil {
			return nil, err
		}
		order = maxOrder + 1
	}

	video := &models.VideoModel{
		ID:           uuid.NewString(),
		OriginalURL:  rawURL,
		ShareURL:     parsed.ShareURL,
		EmbedURL:     parsed.EmbedURL,
		Provider:     string(parsed.Provider),
		Tab:          tab,
		Title:        title,
		SeriesTitle:  seriesTitle,
		Seasons:      input.Seasons,
		SortOrder:    order,
		CreatedByFid: input.CreatedByFid,
	}
	if episode > 0 {
		video.Episode = &episode
	}

	if err := s.repo.Create(video); err != nil {
		return nil, err
	}
	return video, nil
}

// ListVideos returns the directory in display order
func (s *VideoService) ListVideos() ([]models.VideoModel, error) {
	videos, err := s.repo.ListVideos()
	if err != nil {
		return nil, err
	}
	SortVideos(videos)
	return videos, nil
}

// DeleteVideo removes an entry by id
func (s *VideoService) DeleteVideo(id string) error {
	deleted, err := s.repo.DeleteByID(id)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return fmt.Errorf("%w: video not found", ErrNotFound)
	}
	return nil
}

// Reorder assigns order = position+1 to each id within the claimed scope.
// Validation and writes run in one transaction so a failed precondition
// leaves the stored ordering untouched.
func (s *VideoService) Reorder(tab, seriesTitle string, orderedIds []string) error {
	if !models.IsValidTab(tab) {
		return fmt.Errorf("%w: unknown tab", ErrValidation)
	}
	scopeTab := models.VideoTab(tab)
	scopeSeries := normalizeTitle(seriesTitle)

	return s.repo.ApplyOrder(orderedIds, func(existing []models.VideoModel) error {
		return validateReorder(existing, scopeTab, scopeSeries, orderedIds)
	})
}

// validateReorder checks a caller-supplied ordering against the stored
// entries: no duplicates, every id present, every entry in the claimed scope.
func validateReorder(existing []models.VideoModel, tab models.VideoTab, seriesTitle string, orderedIds []string) error {
	if len(orderedIds) == 0 {
		return fmt.Errorf("%w: no ids provided", ErrValidation)
	}
	seen := make(map[string]struct{}, len(orderedIds))
	for _, id := range orderedIds {
		if id == "" {
			return fmt.Errorf("%w: empty id provided", ErrValidation)
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: duplicate ids provided", ErrValidation)
		}
		seen[id] = struct{}{}
	}

	if len(existing) != len(orderedIds) {
		return fmt.Errorf("%w: some ids were not found in this tab", ErrValidation)
	}
	for _, video := range existing {
		if video.Tab != tab {
			return fmt.Errorf("%w: some ids were not found in this tab", ErrValidation)
		}
		if tab == models.TabTVSeries && seriesTitle != "" && video.SeriesTitle != seriesTitle {
			return fmt.Errorf("%w: some ids were not found in this series title", ErrValidation)
		}
	}
	return nil
}

type scopeKey struct {
	tab    models.VideoTab
	series string
}

// SortVideos orders entries for display: tab enumeration order first, then
// series title, then within a scope either the manual order (ascending, once
// any entry in the scope was reordered) or the default chronological rule
// (newest first in general tabs, oldest episode first for TV Series).
func SortVideos(videos []models.VideoModel) {
	manualScopes := make(map[scopeKey]bool)
	for _, v := range videos {
		if v.ManualOrder {
			manualScopes[scopeKey{v.Tab, v.SeriesTitle}] = true
		}
	}

	sort.SliceStable(videos, func(i, j int) bool {
		a, b := videos[i], videos[j]
		if ra, rb := models.TabRank(a.Tab), models.TabRank(b.Tab); ra != rb {
			return ra < rb
		}
		if a.SeriesTitle != b.SeriesTitle {
			return a.SeriesTitle < b.SeriesTitle
		}
		if manualScopes[scopeKey{a.Tab, a.SeriesTitle}] {
			if a.SortOrder != b.SortOrder {
				return a.SortOrder < b.SortOrder
			}
			return a.CreatedAt.Before(b.CreatedAt)
		}
		if a.Tab == models.TabTVSeries {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
}
