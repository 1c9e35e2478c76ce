package service

import (
	"errors"
	"testing"
	"time"

	"github.com/yeshuachrist/ycapi/internal/models"
)

// fakeVideoStore is an in-memory VideoStore for exercising the ordering
// engine without a database.
type fakeVideoStore struct {
	videos map[string]*models.VideoModel
}

func newFakeVideoStore() *fakeVideoStore {
	return &fakeVideoStore{videos: make(map[string]*models.VideoModel)}
}

func (f *fakeVideoStore) seed(v models.VideoModel) {
	clone := v
	f.videos[v.ID] = &clone
}

func (f *fakeVideoStore) ListVideos() ([]models.VideoModel, error) {
	out := make([]models.VideoModel, 0, len(f.videos))
	for _, v := range f.videos {
		out = append(out, *v)
	}
	return out, nil
}

func (f *fakeVideoStore) MaxOrderInScope(tab models.VideoTab, seriesTitle string) (int, error) {
	maxOrder := 0
	for _, v := range f.videos {
		if v.Tab != tab {
			continue
		}
		if seriesTitle != "" && v.SeriesTitle != seriesTitle {
			continue
		}
		if v.SortOrder > maxOrder {
			maxOrder = v.SortOrder
		}
	}
	return maxOrder, nil
}

func (f *fakeVideoStore) Create(v *models.VideoModel) error {
	clone := *v
	f.videos[v.ID] = &clone
	return nil
}

func (f *fakeVideoStore) ApplyOrder(orderedIds []string, validate func(existing []models.VideoModel) error) error {
	existing := make([]models.VideoModel, 0, len(orderedIds))
	for _, id := range orderedIds {
		if v, ok := f.videos[id]; ok {
			existing = append(existing, *v)
		}
	}
	if err := validate(existing); err != nil {
		return err
	}
	for i, id := range orderedIds {
		f.videos[id].SortOrder = i + 1
		f.videos[id].ManualOrder = true
	}
	return nil
}

func (f *fakeVideoStore) DeleteByID(id string) (int64, error) {
	if _, ok := f.videos[id]; !ok {
		return 0, nil
	}
	delete(f.videos, id)
	return 1, nil
}

func videoAt(id string, tab models.VideoTab, series string, order int, manual bool, created time.Time) models.VideoModel {
	return models.VideoModel{
		ID:          id,
		Tab:         tab,
		SeriesTitle: series,
		SortOrder:   order,
		ManualOrder: manual,
		CreatedAt:   created,
	}
}

func ids(videos []models.VideoModel) []string {
	out := make([]string, len(videos))
	for i, v := range videos {
		out[i] = v.ID
	}
	return out
}

func assertOrder(t *testing.T, videos []models.VideoModel, want []string) {
	t.Helper()
	got := ids(videos)
	if len(got) != len(want) {
		t.Fatalf("got %d videos, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("order = %v, want %v", got, want)
		}
	}
}

func TestSortVideosTabOrder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		videoAt("tv", models.TabTVSeries, "Show", 1, false, base),
		videoAt("teach", models.TabTeachingVideos, "", 1, false, base),
		videoAt("worship", models.TabWorshipMusic, "", 1, false, base),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"worship", "teach", "tv"})
}

func TestSortVideosGeneralTabsNewestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		videoAt("old", models.TabWorshipMusic, "", 1, false, base),
		videoAt("new", models.TabWorshipMusic, "", 2, false, base.Add(time.Hour)),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"new", "old"})
}

func TestSortVideosTVSeriesOldestFirst(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		videoAt("ep2", models.TabTVSeries, "Show", 2, false, base.Add(time.Hour)),
		videoAt("ep1", models.TabTVSeries, "Show", 1, false, base),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"ep1", "ep2"})
}

func TestSortVideosSeriesGroupedByTitle(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		videoAt("b1", models.TabTVSeries, "Beta", 1, false, base),
		videoAt("a2", models.TabTVSeries, "Alpha", 2, false, base.Add(time.Hour)),
		videoAt("a1", models.TabTVSeries, "Alpha", 1, false, base),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"a1", "a2", "b1"})
}

func TestSortVideosManualOrderWinsWithinScope(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		// One manual entry switches the whole scope to manual ordering.
		videoAt("third", models.TabWorshipMusic, "", 3, false, base.Add(2*time.Hour)),
		videoAt("first", models.TabWorshipMusic, "", 1, true, base),
		videoAt("second", models.TabWorshipMusic, "", 2, false, base.Add(time.Hour)),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"first", "second", "third"})
}

func TestSortVideosManualScopeIsolation(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	videos := []models.VideoModel{
		// Series Alpha was manually reordered; series Beta keeps the
		// chronological rule.
		videoAt("a2", models.TabTVSeries, "Alpha", 2, false, base),
		videoAt("a1", models.TabTVSeries, "Alpha", 1, true, base.Add(time.Hour)),
		videoAt("b-old", models.TabTVSeries, "Beta", 9, false, base),
		videoAt("b-new", models.TabTVSeries, "Beta", 5, false, base.Add(time.Hour)),
	}

	SortVideos(videos)
	assertOrder(t, videos, []string{"a1", "a2", "b-old", "b-new"})
}

func TestCreateVideoEpisodeNumberBecomesOrder(t *testing.T) {
	store := newFakeVideoStore()
	svc := &VideoService{repo: store}

	video, err := svc.CreateVideo(CreateVideoInput{
		URL:   "https://www.youtube.com/watch?v=abc123",
		Tab:   string(models.TabTVSeries),
		Title: "The Chosen Episode 5",
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if video.SeriesTitle != "The Chosen" {
		t.Errorf("seriesTitle = %q, want The Chosen", video.SeriesTitle)
	}
	if video.Episode == nil || *video.Episode != 5 {
		t.Errorf("episode = %v, want 5", video.Episode)
	}
	if video.SortOrder != 5 {
		t.Errorf("order = %d, want 5", video.SortOrder)
	}
}

func TestCreateVideoAppendsAfterScopeMax(t *testing.T) {
	store := newFakeVideoStore()
	svc := &VideoService{repo: store}

	first, err := svc.CreateVideo(CreateVideoInput{
		URL: "https://youtu.be/abc123",
		Tab: string(models.TabWorshipMusic),
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if first.SortOrder != 1 {
		t.Errorf("empty scope order = %d, want 1", first.SortOrder)
	}

	store.seed(videoAt("existing", models.TabWorshipMusic, "", 7, false, time.Now()))

	second, err := svc.CreateVideo(CreateVideoInput{
		URL: "https://youtu.be/def456",
		Tab: string(models.TabWorshipMusic),
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if second.SortOrder != 8 {
		t.Errorf("order = %d, want max+1 = 8", second.SortOrder)
	}

	// Another tab is a separate scope.
	teach, err := svc.CreateVideo(CreateVideoInput{
		URL: "https://youtu.be/ghi789",
		Tab: string(models.TabTeachingVideos),
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if teach.SortOrder != 1 {
		t.Errorf("other-tab order = %d, want 1", teach.SortOrder)
	}
}

func TestCreateVideoTrimsOriginalURL(t *testing.T) {
	store := newFakeVideoStore()
	svc := &VideoService{repo: store}

	video, err := svc.CreateVideo(CreateVideoInput{
		URL: "  https://youtu.be/abc123  ",
		Tab: string(models.TabWorshipMusic),
	})
	if err != nil {
		t.Fatalf("CreateVideo() error: %v", err)
	}
	if video.OriginalURL != "https://youtu.be/abc123" {
		t.Errorf("originalUrl = %q, want trimmed", video.OriginalURL)
	}
}

func TestReorderIsIdempotent(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeVideoStore()
	svc := &VideoService{repo: store}

	store.seed(videoAt("a", models.TabTVSeries, "Show", 1, false, base))
	store.seed(videoAt("b", models.TabTVSeries, "Show", 2, false, base.Add(time.Hour)))

	for i := 0; i < 2; i++ {
		if err := svc.Reorder(string(models.TabTVSeries), "Show", []string{"b", "a"}); err != nil {
			t.Fatalf("Reorder() pass %d error: %v", i+1, err)
		}
		if got := store.videos["b"].SortOrder; got != 1 {
			t.Errorf("pass %d: b order = %d, want 1", i+1, got)
		}
		if got := store.videos["a"].SortOrder; got != 2 {
			t.Errorf("pass %d: a order = %d, want 2", i+1, got)
		}
		if !store.videos["a"].ManualOrder || !store.videos["b"].ManualOrder {
			t.Errorf("pass %d: manual flag not set", i+1)
		}
	}

	videos, err := svc.ListVideos()
	if err != nil {
		t.Fatalf("ListVideos() error: %v", err)
	}
	assertOrder(t, videos, []string{"b", "a"})
}

func TestReorderFailureLeavesOrderUntouched(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store := newFakeVideoStore()
	svc := &VideoService{repo: store}

	store.seed(videoAt("a", models.TabTVSeries, "Show", 1, false, base))
	store.seed(videoAt("b", models.TabTVSeries, "Show", 2, false, base))

	err := svc.Reorder(string(models.TabTVSeries), "Show", []string{"a", "missing"})
	if !errors.Is(err, ErrValidation) {
		t.Fatalf("got %v, want ErrValidation", err)
	}
	if store.videos["a"].SortOrder != 1 || store.videos["b"].SortOrder != 2 {
		t.Error("stored ordering changed on a failed reorder")
	}
	if store.videos["a"].ManualOrder || store.videos["b"].ManualOrder {
		t.Error("manual flag set on a failed reorder")
	}
}

func TestValidateReorder(t *testing.T) {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	inScope := []models.VideoModel{
		videoAt("a", models.TabTVSeries, "Show", 1, false, base),
		videoAt("b", models.TabTVSeries, "Show", 2, false, base),
	}

	tests := []struct {
		name        string
		existing    []models.VideoModel
		tab         models.VideoTab
		seriesTitle string
		orderedIds  []string
		wantErr     bool
	}{
		{"valid", inScope, models.TabTVSeries, "Show", []string{"b", "a"}, false},
		{"empty ids", nil, models.TabTVSeries, "Show", nil, true},
		{"blank id", inScope, models.TabTVSeries, "Show", []string{"a", ""}, true},
		{"duplicate ids", inScope, models.TabTVSeries, "Show", []string{"a", "a"}, true},
		{"missing id", []models.VideoModel{inScope[0]}, models.TabTVSeries, "Show", []string{"a", "b"}, true},
		{"wrong tab", inScope, models.TabWorshipMusic, "", []string{"b", "a"}, true},
		{"wrong series", inScope, models.TabTVSeries, "Other", []string{"b", "a"}, true},
		{"series not checked when blank", inScope, models.TabTVSeries, "", []string{"b", "a"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateReorder(tt.existing, tt.tab, tt.seriesTitle, tt.orderedIds)
			if tt.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Errorf("got %v, want ErrValidation", err)
				}
			} else if err != nil {
				t.Errorf("got %v, want nil", err)
			}
		})
	}
}
