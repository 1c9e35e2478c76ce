package repository

import (
	"github.com/lib/pq"
	"github.com/yeshuachrist/ycapi/internal/models"
	"gorm.io/gorm"
)

// listVideosLimit bounds the public listing, matching the page size the UI
// renders.
const listVideosLimit = 200

type VideoRepository struct {
	DB *gorm.DB
}

// NewVideoRepository creates a new repository for video entries
func NewVideoRepository(db *gorm.DB) *VideoRepository {
	return &VideoRepository{DB: db}
}

// ApplyOrder checks the claimed ordering against the stored rows and assigns
// order = position+1 to each id, all inside one transaction so a failed
// precondition leaves the stored ordering untouched.
func (r *VideoRepository) ApplyOrder(orderedIds []string, validate func(existing []models.VideoModel) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		txRepo := &VideoRepository{DB: tx}
		existing, err := txRepo.GetByIDs(orderedIds)
		if err != nil {
			return err
		}
		if err := validate(existing); err != nil {
			return err
		}
		for i, id := range orderedIds {
			if err := txRepo.SetOrder(id, i+1); err != nil {
				return err
			}
		}
		return nil
	})
}

// ListVideos returns the newest videos, bounded by the listing limit
func (r *VideoRepository) ListVideos() ([]models.VideoModel, error) {
	var videos []models.VideoModel
	err := r.DB.Order("created_at DESC").Limit(listVideosLimit).Find(&videos).Error
	return videos, err
}

// GetByIDs returns the videos matching the given ids, in storage order
func (r *VideoRepository) GetByIDs(ids []string) ([]models.VideoModel, error) {
	var videos []models.VideoModel
	err := r.DB.Where("id = ANY(?)", pq.Array(ids)).Find(&videos).Error
	return videos, err
}

// MaxOrderInScope returns the maximum sort order within a (tab, series) scope.
// Returns 0 when the scope is empty.
func (r *VideoRepository) MaxOrderInScope(tab models.VideoTab, seriesTitle string) (int, error) {
	var maxOrder int
	query := r.DB.Model(&models.VideoModel{}).
		Select("COALESCE(MAX(sort_order), 0)").
		Where("tab = ?", tab)
	if seriesTitle != "" {
		query = query.Where("series_title = ?", seriesTitle)
	}
	err := query.Scan(&maxOrder).Error
	return maxOrder, err
}

// Create inserts a new video entry
func (r *VideoRepository) Create(video *models.VideoModel) error {
	return r.DB.Create(video).Error
}

// SetOrder assigns a manual sort order to one video
func (r *VideoRepository) SetOrder(id string, order int) error {
	return r.DB.Model(&models.VideoModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"sort_order": order, "manual_order": true}).Error
}

// DeleteByID removes a video entry, reporting how many rows were deleted
func (r *VideoRepository) DeleteByID(id string) (int64, error) {
	result := r.DB.Where("id = ?", id).Delete(&models.VideoModel{})
	return result.RowsAffected, result.Error
}
