package models

import (
	"time"
)

const VideosTableName = "videos"

// VideoTab is the fixed category enumeration for video entries.
type VideoTab string

const (
	TabWorshipMusic   VideoTab = "Worship Music"
	TabTeachingVideos VideoTab = "Teaching Videos"
	TabTVSeries       VideoTab = "TV Series"
)

// VideoTabs lists the tabs in display order.
var VideoTabs = []VideoTab{TabWorshipMusic, TabTeachingVideos, TabTVSeries}

// IsValidTab reports whether value is one of the known tabs.
func IsValidTab(value string) bool {
	for _, tab := range VideoTabs {
		if string(tab) == value {
			return true
		}
	}
	return false
}

// TabRank returns the display position of a tab. Unknown tabs sort last.
func TabRank(tab VideoTab) int {
	for i, t := range VideoTabs {
		if t == tab {
			return i
		}
	}
	return len(VideoTabs)
}

// VideoModel is a shareable media reference. SeriesTitle and Episode are
// normalized once at creation time and never re-derived from Title.
type VideoModel struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	OriginalURL  string    `gorm:"not null" json:"originalUrl"`
	ShareURL     string    `gorm:"not null" json:"shareUrl"`
	EmbedURL     string    `gorm:"not null" json:"embedUrl"`
	Provider     string    `json:"provider"`
	Tab          VideoTab  `gorm:"index:idx_tab_series,priority:1;not null" json:"tab"`
	Title        string    `json:"title,omitempty"`
	SeriesTitle  string    `gorm:"index:idx_tab_series,priority:2" json:"seriesTitle,omitempty"`
	Episode      *int      `json:"episode,omitempty"`
	Seasons      *int      `json:"seasons,omitempty"`
	SortOrder    int       `gorm:"column:sort_order" json:"order"`
	ManualOrder  bool      `json:"manualOrder"`
	CreatedAt    time.Time `gorm:"autoCreateTime;index" json:"createdAt"`
	CreatedByFid *int64    `json:"createdByFid,omitempty"`
}

// TableName specifies the table name for the VideoModel
func (VideoModel) TableName() string {
	return VideosTableName
}
