package models

import "time"

// ImpactStoryModel stores an "our impact" card: a story with an icon and a
// headline statistic. This is the only content entity that tracks a
// last-modified timestamp.
type ImpactStoryModel struct {
	Base
	Title       string    `json:"title"       gorm:"not null"`
	Description string    `json:"description" gorm:"type:text;not null"`
	ImageURL    string    `json:"imageUrl"    gorm:"size:500;not null"`
	Icon        string    `json:"icon"        gorm:"not null"`
	StatsValue  string    `json:"statsValue"  gorm:"not null"`
	StatsLabel  string    `json:"statsLabel"  gorm:"not null"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

func (ImpactStoryModel) TableName() string { return "impact_stories" }
