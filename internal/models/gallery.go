package models

// GalleryItemModel stores photos shown on the public gallery page.
type GalleryItemModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	ImageURL    string `json:"imageUrl"    gorm:"size:500;not null"`
}

func (GalleryItemModel) TableName() string { return "gallery_items" }
