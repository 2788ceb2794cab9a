package models

// SponsorModel stores a sponsor logo and its outbound link.
type SponsorModel struct {
	Base
	Name     string `json:"name"     gorm:"not null"`
	Link     string `json:"link"     gorm:"not null"`
	ImageURL string `json:"imageUrl" gorm:"size:500;not null"`
}

func (SponsorModel) TableName() string { return "sponsors" }
