package models

// CertificateModel stores trust registration and tax-exemption documents.
// The stored file may be an image or a PDF.
type CertificateModel struct {
	Base
	Title       string `json:"title"       gorm:"not null"`
	Description string `json:"description" gorm:"type:text"`
	FileURL     string `json:"fileUrl"     gorm:"size:500;not null"`
}

func (CertificateModel) TableName() string { return "certificates" }
