package models

// UploadModel is a ledger of files pushed to the remote media store. Rows
// here let the admin list what has been uploaded and reconcile remote
// objects that no content row references anymore.
type UploadModel struct {
	Base
	FileName string `json:"fileName" gorm:"size:255;not null"`
	FileType string `json:"fileType" gorm:"size:100;not null"`
	FileSize int64  `json:"fileSize" gorm:"not null"`
	FileURL  string `json:"fileUrl"  gorm:"size:500;not null"`
	PublicID string `json:"publicId" gorm:"size:255;index"`
	Folder   string `json:"folder"   gorm:"size:50;index"`
}

func (UploadModel) TableName() string { return "uploads" }
