package models

// AdminModel holds the single dashboard password hash. There is exactly one
// row; the site has no multi-user accounts.
type AdminModel struct {
	Base
	PasswordHash string `json:"-" gorm:"not null"`
}

func (AdminModel) TableName() string { return "admin" }
