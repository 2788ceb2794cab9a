package models

// Donation status values.
const (
	DonationStatusPending  = "pending"
	DonationStatusVerified = "verified"
	DonationStatusRejected = "rejected"
)

// DonationModel records a donor's submission with a payment proof image.
// Status moves from pending to verified/rejected by an admin.
type DonationModel struct {
	Base
	FullName      string `json:"fullName"      gorm:"not null"`
	Email         string `json:"email"         gorm:"not null"`
	Amount        string `json:"amount"        gorm:"not null"`
	PANCard       string `json:"panCard"       gorm:"column:pan_card;not null"`
	TransactionID string `json:"transactionId" gorm:"not null"`
	ProofImageURL string `json:"proofImageUrl" gorm:"size:500;not null"`
	Status        string `json:"status"        gorm:"default:pending;index"`
}

func (DonationModel) TableName() string { return "donations" }
