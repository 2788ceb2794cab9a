package models

import "time"

// Base is the base model for all entities. IDs are database-assigned
// integer surrogate keys.
type Base struct {
	ID        uint      `json:"id"        gorm:"primaryKey;autoIncrement"`
	CreatedAt time.Time `json:"createdAt"`
}
