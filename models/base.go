package models

import "time"

// Base carries the columns every table shares. Active is the soft-delete flag.
type Base struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Active    bool       `gorm:"not null;default:true;index" json:"active"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
