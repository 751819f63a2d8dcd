package models

import "time"

// SocietyFollow represents a user following a society
type SocietyFollow struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"index;uniqueIndex:idx_user_society"`
	SocietyID uint      `json:"society_id" gorm:"index;uniqueIndex:idx_user_society"`
	CreatedAt time.Time `json:"created_at"`
}
