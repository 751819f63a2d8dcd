package models

import "time"

// Society represents a campus society/club that users can follow
type Society struct {
	ID             uint      `json:"id" gorm:"primaryKey"`
	InstituteID    uint      `json:"institute_id" gorm:"index"`
	Name           string    `json:"name" gorm:"index"`
	Description    string    `json:"description"`
	Category       string    `json:"category" gorm:"size:40;index"` // sports, arts, tech, ...
	LogoURL        string    `json:"logo_url,omitempty"`
	CreatedBy      uint      `json:"created_by" gorm:"index"` // User who owns/administers the society
	FollowersCount int       `json:"followers_count" gorm:"default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// CreateSocietyRequest defines the request body for creating a society
type CreateSocietyRequest struct {
	InstituteID uint   `json:"institute_id" validate:"required"`
	Name        string `json:"name" validate:"required,min=2,max=120"`
	Description string `json:"description" validate:"omitempty,max=1000"`
	Category    string `json:"category" validate:"omitempty,max=40"`
	LogoURL     string `json:"logo_url,omitempty" validate:"omitempty,url"`
}

// UpdateSocietyRequest defines the request body for updating a society
type UpdateSocietyRequest struct {
	Name        string `json:"name,omitempty" validate:"omitempty,min=2,max=120"`
	Description string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Category    string `json:"category,omitempty" validate:"omitempty,max=40"`
	LogoURL     string `json:"logo_url,omitempty" validate:"omitempty,url"`
}
