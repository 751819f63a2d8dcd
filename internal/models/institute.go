package models

import "time"

// Institute represents a campus/university that users and societies belong to
type Institute struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex"`
	Domain    string    `json:"domain"` // Email domain, e.g. "mit.edu"
	City      string    `json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateInstituteRequest defines the request body for registering an institute
type CreateInstituteRequest struct {
	Name   string `json:"name" validate:"required,min=2,max=120"`
	Domain string `json:"domain" validate:"required,fqdn"`
	City   string `json:"city,omitempty" validate:"omitempty,max=80"`
}
