package models

import "time"

// Invitation states
const (
	InvitationStatusPending  = "pending"
	InvitationStatusAccepted = "accepted"
	InvitationStatusRevoked  = "revoked"
)

// SocietyInvitation represents an invite for a user to join/follow a society
type SocietyInvitation struct {
	ID         uint       `json:"id" gorm:"primaryKey"`
	SocietyID  uint       `json:"society_id" gorm:"index"`
	InviterID  uint       `json:"inviter_id"`
	Email      string     `json:"email" gorm:"index"`
	Code       string     `json:"code" gorm:"uniqueIndex;size:36"`
	Status     string     `json:"status" gorm:"size:20;default:pending;index"`
	CreatedAt  time.Time  `json:"created_at"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
}

// CreateInvitationRequest defines the request body for inviting a user
type CreateInvitationRequest struct {
	Email string `json:"email" validate:"required,email"`
}
