package models

import "time"

// Report states
const (
	ReportStatusOpen     = "open"
	ReportStatusResolved = "resolved"
)

// Report represents a user-submitted moderation report
type Report struct {
	ID             uint       `json:"id" gorm:"primaryKey"`
	ReporterID     uint       `json:"reporter_id" gorm:"index"`
	TargetType     string     `json:"target_type" gorm:"size:20;index"` // post, society, user
	TargetID       string     `json:"target_id" gorm:"index"`
	Reason         string     `json:"reason" gorm:"size:40"` // spam, harassment, inappropriate, other
	Details        string     `json:"details,omitempty"`
	Status         string     `json:"status" gorm:"size:20;default:open;index"`
	ResolvedBy     *uint      `json:"resolved_by,omitempty"`
	ResolutionNote string     `json:"resolution_note,omitempty"`
	ResolvedAt     *time.Time `json:"resolved_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// CreateReportRequest defines the request body for filing a report
type CreateReportRequest struct {
	TargetType string `json:"target_type" validate:"required,oneof=post society user"`
	TargetID   string `json:"target_id" validate:"required"`
	Reason     string `json:"reason" validate:"required,oneof=spam harassment inappropriate other"`
	Details    string `json:"details,omitempty" validate:"omitempty,max=1000"`
}

// ResolveReportRequest defines the request body for resolving a report
type ResolveReportRequest struct {
	ResolutionNote string `json:"resolution_note" validate:"required,min=1,max=1000"`
}
