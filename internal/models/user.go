package models

import (
	"github.com/golang-jwt/jwt/v4"
	"gorm.io/gorm"
)

// User roles
const (
	RoleStudent = "student"
	RoleAdmin   = "admin"
)

type User struct {
	gorm.Model  `json:"-"`
	ID          uint   `json:"id" gorm:"primaryKey"`
	Name        string `json:"name"`
	Email       string `json:"email" gorm:"uniqueIndex"` // Campus email, unique across all users
	Password    string `json:"-"`                        // Store hashed password, ignore for JSON serialization
	Role        string `json:"role" gorm:"size:20;default:student"`
	InstituteID uint   `json:"institute_id" gorm:"index"`
	AvatarURL   string `json:"avatar_url,omitempty"`
	Bio         string `json:"bio,omitempty"`
	FirebaseUID string `json:"firebase_uid,omitempty" gorm:"uniqueIndex"` // Link to Firebase User UID

	// Push notification preferences
	DeviceToken     string `json:"-"`                                         // FCM registration token
	QuietHoursStart string `json:"quiet_hours_start,omitempty" gorm:"size:5"` // "22:00"
	QuietHoursEnd   string `json:"quiet_hours_end,omitempty" gorm:"size:5"`   // "07:00"
	Timezone        string `json:"timezone,omitempty" gorm:"size:40"`
}

// UserCompact is the trimmed user representation embedded in enriched payloads
type UserCompact struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	AvatarURL string `json:"avatar_url,omitempty"`
}

// ToCompact converts a User into its compact representation
func (u *User) ToCompact() UserCompact {
	return UserCompact{
		ID:        u.ID,
		Name:      u.Name,
		AvatarURL: u.AvatarURL,
	}
}

type CreateLocalUserRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=50"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=8"`
	InstituteID uint   `json:"institute_id" validate:"required"`
}

type UpdateUserRequest struct {
	Name            string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio             string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL       string `json:"avatar_url,omitempty" validate:"omitempty,url"`
	DeviceToken     string `json:"device_token,omitempty"`
	QuietHoursStart string `json:"quiet_hours_start,omitempty" validate:"omitempty,len=5"`
	QuietHoursEnd   string `json:"quiet_hours_end,omitempty" validate:"omitempty,len=5"`
	Timezone        string `json:"timezone,omitempty"`
}

// JwtCustomClaims are custom claims extending standard jwt.RegisteredClaims
type JwtCustomClaims struct {
	UserID uint   `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}
