package user

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	gorm.Model
	Name          string    `json:"name"`
	Username      string    `gorm:"uniqueIndex;not null" json:"username"`
	Email         string    `gorm:"uniqueIndex;not null" json:"email"`
	Password      string    `json:"-"`
	Phone         string    `gorm:"index" json:"phone"`
	PhoneVerified bool      `gorm:"default:false" json:"phone_verified"`
	LastActive    time.Time `json:"last_active"`
}

// RefreshToken is a server-side record of an issued refresh token so sessions
// can be revoked individually or en masse.
type RefreshToken struct {
	gorm.Model
	UserID    uint      `gorm:"index;not null" json:"user_id"`
	Token     string    `gorm:"uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`
	Revoked   bool      `gorm:"default:false" json:"revoked"`
}
