package models

import (
	"time"

	"github.com/google/uuid"
)

// UserModel is the database row for a marketplace account. The unique
// index on email is the correctness mechanism for duplicate detection;
// the role index backs filtered admin listings.
type UserModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Email         string    `gorm:"type:varchar(255);not null;uniqueIndex"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	FullName      string    `gorm:"type:varchar(255)"`
	Phone         *string   `gorm:"type:varchar(20)"`
	Role          string    `gorm:"type:varchar(20);not null;default:'CUSTOMER';index"`
	// No column default on is_active: gorm omits zero-value fields that
	// carry one, and restaurant rows must be inserted with false.
	IsActive      bool      `gorm:"not null"`
	EmailVerified bool      `gorm:"default:false;not null"`
	CreatedAt     time.Time `gorm:"not null"`
	UpdatedAt     time.Time `gorm:"not null"`
}

func (UserModel) TableName() string {
	return "users"
}
