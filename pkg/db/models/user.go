package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// User represents the canonical identity entity. Permissions carry the tags
// that gate protected mutations; reset_token/reset_token_expiry are only set
// while a password reset is pending.
type User struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Email            string         `gorm:"type:text;not null;uniqueIndex"`
	Name             string         `gorm:"column:name;not null"`
	PasswordHash     string         `gorm:"column:password_hash;not null"`
	Permissions      pq.StringArray `gorm:"type:text[];column:permissions;not null;default:ARRAY['USER']::text[]"`
	ResetToken       *string        `gorm:"column:reset_token"`
	ResetTokenExpiry *time.Time     `gorm:"column:reset_token_expiry"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt        time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}
