package models

import (
	"time"

	"github.com/google/uuid"
)

// Item is a listed product. Prices are integer minor currency units.
type Item struct {
	ID          uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title       string    `gorm:"column:title;not null"`
	Description string    `gorm:"column:description;not null"`
	PriceCents  int       `gorm:"column:price_cents;not null"`
	Image       *string   `gorm:"column:image"`
	LargeImage  *string   `gorm:"column:large_image"`
	UserID      uuid.UUID `gorm:"column:user_id;type:uuid;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
