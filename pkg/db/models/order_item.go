package models

import (
	"time"

	"github.com/google/uuid"
)

// OrderItem is a denormalized snapshot of an Item at purchase time. Later
// edits or deletion of the Item never alter historical orders, so item_id is
// informational and nullable.
type OrderItem struct {
	ID          uuid.UUID  `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID     uuid.UUID  `gorm:"column:order_id;type:uuid;not null"`
	ItemID      *uuid.UUID `gorm:"column:item_id;type:uuid"`
	Title       string     `gorm:"column:title;not null"`
	Description string     `gorm:"column:description;not null"`
	PriceCents  int        `gorm:"column:price_cents;not null"`
	Image       *string    `gorm:"column:image"`
	LargeImage  *string    `gorm:"column:large_image"`
	Quantity    int        `gorm:"column:quantity;not null"`
	CreatedAt   time.Time  `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time  `gorm:"column:updated_at;autoUpdateTime"`
}
