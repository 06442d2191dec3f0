package models

import (
	"time"

	"github.com/google/uuid"
)

// Order is created atomically at checkout and immutable thereafter. The total
// is the amount the payment gateway actually captured, never a client value.
type Order struct {
	ID         uuid.UUID   `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	TotalCents int         `gorm:"column:total_cents;not null"`
	ChargeID   string      `gorm:"column:charge_id;not null"`
	UserID     uuid.UUID   `gorm:"column:user_id;type:uuid;not null"`
	Items      []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
	CreatedAt  time.Time   `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt  time.Time   `gorm:"column:updated_at;autoUpdateTime"`
}
