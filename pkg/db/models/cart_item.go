package models

import (
	"time"

	"github.com/google/uuid"
)

// CartItem is a pending association of quantity to an Item for a user. The
// (user_id, item_id) pair is unique; re-adding increments quantity.
type CartItem struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	UserID    uuid.UUID `gorm:"column:user_id;type:uuid;not null;uniqueIndex:uq_cart_items_user_item"`
	ItemID    uuid.UUID `gorm:"column:item_id;type:uuid;not null;uniqueIndex:uq_cart_items_user_item"`
	Quantity  int       `gorm:"column:quantity;not null;default:1"`
	Item      *Item     `gorm:"foreignKey:ItemID"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
