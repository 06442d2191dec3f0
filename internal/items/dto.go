package items

import (
	"github.com/fitgear/storefront-backend/pkg/db/models"
)

// CreateItemRequest carries the fields for a new listing.
type CreateItemRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=255"`
	Description string  `json:"description" validate:"required"`
	PriceCents  int     `json:"priceCents" validate:"gte=0"`
	Image       *string `json:"image"`
	LargeImage  *string `json:"largeImage"`
}

// UpdateItemRequest applies a partial update. Nil fields are left untouched;
// the item id always comes from the operation argument, never the payload.
type UpdateItemRequest struct {
	Title       *string `json:"title" validate:"omitempty,min=1,max=255"`
	Description *string `json:"description"`
	PriceCents  *int    `json:"priceCents" validate:"omitempty,gte=0"`
	Image       *string `json:"image"`
	LargeImage  *string `json:"largeImage"`
}

func (r UpdateItemRequest) changes() map[string]any {
	changes := map[string]any{}
	if r.Title != nil {
		changes["title"] = *r.Title
	}
	if r.Description != nil {
		changes["description"] = *r.Description
	}
	if r.PriceCents != nil {
		changes["price_cents"] = *r.PriceCents
	}
	if r.Image != nil {
		changes["image"] = *r.Image
	}
	if r.LargeImage != nil {
		changes["large_image"] = *r.LargeImage
	}
	return changes
}

// ListResult pairs a page of items with the total count for pagination UIs.
type ListResult struct {
	Items []models.Item
	Total int64
}
