package cart

import "github.com/fitgear/storefront-backend/pkg/db/models"

// ComputeTotal sums price * quantity across the cart in integer cents. The
// total is always recomputed server-side from stored prices; client-supplied
// amounts are never trusted. Entries whose item has vanished contribute
// nothing.
func ComputeTotal(entries []models.CartItem) int {
	total := 0
	for _, entry := range entries {
		if entry.Item == nil {
			continue
		}
		total += entry.Item.PriceCents * entry.Quantity
	}
	return total
}
