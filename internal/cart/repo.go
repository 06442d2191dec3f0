package cart

import (
	"context"

	"github.com/fitgear/storefront-backend/pkg/db/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository exposes cart persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a cart repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repo bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// AddOne inserts a cart entry for (user, item) or bumps its quantity when
// one already exists. The unique index on the pair makes the upsert atomic.
func (r *Repository) AddOne(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	entry := &models.CartItem{
		ID:       uuid.New(),
		UserID:   userID,
		ItemID:   itemID,
		Quantity: 1,
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "item_id"}},
		DoUpdates: clause.Assignments(map[string]any{
			"quantity": gorm.Expr("quantity + 1"),
		}),
	}).Create(entry).Error
	if err != nil {
		return nil, err
	}
	return r.FindByUserAndItem(ctx, userID, itemID)
}

// FindByID loads a cart entry with its item preloaded.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.CartItem, error) {
	var entry models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		First(&entry, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// FindByUserAndItem loads the entry for a (user, item) pair.
func (r *Repository) FindByUserAndItem(ctx context.Context, userID, itemID uuid.UUID) (*models.CartItem, error) {
	var entry models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ? AND item_id = ?", userID, itemID).
		First(&entry).Error
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListByUser returns the user's cart with items preloaded, oldest first.
func (r *Repository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.CartItem, error) {
	var entries []models.CartItem
	err := r.db.WithContext(ctx).
		Preload("Item").
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// DeleteByID removes a single cart entry.
func (r *Repository) DeleteByID(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id = ?", id).Error
}

// DeleteByIDs removes a batch of cart entries.
func (r *Repository) DeleteByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Delete(&models.CartItem{}, "id IN ?", ids).Error
}
