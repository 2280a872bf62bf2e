package inventory

import (
	"context"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles pool item persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to inventory operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the provided transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	if tx == nil {
		return r
	}
	return &Repository{db: tx}
}

// List returns active items, optionally filtered by a partial match on SKU or name.
func (r *Repository) List(ctx context.Context, search string) ([]models.InventoryItem, error) {
	query := r.db.WithContext(ctx).
		Where("deleted = ?", enums.DeletedNo).
		Order("sku ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("sku LIKE ? OR name LIKE ?", like, like)
	}

	var items []models.InventoryItem
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindBySKU loads an active item by its SKU.
func (r *Repository) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	if err := r.db.WithContext(ctx).
		Where("sku = ? AND deleted = ?", sku, enums.DeletedNo).
		First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// Create persists a new item row.
func (r *Repository) Create(ctx context.Context, item *models.InventoryItem) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update applies the provided column changes to an active item. Returns the
// number of rows touched so callers can distinguish missing items.
func (r *Repository) Update(ctx context.Context, sku string, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("sku = ? AND deleted = ?", sku, enums.DeletedNo).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an active item as deleted.
func (r *Repository) SoftDelete(ctx context.Context, sku string) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("sku = ? AND deleted = ?", sku, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}
