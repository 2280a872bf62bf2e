package customers

import (
	"context"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles customer persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to customer operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns active customers, optionally filtered by a partial name match.
func (r *Repository) List(ctx context.Context, search string) ([]models.Customer, error) {
	query := r.db.WithContext(ctx).
		Where("deleted = ?", enums.DeletedNo).
		Order("last_name ASC, first_name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", like, like)
	}

	var records []models.Customer
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads an active customer.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	var record models.Customer
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create persists a new customer row.
func (r *Repository) Create(ctx context.Context, record *models.Customer) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update applies the provided column changes to an active customer.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an active customer as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Customer{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}
