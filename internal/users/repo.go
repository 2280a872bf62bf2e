package users

import (
	"context"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles user account persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to user operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns active accounts ordered by username.
func (r *Repository) List(ctx context.Context) ([]models.User, error) {
	var records []models.User
	if err := r.db.WithContext(ctx).
		Where("deleted = ?", enums.DeletedNo).
		Order("username ASC").
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads an active account.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var record models.User
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// FindByUsername loads an active account by its unique username.
func (r *Repository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var record models.User
	if err := r.db.WithContext(ctx).
		Where("username = ? AND deleted = ?", username, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create persists a new account row.
func (r *Repository) Create(ctx context.Context, record *models.User) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update applies the provided column changes to an active account.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an active account as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.User{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}
