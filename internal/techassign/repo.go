package techassign

import (
	"context"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles assignment reads; quantity mutations go through the ledger.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to assignment reads.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns active assignments joined with the item catalog.
func (r *Repository) List(ctx context.Context) ([]AssignmentDTO, error) {
	var rows []AssignmentDTO
	err := r.db.WithContext(ctx).
		Table("tech_assignments").
		Select("tech_assignments.sku AS sku, tech_assignments.technician_id AS technician_id, " +
			"tech_assignments.quantity AS quantity, inventory_items.name AS item_name, " +
			"inventory_items.description AS description, tech_assignments.updated_at AS updated_at").
		Joins("JOIN inventory_items ON inventory_items.sku = tech_assignments.sku").
		Where("tech_assignments.deleted = ?", enums.DeletedNo).
		Order("tech_assignments.sku ASC, tech_assignments.technician_id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListByTechnician returns a single technician's active assignments.
func (r *Repository) ListByTechnician(ctx context.Context, techID int64) ([]AssignmentDTO, error) {
	var rows []AssignmentDTO
	err := r.db.WithContext(ctx).
		Table("tech_assignments").
		Select("tech_assignments.sku AS sku, tech_assignments.technician_id AS technician_id, " +
			"tech_assignments.quantity AS quantity, inventory_items.name AS item_name, " +
			"inventory_items.description AS description, tech_assignments.updated_at AS updated_at").
		Joins("JOIN inventory_items ON inventory_items.sku = tech_assignments.sku").
		Where("tech_assignments.deleted = ? AND tech_assignments.technician_id = ?", enums.DeletedNo, techID).
		Order("tech_assignments.sku ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}
