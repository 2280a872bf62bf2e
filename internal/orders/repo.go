package orders

import (
	"context"
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	"gorm.io/gorm"
)

// Repository handles work order and reservation persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to work order operations.
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

// List returns active work orders, newest first, optionally narrowed to a
// date window on the filter's column. The end bound is widened to the start
// of the following day so a date-only end captures the whole day.
func (r *Repository) List(ctx context.Context, filter *ListFilter) ([]models.WorkOrder, error) {
	query := r.db.WithContext(ctx).
		Where("deleted = ?", enums.DeletedNo).
		Order("date_created DESC, id DESC")

	if filter != nil {
		column := filter.Field.Column()
		if filter.Start != nil {
			query = query.Where(column+" >= ?", *filter.Start)
		}
		if filter.End != nil {
			query = query.Where(column+" < ?", filter.End.AddDate(0, 0, 1))
		}
	}

	var records []models.WorkOrder
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads an active work order.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.WorkOrder, error) {
	var record models.WorkOrder
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create persists a new work order row.
func (r *Repository) Create(ctx context.Context, record *models.WorkOrder) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update applies the provided column changes to an active work order.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.WorkOrder{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an active work order as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.WorkOrder{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}

// ListReservations returns every active reservation joined with the catalog,
// optionally narrowed to one order.
func (r *Repository) ListReservations(ctx context.Context, orderID *int64) ([]ReservationDTO, error) {
	query := r.db.WithContext(ctx).
		Table("order_reservations").
		Select("order_reservations.sku AS sku, order_reservations.order_id AS order_id, " +
			"order_reservations.quantity AS quantity, inventory_items.name AS item_name, " +
			"inventory_items.description AS description, order_reservations.date_added AS date_added, " +
			"order_reservations.date_used AS date_used").
		Joins("JOIN inventory_items ON inventory_items.sku = order_reservations.sku").
		Where("order_reservations.deleted = ?", enums.DeletedNo).
		Order("order_reservations.order_id ASC, order_reservations.sku ASC")
	if orderID != nil {
		query = query.Where("order_reservations.order_id = ?", *orderID)
	}

	var rows []ReservationDTO
	if err := query.Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ActiveReservations returns the raw active reservation rows of an order.
func (r *Repository) ActiveReservations(ctx context.Context, orderID int64) ([]models.OrderReservation, error) {
	var records []models.OrderReservation
	if err := r.db.WithContext(ctx).
		Where("order_id = ? AND deleted = ?", orderID, enums.DeletedNo).
		Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindActiveReservation loads one active reservation by its composite key.
func (r *Repository) FindActiveReservation(ctx context.Context, orderID int64, sku string) (*models.OrderReservation, error) {
	var record models.OrderReservation
	if err := r.db.WithContext(ctx).
		Where("sku = ? AND order_id = ? AND deleted = ?", sku, orderID, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// MarkReservationUsed stamps DateUsed on an active reservation.
func (r *Repository) MarkReservationUsed(ctx context.Context, orderID int64, sku string, usedAt time.Time) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.OrderReservation{}).
		Where("sku = ? AND order_id = ? AND deleted = ?", sku, orderID, enums.DeletedNo).
		Update("date_used", usedAt)
	return res.RowsAffected, res.Error
}

// SoftDeleteReservations cascades a work order delete onto its reservations.
// Quantities stay recorded on the flagged rows; a later reactivation through
// the ledger overwrites them.
func (r *Repository) SoftDeleteReservations(ctx context.Context, orderID int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.OrderReservation{}).
		Where("order_id = ? AND deleted = ?", orderID, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}
