package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// OrderReservation sets stock aside for a work order line item. DateUsed marks
// the quantity as consumed on site; unused reservations flow back to the pool
// when the order completes.
type OrderReservation struct {
	SKU       string            `gorm:"column:sku;primaryKey"`
	OrderID   int64             `gorm:"column:order_id;primaryKey;autoIncrement:false"`
	Quantity  int               `gorm:"column:quantity;not null;default:0"`
	DateAdded time.Time         `gorm:"column:date_added;not null"`
	DateUsed  *time.Time        `gorm:"column:date_used"`
	Deleted   enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
