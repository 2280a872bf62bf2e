package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// TechAssignment allocates stock from the pool to a technician. The
// (sku, technician_id) pair is unique including soft-deleted rows; releasing
// an assignment zeroes the quantity and flips the flag, and a later assign
// reactivates the same row.
type TechAssignment struct {
	SKU          string            `gorm:"column:sku;primaryKey"`
	TechnicianID int64             `gorm:"column:technician_id;primaryKey;autoIncrement:false"`
	Quantity     int               `gorm:"column:quantity;not null;default:0"`
	Deleted      enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt    time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
