package models

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// InventoryItem is the central stock pool, keyed by SKU. QuantityAvailable is
// only mutated by direct edits and by ledger transfers; the DB CHECK keeps it
// non-negative.
type InventoryItem struct {
	SKU               string            `gorm:"column:sku;primaryKey"`
	Name              string            `gorm:"column:name;not null"`
	Description       string            `gorm:"column:description;not null;default:''"`
	QuantityAvailable int               `gorm:"column:quantity_available;not null;default:0"`
	Deleted           enums.DeletedFlag `gorm:"column:deleted;type:varchar(3);not null;default:'No'"`
	CreatedAt         time.Time         `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time         `gorm:"column:updated_at;autoUpdateTime"`
}
