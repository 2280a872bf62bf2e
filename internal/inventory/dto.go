package inventory

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// ItemDTO exposes pool items in API responses.
type ItemDTO struct {
	SKU               string    `json:"skuNumber"`
	Name              string    `json:"name"`
	Description       string    `json:"description"`
	QuantityAvailable int       `json:"quantityAvailable"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// CreateItemDTO holds creation-time data for a new pool item.
type CreateItemDTO struct {
	SKU               string
	Name              string
	Description       string
	QuantityAvailable int
}

// ToModel maps creation input onto a fresh row.
func (d CreateItemDTO) ToModel() *models.InventoryItem {
	return &models.InventoryItem{
		SKU:               d.SKU,
		Name:              d.Name,
		Description:       d.Description,
		QuantityAvailable: d.QuantityAvailable,
		Deleted:           enums.DeletedNo,
	}
}

// FromModel maps the persisted item into a DTO.
func FromModel(m *models.InventoryItem) *ItemDTO {
	if m == nil {
		return nil
	}
	return &ItemDTO{
		SKU:               m.SKU,
		Name:              m.Name,
		Description:       m.Description,
		QuantityAvailable: m.QuantityAvailable,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}
