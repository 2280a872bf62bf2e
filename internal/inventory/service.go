package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldopshq/fieldops-backend/pkg/db"
	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type itemRepository interface {
	List(ctx context.Context, search string) ([]models.InventoryItem, error)
	FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error)
	Create(ctx context.Context, item *models.InventoryItem) error
	Update(ctx context.Context, sku string, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, sku string) (int64, error)
}

// Service exposes pool item operations.
type Service interface {
	List(ctx context.Context, search string) ([]ItemDTO, error)
	GetBySKU(ctx context.Context, sku string) (*ItemDTO, error)
	Create(ctx context.Context, input CreateItemDTO) (*ItemDTO, error)
	Update(ctx context.Context, sku string, input UpdateItemInput) (*ItemDTO, error)
	Delete(ctx context.Context, sku string) error
}

// UpdateItemInput captures the allowed item fields for mutation.
type UpdateItemInput struct {
	Name              *string
	Description       *string
	QuantityAvailable *int
}

type service struct {
	repo itemRepository
}

// NewService builds an inventory service with the provided repository.
func NewService(repo itemRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("inventory repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]ItemDTO, error) {
	items, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory")
	}
	dtos := make([]ItemDTO, len(items))
	for i := range items {
		dtos[i] = *FromModel(&items[i])
	}
	return dtos, nil
}

func (s *service) GetBySKU(ctx context.Context, sku string) (*ItemDTO, error) {
	item, err := s.repo.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load inventory item")
	}
	return FromModel(item), nil
}

func (s *service) Create(ctx context.Context, input CreateItemDTO) (*ItemDTO, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "skuNumber is required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if input.QuantityAvailable < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantityAvailable cannot be negative")
	}

	item := input.ToModel()
	if err := s.repo.Create(ctx, item); err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create inventory item")
	}
	return FromModel(item), nil
}

func (s *service) Update(ctx context.Context, sku string, input UpdateItemInput) (*ItemDTO, error) {
	updates := map[string]any{}
	if input.Name != nil {
		if strings.TrimSpace(*input.Name) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = *input.Name
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.QuantityAvailable != nil {
		if *input.QuantityAvailable < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "quantityAvailable cannot be negative")
		}
		updates["quantity_available"] = *input.QuantityAvailable
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	rows, err := s.repo.Update(ctx, sku, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update inventory item")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return s.GetBySKU(ctx, sku)
}

func (s *service) Delete(ctx context.Context, sku string) error {
	rows, err := s.repo.SoftDelete(ctx, sku)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete inventory item")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	return nil
}
