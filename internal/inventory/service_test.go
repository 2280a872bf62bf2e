package inventory

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubItemRepo struct {
	items   []models.InventoryItem
	item    *models.InventoryItem
	rows    int64
	err     error
	created *models.InventoryItem
	updates map[string]any
}

func (s *stubItemRepo) List(ctx context.Context, search string) ([]models.InventoryItem, error) {
	return s.items, s.err
}

func (s *stubItemRepo) FindBySKU(ctx context.Context, sku string) (*models.InventoryItem, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.item == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.item, nil
}

func (s *stubItemRepo) Create(ctx context.Context, item *models.InventoryItem) error {
	s.created = item
	return s.err
}

func (s *stubItemRepo) Update(ctx context.Context, sku string, updates map[string]any) (int64, error) {
	s.updates = updates
	return s.rows, s.err
}

func (s *stubItemRepo) SoftDelete(ctx context.Context, sku string) (int64, error) {
	return s.rows, s.err
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateValidatesInput(t *testing.T) {
	svc, err := NewService(&stubItemRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	cases := []CreateItemDTO{
		{Name: "Widget"},
		{SKU: "SKU-1"},
		{SKU: "SKU-1", Name: "Widget", QuantityAvailable: -1},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	repo := &stubItemRepo{}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateItemDTO{SKU: "SKU-1", Name: "Widget", QuantityAvailable: 5})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.SKU != "SKU-1" || dto.QuantityAvailable != 5 {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if repo.created == nil || repo.created.Deleted.Bool() {
		t.Fatalf("expected active row created, got %+v", repo.created)
	}
}

func TestServiceGetBySKUNotFound(t *testing.T) {
	svc, err := NewService(&stubItemRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetBySKU(context.Background(), "MISSING")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}

func TestServiceListDependencyError(t *testing.T) {
	svc, err := NewService(&stubItemRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.List(context.Background(), "")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}

func TestServiceUpdateMapsColumns(t *testing.T) {
	name := "Renamed"
	qty := 7
	repo := &stubItemRepo{rows: 1, item: &models.InventoryItem{SKU: "SKU-1", Name: name, QuantityAvailable: qty}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Update(context.Background(), "SKU-1", UpdateItemInput{Name: &name, QuantityAvailable: &qty})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Name != name || dto.QuantityAvailable != qty {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if repo.updates["name"] != name || repo.updates["quantity_available"] != qty {
		t.Fatalf("unexpected updates map: %+v", repo.updates)
	}
}

func TestServiceUpdateNothingToDo(t *testing.T) {
	svc, err := NewService(&stubItemRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Update(context.Background(), "SKU-1", UpdateItemInput{})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, err := NewService(&stubItemRepo{rows: 0})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), "MISSING")
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found code, got %v", gotErr)
	}
}
