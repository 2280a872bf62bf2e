package customers

import (
	"context"
	"errors"
	"testing"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubCustomerRepo struct {
	records []models.Customer
	record  *models.Customer
	rows    int64
	err     error
	updates map[string]any
}

func (s *stubCustomerRepo) List(ctx context.Context, search string) ([]models.Customer, error) {
	return s.records, s.err
}

func (s *stubCustomerRepo) FindByID(ctx context.Context, id int64) (*models.Customer, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubCustomerRepo) Create(ctx context.Context, record *models.Customer) error {
	record.ID = 1
	return s.err
}

func (s *stubCustomerRepo) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	s.updates = updates
	return s.rows, s.err
}

func (s *stubCustomerRepo) SoftDelete(ctx context.Context, id int64) (int64, error) {
	return s.rows, s.err
}

func TestNewServiceRequiresRepo(t *testing.T) {
	if _, err := NewService(nil); err == nil {
		t.Fatal("expected error creating service without repo")
	}
}

func TestServiceCreateRequiresNames(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateCustomerDTO{FirstName: "Ada"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateCustomerDTO{FirstName: "Ada", LastName: "Byron", Phone: "555-0100"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID != 1 || dto.FirstName != "Ada" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestServiceGetByIDNotFound(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.GetByID(context.Background(), 99)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestServiceUpdateMapsColumns(t *testing.T) {
	phone := "555-0199"
	repo := &stubCustomerRepo{rows: 1, record: &models.Customer{ID: 1, FirstName: "Ada", LastName: "Byron", Phone: phone}}
	svc, err := NewService(repo)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Update(context.Background(), 1, UpdateCustomerInput{Phone: &phone})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if dto.Phone != phone {
		t.Fatalf("unexpected dto: %+v", dto)
	}
	if repo.updates["phone"] != phone {
		t.Fatalf("unexpected updates map: %+v", repo.updates)
	}
}

func TestServiceDeleteDependencyError(t *testing.T) {
	svc, err := NewService(&stubCustomerRepo{err: errors.New("boom")})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), 1)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeDependency {
		t.Fatalf("expected dependency error, got %v", gotErr)
	}
}
