package technicians

import (
	"context"
	"testing"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type stubTechRepo struct {
	records []models.Technician
	record  *models.Technician
	rows    int64
	err     error
}

func (s *stubTechRepo) List(ctx context.Context, search string) ([]models.Technician, error) {
	return s.records, s.err
}

func (s *stubTechRepo) FindByID(ctx context.Context, id int64) (*models.Technician, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.record == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.record, nil
}

func (s *stubTechRepo) Create(ctx context.Context, record *models.Technician) error {
	record.ID = 1
	return s.err
}

func (s *stubTechRepo) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	return s.rows, s.err
}

func (s *stubTechRepo) SoftDelete(ctx context.Context, id int64) (int64, error) {
	return s.rows, s.err
}

func TestServiceCreateRequiresNames(t *testing.T) {
	svc, err := NewService(&stubTechRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	_, gotErr := svc.Create(context.Background(), CreateTechnicianDTO{LastName: "Ngo"})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", gotErr)
	}
}

func TestServiceCreateSuccess(t *testing.T) {
	svc, err := NewService(&stubTechRepo{})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	dto, err := svc.Create(context.Background(), CreateTechnicianDTO{FirstName: "Sam", LastName: "Ngo"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if dto.ID != 1 || dto.LastName != "Ngo" {
		t.Fatalf("unexpected dto: %+v", dto)
	}
}

func TestServiceUpdateNotFound(t *testing.T) {
	svc, err := NewService(&stubTechRepo{rows: 0})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	name := "Sam"
	_, gotErr := svc.Update(context.Background(), 99, UpdateTechnicianInput{FirstName: &name})
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}

func TestServiceDeleteNotFound(t *testing.T) {
	svc, err := NewService(&stubTechRepo{rows: 0})
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	gotErr := svc.Delete(context.Background(), 99)
	if typed := pkgerrors.As(gotErr); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", gotErr)
	}
}
