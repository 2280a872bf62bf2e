// Package technicians manages the field staff directory. Quantity handling for
// a technician's truck stock lives in the ledger, not here.
package technicians

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

// TechnicianDTO exposes technician data in API responses.
type TechnicianDTO struct {
	ID        int64     `json:"techId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	UserID    *int64    `json:"userId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateTechnicianDTO holds creation-time data for a new technician.
type CreateTechnicianDTO struct {
	FirstName string
	LastName  string
	UserID    *int64
}

// UpdateTechnicianInput captures the allowed technician fields for mutation.
type UpdateTechnicianInput struct {
	FirstName *string
	LastName  *string
	UserID    *int64
}

// FromModel maps the persisted technician into a DTO.
func FromModel(m *models.Technician) *TechnicianDTO {
	if m == nil {
		return nil
	}
	return &TechnicianDTO{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		UserID:    m.UserID,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

// Repository handles technician persistence.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to technician operations.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// List returns active technicians, optionally filtered by a partial name match.
func (r *Repository) List(ctx context.Context, search string) ([]models.Technician, error) {
	query := r.db.WithContext(ctx).
		Where("deleted = ?", enums.DeletedNo).
		Order("last_name ASC, first_name ASC")
	if search != "" {
		like := "%" + search + "%"
		query = query.Where("first_name LIKE ? OR last_name LIKE ?", like, like)
	}

	var records []models.Technician
	if err := query.Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}

// FindByID loads an active technician.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.Technician, error) {
	var record models.Technician
	if err := r.db.WithContext(ctx).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		First(&record).Error; err != nil {
		return nil, err
	}
	return &record, nil
}

// Create persists a new technician row.
func (r *Repository) Create(ctx context.Context, record *models.Technician) error {
	return r.db.WithContext(ctx).Create(record).Error
}

// Update applies the provided column changes to an active technician.
func (r *Repository) Update(ctx context.Context, id int64, updates map[string]any) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Technician{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Updates(updates)
	return res.RowsAffected, res.Error
}

// SoftDelete flags an active technician as deleted.
func (r *Repository) SoftDelete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Model(&models.Technician{}).
		Where("id = ? AND deleted = ?", id, enums.DeletedNo).
		Update("deleted", enums.DeletedYes)
	return res.RowsAffected, res.Error
}

type technicianRepository interface {
	List(ctx context.Context, search string) ([]models.Technician, error)
	FindByID(ctx context.Context, id int64) (*models.Technician, error)
	Create(ctx context.Context, record *models.Technician) error
	Update(ctx context.Context, id int64, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
}

// Service exposes technician operations.
type Service interface {
	List(ctx context.Context, search string) ([]TechnicianDTO, error)
	GetByID(ctx context.Context, id int64) (*TechnicianDTO, error)
	Create(ctx context.Context, input CreateTechnicianDTO) (*TechnicianDTO, error)
	Update(ctx context.Context, id int64, input UpdateTechnicianInput) (*TechnicianDTO, error)
	Delete(ctx context.Context, id int64) error
}

type service struct {
	repo technicianRepository
}

// NewService builds a technician service with the provided repository.
func NewService(repo technicianRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("technician repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]TechnicianDTO, error) {
	records, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list technicians")
	}
	dtos := make([]TechnicianDTO, len(records))
	for i := range records {
		dtos[i] = *FromModel(&records[i])
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*TechnicianDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "technician not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load technician")
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, input CreateTechnicianDTO) (*TechnicianDTO, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name are required")
	}

	record := &models.Technician{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		UserID:    input.UserID,
		Deleted:   enums.DeletedNo,
	}
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create technician")
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateTechnicianInput) (*TechnicianDTO, error) {
	updates := map[string]any{}
	if input.FirstName != nil {
		if strings.TrimSpace(*input.FirstName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "firstName cannot be empty")
		}
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		if strings.TrimSpace(*input.LastName) == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "lastName cannot be empty")
		}
		updates["last_name"] = *input.LastName
	}
	if input.UserID != nil {
		updates["user_id"] = *input.UserID
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update technician")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "technician not found")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete technician")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "technician not found")
	}
	return nil
}
