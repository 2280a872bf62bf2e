package customers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type customerRepository interface {
	List(ctx context.Context, search string) ([]models.Customer, error)
	FindByID(ctx context.Context, id int64) (*models.Customer, error)
	Create(ctx context.Context, record *models.Customer) error
	Update(ctx context.Context, id int64, updates map[string]any) (int64, error)
	SoftDelete(ctx context.Context, id int64) (int64, error)
}

// Service exposes customer operations.
type Service interface {
	List(ctx context.Context, search string) ([]CustomerDTO, error)
	GetByID(ctx context.Context, id int64) (*CustomerDTO, error)
	Create(ctx context.Context, input CreateCustomerDTO) (*CustomerDTO, error)
	Update(ctx context.Context, id int64, input UpdateCustomerInput) (*CustomerDTO, error)
	Delete(ctx context.Context, id int64) error
}

// UpdateCustomerInput captures the allowed customer fields for mutation.
type UpdateCustomerInput struct {
	FirstName *string
	LastName  *string
	Address   *string
	Phone     *string
}

type service struct {
	repo customerRepository
}

// NewService builds a customer service with the provided repository.
func NewService(repo customerRepository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customer repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, search string) ([]CustomerDTO, error) {
	records, err := s.repo.List(ctx, strings.TrimSpace(search))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list customers")
	}
	dtos := make([]CustomerDTO, len(records))
	for i := range records {
		dtos[i] = *FromModel(&records[i])
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*CustomerDTO, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerDTO) (*CustomerDTO, error) {
	if strings.TrimSpace(input.FirstName) == "" || strings.TrimSpace(input.LastName) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "first and last name are required")
	}

	record := input.ToModel()
	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create customer")
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateCustomerInput) (*CustomerDTO, error) {
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
	if input.Address != nil {
		updates["address"] = *input.Address
	}
	if input.Phone != nil {
		updates["phone"] = *input.Phone
	}
	if len(updates) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update customer")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return s.GetByID(ctx, id)
}

func (s *service) Delete(ctx context.Context, id int64) error {
	rows, err := s.repo.SoftDelete(ctx, id)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete customer")
	}
	if rows == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
	}
	return nil
}
