package customers

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
)

// CustomerDTO exposes customer data in API responses.
type CustomerDTO struct {
	ID        int64     `json:"customerId"`
	FirstName string    `json:"firstName"`
	LastName  string    `json:"lastName"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreateCustomerDTO holds creation-time data for a new customer.
type CreateCustomerDTO struct {
	FirstName string
	LastName  string
	Address   string
	Phone     string
}

// ToModel maps creation input onto a fresh row.
func (d CreateCustomerDTO) ToModel() *models.Customer {
	return &models.Customer{
		FirstName: d.FirstName,
		LastName:  d.LastName,
		Address:   d.Address,
		Phone:     d.Phone,
		Deleted:   enums.DeletedNo,
	}
}

// FromModel maps the persisted customer into a DTO.
func FromModel(m *models.Customer) *CustomerDTO {
	if m == nil {
		return nil
	}
	return &CustomerDTO{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Address:   m.Address,
		Phone:     m.Phone,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}
