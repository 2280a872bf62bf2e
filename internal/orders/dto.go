package orders

import (
	"time"

	"github.com/fieldopshq/fieldops-backend/internal/ledger"
	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
)

// OrderDTO exposes a work order in API responses.
type OrderDTO struct {
	ID            int64      `json:"orderId"`
	CustomerID    int64      `json:"customerId"`
	SalesRepID    int64      `json:"salesRepId"`
	TechnicianID  *int64     `json:"techId,omitempty"`
	DateCreated   time.Time  `json:"dateCreated"`
	DateAssigned  *time.Time `json:"dateAssigned,omitempty"`
	DateCompleted *time.Time `json:"dateCompleted,omitempty"`
	LastModified  time.Time  `json:"lastModified"`
}

// CreateOrderInput captures creation-time data for a new work order.
type CreateOrderInput struct {
	CustomerID   int64
	SalesRepID   int64
	TechnicianID *int64
}

// UpdateOrderInput captures the allowed work order fields for mutation.
type UpdateOrderInput struct {
	CustomerID   *int64
	SalesRepID   *int64
	TechnicianID *int64
}

// DateField selects which timestamp a list filter applies to.
type DateField string

const (
	DateFieldCreated   DateField = "created"
	DateFieldAssigned  DateField = "assigned"
	DateFieldCompleted DateField = "completed"
)

// IsValid reports whether the field names a filterable column.
func (f DateField) IsValid() bool {
	switch f {
	case DateFieldCreated, DateFieldAssigned, DateFieldCompleted:
		return true
	}
	return false
}

// Column returns the DB column the field maps to.
func (f DateField) Column() string {
	switch f {
	case DateFieldAssigned:
		return "date_assigned"
	case DateFieldCompleted:
		return "date_completed"
	default:
		return "date_created"
	}
}

// ListFilter narrows a work order listing to a date window. End is inclusive
// at day granularity: rows up to the end of that day match.
type ListFilter struct {
	Field DateField
	Start *time.Time
	End   *time.Time
}

// ReservationDTO joins a reservation with its item metadata.
type ReservationDTO struct {
	SKU         string     `json:"skuNumber"`
	OrderID     int64      `json:"orderId"`
	Quantity    int        `json:"qty"`
	ItemName    string     `json:"name"`
	Description string     `json:"description"`
	DateAdded   time.Time  `json:"dateAdded"`
	DateUsed    *time.Time `json:"dateUsed,omitempty"`
}

// AddItemInput reserves stock for an order.
type AddItemInput struct {
	SKU     string
	OrderID int64
	Qty     int
}

// AddItemResultDTO reports the branch taken and the reservation's new total.
type AddItemResultDTO struct {
	Outcome  ledger.Outcome `json:"outcome"`
	NewTotal int            `json:"newTotal"`
}

// AdjustItemInput captures a partial rewrite of a reservation.
type AdjustItemInput struct {
	Qty    *int
	NewSKU *string
}

// CompleteResultDTO reports the outcome of closing an order.
type CompleteResultDTO struct {
	OrderID       int64     `json:"orderId"`
	ItemsReturned int       `json:"itemsReturned"`
	DateCompleted time.Time `json:"dateCompleted"`
}

// FromModel maps a persisted work order into a DTO.
func FromModel(m *models.WorkOrder) *OrderDTO {
	if m == nil {
		return nil
	}
	return &OrderDTO{
		ID:            m.ID,
		CustomerID:    m.CustomerID,
		SalesRepID:    m.SalesRepID,
		TechnicianID:  m.TechnicianID,
		DateCreated:   m.DateCreated,
		DateAssigned:  m.DateAssigned,
		DateCompleted: m.DateCompleted,
		LastModified:  m.LastModified,
	}
}

func reservationFromModel(m *models.OrderReservation) *ReservationDTO {
	if m == nil {
		return nil
	}
	return &ReservationDTO{
		SKU:       m.SKU,
		OrderID:   m.OrderID,
		Quantity:  m.Quantity,
		DateAdded: m.DateAdded,
		DateUsed:  m.DateUsed,
	}
}
