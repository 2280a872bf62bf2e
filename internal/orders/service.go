package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fieldopshq/fieldops-backend/internal/ledger"
	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes work order and reservation operations.
type Service interface {
	List(ctx context.Context, filter *ListFilter) ([]OrderDTO, error)
	GetByID(ctx context.Context, id int64) (*OrderDTO, error)
	Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error)
	Update(ctx context.Context, id int64, input UpdateOrderInput) (*OrderDTO, error)
	Complete(ctx context.Context, id int64) (*CompleteResultDTO, error)
	Delete(ctx context.Context, id int64) error

	ListReservations(ctx context.Context) ([]ReservationDTO, error)
	ListOrderReservations(ctx context.Context, orderID int64) ([]ReservationDTO, error)
	AddItem(ctx context.Context, input AddItemInput) (*AddItemResultDTO, error)
	AdjustItem(ctx context.Context, orderID int64, sku string, input AdjustItemInput) error
	MarkItemUsed(ctx context.Context, orderID int64, sku string) error
	RemoveItem(ctx context.Context, orderID int64, sku string) (int, error)
	RemoveAllItems(ctx context.Context, orderID int64) (int, error)
}

type service struct {
	tx   txRunner
	repo *Repository
	now  func() time.Time
}

// NewService builds a work order service.
func NewService(tx txRunner, repo *Repository) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{tx: tx, repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) List(ctx context.Context, filter *ListFilter) ([]OrderDTO, error) {
	if filter != nil && !filter.Field.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "filterBy must be created, assigned or completed")
	}
	records, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	dtos := make([]OrderDTO, len(records))
	for i := range records {
		dtos[i] = *FromModel(&records[i])
	}
	return dtos, nil
}

func (s *service) GetByID(ctx context.Context, id int64) (*OrderDTO, error) {
	record, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(record), nil
}

func (s *service) Create(ctx context.Context, input CreateOrderInput) (*OrderDTO, error) {
	if input.CustomerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customerId is required")
	}
	if input.SalesRepID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "salesRepId is required")
	}

	now := s.now()
	record := &models.WorkOrder{
		CustomerID:   input.CustomerID,
		SalesRepID:   input.SalesRepID,
		TechnicianID: input.TechnicianID,
		DateCreated:  now,
		LastModified: now,
		Deleted:      enums.DeletedNo,
	}
	if input.TechnicianID != nil {
		record.DateAssigned = &now
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
	}
	return FromModel(record), nil
}

func (s *service) Update(ctx context.Context, id int64, input UpdateOrderInput) (*OrderDTO, error) {
	current, err := s.loadOrder(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.now()
	updates := map[string]any{"last_modified": now}
	if input.CustomerID != nil {
		updates["customer_id"] = *input.CustomerID
	}
	if input.SalesRepID != nil {
		updates["sales_rep_id"] = *input.SalesRepID
	}
	if input.TechnicianID != nil {
		updates["technician_id"] = *input.TechnicianID
		// a new or changed technician gets today's assignment date
		if current.TechnicianID == nil || *current.TechnicianID != *input.TechnicianID {
			updates["date_assigned"] = now
		}
	}

	rows, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order")
	}
	if rows == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
	}
	return s.GetByID(ctx, id)
}

// Complete closes the order: unused reservations flow back to the pool and the
// completion timestamps are stamped, all in one transaction.
func (s *service) Complete(ctx context.Context, id int64) (*CompleteResultDTO, error) {
	var result *CompleteResultDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, id); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		returned, err := ledger.ReturnUnusedReservations(ctx, tx, id)
		if err != nil {
			return err
		}

		now := s.now()
		rows, err := repo.Update(ctx, id, map[string]any{
			"date_completed": now,
			"last_modified":  now,
		})
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "complete order")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}

		result = &CompleteResultDTO{OrderID: id, ItemsReturned: returned, DateCompleted: now}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// Delete soft-deletes the order and cascades the flag onto its reservations.
// Reserved stock stays allocated to the flagged rows.
func (s *service) Delete(ctx context.Context, id int64) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.SoftDelete(ctx, id)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		if _, err := repo.SoftDeleteReservations(ctx, id); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete order items")
		}
		return nil
	})
}

func (s *service) ListReservations(ctx context.Context) ([]ReservationDTO, error) {
	rows, err := s.repo.ListReservations(ctx, nil)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	return rows, nil
}

func (s *service) ListOrderReservations(ctx context.Context, orderID int64) ([]ReservationDTO, error) {
	if _, err := s.loadOrder(ctx, orderID); err != nil {
		return nil, err
	}
	rows, err := s.repo.ListReservations(ctx, &orderID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
	}
	return rows, nil
}

func (s *service) AddItem(ctx context.Context, input AddItemInput) (*AddItemResultDTO, error) {
	input.SKU = strings.TrimSpace(input.SKU)
	if input.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "skuNumber is required")
	}
	if input.OrderID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "orderId is required")
	}

	var result *AddItemResultDTO
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if _, err := repo.FindByID(ctx, input.OrderID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
		}

		res, err := ledger.Assign(ctx, tx, ledger.AssignRequest{
			Kind:    ledger.KindOrder,
			SKU:     input.SKU,
			OwnerID: input.OrderID,
			Qty:     input.Qty,
		})
		if err != nil {
			return err
		}

		if err := s.touchOrder(ctx, repo, input.OrderID); err != nil {
			return err
		}
		result = &AddItemResultDTO{Outcome: res.Outcome, NewTotal: res.NewTotal}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) AdjustItem(ctx context.Context, orderID int64, sku string, input AdjustItemInput) error {
	sku = strings.TrimSpace(sku)
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if input.NewSKU != nil && *input.NewSKU != sku {
			_, err := repo.FindActiveReservation(ctx, orderID, *input.NewSKU)
			if err == nil {
				return pkgerrors.New(pkgerrors.CodeConflict, "order already contains the target item")
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check target item")
			}
		}

		if err := ledger.Adjust(ctx, tx, ledger.AdjustRequest{
			Kind:    ledger.KindOrder,
			SKU:     sku,
			OwnerID: orderID,
			NewQty:  input.Qty,
			NewSKU:  input.NewSKU,
		}); err != nil {
			return err
		}
		return s.touchOrder(ctx, repo, orderID)
	})
}

func (s *service) MarkItemUsed(ctx context.Context, orderID int64, sku string) error {
	return s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		rows, err := repo.MarkReservationUsed(ctx, orderID, strings.TrimSpace(sku), s.now())
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark item used")
		}
		if rows == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "order item not found")
		}
		return s.touchOrder(ctx, repo, orderID)
	})
}

// RemoveItem releases one reservation back to the pool and reports the
// returned quantity.
func (s *service) RemoveItem(ctx context.Context, orderID int64, sku string) (int, error) {
	var returned int
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		res, err := ledger.Release(ctx, tx, ledger.ReleaseRequest{
			Kind:    ledger.KindOrder,
			SKU:     strings.TrimSpace(sku),
			OwnerID: orderID,
		})
		if err != nil {
			return err
		}
		returned = res.ReturnedQty
		return s.touchOrder(ctx, repo, orderID)
	})
	if err != nil {
		return 0, err
	}
	return returned, nil
}

// RemoveAllItems releases every active reservation of the order and reports
// how many were released.
func (s *service) RemoveAllItems(ctx context.Context, orderID int64) (int, error) {
	var count int
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		records, err := repo.ActiveReservations(ctx, orderID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list order items")
		}
		if len(records) == 0 {
			return pkgerrors.New(pkgerrors.CodeNotFound, "no order items found")
		}

		for _, record := range records {
			if _, err := ledger.Release(ctx, tx, ledger.ReleaseRequest{
				Kind:    ledger.KindOrder,
				SKU:     record.SKU,
				OwnerID: orderID,
			}); err != nil {
				return err
			}
		}
		count = len(records)
		return s.touchOrder(ctx, repo, orderID)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *service) loadOrder(ctx context.Context, id int64) (*models.WorkOrder, error) {
	record, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return record, nil
}

func (s *service) touchOrder(ctx context.Context, repo *Repository, orderID int64) error {
	if _, err := repo.Update(ctx, orderID, map[string]any{"last_modified": s.now()}); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "touch order")
	}
	return nil
}
