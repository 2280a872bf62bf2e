// Package ledger moves quantities between the central inventory pool and its
// allocations (technician assignments and order reservations). Every function
// expects to run inside a transaction the caller owns; any returned error must
// roll that transaction back so pool and allocations never drift apart.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"gorm.io/gorm"
)

// Kind selects which allocation table a ledger operation targets.
type Kind string

const (
	KindTechnician Kind = "technician"
	KindOrder      Kind = "order"
)

// Outcome describes how an Assign landed on the allocation row.
type Outcome string

const (
	OutcomeCreated     Outcome = "created"
	OutcomeReactivated Outcome = "reactivated"
	OutcomeAdded       Outcome = "added"
)

// AssignRequest allocates Qty units of SKU to the owner (technician or order).
type AssignRequest struct {
	Kind    Kind
	SKU     string
	OwnerID int64
	Qty     int
}

// AssignResult reports the branch taken and the allocation's new total.
type AssignResult struct {
	Outcome  Outcome
	NewTotal int
}

// AdjustRequest rewrites an active allocation. NewQty sets the absolute
// quantity (the old SKU's pool absorbs the delta); NewOwnerID and NewSKU
// re-key the allocation.
type AdjustRequest struct {
	Kind       Kind
	SKU        string
	OwnerID    int64
	NewQty     *int
	NewOwnerID *int64
	NewSKU     *string
}

// ReleaseRequest returns an allocation's full quantity to the pool and
// soft-deletes the row.
type ReleaseRequest struct {
	Kind    Kind
	SKU     string
	OwnerID int64
}

// ReleaseResult reports how many units went back to the pool.
type ReleaseResult struct {
	ReturnedQty int
}

// Assign moves Qty units out of the pool into an allocation. A missing row is
// inserted, a soft-deleted row is reactivated with its quantity overwritten,
// and an active row has Qty added on top. The pool is always decremented by
// exactly Qty.
func Assign(ctx context.Context, tx *gorm.DB, req AssignRequest) (*AssignResult, error) {
	if err := validateKind(req.Kind); err != nil {
		return nil, err
	}
	if req.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if req.OwnerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, ownerLabel(req.Kind)+" id is required")
	}
	if req.Qty < 1 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}

	item, err := loadActiveItem(ctx, tx, req.SKU)
	if err != nil {
		return nil, err
	}
	if req.Qty > item.QuantityAvailable {
		return nil, pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("only %d units of %s available", item.QuantityAvailable, req.SKU)).
			WithDetails(map[string]any{"sku": req.SKU, "available": item.QuantityAvailable, "requested": req.Qty})
	}

	result := &AssignResult{}
	switch req.Kind {
	case KindTechnician:
		result, err = assignTechnician(ctx, tx, req)
	case KindOrder:
		result, err = assignOrder(ctx, tx, req)
	}
	if err != nil {
		return nil, err
	}

	if err := debitPool(ctx, tx, req.SKU, req.Qty); err != nil {
		return nil, err
	}
	return result, nil
}

func assignTechnician(ctx context.Context, tx *gorm.DB, req AssignRequest) (*AssignResult, error) {
	var existing models.TechAssignment
	err := tx.WithContext(ctx).
		Where("sku = ? AND technician_id = ?", req.SKU, req.OwnerID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.TechAssignment{
			SKU:          req.SKU,
			TechnicianID: req.OwnerID,
			Quantity:     req.Qty,
			Deleted:      enums.DeletedNo,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating tech assignment")
		}
		return &AssignResult{Outcome: OutcomeCreated, NewTotal: req.Qty}, nil

	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading tech assignment")

	case existing.Deleted.Bool():
		updates := map[string]any{"quantity": req.Qty, "deleted": enums.DeletedNo}
		if err := tx.WithContext(ctx).Model(&models.TechAssignment{}).
			Where("sku = ? AND technician_id = ?", req.SKU, req.OwnerID).
			Updates(updates).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reactivating tech assignment")
		}
		return &AssignResult{Outcome: OutcomeReactivated, NewTotal: req.Qty}, nil

	default:
		newTotal := existing.Quantity + req.Qty
		if err := tx.WithContext(ctx).Model(&models.TechAssignment{}).
			Where("sku = ? AND technician_id = ?", req.SKU, req.OwnerID).
			Update("quantity", newTotal).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing tech assignment")
		}
		return &AssignResult{Outcome: OutcomeAdded, NewTotal: newTotal}, nil
	}
}

func assignOrder(ctx context.Context, tx *gorm.DB, req AssignRequest) (*AssignResult, error) {
	var existing models.OrderReservation
	err := tx.WithContext(ctx).
		Where("sku = ? AND order_id = ?", req.SKU, req.OwnerID).
		First(&existing).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		record := models.OrderReservation{
			SKU:       req.SKU,
			OrderID:   req.OwnerID,
			Quantity:  req.Qty,
			DateAdded: time.Now().UTC(),
			Deleted:   enums.DeletedNo,
		}
		if err := tx.WithContext(ctx).Create(&record).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "creating order reservation")
		}
		return &AssignResult{Outcome: OutcomeCreated, NewTotal: req.Qty}, nil

	case err != nil:
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading order reservation")

	case existing.Deleted.Bool():
		updates := map[string]any{
			"quantity":   req.Qty,
			"deleted":    enums.DeletedNo,
			"date_added": time.Now().UTC(),
			"date_used":  nil,
		}
		if err := tx.WithContext(ctx).Model(&models.OrderReservation{}).
			Where("sku = ? AND order_id = ?", req.SKU, req.OwnerID).
			Updates(updates).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reactivating order reservation")
		}
		return &AssignResult{Outcome: OutcomeReactivated, NewTotal: req.Qty}, nil

	default:
		newTotal := existing.Quantity + req.Qty
		if err := tx.WithContext(ctx).Model(&models.OrderReservation{}).
			Where("sku = ? AND order_id = ?", req.SKU, req.OwnerID).
			Update("quantity", newTotal).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "incrementing order reservation")
		}
		return &AssignResult{Outcome: OutcomeAdded, NewTotal: newTotal}, nil
	}
}

// Adjust rewrites an active allocation in place. A quantity change moves only
// the delta through the pool; raising the quantity fails with
// INSUFFICIENT_STOCK when the pool cannot cover it.
func Adjust(ctx context.Context, tx *gorm.DB, req AdjustRequest) error {
	if err := validateKind(req.Kind); err != nil {
		return err
	}
	if req.SKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if req.OwnerID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, ownerLabel(req.Kind)+" id is required")
	}
	if req.NewQty == nil && req.NewOwnerID == nil && req.NewSKU == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "nothing to update")
	}
	if req.NewQty != nil && *req.NewQty < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "qty must be at least 1")
	}
	if req.NewSKU != nil && *req.NewSKU == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "new sku cannot be empty")
	}

	current, err := loadActiveAllocation(ctx, tx, req.Kind, req.SKU, req.OwnerID)
	if err != nil {
		return err
	}

	updates := map[string]any{}
	delta := 0
	if req.NewQty != nil {
		delta = *req.NewQty - current
		updates["quantity"] = *req.NewQty
	}
	if req.NewOwnerID != nil {
		updates[ownerColumn(req.Kind)] = *req.NewOwnerID
	}
	if req.NewSKU != nil {
		updates["sku"] = *req.NewSKU
	}

	if delta > 0 {
		if err := debitPool(ctx, tx, req.SKU, delta); err != nil {
			return err
		}
	} else if delta < 0 {
		if err := creditPool(ctx, tx, req.SKU, -delta); err != nil {
			return err
		}
	}

	res := tx.WithContext(ctx).Model(allocationModel(req.Kind)).
		Where(allocationKey(req.Kind), req.SKU, req.OwnerID).
		Where("deleted = ?", enums.DeletedNo).
		Updates(updates)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "updating allocation")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, allocationLabel(req.Kind)+" not found")
	}
	return nil
}

// Release soft-deletes an active allocation and returns its full quantity to
// the pool. The conditional soft-delete is the double-release guard: a second
// release of the same allocation sees zero rows affected and reports NOT_FOUND.
func Release(ctx context.Context, tx *gorm.DB, req ReleaseRequest) (*ReleaseResult, error) {
	if err := validateKind(req.Kind); err != nil {
		return nil, err
	}
	if req.SKU == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	if req.OwnerID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, ownerLabel(req.Kind)+" id is required")
	}

	qty, err := loadActiveAllocation(ctx, tx, req.Kind, req.SKU, req.OwnerID)
	if err != nil {
		return nil, err
	}

	res := tx.WithContext(ctx).Model(allocationModel(req.Kind)).
		Where(allocationKey(req.Kind), req.SKU, req.OwnerID).
		Where("deleted = ?", enums.DeletedNo).
		Updates(map[string]any{"quantity": 0, "deleted": enums.DeletedYes})
	if res.Error != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "releasing allocation")
	}
	if res.RowsAffected == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, allocationLabel(req.Kind)+" not found")
	}

	if qty > 0 {
		if err := creditPool(ctx, tx, req.SKU, qty); err != nil {
			return nil, err
		}
	}
	return &ReleaseResult{ReturnedQty: qty}, nil
}

// ReturnUnusedReservations credits the pool with every active, unused
// reservation of the order and reports how many reservations were returned.
// Reservations already marked used stay consumed.
func ReturnUnusedReservations(ctx context.Context, tx *gorm.DB, orderID int64) (int, error) {
	if orderID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "order id is required")
	}

	var reservations []models.OrderReservation
	if err := tx.WithContext(ctx).
		Where("order_id = ? AND deleted = ? AND date_used IS NULL", orderID, enums.DeletedNo).
		Find(&reservations).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "listing unused reservations")
	}

	for _, reservation := range reservations {
		if reservation.Quantity <= 0 {
			continue
		}
		if err := creditPool(ctx, tx, reservation.SKU, reservation.Quantity); err != nil {
			return 0, err
		}
	}
	return len(reservations), nil
}

// debitPool atomically removes qty from the pool. The quantity guard in the
// WHERE clause is what keeps stock non-negative under concurrent callers.
func debitPool(ctx context.Context, tx *gorm.DB, sku string, qty int) error {
	res := tx.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("sku = ? AND deleted = ? AND quantity_available >= ?", sku, enums.DeletedNo, qty).
		Update("quantity_available", gorm.Expr("quantity_available - ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "debiting inventory pool")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock,
			fmt.Sprintf("not enough stock of %s to cover %d units", sku, qty))
	}
	return nil
}

// creditPool returns qty to the pool. A missing or soft-deleted item at this
// point means the books cannot balance, so the caller must roll back.
func creditPool(ctx context.Context, tx *gorm.DB, sku string, qty int) error {
	res := tx.WithContext(ctx).Model(&models.InventoryItem{}).
		Where("sku = ? AND deleted = ?", sku, enums.DeletedNo).
		Update("quantity_available", gorm.Expr("quantity_available + ?", qty))
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, res.Error, "crediting inventory pool")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeStateConflict,
			fmt.Sprintf("inventory item %s is missing, cannot return %d units", sku, qty))
	}
	return nil
}

func loadActiveItem(ctx context.Context, tx *gorm.DB, sku string) (*models.InventoryItem, error) {
	var item models.InventoryItem
	err := tx.WithContext(ctx).
		Where("sku = ? AND deleted = ?", sku, enums.DeletedNo).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "inventory item not found")
	}
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading inventory item")
	}
	return &item, nil
}

func loadActiveAllocation(ctx context.Context, tx *gorm.DB, kind Kind, sku string, ownerID int64) (int, error) {
	query := tx.WithContext(ctx).
		Where(allocationKey(kind), sku, ownerID).
		Where("deleted = ?", enums.DeletedNo)

	var qty int
	var err error
	if kind == KindOrder {
		var record models.OrderReservation
		err = query.First(&record).Error
		qty = record.Quantity
	} else {
		var record models.TechAssignment
		err = query.First(&record).Error
		qty = record.Quantity
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, pkgerrors.New(pkgerrors.CodeNotFound, allocationLabel(kind)+" not found")
	}
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "loading allocation")
	}
	return qty, nil
}

func validateKind(kind Kind) error {
	switch kind {
	case KindTechnician, KindOrder:
		return nil
	}
	return pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid allocation kind %q", kind))
}

func allocationModel(kind Kind) any {
	if kind == KindOrder {
		return &models.OrderReservation{}
	}
	return &models.TechAssignment{}
}

func allocationKey(kind Kind) string {
	if kind == KindOrder {
		return "sku = ? AND order_id = ?"
	}
	return "sku = ? AND technician_id = ?"
}

func ownerColumn(kind Kind) string {
	if kind == KindOrder {
		return "order_id"
	}
	return "technician_id"
}

func ownerLabel(kind Kind) string {
	if kind == KindOrder {
		return "order"
	}
	return "technician"
}

func allocationLabel(kind Kind) string {
	if kind == KindOrder {
		return "order reservation"
	}
	return "tech assignment"
}
