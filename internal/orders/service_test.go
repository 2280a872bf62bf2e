package orders

import (
	"context"
	"testing"
	"time"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	"github.com/fieldopshq/fieldops-backend/pkg/enums"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type gormTxRunner struct {
	db *gorm.DB
}

func (r gormTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		return fn(tx)
	})
}

func TestServiceCreateStampsAssignment(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	plain, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if plain.DateAssigned != nil {
		t.Fatalf("expected no assignment date, got %v", plain.DateAssigned)
	}

	techID := int64(5)
	assigned, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2, TechnicianID: &techID})
	if err != nil {
		t.Fatalf("create with tech: %v", err)
	}
	if assigned.DateAssigned == nil {
		t.Fatal("expected assignment date to be stamped")
	}
}

func TestServiceCreateValidatesInput(t *testing.T) {
	t.Parallel()

	svc := newTestService(t, newTestDB(t))

	cases := []CreateOrderInput{
		{SalesRepID: 2},
		{CustomerID: 1},
	}
	for _, input := range cases {
		if _, err := svc.Create(context.Background(), input); err == nil {
			t.Fatalf("expected validation error for %+v", input)
		}
	}
}

func TestServiceUpdateStampsAssignmentOnNewTechnician(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	techID := int64(9)
	updated, err := svc.Update(ctx, created.ID, UpdateOrderInput{TechnicianID: &techID})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.DateAssigned == nil {
		t.Fatal("expected assignment date after technician update")
	}
	if updated.TechnicianID == nil || *updated.TechnicianID != techID {
		t.Fatalf("unexpected technician: %+v", updated.TechnicianID)
	}
}

func TestServiceListDateFilter(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	old := models.WorkOrder{
		CustomerID: 1, SalesRepID: 2,
		DateCreated:  time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
		LastModified: time.Date(2025, 1, 10, 12, 0, 0, 0, time.UTC),
		Deleted:      enums.DeletedNo,
	}
	recent := models.WorkOrder{
		CustomerID: 1, SalesRepID: 2,
		DateCreated:  time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC),
		LastModified: time.Date(2025, 6, 15, 23, 30, 0, 0, time.UTC),
		Deleted:      enums.DeletedNo,
	}
	for _, record := range []*models.WorkOrder{&old, &recent} {
		if err := db.Create(record).Error; err != nil {
			t.Fatalf("seed order: %v", err)
		}
	}

	start := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC)
	rows, err := svc.List(ctx, &ListFilter{Field: DateFieldCreated, Start: &start, End: &end})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	// the end date is inclusive at day granularity, so the 23:30 row matches
	if len(rows) != 1 || rows[0].ID != recent.ID {
		t.Fatalf("unexpected rows: %+v", rows)
	}

	_, err = svc.List(ctx, &ListFilter{Field: "bogus"})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestServiceAddItemReservesStock(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}

	result, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 4})
	if err != nil {
		t.Fatalf("add item: %v", err)
	}
	if result.NewTotal != 4 {
		t.Fatalf("unexpected result: %+v", result)
	}
	if got := poolQty(t, db, "SKU-1"); got != 6 {
		t.Fatalf("expected pool 6, got %d", got)
	}

	// same SKU again increments the reservation
	result, err = svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 3})
	if err != nil {
		t.Fatalf("add item again: %v", err)
	}
	if result.NewTotal != 7 {
		t.Fatalf("expected new total 7, got %d", result.NewTotal)
	}
	if got := poolQty(t, db, "SKU-1"); got != 3 {
		t.Fatalf("expected pool 3, got %d", got)
	}
}

func TestServiceAddItemUnknownOrder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	seedItem(t, db, "SKU-1", 10)

	_, err := svc.AddItem(context.Background(), AddItemInput{SKU: "SKU-1", OrderID: 99, Qty: 1})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestServiceAdjustItemConflictOnReKey(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)
	seedItem(t, db, "SKU-2", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 2}); err != nil {
		t.Fatalf("add SKU-1: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-2", OrderID: order.ID, Qty: 2}); err != nil {
		t.Fatalf("add SKU-2: %v", err)
	}

	target := "SKU-2"
	err = svc.AdjustItem(ctx, order.ID, "SKU-1", AdjustItemInput{NewSKU: &target})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict, got %v", err)
	}
}

func TestServiceCompleteReturnsUnusedOnly(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)
	seedItem(t, db, "SKU-2", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 3}); err != nil {
		t.Fatalf("add SKU-1: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-2", OrderID: order.ID, Qty: 4}); err != nil {
		t.Fatalf("add SKU-2: %v", err)
	}
	if err := svc.MarkItemUsed(ctx, order.ID, "SKU-2"); err != nil {
		t.Fatalf("mark used: %v", err)
	}

	result, err := svc.Complete(ctx, order.ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if result.ItemsReturned != 1 {
		t.Fatalf("expected 1 item returned, got %d", result.ItemsReturned)
	}

	if got := poolQty(t, db, "SKU-1"); got != 10 {
		t.Fatalf("expected SKU-1 pool 10, got %d", got)
	}
	if got := poolQty(t, db, "SKU-2"); got != 6 {
		t.Fatalf("expected SKU-2 pool to stay 6, got %d", got)
	}

	fetched, err := svc.GetByID(ctx, order.ID)
	if err != nil {
		t.Fatalf("get order: %v", err)
	}
	if fetched.DateCompleted == nil {
		t.Fatal("expected completion date to be stamped")
	}
}

func TestServiceCompleteRejectsDeletedOrder(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if err := svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	_, err = svc.Complete(ctx, order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for deleted order, got %v", err)
	}
}

func TestServiceDeleteCascadesToItems(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 3}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	if err := svc.Delete(ctx, order.ID); err != nil {
		t.Fatalf("delete order: %v", err)
	}

	var record models.OrderReservation
	if err := db.Where("order_id = ? AND sku = ?", order.ID, "SKU-1").First(&record).Error; err != nil {
		t.Fatalf("load reservation: %v", err)
	}
	if !record.Deleted.Bool() {
		t.Fatalf("expected cascaded soft delete, got %+v", record)
	}
}

func TestServiceRemoveItemsRestorePool(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)
	seedItem(t, db, "SKU-2", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 3}); err != nil {
		t.Fatalf("add SKU-1: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-2", OrderID: order.ID, Qty: 4}); err != nil {
		t.Fatalf("add SKU-2: %v", err)
	}

	returned, err := svc.RemoveItem(ctx, order.ID, "SKU-1")
	if err != nil {
		t.Fatalf("remove item: %v", err)
	}
	if returned != 3 {
		t.Fatalf("expected 3 units returned, got %d", returned)
	}
	if got := poolQty(t, db, "SKU-1"); got != 10 {
		t.Fatalf("expected SKU-1 pool 10, got %d", got)
	}

	count, err := svc.RemoveAllItems(ctx, order.ID)
	if err != nil {
		t.Fatalf("remove all: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected 1 remaining item released, got %d", count)
	}
	if got := poolQty(t, db, "SKU-2"); got != 10 {
		t.Fatalf("expected SKU-2 pool 10, got %d", got)
	}

	_, err = svc.RemoveAllItems(ctx, order.ID)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found with nothing left, got %v", err)
	}
}

func TestServiceListReservationsJoinsCatalog(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	svc := newTestService(t, db)
	ctx := context.Background()
	seedItem(t, db, "SKU-1", 10)

	order, err := svc.Create(ctx, CreateOrderInput{CustomerID: 1, SalesRepID: 2})
	if err != nil {
		t.Fatalf("create order: %v", err)
	}
	if _, err := svc.AddItem(ctx, AddItemInput{SKU: "SKU-1", OrderID: order.ID, Qty: 2}); err != nil {
		t.Fatalf("add item: %v", err)
	}

	rows, err := svc.ListOrderReservations(ctx, order.ID)
	if err != nil {
		t.Fatalf("list reservations: %v", err)
	}
	if len(rows) != 1 || rows[0].ItemName != "Item SKU-1" || rows[0].Quantity != 2 {
		t.Fatalf("unexpected rows: %+v", rows)
	}
}

func newTestService(t *testing.T, db *gorm.DB) Service {
	t.Helper()
	svc, err := NewService(gormTxRunner{db: db}, NewRepository(db))
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc
}

func seedItem(t *testing.T, db *gorm.DB, sku string, qty int) {
	t.Helper()
	item := models.InventoryItem{SKU: sku, Name: "Item " + sku, QuantityAvailable: qty, Deleted: enums.DeletedNo}
	if err := db.Create(&item).Error; err != nil {
		t.Fatalf("seed inventory: %v", err)
	}
}

func poolQty(t *testing.T, db *gorm.DB, sku string) int {
	t.Helper()
	var item models.InventoryItem
	if err := db.First(&item, "sku = ?", sku).Error; err != nil {
		t.Fatalf("load item %s: %v", sku, err)
	}
	return item.QuantityAvailable
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := "file:orders_" + uuid.NewString() + "?mode=memory&cache=shared"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	if err := db.AutoMigrate(&models.InventoryItem{}, &models.WorkOrder{}, &models.OrderReservation{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}
