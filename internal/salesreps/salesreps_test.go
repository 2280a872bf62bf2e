package salesreps

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/fieldopshq/fieldops-backend/pkg/db/models"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file:salesreps_"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.SalesRep{}))
	return db
}

func newDBService(t *testing.T) Service {
	t.Helper()
	svc, err := NewService(NewRepository(setupTestDB(t)))
	require.NoError(t, err)
	return svc
}

func TestServiceCreateAndGet(t *testing.T) {
	svc := newDBService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSalesRepDTO{FirstName: "Rosa", LastName: "Ng"})
	require.NoError(t, err)
	require.NotZero(t, created.ID)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Rosa", got.FirstName)
	assert.Equal(t, "Ng", got.LastName)
	assert.Nil(t, got.UserID)
}

func TestServiceListFiltersByPartialName(t *testing.T) {
	svc := newDBService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, CreateSalesRepDTO{FirstName: "Rosa", LastName: "Ng"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, CreateSalesRepDTO{FirstName: "Miguel", LastName: "Ortiz"})
	require.NoError(t, err)

	matches, err := svc.List(ctx, "Ort")
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Miguel", matches[0].FirstName)

	all, err := svc.List(ctx, "")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestServiceUpdateAndSoftDelete(t *testing.T) {
	svc := newDBService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateSalesRepDTO{FirstName: "Rosa", LastName: "Ng"})
	require.NoError(t, err)

	newLast := "Ng-Alvarez"
	updated, err := svc.Update(ctx, created.ID, UpdateSalesRepInput{LastName: &newLast})
	require.NoError(t, err)
	assert.Equal(t, "Ng-Alvarez", updated.LastName)

	require.NoError(t, svc.Delete(ctx, created.ID))

	_, err = svc.GetByID(ctx, created.ID)
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())

	err = svc.Delete(ctx, created.ID)
	typed = pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, pkgerrors.CodeNotFound, typed.Code())
}
