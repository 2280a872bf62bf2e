package controllers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/fieldopshq/fieldops-backend/internal/techassign"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/types"
)

type stubTechAssignService struct {
	adjustSKU    string
	adjustTechID int64
	adjustInput  techassign.AdjustInput
	adjustCalls  int
}

func (s *stubTechAssignService) List(ctx context.Context) ([]techassign.AssignmentDTO, error) {
	return nil, nil
}

func (s *stubTechAssignService) ListByTechnician(ctx context.Context, techID int64) ([]techassign.AssignmentDTO, error) {
	return nil, nil
}

func (s *stubTechAssignService) Assign(ctx context.Context, input techassign.AssignInput) (*techassign.AssignResultDTO, error) {
	return &techassign.AssignResultDTO{}, nil
}

func (s *stubTechAssignService) Adjust(ctx context.Context, sku string, techID int64, input techassign.AdjustInput) error {
	s.adjustCalls++
	s.adjustSKU = sku
	s.adjustTechID = techID
	s.adjustInput = input
	return nil
}

func (s *stubTechAssignService) Release(ctx context.Context, sku string, techID int64) (*techassign.ReleaseResultDTO, error) {
	return &techassign.ReleaseResultDTO{}, nil
}

func newAdjustRouter(svc techassign.Service) http.Handler {
	r := chi.NewRouter()
	r.Put("/techinventory/{sku}/{techId}", TechInventoryAdjust(svc, nil))
	return r
}

func TestTechInventoryAdjustRejectsZeroQty(t *testing.T) {
	svc := &stubTechAssignService{}
	router := newAdjustRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/techinventory/SKU-100/7", strings.NewReader(`{"qty":0}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 got %d", resp.Code)
	}
	if svc.adjustCalls != 0 {
		t.Fatal("service must not be reached for an invalid body")
	}

	var body types.ErrorEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode error envelope: %v", err)
	}
	if body.Error.Code != string(pkgerrors.CodeValidation) {
		t.Fatalf("expected validation code, got %q", body.Error.Code)
	}
	details, ok := body.Error.Details.(map[string]any)
	if !ok {
		t.Fatalf("expected field details, got %v", body.Error.Details)
	}
	if _, ok := details["qty"]; !ok {
		t.Fatalf("expected qty field message, got %v", details)
	}
}

func TestTechInventoryAdjustPassesQtyThrough(t *testing.T) {
	svc := &stubTechAssignService{}
	router := newAdjustRouter(svc)

	req := httptest.NewRequest(http.MethodPut, "/techinventory/SKU-100/7", strings.NewReader(`{"qty":5}`))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", resp.Code)
	}
	if svc.adjustCalls != 1 || svc.adjustSKU != "SKU-100" || svc.adjustTechID != 7 {
		t.Fatalf("unexpected service call: %+v", svc)
	}
	if svc.adjustInput.Qty == nil || *svc.adjustInput.Qty != 5 {
		t.Fatalf("unexpected adjust input: %+v", svc.adjustInput)
	}
}
