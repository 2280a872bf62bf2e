package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fieldopshq/fieldops-backend/api/responses"
	"github.com/fieldopshq/fieldops-backend/api/validators"
	"github.com/fieldopshq/fieldops-backend/internal/ledger"
	"github.com/fieldopshq/fieldops-backend/internal/techassign"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
)

type assignRequest struct {
	SKU          string `json:"skuNumber" validate:"required,max=64"`
	TechnicianID int64  `json:"techId" validate:"required,gt=0"`
	Qty          int    `json:"qty" validate:"required,gt=0"`
}

type adjustAssignmentRequest struct {
	Qty             *int   `json:"qty" validate:"omitempty,gt=0"`
	NewTechnicianID *int64 `json:"newTechId" validate:"omitempty,gt=0"`
}

// TechInventoryList returns all active assignments with item metadata.
func TechInventoryList(svc techassign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// TechInventoryListByTechnician narrows the listing to one technician.
func TechInventoryListByTechnician(svc techassign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		techID, err := validators.URLParamInt64(r, "techId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListByTechnician(r.Context(), techID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// TechInventoryAssign moves stock from the pool to a technician. A fresh
// assignment answers 201; reactivations and increments answer 200.
func TechInventoryAssign(svc techassign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload assignRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Assign(r.Context(), techassign.AssignInput{
			SKU:          payload.SKU,
			TechnicianID: payload.TechnicianID,
			Qty:          payload.Qty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status := http.StatusOK
		if result.Outcome == ledger.OutcomeCreated {
			status = http.StatusCreated
		}
		responses.WriteSuccessStatus(w, status, result)
	}
}

// TechInventoryAdjust rewrites an assignment's quantity or technician.
func TechInventoryAdjust(svc techassign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}
		techID, err := validators.URLParamInt64(r, "techId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustAssignmentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Adjust(r.Context(), sku, techID, techassign.AdjustInput{
			Qty:             payload.Qty,
			NewTechnicianID: payload.NewTechnicianID,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"skuNumber": sku, "techId": techID})
	}
}

// TechInventoryRelease returns an assignment's stock to the pool.
func TechInventoryRelease(svc techassign.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}
		techID, err := validators.URLParamInt64(r, "techId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Release(r.Context(), sku, techID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}
