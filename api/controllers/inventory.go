package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fieldopshq/fieldops-backend/api/responses"
	"github.com/fieldopshq/fieldops-backend/api/validators"
	"github.com/fieldopshq/fieldops-backend/internal/inventory"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
)

type createItemRequest struct {
	SKU               string `json:"skuNumber" validate:"required,max=64"`
	Name              string `json:"name" validate:"required,max=255"`
	Description       string `json:"description" validate:"max=1000"`
	QuantityAvailable int    `json:"quantityAvailable" validate:"min=0"`
}

type updateItemRequest struct {
	Name              *string `json:"name" validate:"omitempty,min=1,max=255"`
	Description       *string `json:"description" validate:"omitempty,max=1000"`
	QuantityAvailable *int    `json:"quantityAvailable" validate:"omitempty,min=0"`
}

// InventoryList returns active items, optionally filtered by a partial match.
func InventoryList(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), r.URL.Query().Get("search"))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, items)
	}
}

func InventoryGet(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}

		item, err := svc.GetBySKU(r.Context(), sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func InventoryCreate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Create(r.Context(), inventory.CreateItemDTO{
			SKU:               payload.SKU,
			Name:              payload.Name,
			Description:       payload.Description,
			QuantityAvailable: payload.QuantityAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

func InventoryUpdate(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}

		var payload updateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item, err := svc.Update(r.Context(), sku, inventory.UpdateItemInput{
			Name:              payload.Name,
			Description:       payload.Description,
			QuantityAvailable: payload.QuantityAvailable,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, item)
	}
}

func InventoryDelete(svc inventory.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sku := strings.TrimSpace(chi.URLParam(r, "sku"))
		if sku == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "sku is required"))
			return
		}

		if err := svc.Delete(r.Context(), sku); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"skuNumber": sku})
	}
}
