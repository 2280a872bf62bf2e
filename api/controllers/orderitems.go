package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/fieldopshq/fieldops-backend/api/responses"
	"github.com/fieldopshq/fieldops-backend/api/validators"
	"github.com/fieldopshq/fieldops-backend/internal/ledger"
	"github.com/fieldopshq/fieldops-backend/internal/orders"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
)

type addOrderItemRequest struct {
	SKU     string `json:"skuNumber" validate:"required,max=64"`
	OrderID int64  `json:"orderId" validate:"required,gt=0"`
	Qty     int    `json:"qty" validate:"required,gt=0"`
}

type adjustOrderItemRequest struct {
	Qty    *int    `json:"qty" validate:"omitempty,gt=0"`
	NewSKU *string `json:"newSkuNumber" validate:"omitempty,min=1,max=64"`
}

func orderItemParams(r *http.Request) (int64, string, error) {
	orderID, err := validators.URLParamInt64(r, "orderId")
	if err != nil {
		return 0, "", err
	}
	sku := strings.TrimSpace(chi.URLParam(r, "sku"))
	if sku == "" {
		return 0, "", pkgerrors.New(pkgerrors.CodeValidation, "sku is required")
	}
	return orderID, sku, nil
}

// OrderItemsList returns every active reservation with item metadata.
func OrderItemsList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		records, err := svc.ListReservations(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// OrderItemsAdd reserves stock for an order. A fresh reservation answers
// 201; reactivations and increments answer 200.
func OrderItemsAdd(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload addOrderItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AddItem(r.Context(), orders.AddItemInput{
			SKU:     payload.SKU,
			OrderID: payload.OrderID,
			Qty:     payload.Qty,
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

// OrderItemsAdjust rewrites a reservation's quantity or SKU.
func OrderItemsAdjust(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, sku, err := orderItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustOrderItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.AdjustItem(r.Context(), orderID, sku, orders.AdjustItemInput{
			Qty:    payload.Qty,
			NewSKU: payload.NewSKU,
		}); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orderId": orderID, "skuNumber": sku})
	}
}

// OrderItemsMarkUsed stamps a reservation as consumed on the job.
func OrderItemsMarkUsed(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, sku, err := orderItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.MarkItemUsed(r.Context(), orderID, sku); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orderId": orderID, "skuNumber": sku})
	}
}

// OrderItemsRemove releases one reservation back to the pool.
func OrderItemsRemove(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, sku, err := orderItemParams(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		returned, err := svc.RemoveItem(r.Context(), orderID, sku)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orderId": orderID, "skuNumber": sku, "returnedQty": returned})
	}
}

// OrderItemsRemoveAll releases every active reservation of an order.
func OrderItemsRemoveAll(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		orderID, err := validators.URLParamInt64(r, "orderId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		released, err := svc.RemoveAllItems(r.Context(), orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"orderId": orderID, "itemsReleased": released})
	}
}
