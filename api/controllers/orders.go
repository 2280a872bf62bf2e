package controllers

import (
	"net/http"
	"strings"

	"github.com/fieldopshq/fieldops-backend/api/responses"
	"github.com/fieldopshq/fieldops-backend/api/validators"
	"github.com/fieldopshq/fieldops-backend/internal/orders"
	pkgerrors "github.com/fieldopshq/fieldops-backend/pkg/errors"
	"github.com/fieldopshq/fieldops-backend/pkg/logger"
)

type createOrderRequest struct {
	CustomerID   int64  `json:"customerId" validate:"required,gt=0"`
	SalesRepID   int64  `json:"salesRepId" validate:"required,gt=0"`
	TechnicianID *int64 `json:"techId" validate:"omitempty,gt=0"`
}

type updateOrderRequest struct {
	CustomerID   *int64 `json:"customerId" validate:"omitempty,gt=0"`
	SalesRepID   *int64 `json:"salesRepId" validate:"omitempty,gt=0"`
	TechnicianID *int64 `json:"techId" validate:"omitempty,gt=0"`
}

func orderListFilter(r *http.Request) (*orders.ListFilter, error) {
	start, err := validators.ParseQueryDate(r, "startDate")
	if err != nil {
		return nil, err
	}
	end, err := validators.ParseQueryDate(r, "endDate")
	if err != nil {
		return nil, err
	}
	if start.IsZero() && end.IsZero() {
		return nil, nil
	}

	filter := &orders.ListFilter{Field: orders.DateFieldCreated}
	if raw := strings.TrimSpace(r.URL.Query().Get("filterBy")); raw != "" {
		field := orders.DateField(raw)
		if !field.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "filterBy must be created, assigned or completed")
		}
		filter.Field = field
	}
	if !start.IsZero() {
		filter.Start = &start
	}
	if !end.IsZero() {
		filter.End = &end
	}
	return filter, nil
}

// OrdersList returns work orders, newest first, optionally narrowed to a
// date window.
func OrdersList(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter, err := orderListFilter(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.List(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func OrdersGet(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetByID(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// OrdersItems lists the active reservations belonging to one order.
func OrdersItems(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.ListOrderReservations(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

func OrdersCreate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Create(r.Context(), orders.CreateOrderInput{
			CustomerID:   payload.CustomerID,
			SalesRepID:   payload.SalesRepID,
			TechnicianID: payload.TechnicianID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, record)
	}
}

func OrdersUpdate(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.Update(r.Context(), id, orders.UpdateOrderInput{
			CustomerID:   payload.CustomerID,
			SalesRepID:   payload.SalesRepID,
			TechnicianID: payload.TechnicianID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, record)
	}
}

// OrdersComplete closes an order, returning every unused reservation to the
// pool in the same transaction.
func OrdersComplete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.Complete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, result)
	}
}

// OrdersDelete soft-deletes the order and flags its reservations. The stock
// stays allocated; release it item by item beforehand if it should return.
func OrdersDelete(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.URLParamInt64(r, "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Delete(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]int64{"orderId": id})
	}
}
