package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"server/internal/domain"
)

func (a *App) ListProducts(w http.ResponseWriter, r *http.Request) {
	products, err := a.Orders.ListProducts(r.Context())
	if err != nil {
		a.Logger.Error().Err(err).Msg("list products")
		a.error(w, http.StatusInternalServerError, "internal", "could not list products")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"products": products})
}

type createOrderRequest struct {
	ProductID     string `json:"productId"`
	PaymentMethod string `json:"paymentMethod"`
}

func (a *App) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.ProductID) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "productId is required")
		return
	}

	order := &domain.Order{
		ID:            uuid.NewString(),
		UserID:        a.currentUserID(r),
		ProductID:     req.ProductID,
		PaymentMethod: req.PaymentMethod,
		Status:        domain.OrderStatusPending,
	}
	err := a.Orders.CreateOrder(r.Context(), order)
	switch {
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", "product not found")
		return
	case errors.Is(err, domain.ErrOutOfStock):
		a.error(w, http.StatusConflict, "out_of_stock", "product is out of stock")
		return
	case err != nil:
		a.Logger.Error().Err(err).Msg("create order")
		a.error(w, http.StatusInternalServerError, "internal", "could not create order")
		return
	}
	a.json(w, http.StatusCreated, order)
}

func (a *App) ListOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := a.Orders.ListOrdersByUser(r.Context(), a.currentUserID(r))
	if err != nil {
		a.Logger.Error().Err(err).Msg("list orders")
		a.error(w, http.StatusInternalServerError, "internal", "could not list orders")
		return
	}
	a.json(w, http.StatusOK, map[string]any{"orders": orders})
}

type orderStatusRequest struct {
	Status string `json:"status"`
}

// UpdateOrderStatus moves an order between pending, completed, and failed.
func (a *App) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req orderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
		return
	}
	switch req.Status {
	case domain.OrderStatusPending, domain.OrderStatusCompleted, domain.OrderStatusFailed:
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unknown order status")
		return
	}

	err := a.Orders.UpdateOrderStatus(r.Context(), chi.URLParam(r, "orderID"), req.Status)
	if err != nil {
		a.notFoundOr(w, err, "order")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"status": req.Status})
}
