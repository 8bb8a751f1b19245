package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"sainaman-be/internal/logger"
	"sainaman-be/internal/middleware"
	"sainaman-be/internal/order"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type OrderHandler struct {
	svc      order.Service
	validate *validator.Validate
}

func NewOrderHandler(svc order.Service) *OrderHandler {
	return &OrderHandler{svc: svc, validate: validator.New()}
}

type createOrderRequest struct {
	CustomerName    string                 `json:"customerName" validate:"required"`
	CustomerEmail   string                 `json:"customerEmail" validate:"required,email"`
	CustomerPhone   string                 `json:"customerPhone"`
	ShippingAddress string                 `json:"shippingAddress" validate:"required"`
	City            string                 `json:"city"`
	PostalCode      string                 `json:"postalCode"`
	Country         string                 `json:"country"`
	TotalAmount     float64                `json:"totalAmount"`
	IdempotencyKey  string                 `json:"idempotencyKey"`
	Items           []order.PlaceOrderItem `json:"items" validate:"required"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// Create handles checkout submission. Public by design: the buyer is not
// authenticated yet at checkout time.
func (h *OrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "missing required fields", http.StatusBadRequest)
		return
	}

	id, err := h.svc.Place(r.Context(), order.PlaceOrderInput{
		CustomerName:    req.CustomerName,
		CustomerEmail:   req.CustomerEmail,
		CustomerPhone:   req.CustomerPhone,
		ShippingAddress: req.ShippingAddress,
		City:            req.City,
		PostalCode:      req.PostalCode,
		Country:         req.Country,
		TotalAmount:     req.TotalAmount,
		IdempotencyKey:  req.IdempotencyKey,
		Items:           req.Items,
	})
	if err != nil {
		h.respondOrderError(w, r, "failed to create order", err)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]uint{"id": id})
}

// Get serves the post-checkout confirmation read. Public by design.
func (h *OrderHandler) Get(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	o, items, err := h.svc.Get(r.Context(), uint(orderID))
	if err != nil {
		h.respondOrderError(w, r, "failed to fetch order", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"order": o,
		"items": items,
	})
}

// ListMine returns the authenticated caller's orders, matched by the email
// claim.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	email := middleware.UserEmailFromContext(r.Context())
	if email == "" {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	orders, err := h.svc.ListByCustomer(r.Context(), email)
	if err != nil {
		h.respondOrderError(w, r, "failed to fetch orders", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"orders": orders})
}

// UpdateStatus performs an admin status transition.
func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	orderID, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, "invalid order id", http.StatusBadRequest)
		return
	}

	var req updateOrderStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "status is required", http.StatusBadRequest)
		return
	}

	if err := h.svc.UpdateStatus(r.Context(), uint(orderID), order.Status(req.Status)); err != nil {
		h.respondOrderError(w, r, "failed to update order status", err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"message": "order status updated"})
}

func (h *OrderHandler) respondOrderError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, order.ErrMissingOrderFields),
		errors.Is(err, order.ErrInvalidStatus),
		errors.Is(err, order.ErrIllegalTransition):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, order.ErrOrderNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error(msg, zap.Error(err))
		writeError(w, "server error", http.StatusInternalServerError)
	}
}
