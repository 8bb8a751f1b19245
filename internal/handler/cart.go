package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"sainaman-be/internal/cart"
	"sainaman-be/internal/logger"
	"sainaman-be/internal/middleware"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type CartHandler struct {
	svc      cart.Service
	validate *validator.Validate
}

func NewCartHandler(svc cart.Service) *CartHandler {
	return &CartHandler{svc: svc, validate: validator.New()}
}

type addToCartRequest struct {
	ProductID   string   `json:"productId" validate:"required"`
	Name        string   `json:"name" validate:"required"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Images      []string `json:"images"`
	Description string   `json:"description"`
	Materials   []string `json:"materials"`
	Slug        string   `json:"slug"`
	Quantity    int      `json:"quantity"`
}

type updateCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  *int   `json:"quantity" validate:"required"`
}

type removeFromCartRequest struct {
	ProductID string `json:"productId" validate:"required"`
}

func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	lines, err := h.svc.Get(r.Context(), userID)
	if err != nil {
		h.respondCartError(w, r, "failed to fetch cart", err)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req addToCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "product id, name, and price are required", http.StatusBadRequest)
		return
	}

	lines, err := h.svc.Add(r.Context(), userID, cart.AddItemParams{
		ProductID:   req.ProductID,
		Name:        req.Name,
		Price:       *req.Price,
		Images:      req.Images,
		Description: req.Description,
		Materials:   req.Materials,
		Slug:        req.Slug,
		Quantity:    req.Quantity,
	})
	if err != nil {
		h.respondCartError(w, r, "failed to add to cart", err)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) Update(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req updateCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "product id and quantity are required", http.StatusBadRequest)
		return
	}

	lines, err := h.svc.UpdateQuantity(r.Context(), userID, req.ProductID, *req.Quantity)
	if err != nil {
		h.respondCartError(w, r, "failed to update cart", err)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req removeFromCartRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "product id is required", http.StatusBadRequest)
		return
	}

	lines, err := h.svc.Remove(r.Context(), userID, req.ProductID)
	if err != nil {
		h.respondCartError(w, r, "failed to remove from cart", err)
		return
	}

	writeJSON(w, http.StatusOK, lines)
}

func (h *CartHandler) Clear(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		writeError(w, "unauthorized", http.StatusUnauthorized)
		return
	}

	if err := h.svc.Clear(r.Context(), userID); err != nil {
		h.respondCartError(w, r, "failed to clear cart", err)
		return
	}

	writeJSON(w, http.StatusOK, []cart.Line{})
}

func (h *CartHandler) respondCartError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	switch {
	case errors.Is(err, cart.ErrMissingProductFields), errors.Is(err, cart.ErrInvalidQuantity):
		writeError(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, cart.ErrCartNotFound):
		writeError(w, err.Error(), http.StatusNotFound)
	default:
		logger.FromCtx(r.Context()).Error(msg, zap.Error(err))
		writeError(w, "server error", http.StatusInternalServerError)
	}
}
