package handler

import (
	"encoding/json"
	"net/http"

	"sainaman-be/internal/logger"
	"sainaman-be/internal/payment"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

type PaymentHandler struct {
	gateway  payment.Gateway
	validate *validator.Validate
}

func NewPaymentHandler(gateway payment.Gateway) *PaymentHandler {
	return &PaymentHandler{gateway: gateway, validate: validator.New()}
}

type createPaymentOrderRequest struct {
	Amount *float64 `json:"amount" validate:"required,gt=0"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" validate:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" validate:"required"`
	RazorpaySignature string `json:"razorpay_signature" validate:"required"`
}

// CreateOrder registers a payment intent with the gateway and hands the
// descriptor back for in-browser payment collection.
func (h *PaymentHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	var req createPaymentOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "amount is required", http.StatusBadRequest)
		return
	}

	order, err := h.gateway.CreateOrder(r.Context(), *req.Amount)
	if err != nil {
		logger.FromCtx(r.Context()).Error("failed to create payment order", zap.Error(err))
		writeError(w, "failed to create payment order", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order)
}

// Verify checks the callback signature. A failed check is a valid negative
// result, not a server error.
func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyPaymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		writeError(w, "order id, payment id, and signature are required", http.StatusBadRequest)
		return
	}

	if !h.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{
			"success": false,
			"message": "Invalid signature",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}
