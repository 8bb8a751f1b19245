package payment

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strconv"
	"time"

	"sainaman-be/internal/logger"

	"go.uber.org/zap"
)

const razorpayBaseURL = "https://api.razorpay.com"

type razorpayGateway struct {
	keyID      string
	keySecret  string
	baseURL    string
	httpClient *http.Client
}

// ----------------- Constructor -----------------

func NewRazorpayGateway(keyID, keySecret string) Gateway {
	if keyID == "" || keySecret == "" {
		logger.L().Warn("Razorpay credentials are empty")
	}

	return &razorpayGateway{
		keyID:     keyID,
		keySecret: keySecret,
		baseURL:   razorpayBaseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ----------------- CreateOrder -----------------

func (g *razorpayGateway) CreateOrder(ctx context.Context, amount float64) (*PaymentOrder, error) {
	log := logger.FromCtx(ctx).With(
		zap.Float64("amount", amount),
	)

	// Razorpay expects paise; a timestamp receipt tag is unique enough at
	// expected volumes.
	amountPaise := int64(math.Round(amount * 100))
	receipt := "receipt_" + strconv.FormatInt(time.Now().UnixMilli(), 10)

	body := map[string]interface{}{
		"amount":   amountPaise,
		"currency": "INR",
		"receipt":  receipt,
	}
	jsonBody, err := json.Marshal(body)
	if err != nil {
		log.Error("Failed to marshal payment order request", zap.Error(err))
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", g.baseURL+"/v1/orders", bytes.NewBuffer(jsonBody))
	if err != nil {
		log.Error("Failed creating request", zap.Error(err))
		return nil, err
	}

	req.SetBasicAuth(g.keyID, g.keySecret)
	req.Header.Add("Content-Type", "application/json")

	log.Info("Creating Razorpay order", zap.String("receipt", receipt))

	resp, err := g.httpClient.Do(req)
	if err != nil {
		log.Error("Razorpay request failed", zap.Error(err))
		return nil, err
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		log.Error("Failed to read response body", zap.Error(err))
		return nil, fmt.Errorf("failed to read razorpay response: %w", err)
	}

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		log.Error("Razorpay returned non-success status",
			zap.Int("status", resp.StatusCode),
			zap.ByteString("response", bodyBytes),
		)
		return nil, fmt.Errorf("razorpay error: %s", string(bodyBytes))
	}

	var order PaymentOrder
	if err := json.Unmarshal(bodyBytes, &order); err != nil {
		log.Error("Failed decoding Razorpay response", zap.Error(err))
		return nil, err
	}

	log.Info("Razorpay order created",
		zap.String("payment_order_id", order.ID),
		zap.Int64("amount_paise", order.Amount),
		zap.String("status", order.Status),
	)

	return &order, nil
}

// ----------------- Verify Signature -----------------

// VerifySignature recomputes HMAC-SHA256 over "orderID|paymentID" with the
// key secret and compares it against the callback signature in constant
// time.
func (g *razorpayGateway) VerifySignature(orderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(orderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}
