package payment

// PaymentOrder is the provider-side record representing an intent to collect
// payment, distinct from a store order. Amount is in minor currency units
// (paise).
type PaymentOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
	Receipt  string `json:"receipt"`
	Status   string `json:"status"`
}
