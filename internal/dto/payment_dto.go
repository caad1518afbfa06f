package dto

type PaymentIntentResponse struct {
	ClientSecret string `json:"clientSecret"`
	PaymentId    string `json:"paymentId"`
	RedirectURL  string `json:"redirectUrl,omitempty"`
	Amount       int64  `json:"amount"`
	Currency     string `json:"currency"`
	Display      string `json:"display"`
}

// MidtransNotification is the HTTP notification body sent by the provider.
type MidtransNotification struct {
	TransactionStatus string `json:"transaction_status"`
	OrderId           string `json:"order_id"`
	FraudStatus       string `json:"fraud_status"`
	SignatureKey      string `json:"signature_key"`
	StatusCode        string `json:"status_code"`
	GrossAmount       string `json:"gross_amount"`
	PaymentType       string `json:"payment_type"`
}
