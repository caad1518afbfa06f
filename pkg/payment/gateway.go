// Package payment talks to the card/UPI provider. Services depend on Gateway
// only; the Midtrans client is wired in bootstrap.
package payment

import (
	"context"
	"crypto/sha512"
	"crypto/subtle"
	"encoding/hex"
	"regexp"
	"strings"

	"github.com/Rhymond/go-money"
	"github.com/google/uuid"
)

const IdPrefix = "pi_"

var idPattern = regexp.MustCompile(`^pi_[A-Za-z0-9]+$`)

// NewPaymentId returns pi_ followed by 32 hex characters. The same value is
// sent to the provider as the order id.
func NewPaymentId() string {
	return IdPrefix + strings.ReplaceAll(uuid.NewString(), "-", "")
}

// ValidPaymentId reports whether id has the shape of an id this service issues.
func ValidPaymentId(id string) bool {
	return idPattern.MatchString(id)
}

type IntentRequest struct {
	PaymentId     string
	Amount        *money.Money
	Description   string
	CustomerName  string
	CustomerEmail string
	Metadata      map[string]string
}

type Intent struct {
	PaymentId    string
	ClientSecret string
	RedirectURL  string
}

type TransactionStatus struct {
	PaymentId         string
	TransactionStatus string
	FraudStatus       string
	GrossAmount       string
}

// Settled is true for captured card payments that passed fraud review and
// for settled transfers.
func (s *TransactionStatus) Settled() bool {
	switch s.TransactionStatus {
	case "settlement":
		return true
	case "capture":
		return s.FraudStatus == "" || s.FraudStatus == "accept"
	}
	return false
}

func (s *TransactionStatus) Failed() bool {
	switch s.TransactionStatus {
	case "deny", "cancel", "expire", "failure":
		return true
	}
	return false
}

type Gateway interface {
	CreateIntent(ctx context.Context, req IntentRequest) (*Intent, error)
	GetTransaction(ctx context.Context, paymentId string) (*TransactionStatus, error)
}

// VerifySignature checks a provider notification:
// SHA512(order_id + status_code + gross_amount + server_key).
func VerifySignature(serverKey, orderId, statusCode, grossAmount, signature string) bool {
	if serverKey == "" || signature == "" {
		return false
	}
	sum := sha512.Sum512([]byte(orderId + statusCode + grossAmount + serverKey))
	expected := hex.EncodeToString(sum[:])
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.ToLower(signature))) == 1
}
