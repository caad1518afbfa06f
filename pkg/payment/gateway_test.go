package payment

import (
	"crypto/sha512"
	"encoding/hex"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPaymentId(t *testing.T) {
	id := NewPaymentId()
	assert.True(t, strings.HasPrefix(id, IdPrefix))
	assert.Len(t, id, len(IdPrefix)+32)
	assert.True(t, ValidPaymentId(id))
	assert.NotEqual(t, id, NewPaymentId())
}

func TestValidPaymentId(t *testing.T) {
	assert.True(t, ValidPaymentId("pi_123abc"))
	assert.False(t, ValidPaymentId("xyz"))
	assert.False(t, ValidPaymentId("pi_"))
	assert.False(t, ValidPaymentId("pi_12-3"))
	assert.False(t, ValidPaymentId(" pi_123"))
	assert.False(t, ValidPaymentId(""))
}

func TestTransactionStatus(t *testing.T) {
	assert.True(t, (&TransactionStatus{TransactionStatus: "settlement"}).Settled())
	assert.True(t, (&TransactionStatus{TransactionStatus: "capture", FraudStatus: "accept"}).Settled())
	assert.False(t, (&TransactionStatus{TransactionStatus: "capture", FraudStatus: "challenge"}).Settled())
	assert.False(t, (&TransactionStatus{TransactionStatus: "pending"}).Settled())

	assert.True(t, (&TransactionStatus{TransactionStatus: "expire"}).Failed())
	assert.False(t, (&TransactionStatus{TransactionStatus: "pending"}).Failed())
}

func TestVerifySignature(t *testing.T) {
	sum := sha512.Sum512([]byte("pi_abc" + "200" + "500.00" + "server-key"))
	sig := hex.EncodeToString(sum[:])

	assert.True(t, VerifySignature("server-key", "pi_abc", "200", "500.00", sig))
	assert.True(t, VerifySignature("server-key", "pi_abc", "200", "500.00", strings.ToUpper(sig)))
	assert.False(t, VerifySignature("server-key", "pi_abc", "200", "50.00", sig))
	assert.False(t, VerifySignature("other-key", "pi_abc", "200", "500.00", sig))
	assert.False(t, VerifySignature("", "pi_abc", "200", "500.00", sig))
}
