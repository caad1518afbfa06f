package mailer

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"parish-portal-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecisionMail(t *testing.T) {
	approved := DecisionMail("Anna", "anna@example.com", "certificate request", true, "")
	assert.Equal(t, "anna@example.com", approved.To)
	assert.Equal(t, "Update on Your Certificate Request", approved.Subject)
	assert.Contains(t, approved.HTML, "Dear <strong>Anna</strong>")
	assert.Contains(t, approved.HTML, "complete the payment")
	assert.NotContains(t, approved.HTML, "Remark:")

	rejected := DecisionMail("Anna", "anna@example.com", "mass request", false, "Date <full>")
	assert.Contains(t, rejected.HTML, "has been rejected")
	assert.Contains(t, rejected.HTML, "Date &lt;full&gt;")
}

func TestPaymentMail(t *testing.T) {
	paidAt := time.Date(2026, 3, 1, 10, 30, 0, 0, time.UTC)
	scheduled := time.Date(2026, 3, 8, 0, 0, 0, 0, time.UTC)

	m := PaymentMail("Joe", "joe@example.com", "mass booking", "pi_abc", paidAt, &scheduled)
	assert.Equal(t, "Payment Confirmation – Mass Booking", m.Subject)
	assert.Contains(t, m.HTML, "pi_abc")
	assert.Contains(t, m.HTML, "Your mass is scheduled on Sunday, 08 March 2026")

	c := PaymentMail("Joe", "joe@example.com", "certificate request", "pi_abc", paidAt, nil)
	assert.NotContains(t, c.HTML, "scheduled on")
}

func TestOtpMails(t *testing.T) {
	assert.Contains(t, VerifyOtpMail("A", "a@x.com", "123456").HTML, "123456")
	assert.Contains(t, ResetOtpMail("A", "a@x.com", "654321").HTML, "15 minutes")
	assert.Contains(t, WelcomeMail("A", "a@x.com").HTML, ParishName)
}

func TestDispatcherPublishesToTopic(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{}, watermill.NopLogger{})
	defer pubSub.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	messages, err := pubSub.Subscribe(ctx, "mail")
	require.NoError(t, err)

	d := NewDispatcher(pubSub, "mail", logger.NewNopLogger())
	d.Enqueue(ctx, Message{To: "a@x.com", Subject: "Hi", HTML: "<p>hi</p>"})

	select {
	case msg := <-messages:
		var got Message
		require.NoError(t, json.Unmarshal(msg.Payload, &got))
		assert.Equal(t, "a@x.com", got.To)
		msg.Ack()
	case <-ctx.Done():
		t.Fatal("message not delivered")
	}
}

func TestDispatcherSkipsEmptyRecipient(t *testing.T) {
	pubSub := gochannel.NewGoChannel(gochannel.Config{OutputChannelBuffer: 1}, watermill.NopLogger{})
	defer pubSub.Close()

	messages, err := pubSub.Subscribe(context.Background(), "mail")
	require.NoError(t, err)

	NewDispatcher(pubSub, "mail", logger.NewNopLogger()).Enqueue(context.Background(), Message{Subject: "x"})

	select {
	case <-messages:
		t.Fatal("unexpected message")
	case <-time.After(50 * time.Millisecond):
	}
}
