package notification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "habitat/internal/domain/notification/valueobjects"
)

func newTestDelivery(t *testing.T, channel vo.Channel) *Delivery {
	t.Helper()
	d, err := NewDelivery(1, 10, channel, vo.MessageTypePaymentDue, "Payment due", "Your payment of {{amount}} is due", map[string]string{"amount": "5000"})
	require.NoError(t, err)
	return d
}

func TestNewDelivery_Valid(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelEmail)

	assert.Equal(t, uint(0), d.ID(), "new delivery should have zero ID")
	assert.Equal(t, uint(1), d.TenantID())
	assert.Equal(t, uint(10), d.RecipientID())
	assert.Equal(t, vo.ChannelEmail, d.Channel())
	assert.Equal(t, vo.MessageTypePaymentDue, d.Type())
	assert.Equal(t, vo.DeliveryStatusPending, d.Status())
	assert.Equal(t, 0, d.RetryCount())
	assert.Nil(t, d.LastError())
	assert.Nil(t, d.SentAt())
	assert.Nil(t, d.ReadAt())
	assert.WithinDuration(t, time.Now(), d.CreatedAt(), 2*time.Second)
}

func TestNewDelivery_Validation(t *testing.T) {
	tests := []struct {
		name        string
		recipientID uint
		channel     vo.Channel
		messageType vo.MessageType
		title       string
		body        string
		wantErr     string
	}{
		{"zero recipient", 0, vo.ChannelEmail, vo.MessageTypePaymentDue, "t", "b", "recipient ID is required"},
		{"invalid channel", 1, vo.Channel("pigeon"), vo.MessageTypePaymentDue, "t", "b", "invalid channel"},
		{"invalid type", 1, vo.ChannelEmail, vo.MessageType("gossip"), "t", "b", "invalid message type"},
		{"empty title", 1, vo.ChannelEmail, vo.MessageTypePaymentDue, "", "b", "title is required"},
		{"empty body", 1, vo.ChannelEmail, vo.MessageTypePaymentDue, "t", "", "body is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDelivery(1, tt.recipientID, tt.channel, tt.messageType, tt.title, tt.body, nil)
			assert.Error(t, err)
			assert.Nil(t, d)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDelivery_DataIsCopied(t *testing.T) {
	data := map[string]string{"amount": "5000"}
	d, err := NewDelivery(1, 10, vo.ChannelEmail, vo.MessageTypePaymentDue, "t", "b", data)
	require.NoError(t, err)

	data["amount"] = "mutated"
	assert.Equal(t, "5000", d.Data()["amount"])
}

func TestDelivery_SendFlow(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelEmail)

	require.NoError(t, d.BeginSending())
	assert.Equal(t, vo.DeliveryStatusSending, d.Status())

	require.NoError(t, d.MarkSent())
	assert.Equal(t, vo.DeliveryStatusSent, d.Status())
	require.NotNil(t, d.SentAt())
}

func TestDelivery_BeginSending_OnlyFromPending(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelEmail)
	require.NoError(t, d.BeginSending())

	err := d.BeginSending()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "cannot begin sending from status sending")
}

func TestDelivery_MarkDelivered_InAppShortCircuit(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelInApp)

	require.NoError(t, d.MarkDelivered())
	assert.Equal(t, vo.DeliveryStatusDelivered, d.Status())
	require.NotNil(t, d.SentAt(), "delivered in-app record must carry a timestamp")
}

func TestDelivery_RecordFailure_RetriesThenFails(t *testing.T) {
	const maxRetries = 3
	d := newTestDelivery(t, vo.ChannelEmail)

	for attempt := 1; attempt < maxRetries; attempt++ {
		require.NoError(t, d.BeginSending())
		require.NoError(t, d.RecordFailure("smtp timeout", maxRetries))
		assert.Equal(t, vo.DeliveryStatusPending, d.Status(), "attempt %d should go back to pending", attempt)
		assert.Equal(t, attempt, d.RetryCount())
		assert.True(t, d.IsRetryEligible(maxRetries))
	}

	require.NoError(t, d.BeginSending())
	require.NoError(t, d.RecordFailure("smtp timeout", maxRetries))
	assert.Equal(t, vo.DeliveryStatusFailed, d.Status())
	assert.Equal(t, maxRetries, d.RetryCount())
	assert.False(t, d.IsRetryEligible(maxRetries))
	require.NotNil(t, d.LastError())
	assert.Equal(t, "smtp timeout", *d.LastError())
}

func TestDelivery_RecordFailure_OnlyWhileSending(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelEmail)
	err := d.RecordFailure("boom", 3)
	assert.Error(t, err)
}

func TestDelivery_MarkFailed_Terminal(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelSMS)

	require.NoError(t, d.MarkFailed("no sender registered for channel sms"))
	assert.Equal(t, vo.DeliveryStatusFailed, d.Status())
	require.NotNil(t, d.LastError())

	err := d.MarkFailed("again")
	assert.Error(t, err, "failed is terminal")
}

func TestDelivery_MarkRead(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelInApp)
	require.NoError(t, d.MarkDelivered())

	require.NoError(t, d.MarkRead())
	assert.Equal(t, vo.DeliveryStatusRead, d.Status())
	require.NotNil(t, d.ReadAt())

	// Marking read twice is a no-op.
	require.NoError(t, d.MarkRead())
}

func TestDelivery_MarkRead_RequiresVisibleStatus(t *testing.T) {
	d := newTestDelivery(t, vo.ChannelEmail)
	err := d.MarkRead()
	assert.Error(t, err)
}

func TestReconstructDelivery_RejectsNegativeRetryCount(t *testing.T) {
	now := time.Now()
	d, err := ReconstructDelivery(1, 1, 10, vo.ChannelEmail, vo.MessageTypePaymentDue, "t", "b", nil,
		vo.DeliveryStatusPending, -1, nil, nil, nil, 1, now, now)
	assert.Error(t, err)
	assert.Nil(t, d)
}
