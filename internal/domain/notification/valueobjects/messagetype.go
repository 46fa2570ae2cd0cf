package valueobjects

import "fmt"

// MessageType is the domain event a notification reports.
type MessageType string

const (
	MessageTypePaymentDue       MessageType = "payment_due"
	MessageTypePaymentReceived  MessageType = "payment_received"
	MessageTypeBookingConfirmed MessageType = "booking_confirmed"
	MessageTypeBookingCancelled MessageType = "booking_cancelled"
	MessageTypeViolationIssued  MessageType = "violation_issued"
	MessageTypePatrolAlert      MessageType = "patrol_alert"
	MessageTypeMaintenance      MessageType = "maintenance"
	MessageTypeAnnouncement     MessageType = "announcement"
)

var validMessageTypes = map[MessageType]bool{
	MessageTypePaymentDue:       true,
	MessageTypePaymentReceived:  true,
	MessageTypeBookingConfirmed: true,
	MessageTypeBookingCancelled: true,
	MessageTypeViolationIssued:  true,
	MessageTypePatrolAlert:      true,
	MessageTypeMaintenance:      true,
	MessageTypeAnnouncement:     true,
}

func (t MessageType) String() string {
	return string(t)
}

func (t MessageType) IsValid() bool {
	return validMessageTypes[t]
}

// IsAnnouncement reports whether t bypasses recipient preferences.
func (t MessageType) IsAnnouncement() bool {
	return t == MessageTypeAnnouncement
}

func NewMessageType(s string) (MessageType, error) {
	t := MessageType(s)
	if !t.IsValid() {
		return "", fmt.Errorf("invalid message type: %s", s)
	}
	return t, nil
}
