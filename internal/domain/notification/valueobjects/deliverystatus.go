package valueobjects

import "fmt"

// DeliveryStatus is the life-cycle state of one delivery record.
//
// pending -> sending -> sent -> delivered -> read
//                    \-> failed
//
// A failed attempt that has retries left goes back to pending; failed and
// read are terminal for automatic processing.
type DeliveryStatus string

const (
	DeliveryStatusPending   DeliveryStatus = "pending"
	DeliveryStatusSending   DeliveryStatus = "sending"
	DeliveryStatusSent      DeliveryStatus = "sent"
	DeliveryStatusDelivered DeliveryStatus = "delivered"
	DeliveryStatusFailed    DeliveryStatus = "failed"
	DeliveryStatusRead      DeliveryStatus = "read"
)

var validDeliveryStatuses = map[DeliveryStatus]bool{
	DeliveryStatusPending:   true,
	DeliveryStatusSending:   true,
	DeliveryStatusSent:      true,
	DeliveryStatusDelivered: true,
	DeliveryStatusFailed:    true,
	DeliveryStatusRead:      true,
}

func (s DeliveryStatus) String() string {
	return string(s)
}

func (s DeliveryStatus) IsValid() bool {
	return validDeliveryStatuses[s]
}

func (s DeliveryStatus) IsTerminal() bool {
	return s == DeliveryStatusFailed || s == DeliveryStatusRead
}

// IsReadable reports whether a record in this state can be marked read.
func (s DeliveryStatus) IsReadable() bool {
	return s == DeliveryStatusSent || s == DeliveryStatusDelivered
}

func NewDeliveryStatus(str string) (DeliveryStatus, error) {
	s := DeliveryStatus(str)
	if !s.IsValid() {
		return "", fmt.Errorf("invalid delivery status: %s", str)
	}
	return s, nil
}
