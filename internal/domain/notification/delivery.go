package notification

import (
	"fmt"
	"sync"
	"time"

	vo "habitat/internal/domain/notification/valueobjects"
)

// Delivery is one (recipient, channel) attempt for one logical notification.
// Title and body are an immutable snapshot taken at creation time; later
// template edits never alter an existing record.
type Delivery struct {
	id          uint
	tenantID    uint
	recipientID uint
	channel     vo.Channel
	messageType vo.MessageType
	title       string
	body        string
	data        map[string]string
	status      vo.DeliveryStatus
	retryCount  int
	lastError   *string
	sentAt      *time.Time
	readAt      *time.Time
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	mu          sync.RWMutex
}

func NewDelivery(
	tenantID uint,
	recipientID uint,
	channel vo.Channel,
	messageType vo.MessageType,
	title string,
	body string,
	data map[string]string,
) (*Delivery, error) {
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}
	if len(title) == 0 {
		return nil, fmt.Errorf("title is required")
	}
	if len(title) > 255 {
		return nil, fmt.Errorf("title exceeds maximum length of 255 characters")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body is required")
	}

	now := time.Now()
	return &Delivery{
		tenantID:    tenantID,
		recipientID: recipientID,
		channel:     channel,
		messageType: messageType,
		title:       title,
		body:        body,
		data:        copyData(data),
		status:      vo.DeliveryStatusPending,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructDelivery(
	id uint,
	tenantID uint,
	recipientID uint,
	channel vo.Channel,
	messageType vo.MessageType,
	title string,
	body string,
	data map[string]string,
	status vo.DeliveryStatus,
	retryCount int,
	lastError *string,
	sentAt *time.Time,
	readAt *time.Time,
	version int,
	createdAt, updatedAt time.Time,
) (*Delivery, error) {
	if id == 0 {
		return nil, fmt.Errorf("delivery ID cannot be zero")
	}
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}
	if !status.IsValid() {
		return nil, fmt.Errorf("invalid delivery status")
	}
	if retryCount < 0 {
		return nil, fmt.Errorf("retry count cannot be negative")
	}

	return &Delivery{
		id:          id,
		tenantID:    tenantID,
		recipientID: recipientID,
		channel:     channel,
		messageType: messageType,
		title:       title,
		body:        body,
		data:        copyData(data),
		status:      status,
		retryCount:  retryCount,
		lastError:   lastError,
		sentAt:      sentAt,
		readAt:      readAt,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func copyData(data map[string]string) map[string]string {
	if data == nil {
		return nil
	}
	out := make(map[string]string, len(data))
	for k, v := range data {
		out[k] = v
	}
	return out
}

func (d *Delivery) ID() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.id
}

func (d *Delivery) TenantID() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tenantID
}

func (d *Delivery) RecipientID() uint {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.recipientID
}

func (d *Delivery) Channel() vo.Channel {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.channel
}

func (d *Delivery) Type() vo.MessageType {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.messageType
}

func (d *Delivery) Title() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.title
}

func (d *Delivery) Body() string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.body
}

func (d *Delivery) Data() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return copyData(d.data)
}

func (d *Delivery) Status() vo.DeliveryStatus {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status
}

func (d *Delivery) RetryCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.retryCount
}

func (d *Delivery) LastError() *string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.lastError
}

func (d *Delivery) SentAt() *time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.sentAt
}

func (d *Delivery) ReadAt() *time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.readAt
}

func (d *Delivery) Version() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.version
}

func (d *Delivery) CreatedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.createdAt
}

func (d *Delivery) UpdatedAt() time.Time {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.updatedAt
}

func (d *Delivery) SetID(id uint) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.id != 0 {
		return fmt.Errorf("delivery ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("delivery ID cannot be zero")
	}
	d.id = id
	return nil
}

// BeginSending claims the record for one dispatch attempt.
func (d *Delivery) BeginSending() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != vo.DeliveryStatusPending {
		return fmt.Errorf("cannot begin sending from status %s", d.status)
	}
	d.status = vo.DeliveryStatusSending
	d.touch()
	return nil
}

// MarkSent records a successful handoff to the channel transport.
func (d *Delivery) MarkSent() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != vo.DeliveryStatusSending {
		return fmt.Errorf("cannot mark sent from status %s", d.status)
	}
	now := time.Now()
	d.status = vo.DeliveryStatusSent
	d.sentAt = &now
	d.touch()
	return nil
}

// MarkDelivered is the in-app short circuit: the record is visible as soon as
// it is persisted, so it jumps straight to delivered with no sender involved.
func (d *Delivery) MarkDelivered() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != vo.DeliveryStatusPending && d.status != vo.DeliveryStatusSent {
		return fmt.Errorf("cannot mark delivered from status %s", d.status)
	}
	now := time.Now()
	d.status = vo.DeliveryStatusDelivered
	if d.sentAt == nil {
		d.sentAt = &now
	}
	d.touch()
	return nil
}

// MarkFailed terminates the record immediately. Used for configuration
// errors where no retry can ever succeed.
func (d *Delivery) MarkFailed(reason string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status.IsTerminal() {
		return fmt.Errorf("delivery is already in terminal status %s", d.status)
	}
	d.status = vo.DeliveryStatusFailed
	d.lastError = &reason
	d.touch()
	return nil
}

// RecordFailure books one failed transport attempt. The record goes back to
// pending while retries remain, and to failed once maxRetries is reached.
// The retry count never decreases.
func (d *Delivery) RecordFailure(reason string, maxRetries int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status != vo.DeliveryStatusSending {
		return fmt.Errorf("cannot record failure from status %s", d.status)
	}
	d.retryCount++
	d.lastError = &reason
	if d.retryCount >= maxRetries {
		d.status = vo.DeliveryStatusFailed
	} else {
		d.status = vo.DeliveryStatusPending
	}
	d.touch()
	return nil
}

// MarkRead flips a visible record to the read terminal state.
func (d *Delivery) MarkRead() error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.status == vo.DeliveryStatusRead {
		return nil
	}
	if !d.status.IsReadable() {
		return fmt.Errorf("cannot mark read from status %s", d.status)
	}
	now := time.Now()
	d.status = vo.DeliveryStatusRead
	d.readAt = &now
	d.touch()
	return nil
}

// IsRetryEligible reports whether the sweep should pick this record up.
func (d *Delivery) IsRetryEligible(maxRetries int) bool {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.status == vo.DeliveryStatusPending && d.retryCount < maxRetries
}

// touch must be called with the write lock held.
func (d *Delivery) touch() {
	d.updatedAt = time.Now()
	d.version++
}
