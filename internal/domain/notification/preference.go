package notification

import (
	"fmt"
	"sync"
	"time"

	vo "habitat/internal/domain/notification/valueobjects"
)

// Preference is a per (recipient, channel, message type) opt-in flag.
// Absence of a stored preference means enabled; rows only exist once a
// recipient explicitly changes a setting.
type Preference struct {
	id          uint
	tenantID    uint
	recipientID uint
	channel     vo.Channel
	messageType vo.MessageType
	enabled     bool
	createdAt   time.Time
	updatedAt   time.Time
	mu          sync.RWMutex
}

func NewPreference(
	tenantID uint,
	recipientID uint,
	channel vo.Channel,
	messageType vo.MessageType,
	enabled bool,
) (*Preference, error) {
	if recipientID == 0 {
		return nil, fmt.Errorf("recipient ID is required")
	}
	if !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}

	now := time.Now()
	return &Preference{
		tenantID:    tenantID,
		recipientID: recipientID,
		channel:     channel,
		messageType: messageType,
		enabled:     enabled,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructPreference(
	id uint,
	tenantID uint,
	recipientID uint,
	channel vo.Channel,
	messageType vo.MessageType,
	enabled bool,
	createdAt, updatedAt time.Time,
) (*Preference, error) {
	if id == 0 {
		return nil, fmt.Errorf("preference ID cannot be zero")
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

	return &Preference{
		id:          id,
		tenantID:    tenantID,
		recipientID: recipientID,
		channel:     channel,
		messageType: messageType,
		enabled:     enabled,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (p *Preference) ID() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.id
}

func (p *Preference) TenantID() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.tenantID
}

func (p *Preference) RecipientID() uint {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.recipientID
}

func (p *Preference) Channel() vo.Channel {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.channel
}

func (p *Preference) Type() vo.MessageType {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.messageType
}

func (p *Preference) Enabled() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.enabled
}

func (p *Preference) CreatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.createdAt
}

func (p *Preference) UpdatedAt() time.Time {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.updatedAt
}

func (p *Preference) SetID(id uint) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.id != 0 {
		return fmt.Errorf("preference ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("preference ID cannot be zero")
	}
	p.id = id
	return nil
}

func (p *Preference) SetEnabled(enabled bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.enabled == enabled {
		return
	}
	p.enabled = enabled
	p.updatedAt = time.Now()
}
