// Package resident holds the recipient side of the notification context: who
// can be notified and which per-channel addresses they expose. The wider
// property-management profile (units, leases, billing) lives elsewhere.
package resident

import (
	"fmt"
	"sync"
	"time"
)

type Resident struct {
	id        uint
	tenantID  uint
	name      string
	email     string
	phone     string
	chatID    int64
	pushToken string
	active    bool
	createdAt time.Time
	updatedAt time.Time
	mu        sync.RWMutex
}

func NewResident(tenantID uint, name, email, phone string) (*Resident, error) {
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}

	now := time.Now()
	return &Resident{
		tenantID:  tenantID,
		name:      name,
		email:     email,
		phone:     phone,
		active:    true,
		createdAt: now,
		updatedAt: now,
	}, nil
}

func ReconstructResident(
	id uint,
	tenantID uint,
	name string,
	email string,
	phone string,
	chatID int64,
	pushToken string,
	active bool,
	createdAt, updatedAt time.Time,
) (*Resident, error) {
	if id == 0 {
		return nil, fmt.Errorf("resident ID cannot be zero")
	}
	if len(name) == 0 {
		return nil, fmt.Errorf("name is required")
	}

	return &Resident{
		id:        id,
		tenantID:  tenantID,
		name:      name,
		email:     email,
		phone:     phone,
		chatID:    chatID,
		pushToken: pushToken,
		active:    active,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}, nil
}

func (r *Resident) ID() uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.id
}

func (r *Resident) TenantID() uint {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.tenantID
}

func (r *Resident) Name() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.name
}

func (r *Resident) Email() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.email
}

func (r *Resident) Phone() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.phone
}

func (r *Resident) ChatID() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.chatID
}

func (r *Resident) PushToken() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.pushToken
}

func (r *Resident) Active() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.active
}

func (r *Resident) CreatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.createdAt
}

func (r *Resident) UpdatedAt() time.Time {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.updatedAt
}

func (r *Resident) SetID(id uint) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.id != 0 {
		return fmt.Errorf("resident ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("resident ID cannot be zero")
	}
	r.id = id
	return nil
}
