package notification

import (
	"fmt"
	"sync"
	"time"

	vo "habitat/internal/domain/notification/valueobjects"
)

// Template maps a (message type, optional channel, optional scope) to
// subject and body text with {{key}} placeholders. A nil channel means the
// template applies to any channel for its type; a nil scopeID makes it a
// tenant-global template that scope-specific templates override.
type Template struct {
	id          uint
	tenantID    uint
	messageType vo.MessageType
	channel     *vo.Channel
	scopeID     *uint
	subject     string
	body        string
	active      bool
	version     int
	createdAt   time.Time
	updatedAt   time.Time
	mu          sync.RWMutex
}

func NewTemplate(
	tenantID uint,
	messageType vo.MessageType,
	channel *vo.Channel,
	scopeID *uint,
	subject string,
	body string,
) (*Template, error) {
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}
	if channel != nil && !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel")
	}
	if len(body) == 0 {
		return nil, fmt.Errorf("body is required")
	}
	if len(subject) > 255 {
		return nil, fmt.Errorf("subject exceeds maximum length of 255 characters")
	}
	if len(body) > 10000 {
		return nil, fmt.Errorf("body exceeds maximum length of 10000 characters")
	}

	now := time.Now()
	return &Template{
		tenantID:    tenantID,
		messageType: messageType,
		channel:     channel,
		scopeID:     scopeID,
		subject:     subject,
		body:        body,
		active:      true,
		version:     1,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructTemplate(
	id uint,
	tenantID uint,
	messageType vo.MessageType,
	channel *vo.Channel,
	scopeID *uint,
	subject string,
	body string,
	active bool,
	version int,
	createdAt, updatedAt time.Time,
) (*Template, error) {
	if id == 0 {
		return nil, fmt.Errorf("template ID cannot be zero")
	}
	if !messageType.IsValid() {
		return nil, fmt.Errorf("invalid message type")
	}
	if channel != nil && !channel.IsValid() {
		return nil, fmt.Errorf("invalid channel")
	}

	return &Template{
		id:          id,
		tenantID:    tenantID,
		messageType: messageType,
		channel:     channel,
		scopeID:     scopeID,
		subject:     subject,
		body:        body,
		active:      active,
		version:     version,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}, nil
}

func (t *Template) ID() uint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.id
}

func (t *Template) TenantID() uint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.tenantID
}

func (t *Template) Type() vo.MessageType {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.messageType
}

func (t *Template) Channel() *vo.Channel {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.channel
}

func (t *Template) ScopeID() *uint {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.scopeID
}

func (t *Template) Subject() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.subject
}

func (t *Template) HasSubject() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.subject != ""
}

func (t *Template) Body() string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.body
}

func (t *Template) Active() bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.active
}

func (t *Template) Version() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.version
}

func (t *Template) CreatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.createdAt
}

func (t *Template) UpdatedAt() time.Time {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.updatedAt
}

func (t *Template) SetID(id uint) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.id != 0 {
		return fmt.Errorf("template ID is already set")
	}
	if id == 0 {
		return fmt.Errorf("template ID cannot be zero")
	}
	t.id = id
	return nil
}

// RenderSubject substitutes data into the subject text. The second return is
// false when the template carries no subject at all.
func (t *Template) RenderSubject(data map[string]string) (string, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if t.subject == "" {
		return "", false
	}
	return Substitute(t.subject, data), true
}

// RenderBody substitutes data into the body text.
func (t *Template) RenderBody(data map[string]string) string {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return Substitute(t.body, data)
}

func (t *Template) Activate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.active {
		return
	}
	t.active = true
	t.updatedAt = time.Now()
	t.version++
}

func (t *Template) Deactivate() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if !t.active {
		return
	}
	t.active = false
	t.updatedAt = time.Now()
	t.version++
}

func (t *Template) Update(subject, body string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(body) == 0 {
		return fmt.Errorf("body is required")
	}
	if len(subject) > 255 {
		return fmt.Errorf("subject exceeds maximum length of 255 characters")
	}
	if len(body) > 10000 {
		return fmt.Errorf("body exceeds maximum length of 10000 characters")
	}

	t.subject = subject
	t.body = body
	t.updatedAt = time.Now()
	t.version++
	return nil
}
