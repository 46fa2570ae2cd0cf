package dispatch

import (
	"context"
	"sync"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/shared/logger"
)

// In-memory fakes shared by the dispatch tests.

type memoryDeliveryRepo struct {
	mu         sync.Mutex
	nextID     uint
	deliveries map[uint]*notification.Delivery
}

func newMemoryDeliveryRepo() *memoryDeliveryRepo {
	return &memoryDeliveryRepo{deliveries: make(map[uint]*notification.Delivery)}
}

func (r *memoryDeliveryRepo) Create(ctx context.Context, d *notification.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if err := d.SetID(r.nextID); err != nil {
		return err
	}
	r.deliveries[d.ID()] = d
	return nil
}

func (r *memoryDeliveryRepo) Update(ctx context.Context, d *notification.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[d.ID()] = d
	return nil
}

func (r *memoryDeliveryRepo) FindByID(ctx context.Context, id uint) (*notification.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deliveries[id], nil
}

func (r *memoryDeliveryRepo) FindByRecipient(ctx context.Context, recipientID uint, limit, offset int) ([]*notification.Delivery, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Delivery
	for _, d := range r.deliveries {
		if d.RecipientID() == recipientID {
			out = append(out, d)
		}
	}
	return out, int64(len(out)), nil
}

func (r *memoryDeliveryRepo) CountUnread(ctx context.Context, recipientID uint) (int64, error) {
	return 0, nil
}

func (r *memoryDeliveryRepo) FindRetryable(ctx context.Context, maxRetries, limit int) ([]*notification.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Delivery
	for _, d := range r.deliveries {
		if d.IsRetryEligible(maxRetries) {
			out = append(out, d)
		}
		if len(out) == limit {
			break
		}
	}
	return out, nil
}

func (r *memoryDeliveryRepo) MarkAllReadByRecipient(ctx context.Context, recipientID uint) error {
	return nil
}

func (r *memoryDeliveryRepo) all() []*notification.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*notification.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		out = append(out, d)
	}
	return out
}

type memoryPreferenceRepo struct {
	mu    sync.Mutex
	prefs []*notification.Preference
	err   error
}

func (r *memoryPreferenceRepo) Find(ctx context.Context, recipientID uint, channel vo.Channel, messageType vo.MessageType) (*notification.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.prefs {
		if p.RecipientID() == recipientID && p.Channel() == channel && p.Type() == messageType {
			return p, nil
		}
	}
	return nil, nil
}

func (r *memoryPreferenceRepo) Upsert(ctx context.Context, p *notification.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs = append(r.prefs, p)
	return nil
}

func (r *memoryPreferenceRepo) ListByRecipient(ctx context.Context, recipientID uint) ([]*notification.Preference, error) {
	return nil, nil
}

type memoryTemplateRepo struct {
	templates []*notification.Template
}

func (r *memoryTemplateRepo) Create(ctx context.Context, t *notification.Template) error {
	r.templates = append(r.templates, t)
	return nil
}

func (r *memoryTemplateRepo) Update(ctx context.Context, t *notification.Template) error {
	return nil
}

func (r *memoryTemplateRepo) FindByID(ctx context.Context, id uint) (*notification.Template, error) {
	return nil, nil
}

func (r *memoryTemplateRepo) FindActive(ctx context.Context, messageType vo.MessageType, channel *vo.Channel, scopeID *uint) (*notification.Template, error) {
	for _, t := range r.templates {
		if !t.Active() || t.Type() != messageType {
			continue
		}
		if !equalChannel(t.Channel(), channel) || !equalScope(t.ScopeID(), scopeID) {
			continue
		}
		return t, nil
	}
	return nil, nil
}

func (r *memoryTemplateRepo) List(ctx context.Context, limit, offset int) ([]*notification.Template, int64, error) {
	return r.templates, int64(len(r.templates)), nil
}

func equalChannel(a, b *vo.Channel) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

func equalScope(a, b *uint) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return *a == *b
}

// stubSender counts invocations and fails with a configurable error.
type stubSender struct {
	mu      sync.Mutex
	channel vo.Channel
	err     error
	calls   int
}

func (s *stubSender) Channel() vo.Channel {
	return s.channel
}

func (s *stubSender) Send(ctx context.Context, d *notification.Delivery) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls++
	return s.err
}

func (s *stubSender) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}
