package usecases

import (
	"context"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"habitat/internal/application/notification/dispatch"
	"habitat/internal/application/notification/dto"
	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/domain/resident"
	"habitat/internal/shared/errors"
	"habitat/internal/shared/logger"
)

func testLogger() logger.Interface {
	return logger.NewLoggerWithSlog(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

type fakeResidentRepo struct {
	residents map[uint]*resident.Resident
	scopes    map[uint][]uint
}

func newFakeResidentRepo() *fakeResidentRepo {
	return &fakeResidentRepo{
		residents: make(map[uint]*resident.Resident),
		scopes:    make(map[uint][]uint),
	}
}

func (r *fakeResidentRepo) add(t *testing.T, id uint) *resident.Resident {
	t.Helper()
	res, err := resident.ReconstructResident(
		id, 1, "Resident", "resident@example.com", "+15550100", 0, "", true,
		time.Now(), time.Now(),
	)
	require.NoError(t, err)
	r.residents[id] = res
	return res
}

func (r *fakeResidentRepo) Create(_ context.Context, res *resident.Resident) error {
	r.residents[res.ID()] = res
	return nil
}

func (r *fakeResidentRepo) FindByID(_ context.Context, id uint) (*resident.Resident, error) {
	return r.residents[id], nil
}

func (r *fakeResidentRepo) FindByIDs(_ context.Context, ids []uint) ([]*resident.Resident, error) {
	var out []*resident.Resident
	for _, id := range ids {
		if res, ok := r.residents[id]; ok {
			out = append(out, res)
		}
	}
	return out, nil
}

func (r *fakeResidentRepo) FindActiveIDsByScope(_ context.Context, scopeID uint) ([]uint, error) {
	return r.scopes[scopeID], nil
}

type fakeDeliveryRepo struct {
	mu         sync.Mutex
	nextID     uint
	deliveries map[uint]*notification.Delivery
}

func newFakeDeliveryRepo() *fakeDeliveryRepo {
	return &fakeDeliveryRepo{deliveries: make(map[uint]*notification.Delivery)}
}

func (r *fakeDeliveryRepo) Create(_ context.Context, d *notification.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.nextID++
	if err := d.SetID(r.nextID); err != nil {
		return err
	}
	r.deliveries[d.ID()] = d
	return nil
}

func (r *fakeDeliveryRepo) Update(_ context.Context, d *notification.Delivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deliveries[d.ID()] = d
	return nil
}

func (r *fakeDeliveryRepo) FindByID(_ context.Context, id uint) (*notification.Delivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.deliveries[id], nil
}

func (r *fakeDeliveryRepo) FindByRecipient(_ context.Context, recipientID uint, limit, offset int) ([]*notification.Delivery, int64, error) {
	all := r.byRecipient(recipientID)
	return all, int64(len(all)), nil
}

func (r *fakeDeliveryRepo) CountUnread(_ context.Context, recipientID uint) (int64, error) {
	var count int64
	for _, d := range r.byRecipient(recipientID) {
		if d.Status().IsReadable() {
			count++
		}
	}
	return count, nil
}

func (r *fakeDeliveryRepo) FindRetryable(_ context.Context, maxRetries, limit int) ([]*notification.Delivery, error) {
	return nil, nil
}

func (r *fakeDeliveryRepo) MarkAllReadByRecipient(_ context.Context, recipientID uint) error {
	for _, d := range r.byRecipient(recipientID) {
		if d.Status().IsReadable() {
			if err := d.MarkRead(); err != nil {
				return err
			}
		}
	}
	return nil
}

func (r *fakeDeliveryRepo) byRecipient(recipientID uint) []*notification.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Delivery
	for _, d := range r.deliveries {
		if d.RecipientID() == recipientID {
			out = append(out, d)
		}
	}
	return out
}

func (r *fakeDeliveryRepo) all() []*notification.Delivery {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*notification.Delivery, 0, len(r.deliveries))
	for _, d := range r.deliveries {
		out = append(out, d)
	}
	return out
}

type prefKey struct {
	recipientID uint
	channel     vo.Channel
	messageType vo.MessageType
}

type fakePreferenceRepo struct {
	mu    sync.Mutex
	prefs map[prefKey]*notification.Preference
}

func newFakePreferenceRepo() *fakePreferenceRepo {
	return &fakePreferenceRepo{prefs: make(map[prefKey]*notification.Preference)}
}

func (r *fakePreferenceRepo) Find(_ context.Context, recipientID uint, channel vo.Channel, messageType vo.MessageType) (*notification.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.prefs[prefKey{recipientID, channel, messageType}], nil
}

func (r *fakePreferenceRepo) Upsert(_ context.Context, p *notification.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.prefs[prefKey{p.RecipientID(), p.Channel(), p.Type()}] = p
	return nil
}

func (r *fakePreferenceRepo) ListByRecipient(_ context.Context, recipientID uint) ([]*notification.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*notification.Preference
	for k, p := range r.prefs {
		if k.recipientID == recipientID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePreferenceRepo) disable(t *testing.T, recipientID uint, channel vo.Channel, messageType vo.MessageType) {
	t.Helper()
	p, err := notification.NewPreference(1, recipientID, channel, messageType, false)
	require.NoError(t, err)
	require.NoError(t, r.Upsert(context.Background(), p))
}

type fakeTemplateRepo struct {
	templates []*notification.Template
}

func (r *fakeTemplateRepo) Create(_ context.Context, t *notification.Template) error {
	r.templates = append(r.templates, t)
	return nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, _ *notification.Template) error { return nil }

func (r *fakeTemplateRepo) FindByID(_ context.Context, _ uint) (*notification.Template, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) FindActive(_ context.Context, messageType vo.MessageType, channel *vo.Channel, scopeID *uint) (*notification.Template, error) {
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

func (r *fakeTemplateRepo) List(_ context.Context, _, _ int) ([]*notification.Template, int64, error) {
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

// passthroughTx runs the function directly, standing in for a database
// transaction.
type passthroughTx struct{}

func (passthroughTx) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// okSender acknowledges every send.
type okSender struct {
	channel vo.Channel
}

func (s *okSender) Channel() vo.Channel { return s.channel }

func (s *okSender) Send(_ context.Context, _ *notification.Delivery) error { return nil }

type sendFixture struct {
	residents   *fakeResidentRepo
	deliveries  *fakeDeliveryRepo
	preferences *fakePreferenceRepo
	templates   *fakeTemplateRepo
	dispatcher  *dispatch.Dispatcher
	send        *SendUseCase
	sendToScope *SendToScopeUseCase
}

func newSendFixture(t *testing.T) *sendFixture {
	t.Helper()
	log := testLogger()
	residents := newFakeResidentRepo()
	deliveries := newFakeDeliveryRepo()
	preferences := newFakePreferenceRepo()
	templates := &fakeTemplateRepo{}

	senders := make([]dispatch.ChannelSender, 0, len(vo.AllChannels()))
	for _, c := range vo.AllChannels() {
		if c.RequiresTransport() {
			senders = append(senders, &okSender{channel: c})
		}
	}

	dispatcher := dispatch.NewDispatcher(
		deliveries,
		dispatch.NewSenderRegistry(senders...),
		dispatch.Config{Workers: 2, QueueSize: 32, MaxRetries: 3},
		log,
	)
	dispatcher.Start()

	gate := dispatch.NewPreferenceGate(preferences, log)
	resolver := dispatch.NewTemplateResolver(templates, log)

	return &sendFixture{
		residents:   residents,
		deliveries:  deliveries,
		preferences: preferences,
		templates:   templates,
		dispatcher:  dispatcher,
		send:        NewSendUseCase(residents, deliveries, gate, resolver, dispatcher, passthroughTx{}, log),
		sendToScope: NewSendToScopeUseCase(residents, deliveries, gate, resolver, dispatcher, passthroughTx{}, log),
	}
}

// drain waits for every submitted delivery to be dispatched.
func (f *sendFixture) drain() {
	f.dispatcher.Stop()
}

func TestSend_DisabledPreferenceSkipsChannel(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 42)
	f.preferences.disable(t, 42, vo.ChannelEmail, vo.MessageTypePaymentDue)

	receipt, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "payment_due",
		RecipientIDs: []uint{42},
		Channels:     []string{"in_app", "email"},
		Title:        "Payment due",
		Body:         "Your payment is due soon",
	})
	f.drain()

	require.NoError(t, err)
	assert.Equal(t, 1, receipt.Created)
	assert.Equal(t, 1, receipt.Skipped)

	all := f.deliveries.all()
	require.Len(t, all, 1)
	assert.Equal(t, vo.ChannelInApp, all[0].Channel())
	assert.Equal(t, vo.DeliveryStatusDelivered, all[0].Status())
}

func TestSend_NoPreferenceRowsCreatesEveryChannel(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 7)

	receipt, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "maintenance",
		RecipientIDs: []uint{7},
		Channels:     []string{"in_app", "email"},
		Title:        "Water shutoff",
		Body:         "Maintenance on Tuesday",
	})
	f.drain()

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Created)
	assert.Equal(t, 0, receipt.Skipped)
	assert.Len(t, f.deliveries.all(), 2)
}

func TestSend_TemplateResolvedAndSubstituted(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 9)

	tmpl, err := notification.NewTemplate(1, vo.MessageTypePaymentDue, nil, nil,
		"Payment of {{amount}} due", "Hi {{name}}, {{amount}} is due by {{date}}.")
	require.NoError(t, err)
	tmpl.Activate()
	require.NoError(t, f.templates.Create(context.Background(), tmpl))

	_, err = f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "payment_due",
		RecipientIDs: []uint{9},
		Channels:     []string{"in_app"},
		Title:        "fallback title",
		Body:         "fallback body",
		Data:         map[string]string{"name": "Ana", "amount": "$120", "date": "2026-10-01"},
	})
	f.drain()

	require.NoError(t, err)
	all := f.deliveries.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Payment of $120 due", all[0].Title())
	assert.Equal(t, "Hi Ana, $120 is due by 2026-10-01.", all[0].Body())
}

func TestSend_RawFallbackGetsSubstitution(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 3)

	_, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "announcement",
		RecipientIDs: []uint{3},
		Channels:     []string{"in_app"},
		Title:        "Notice for {{name}}",
		Body:         "Hello {{name}}, see {{missing}}",
		Data:         map[string]string{"name": "Bo"},
	})
	f.drain()

	require.NoError(t, err)
	all := f.deliveries.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Notice for Bo", all[0].Title())
	assert.Equal(t, "Hello Bo, see {{missing}}", all[0].Body())
}

func TestSend_UnknownRecipientFailsWholeRequest(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 1)

	receipt, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "announcement",
		RecipientIDs: []uint{1, 999},
		Title:        "Hello",
		Body:         "World",
	})
	f.drain()

	require.Error(t, err)
	assert.True(t, errors.IsNotFoundError(err))
	assert.Nil(t, receipt)
	assert.Empty(t, f.deliveries.all())
}

func TestSend_DefaultsToAllChannels(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 5)

	receipt, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "announcement",
		RecipientIDs: []uint{5},
		Title:        "Pool closed",
		Body:         "Closed for cleaning",
	})
	f.drain()

	require.NoError(t, err)
	assert.Equal(t, len(vo.AllChannels()), receipt.Created)
}

func TestSend_InvalidMessageType(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 5)

	_, err := f.send.Execute(context.Background(), &dto.SendRequest{
		MessageType:  "carrier_pigeon",
		RecipientIDs: []uint{5},
		Title:        "x",
		Body:         "y",
	})
	f.drain()

	require.Error(t, err)
	assert.True(t, errors.IsValidationError(err))
}

func TestSendToScope_ResolvesActiveMembers(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 11)
	f.residents.add(t, 12)
	f.residents.scopes[100] = []uint{11, 12}

	receipt, err := f.sendToScope.Execute(context.Background(), &dto.SendToScopeRequest{
		MessageType: "announcement",
		ScopeID:     100,
		Channels:    []string{"in_app"},
		Title:       "HOA meeting",
		Body:        "Thursday 7pm",
	})
	f.drain()

	require.NoError(t, err)
	assert.Equal(t, 2, receipt.Created)
	assert.Len(t, f.deliveries.all(), 2)
}

func TestSendToScope_EmptyScopeIsNoop(t *testing.T) {
	f := newSendFixture(t)

	receipt, err := f.sendToScope.Execute(context.Background(), &dto.SendToScopeRequest{
		MessageType: "announcement",
		ScopeID:     55,
		Title:       "Hello",
		Body:        "World",
	})
	f.drain()

	require.NoError(t, err)
	assert.Equal(t, 0, receipt.Created)
	assert.Empty(t, f.deliveries.all())
}

func TestSendToScope_ScopeTemplateWins(t *testing.T) {
	f := newSendFixture(t)
	f.residents.add(t, 21)
	f.residents.scopes[200] = []uint{21}

	scopeID := uint(200)
	global, err := notification.NewTemplate(1, vo.MessageTypeAnnouncement, nil, nil,
		"Global subject", "Global body")
	require.NoError(t, err)
	scoped, err := notification.NewTemplate(1, vo.MessageTypeAnnouncement, nil, &scopeID,
		"Scoped subject", "Scoped body")
	require.NoError(t, err)
	require.NoError(t, f.templates.Create(context.Background(), scoped))
	require.NoError(t, f.templates.Create(context.Background(), global))

	_, err = f.sendToScope.Execute(context.Background(), &dto.SendToScopeRequest{
		MessageType: "announcement",
		ScopeID:     200,
		Channels:    []string{"in_app"},
		Title:       "fallback",
		Body:        "fallback",
	})
	f.drain()

	require.NoError(t, err)
	all := f.deliveries.all()
	require.Len(t, all, 1)
	assert.Equal(t, "Scoped subject", all[0].Title())
	assert.Equal(t, "Scoped body", all[0].Body())
}
