package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"habitat/internal/domain/notification"
	vo "habitat/internal/domain/notification/valueobjects"
	"habitat/internal/infrastructure/persistence/migrations"
	"habitat/internal/shared/tenant"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, migrations.MigrateNotificationTables(db))
	return db
}

func createTestDelivery(t *testing.T, tenantID, recipientID uint, channel vo.Channel) *notification.Delivery {
	t.Helper()
	d, err := notification.NewDelivery(
		tenantID, recipientID, channel, vo.MessageTypeAnnouncement,
		"Pool closed", "Closed for cleaning on Tuesday",
		map[string]string{"date": "Tuesday"},
	)
	require.NoError(t, err)
	return d
}

func TestDeliveryRepository_CreateAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	t.Run("create assigns ID and round-trips fields", func(t *testing.T) {
		d := createTestDelivery(t, 1, 10, vo.ChannelEmail)
		require.NoError(t, repo.Create(ctx, d))
		assert.NotZero(t, d.ID())

		found, err := repo.FindByID(ctx, d.ID())
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, d.RecipientID(), found.RecipientID())
		assert.Equal(t, vo.ChannelEmail, found.Channel())
		assert.Equal(t, "Pool closed", found.Title())
		assert.Equal(t, map[string]string{"date": "Tuesday"}, found.Data())
		assert.Equal(t, vo.DeliveryStatusPending, found.Status())
	})

	t.Run("missing ID returns nil without error", func(t *testing.T) {
		found, err := repo.FindByID(ctx, 9999)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("tenant scope hides other tenants' records", func(t *testing.T) {
		d := createTestDelivery(t, 2, 20, vo.ChannelInApp)
		require.NoError(t, repo.Create(ctx, d))

		otherTenant := tenant.WithTenant(ctx, 3)
		found, err := repo.FindByID(otherTenant, d.ID())
		require.NoError(t, err)
		assert.Nil(t, found)

		sameTenant := tenant.WithTenant(ctx, 2)
		found, err = repo.FindByID(sameTenant, d.ID())
		require.NoError(t, err)
		assert.NotNil(t, found)
	})
}

func TestDeliveryRepository_StatusRoundTrip(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	d := createTestDelivery(t, 1, 30, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, d))

	require.NoError(t, d.BeginSending())
	require.NoError(t, d.RecordFailure("smtp timeout", 3))
	require.NoError(t, repo.Update(ctx, d))

	found, err := repo.FindByID(ctx, d.ID())
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, vo.DeliveryStatusPending, found.Status())
	assert.Equal(t, 1, found.RetryCount())
	require.NotNil(t, found.LastError())
	assert.Equal(t, "smtp timeout", *found.LastError())
}

func TestDeliveryRepository_FindRetryable(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	fresh := createTestDelivery(t, 1, 40, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, fresh))

	retryable := createTestDelivery(t, 1, 41, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, retryable))
	require.NoError(t, retryable.BeginSending())
	require.NoError(t, retryable.RecordFailure("timeout", 3))
	require.NoError(t, repo.Update(ctx, retryable))

	exhausted := createTestDelivery(t, 1, 42, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, exhausted))
	for i := 0; i < 3; i++ {
		require.NoError(t, exhausted.BeginSending())
		require.NoError(t, exhausted.RecordFailure("timeout", 3))
	}
	require.NoError(t, repo.Update(ctx, exhausted))

	sending := createTestDelivery(t, 1, 43, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, sending))
	require.NoError(t, sending.BeginSending())
	require.NoError(t, repo.Update(ctx, sending))

	found, err := repo.FindRetryable(ctx, 3, 100)
	require.NoError(t, err)
	require.Len(t, found, 2)

	ids := []uint{found[0].ID(), found[1].ID()}
	assert.Contains(t, ids, fresh.ID())
	assert.Contains(t, ids, retryable.ID())
}

// A record queued in memory and lost to a restart has status pending with
// zero attempts; the sweep must still pick it up.
func TestDeliveryRepository_FindRetryableIncludesZeroAttemptPending(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	stranded := createTestDelivery(t, 1, 44, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, stranded))

	found, err := repo.FindRetryable(ctx, 3, 100)
	require.NoError(t, err)
	require.NotEmpty(t, found)
	assert.Equal(t, stranded.ID(), found[0].ID())
	assert.Zero(t, found[0].RetryCount())
}

func TestDeliveryRepository_UnreadAndMarkAllRead(t *testing.T) {
	db := setupTestDB(t)
	repo := NewDeliveryRepository(db)
	ctx := context.Background()

	var lastDelivered *notification.Delivery
	for i := 0; i < 3; i++ {
		d := createTestDelivery(t, 1, 50, vo.ChannelInApp)
		require.NoError(t, repo.Create(ctx, d))
		require.NoError(t, d.MarkDelivered())
		require.NoError(t, repo.Update(ctx, d))
		lastDelivered = d
	}
	pending := createTestDelivery(t, 1, 50, vo.ChannelEmail)
	require.NoError(t, repo.Create(ctx, pending))

	count, err := repo.CountUnread(ctx, 50)
	require.NoError(t, err)
	assert.Equal(t, int64(3), count)

	before, err := repo.FindByID(ctx, lastDelivered.ID())
	require.NoError(t, err)
	require.NotNil(t, before)

	require.NoError(t, repo.MarkAllReadByRecipient(ctx, 50))

	after, err := repo.FindByID(ctx, lastDelivered.ID())
	require.NoError(t, err)
	require.NotNil(t, after)
	assert.Equal(t, before.Version()+1, after.Version())

	count, err = repo.CountUnread(ctx, 50)
	require.NoError(t, err)
	assert.Zero(t, count)

	deliveries, total, err := repo.FindByRecipient(ctx, 50, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)

	var read int
	for _, d := range deliveries {
		if d.Status() == vo.DeliveryStatusRead {
			read++
		}
	}
	assert.Equal(t, 3, read)
}

func TestTemplateRepository_FindActiveExactCell(t *testing.T) {
	db := setupTestDB(t)
	repo := NewTemplateRepository(db)
	ctx := context.Background()

	email := vo.ChannelEmail
	scopeID := uint(7)

	global, err := notification.NewTemplate(1, vo.MessageTypePaymentDue, nil, nil, "Global", "Global body")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, global))

	scoped, err := notification.NewTemplate(1, vo.MessageTypePaymentDue, &email, &scopeID, "Scoped", "Scoped body")
	require.NoError(t, err)
	require.NoError(t, repo.Create(ctx, scoped))

	t.Run("nil channel and scope matches only NULL columns", func(t *testing.T) {
		found, err := repo.FindActive(ctx, vo.MessageTypePaymentDue, nil, nil)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, global.ID(), found.ID())
	})

	t.Run("channel and scope match the exact cell", func(t *testing.T) {
		found, err := repo.FindActive(ctx, vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, scoped.ID(), found.ID())
	})

	t.Run("tenant scope hides other tenants' templates", func(t *testing.T) {
		otherTenant := tenant.WithTenant(ctx, 2)
		found, err := repo.FindActive(otherTenant, vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		assert.Nil(t, found)

		sameTenant := tenant.WithTenant(ctx, 1)
		found, err = repo.FindActive(sameTenant, vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, scoped.ID(), found.ID())
	})

	t.Run("each tenant resolves its own cell", func(t *testing.T) {
		theirs, err := notification.NewTemplate(2, vo.MessageTypePaymentDue, &email, &scopeID, "Tenant2", "Tenant2 body")
		require.NoError(t, err)
		require.NoError(t, repo.Create(ctx, theirs))

		found, err := repo.FindActive(tenant.WithTenant(ctx, 2), vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, theirs.ID(), found.ID())

		found, err = repo.FindActive(tenant.WithTenant(ctx, 1), vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, scoped.ID(), found.ID())
	})

	t.Run("inactive templates are invisible", func(t *testing.T) {
		scoped.Deactivate()
		require.NoError(t, repo.Update(ctx, scoped))

		found, err := repo.FindActive(tenant.WithTenant(ctx, 1), vo.MessageTypePaymentDue, &email, &scopeID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestPreferenceRepository_Upsert(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	first, err := notification.NewPreference(1, 60, vo.ChannelEmail, vo.MessageTypePaymentDue, false)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, first))

	found, err := repo.Find(ctx, 60, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Enabled())

	second, err := notification.NewPreference(1, 60, vo.ChannelEmail, vo.MessageTypePaymentDue, true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, second))

	found, err = repo.Find(ctx, 60, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Enabled())

	all, err := repo.ListByRecipient(ctx, 60)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestPreferenceRepository_TenantIsolation(t *testing.T) {
	db := setupTestDB(t)
	repo := NewPreferenceRepository(db)
	ctx := context.Background()

	mine, err := notification.NewPreference(1, 70, vo.ChannelEmail, vo.MessageTypePaymentDue, false)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, mine))

	found, err := repo.Find(tenant.WithTenant(ctx, 2), 70, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = repo.Find(tenant.WithTenant(ctx, 1), 70, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Enabled())

	// The same recipient/channel/type cell is a distinct row per tenant.
	theirs, err := notification.NewPreference(2, 70, vo.ChannelEmail, vo.MessageTypePaymentDue, true)
	require.NoError(t, err)
	require.NoError(t, repo.Upsert(ctx, theirs))

	found, err = repo.Find(tenant.WithTenant(ctx, 2), 70, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.True(t, found.Enabled())

	found, err = repo.Find(tenant.WithTenant(ctx, 1), 70, vo.ChannelEmail, vo.MessageTypePaymentDue)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.False(t, found.Enabled())
}
