package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"habitat/internal/domain/resident"
	"habitat/internal/infrastructure/persistence/models"
)

func createTestResident(t *testing.T, db *gorm.DB, repo resident.Repository, tenantID uint, name string) *resident.Resident {
	t.Helper()
	res, err := resident.NewResident(tenantID, name, name+"@example.com", "+15550100")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), res))
	return res
}

func addMembership(t *testing.T, db *gorm.DB, scopeID, residentID uint, active bool) {
	t.Helper()
	require.NoError(t, db.Create(&models.ScopeMembershipModel{
		TenantID:   1,
		ScopeID:    scopeID,
		ResidentID: residentID,
		Active:     active,
	}).Error)
}

func TestResidentRepository_FindByIDs(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResidentRepository(db)
	ctx := context.Background()

	a := createTestResident(t, db, repo, 1, "ana")
	b := createTestResident(t, db, repo, 1, "bo")

	found, err := repo.FindByIDs(ctx, []uint{a.ID(), b.ID(), 9999})
	require.NoError(t, err)
	assert.Len(t, found, 2)
}

func TestResidentRepository_FindActiveIDsByScope(t *testing.T) {
	db := setupTestDB(t)
	repo := NewResidentRepository(db)
	ctx := context.Background()

	member := createTestResident(t, db, repo, 1, "member")
	former := createTestResident(t, db, repo, 1, "former")
	outsider := createTestResident(t, db, repo, 1, "outsider")

	addMembership(t, db, 100, member.ID(), true)
	addMembership(t, db, 100, former.ID(), false)
	addMembership(t, db, 200, outsider.ID(), true)

	ids, err := repo.FindActiveIDsByScope(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, []uint{member.ID()}, ids)
}
