package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"todo-list-api/internal/domain"
	"todo-list-api/internal/testutil"
	"todo-list-api/pkg/utils"
)

func newUser(email string) *domain.User {
	return &domain.User{
		ID:           utils.NewID(),
		Email:        email,
		PasswordHash: "x",
		Role:         domain.RoleUser,
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserRepoEmailNormalization(t *testing.T) {
	r := NewUserRepo(testutil.OpenDB(t))

	require.NoError(t, r.Create(newUser("Alice@Example.COM")))

	u, err := r.FindByEmail("ALICE@example.com")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "alice@example.com", u.Email)

	exists, err := r.EmailExists("alice@EXAMPLE.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestUserRepoSoftDeletedInvisible(t *testing.T) {
	db := testutil.OpenDB(t)
	r := NewUserRepo(db)

	u := newUser("gone@example.com")
	now := time.Now().UTC()
	u.IsDeleted = true
	u.DeletedAt = &now
	require.NoError(t, r.Create(u))

	found, err := r.FindByEmail("gone@example.com")
	require.NoError(t, err)
	assert.Nil(t, found)

	found, err = r.FindByID(u.ID)
	require.NoError(t, err)
	assert.Nil(t, found)

	// 软删后的邮箱可重新注册
	exists, err := r.EmailExists("gone@example.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestUserRepoPurgeDeletedBefore(t *testing.T) {
	db := testutil.OpenDB(t)
	r := NewUserRepo(db)

	old := time.Now().UTC().AddDate(0, 0, -40)
	recent := time.Now().UTC().AddDate(0, 0, -5)

	stale := newUser("stale@example.com")
	stale.IsDeleted = true
	stale.DeletedAt = &old
	fresh := newUser("fresh@example.com")
	fresh.IsDeleted = true
	fresh.DeletedAt = &recent
	live := newUser("live@example.com")

	require.NoError(t, r.Create(stale))
	require.NoError(t, r.Create(fresh))
	require.NoError(t, r.Create(live))

	n, err := r.PurgeDeletedBefore(time.Now().UTC().AddDate(0, 0, -30))
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	var total int64
	require.NoError(t, db.Model(&domain.User{}).Count(&total).Error)
	assert.Equal(t, int64(2), total)
}
