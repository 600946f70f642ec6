//go:build integration

package servicerequest_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	redissr "github.com/alanyang/roadside-relay/internal/adapter/redis/servicerequest"
	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
)

// newRepo uses a unique key prefix per test so runs never collide.
func newRepo(t *testing.T) *redissr.Repository {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set, skipping integration test")
	}
	rdb, err := redissr.Connect(context.Background(), addr)
	require.NoError(t, err)
	t.Cleanup(func() { rdb.Close() })
	return redissr.New(rdb, "test-"+uuid.NewString())
}

func TestRedisRepository(t *testing.T) {
	repo := newRepo(t)
	ctx := context.Background()

	first := domainsr.New("r1", "u1", "Civic", "tow", "a", "t1")
	second := domainsr.New("r2", "u1", "Civic", "fuel", "b", "t2")
	third := domainsr.New("r3", "u2", "Golf", "battery", "c", "t3")
	for _, r := range []domainsr.ServiceRequest{first, second, third} {
		_, err := repo.Create(ctx, r)
		require.NoError(t, err)
	}

	_, err := repo.Create(ctx, first)
	assert.ErrorIs(t, err, domainsr.ErrDuplicateID)

	got, err := repo.GetByID(ctx, "r2")
	require.NoError(t, err)
	assert.Equal(t, "fuel", got.Type)

	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, domainsr.ErrNotFound)

	u1 := "u1"
	mine, err := repo.List(ctx, domainsr.ListFilters{UserID: &u1})
	require.NoError(t, err)
	require.Len(t, mine, 2)
	assert.Equal(t, "r2", mine[0].ID)

	latest, err := repo.List(ctx, domainsr.ListFilters{Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "r3", latest[0].ID)
}
