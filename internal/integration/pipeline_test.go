//go:build integration

package integration_test

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pgsr "github.com/alanyang/roadside-relay/internal/adapter/postgres/servicerequest"
	"github.com/alanyang/roadside-relay/internal/domain/client"
	domainsr "github.com/alanyang/roadside-relay/internal/domain/servicerequest"
	srsvc "github.com/alanyang/roadside-relay/internal/service/servicerequest"
	"github.com/alanyang/roadside-relay/internal/testutil"
)

// ── test harness ──────────────────────────────────────────────────────────────

type testServices struct {
	pool     *pgxpool.Pool
	repo     *pgsr.Repository
	svc      *srsvc.Service
	notifier *testutil.CaptureNotifier
	userID   string
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	pool := testutil.SetupTestDB(t)
	repo := pgsr.New(pool)
	notifier := &testutil.CaptureNotifier{}

	return &testServices{
		pool:     pool,
		repo:     repo,
		svc:      srsvc.NewService(repo, notifier),
		notifier: notifier,
		userID:   "u-" + uuid.NewString(), // isolates rows for this test
	}
}

func (ts *testServices) request() domainsr.ServiceRequest {
	return domainsr.New("sr-"+uuid.NewString(), ts.userID, "Civic", "tow", "I-80 exit 12", "2026-10-17T09:00:00Z")
}

// ── tests ─────────────────────────────────────────────────────────────────────

func TestSubmit_PersistsThenBroadcasts(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	r := ts.request()
	created, err := ts.svc.Submit(ctx, r)
	require.NoError(t, err)

	stored, err := ts.repo.GetByID(ctx, r.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, stored.ID)

	calls := ts.notifier.Broadcasts(client.RoleProvider)
	require.Len(t, calls, 1)
	var frame map[string]any
	require.NoError(t, json.Unmarshal(calls[0].Payload, &frame))
	assert.Equal(t, "service_request", frame["rtype"])
	assert.Equal(t, ts.userID, frame["userId"])
	assert.NotContains(t, frame, "id")
}

func TestSubmit_DuplicateDoesNotBroadcastTwice(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	r := ts.request()
	_, err := ts.svc.Submit(ctx, r)
	require.NoError(t, err)

	_, err = ts.svc.Submit(ctx, r)
	require.ErrorIs(t, err, domainsr.ErrDuplicateID)

	assert.Len(t, ts.notifier.Broadcasts(client.RoleProvider), 1)
}

func TestSubmit_ListByUser(t *testing.T) {
	ts := newTestServices(t)
	ctx := context.Background()

	for range 2 {
		_, err := ts.svc.Submit(ctx, ts.request())
		require.NoError(t, err)
	}

	got, err := ts.svc.List(ctx, domainsr.ListFilters{UserID: &ts.userID})
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
