package session

import (
	"context"
	"testing"
	"time"

	"tripplanner/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleItinerary() *models.Itinerary {
	return &models.Itinerary{
		ID:          "it-1",
		SessionID:   "sess-1",
		Destination: "Lisbon",
		People:      2,
		Budget:      1500,
		CheckIn:     "2024-06-01",
		CheckOut:    "2024-06-05",
		Days:        4,
		Result:      "1. Hotel Alfama",
		CreatedAt:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
	}
}

func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	got, err := store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	require.NoError(t, store.Set(ctx, "sess-1", sampleItinerary()))
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, sampleItinerary(), got)

	other, err := store.Get(ctx, "sess-2")
	require.NoError(t, err)
	assert.Nil(t, other)

	require.NoError(t, store.Clear(ctx, "sess-1"))
	got, err = store.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewRedisStore(client, time.Hour)
	exerciseStore(t, store)

	require.NoError(t, store.Set(context.Background(), "sess-1", sampleItinerary()))
	mr.FastForward(2 * time.Hour)
	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStore(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	exerciseStore(t, store)

	now := time.Now()
	store.now = func() time.Time { return now }
	require.NoError(t, store.Set(context.Background(), "sess-1", sampleItinerary()))
	store.now = func() time.Time { return now.Add(2 * time.Hour) }
	got, err := store.Get(context.Background(), "sess-1")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreEvictsAbandonedSessions(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	now := time.Now()
	store.now = func() time.Time { return now }

	require.NoError(t, store.Set(context.Background(), "abandoned", sampleItinerary()))
	require.NoError(t, store.Set(context.Background(), "active", sampleItinerary()))

	// Within the ttl nothing is swept.
	now = now.Add(30 * time.Minute)
	require.NoError(t, store.Set(context.Background(), "active", sampleItinerary()))
	assert.Len(t, store.entries, 2)

	// "abandoned" is never read again; a later Set from another session drops it.
	now = now.Add(45 * time.Minute)
	require.NoError(t, store.Set(context.Background(), "newcomer", sampleItinerary()))

	store.mu.RLock()
	_, abandoned := store.entries["abandoned"]
	_, active := store.entries["active"]
	store.mu.RUnlock()
	assert.False(t, abandoned)
	assert.True(t, active)
}
