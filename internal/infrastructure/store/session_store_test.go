package store

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"honeypot-lab/internal/domain/models"
	"honeypot-lab/internal/domain/services"
	"honeypot-lab/internal/infrastructure/cache"
	"honeypot-lab/pkg/logger"
)

func newTestStore(t *testing.T) (*RedisSessionStore, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	rc := cache.NewFromClient(client, "honeypot:", logger.Nop())
	return NewRedisSessionStore(rc, time.Hour), mr
}

func TestSessionStoreRoundTrip(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	session := models.NewSession("sess-1")
	session.MessagesExchanged = 4
	session.ScamDetected = true
	session.Intelligence.UPIIDs = []string{"scam@upi"}
	session.AgentNotes = "UPI IDs: scam@upi"

	require.NoError(t, st.Put(ctx, session))

	got, err := st.Get(ctx, "sess-1")
	require.NoError(t, err)
	assert.Equal(t, 4, got.MessagesExchanged)
	assert.True(t, got.ScamDetected)
	assert.Equal(t, []string{"scam@upi"}, got.Intelligence.UPIIDs)
	assert.Equal(t, "UPI IDs: scam@upi", got.AgentNotes)
}

func TestSessionStoreMissingSession(t *testing.T) {
	st, _ := newTestStore(t)

	_, err := st.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestSessionStoreSetsTTL(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, models.NewSession("sess-2")))

	ttl := mr.TTL("honeypot:session:sess-2")
	assert.Equal(t, time.Hour, ttl)
}

func TestSessionStoreExpiry(t *testing.T) {
	st, mr := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, models.NewSession("sess-3")))
	mr.FastForward(2 * time.Hour)

	_, err := st.Get(ctx, "sess-3")
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}

func TestSessionStoreDelete(t *testing.T) {
	st, _ := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, st.Put(ctx, models.NewSession("sess-4")))
	require.NoError(t, st.Delete(ctx, "sess-4"))

	_, err := st.Get(ctx, "sess-4")
	assert.ErrorIs(t, err, services.ErrSessionNotFound)
}
