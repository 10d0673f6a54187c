package lock

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocal_Serialises(t *testing.T) {
	l := NewLocal()
	var (
		mu      sync.Mutex
		inside  int
		maxSeen int
		wg      sync.WaitGroup
	)
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock, err := l.Lock(context.Background(), "registrations")
			if err != nil {
				t.Error(err)
				return
			}
			mu.Lock()
			inside++
			if inside > maxSeen {
				maxSeen = inside
			}
			mu.Unlock()
			time.Sleep(time.Millisecond)
			mu.Lock()
			inside--
			mu.Unlock()
			unlock()
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, maxSeen)
}

func TestLocal_RespectsContext(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = l.Lock(ctx, "k")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// other keys are independent
	other, err := l.Lock(context.Background(), "other")
	require.NoError(t, err)
	other()
}

func TestLocal_UnlockIsIdempotent(t *testing.T) {
	l := NewLocal()
	unlock, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	unlock()
	unlock()

	again, err := l.Lock(context.Background(), "k")
	require.NoError(t, err)
	again()
}

func newTestRedis(t *testing.T, ttl time.Duration) (*Redis, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	r, err := NewRedisFromURL(context.Background(), "redis://"+mr.Addr(), ttl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = r.Close() })
	return r, mr
}

func TestRedis_Exclusive(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, 5*time.Second)

	unlock, err := r.Lock(ctx, "test-exclusive")
	require.NoError(t, err)
	assert.True(t, mr.Exists(keyPrefix+"test-exclusive"))
	assert.Equal(t, 5*time.Second, mr.TTL(keyPrefix+"test-exclusive"))

	short, cancel := context.WithTimeout(ctx, 150*time.Millisecond)
	defer cancel()
	_, err = r.Lock(short, "test-exclusive")
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	unlock()
	assert.False(t, mr.Exists(keyPrefix+"test-exclusive"))

	again, err := r.Lock(ctx, "test-exclusive")
	require.NoError(t, err)
	again()
}

func TestRedis_ExpiredHolderCannotReleaseNewOwner(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Second)
	key := keyPrefix + "expiry"

	stale, err := r.Lock(ctx, "expiry")
	require.NoError(t, err)
	mr.FastForward(2 * time.Second)
	assert.False(t, mr.Exists(key), "lock expires with its ttl")

	fresh, err := r.Lock(ctx, "expiry")
	require.NoError(t, err)
	token, err := mr.Get(key)
	require.NoError(t, err)

	stale()
	got, err := mr.Get(key)
	require.NoError(t, err)
	assert.Equal(t, token, got, "release only deletes its own token")

	fresh()
	assert.False(t, mr.Exists(key))
}

func TestRedis_ServerDown(t *testing.T) {
	ctx := context.Background()
	r, mr := newTestRedis(t, time.Second)
	addr := mr.Addr()
	mr.Close()

	_, err := r.Lock(ctx, "k")
	assert.ErrorContains(t, err, "redis lock k")

	_, err = NewRedisFromURL(ctx, "redis://"+addr, time.Second)
	assert.ErrorContains(t, err, "redis ping")
}
