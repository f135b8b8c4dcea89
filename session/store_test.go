package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sanju-subash/Cloudnest-rag/billing"
	"github.com/sanju-subash/Cloudnest-rag/config"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	// Point at a port nothing listens on so the store runs without Redis
	cfg := &config.Config{
		RedisURL:       "localhost:1",
		SessionTimeout: 30 * time.Minute,
	}
	store := NewStore(cfg)
	t.Cleanup(store.Shutdown)
	return store
}

func TestStoreGetCreatesLazily(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, exists := store.Peek("alpha")
	assert.False(t, exists)

	sess := store.Get(ctx, "alpha")
	require.NotNil(t, sess)
	assert.Equal(t, "alpha", sess.ID)
	assert.True(t, sess.Order.Empty())
	assert.Equal(t, StageChooseMode, sess.Context.Stage)
	assert.Equal(t, "", sess.Context.Mode)

	// Same id returns the same session
	assert.Same(t, sess, store.Get(ctx, "alpha"))
	assert.Equal(t, 1, store.Count())
}

func TestStoreSessionsAreIndependent(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	a := store.Get(ctx, "a")
	b := store.Get(ctx, "b")

	a.Lock()
	a.Order.Set("Veg Salad", 2)
	a.Context.Mode = ModeDelivery
	a.Unlock()

	b.Lock()
	assert.True(t, b.Order.Empty())
	assert.Equal(t, "", b.Context.Mode)
	b.Unlock()
}

func TestStoreLatestBill(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	_, found := store.LatestBill("alpha")
	assert.False(t, found)

	sess := store.Get(ctx, "alpha")
	sess.Lock()
	sess.LatestBill = &billing.Bill{BillID: "CN-DEADBEEF", Total: 252}
	sess.Unlock()

	bill, found := store.LatestBill("alpha")
	require.True(t, found)
	assert.Equal(t, "CN-DEADBEEF", bill.BillID)
	assert.Equal(t, 252, bill.Total)
}

func TestStoreConcurrentGet(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			sess := store.Get(ctx, "shared")
			sess.Lock()
			sess.Order.Add("Veg Salad", 1)
			sess.Unlock()
		}()
	}
	wg.Wait()

	sess, _ := store.Peek("shared")
	assert.Equal(t, 32, sess.Order.Quantity("Veg Salad"))
	assert.Equal(t, 1, store.Count())
}

func TestCleanupInactive(t *testing.T) {
	cfg := &config.Config{RedisURL: "localhost:1", SessionTimeout: time.Millisecond}
	store := NewStore(cfg)
	t.Cleanup(store.Shutdown)
	ctx := context.Background()

	store.Get(ctx, "stale")
	time.Sleep(5 * time.Millisecond)
	store.CleanupInactive(ctx)

	assert.Equal(t, 0, store.Count())
}
