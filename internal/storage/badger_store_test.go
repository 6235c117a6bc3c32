package storage

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devghori1264/aerophoenix/osplugin/internal/models"
)

func newTestStore(t *testing.T) Store {
	t.Helper()
	store, err := NewBadgerStore(t.TempDir())
	require.NoError(t, err, "open badger")
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestCreateGetUpdateDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	err := store.CreateInstance(ctx, &models.Instance{
		InstanceID:        "inst-1",
		HostID:            "10.0.0.1",
		StackName:         "eg-0a1b2c3d",
		OperationalStatus: models.StatusInstantiating,
		Generation:        1,
	})
	require.NoError(t, err)

	got, err := store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, "10.0.0.1", got.HostID)
	assert.Equal(t, models.StatusInstantiating, got.OperationalStatus)
	assert.False(t, got.CreatedAt.IsZero())

	updated, err := store.UpdateInstance(ctx, "inst-1", func(m *models.Instance) error {
		m.RemoteHandle = "stack-id"
		m.OperationalStatus = models.StatusInstantiated
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "stack-id", updated.RemoteHandle)

	got, err = store.GetInstance(ctx, "inst-1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusInstantiated, got.OperationalStatus)
	assert.Equal(t, "stack-id", got.StackRef())

	require.NoError(t, store.DeleteInstance(ctx, "inst-1", nil))
	_, err = store.GetInstance(ctx, "inst-1")
	assert.ErrorIs(t, err, ErrNotFound)

	// deleting an absent record without a guard is a no-op
	assert.NoError(t, store.DeleteInstance(ctx, "inst-1", nil))
}

func TestCreateRejectsDuplicate(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.CreateInstance(ctx, &models.Instance{InstanceID: "dup", HostID: "a"}))
	err := store.CreateInstance(ctx, &models.Instance{InstanceID: "dup", HostID: "b"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err := store.GetInstance(ctx, "dup")
	require.NoError(t, err)
	assert.Equal(t, "a", got.HostID, "rejected create must not overwrite")
}

func TestConcurrentCreateSingleWinner(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := store.CreateInstance(ctx, &models.Instance{InstanceID: "race"})
			if err == nil {
				wins.Add(1)
				return
			}
			if !errors.Is(err, ErrAlreadyExists) {
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, int32(1), wins.Load())
}

func TestUpdateAbortsOnCallbackError(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateInstance(ctx, &models.Instance{InstanceID: "x", OperationInfo: "before"}))

	boom := errors.New("boom")
	_, err := store.UpdateInstance(ctx, "x", func(m *models.Instance) error {
		m.OperationInfo = "after"
		return boom
	})
	assert.ErrorIs(t, err, boom)

	got, err := store.GetInstance(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, "before", got.OperationInfo)

	_, err = store.UpdateInstance(ctx, "missing", func(*models.Instance) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteGuard(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()
	require.NoError(t, store.CreateInstance(ctx, &models.Instance{InstanceID: "g", Generation: 2}))

	stale := errors.New("stale")
	err := store.DeleteInstance(ctx, "g", func(m *models.Instance) error {
		if m.Generation != 1 {
			return stale
		}
		return nil
	})
	assert.ErrorIs(t, err, stale)
	_, err = store.GetInstance(ctx, "g")
	require.NoError(t, err, "vetoed delete must keep the record")

	err = store.DeleteInstance(ctx, "missing", func(*models.Instance) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListInstances(t *testing.T) {
	store, err := NewInMemoryBadgerStore()
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, store.CreateInstance(ctx, &models.Instance{InstanceID: id}))
	}
	list, err := store.ListInstances(ctx)
	require.NoError(t, err)
	ids := make([]string, 0, len(list))
	for _, m := range list {
		ids = append(ids, m.InstanceID)
	}
	assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
}
