package memory

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"childcare/internal/models"
	"childcare/internal/repository"
)

func TestLinkStoreLifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewLinkStore[models.GuardianChildLink]()
	clock := time.Date(2024, 9, 2, 8, 30, 0, 0, time.UTC)
	store.now = func() time.Time { return clock }

	pair := models.Pair{ParentID: 5, ChildID: 1}
	link := models.GuardianChildLink{GuardianID: 5, ChildID: 1, Relationship: "mother"}

	found, err := store.FindByPair(ctx, pair)
	require.NoError(t, err)
	assert.Nil(t, found)

	require.NoError(t, store.Insert(ctx, link))
	assert.ErrorIs(t, store.Insert(ctx, link), repository.ErrDuplicateLink)

	found, err = store.FindByPair(ctx, pair)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, clock, found.CreatedAt)

	clock = clock.Add(time.Hour)
	require.NoError(t, store.Update(ctx, models.GuardianChildLink{GuardianID: 5, ChildID: 1, Relationship: "guardian"}))
	found, err = store.FindByPair(ctx, pair)
	require.NoError(t, err)
	assert.Equal(t, "guardian", found.Relationship)
	assert.True(t, found.UpdatedAt.After(found.CreatedAt))

	require.NoError(t, store.DeleteByPair(ctx, pair))
	assert.ErrorIs(t, store.DeleteByPair(ctx, pair), repository.ErrNotFound)
	assert.ErrorIs(t, store.Update(ctx, link), repository.ErrNotFound)
}

func TestLinkStoreListsAreSortedAndNonNil(t *testing.T) {
	ctx := context.Background()
	store := NewLinkStore[models.AuthorizedPersonChildLink]()

	empty, err := store.ListByChild(ctx, 1)
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	for _, parent := range []int64{7, 3, 5} {
		require.NoError(t, store.Insert(ctx, models.AuthorizedPersonChildLink{AuthorizedPersonID: parent, ChildID: 1}))
	}
	require.NoError(t, store.Insert(ctx, models.AuthorizedPersonChildLink{AuthorizedPersonID: 3, ChildID: 2}))

	byChild, err := store.ListByChild(ctx, 1)
	require.NoError(t, err)
	require.Len(t, byChild, 3)
	assert.Equal(t, []int64{3, 5, 7}, []int64{byChild[0].AuthorizedPersonID, byChild[1].AuthorizedPersonID, byChild[2].AuthorizedPersonID})

	byParent, err := store.ListByParent(ctx, 3)
	require.NoError(t, err)
	require.Len(t, byParent, 2)
	assert.Equal(t, int64(1), byParent[0].ChildID)
	assert.Equal(t, int64(2), byParent[1].ChildID)
}

func TestLinkStoreConcurrentInsert(t *testing.T) {
	store := NewLinkStore[models.GuardianChildLink]()
	link := models.GuardianChildLink{GuardianID: 1, ChildID: 1}

	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		successes int
	)
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := store.Insert(context.Background(), link); err == nil {
				mu.Lock()
				successes++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, store.Len())
}

func TestIDSet(t *testing.T) {
	ctx := context.Background()
	set := NewIDSet(1, 2)

	ok, err := set.Exists(ctx, 1)
	require.NoError(t, err)
	assert.True(t, ok)

	set.Remove(1)
	set.Add(3)

	ok, _ = set.Exists(ctx, 1)
	assert.False(t, ok)
	ok, _ = set.Exists(ctx, 3)
	assert.True(t, ok)
}
