package repositories

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/pkg/apperrors"
	"github.com/tenacity/erp/internal/seed"
)

// failingStore loads from an inner store but refuses every save
type failingStore struct {
	*MemoryStore
}

func (failingStore) Save(context.Context, string, []byte) error {
	return errors.New("disk full")
}

func testSeeds() Seeds {
	return Seeds{Students: seed.Students, Transactions: seed.Transactions, Rooms: seed.Rooms}
}

func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	_, err := s.Load(ctx, "x")
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	payload := []byte(`[1,2]`)
	require.NoError(t, s.Save(ctx, "x", payload))
	payload[0] = '{'

	got, err := s.Load(ctx, "x")
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(got))

	require.NoError(t, s.Close())
	_, err = s.Load(ctx, "x")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
}

func TestCollection_FallsBackToSeed(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repos := NewRepositories(store, testSeeds())

	assert.Len(t, repos.Students.All(ctx), 10)
	assert.Len(t, repos.Rooms.All(ctx), 5)
	assert.Empty(t, repos.Transactions.All(ctx))
}

func TestCollection_FallsBackOnCorruptPayload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, CollectionStudents, []byte(`{not json`)))

	repo := NewStudentRepository(store, seed.Students)
	assert.Len(t, repo.All(ctx), 10)
}

func TestCollection_IgnoresLegacyDerivedFields(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, CollectionStudents,
		[]byte(`[{"id":"s1","name":"Aman Kumar","attendance":65,"marks":55,"gpa":6.8,"status":"Safe"}]`)))

	repo := NewStudentRepository(store, seed.Students)
	got, err := repo.FindByID(ctx, "s1")
	require.NoError(t, err)
	assert.Equal(t, 55.0, got.Marks)
}

func TestRoomRepository_NormalizesOnLoad(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	require.NoError(t, store.Save(ctx, CollectionRooms,
		[]byte(`[{"id":"R1","capacity":4,"occupied":3,"occupants":["s1"]}]`)))

	rooms := NewRoomRepository(store, seed.Rooms).All(ctx)
	require.Len(t, rooms, 1)
	assert.Equal(t, 1, rooms[0].Occupied)
}

func TestCollection_MutateWritesThrough(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewStudentRepository(store, seed.Students)

	m, err := repo.Mutate(ctx, func(items []models.Student) ([]models.Student, error) {
		return append(items, models.Student{ID: "s11", Name: "New"}), nil
	})
	require.NoError(t, err)
	assert.NoError(t, m.PersistErr)
	assert.Nil(t, m.Warnings())
	assert.Len(t, m.Items, 11)

	// a fresh repository over the same store sees the change
	fresh := NewStudentRepository(store, seed.Students)
	_, err = fresh.FindByID(ctx, "s11")
	assert.NoError(t, err)
}

func TestCollection_MutateErrorLeavesState(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(NewMemoryStore(), seed.Students)

	_, err := repo.Mutate(ctx, func(items []models.Student) ([]models.Student, error) {
		return nil, apperrors.ErrValidationFailed
	})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Len(t, repo.All(ctx), 10)
}

func TestCollection_PersistFailureKeepsMemoryState(t *testing.T) {
	ctx := context.Background()
	repo := NewStudentRepository(failingStore{NewMemoryStore()}, seed.Students)

	m, err := repo.Mutate(ctx, func(items []models.Student) ([]models.Student, error) {
		return items[:1], nil
	})
	require.NoError(t, err)
	assert.ErrorIs(t, m.PersistErr, apperrors.ErrPersistenceFailure)
	assert.Len(t, m.Warnings(), 1)
	assert.Len(t, repo.All(ctx), 1)
}

func TestCollection_ResetAndReload(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewRoomRepository(store, seed.Rooms)

	_, err := repo.Mutate(ctx, func(items []models.HostelRoom) ([]models.HostelRoom, error) {
		return items[:2], nil
	})
	require.NoError(t, err)
	assert.Len(t, repo.All(ctx), 2)

	m := repo.Reset(ctx)
	assert.NoError(t, m.PersistErr)
	assert.Len(t, m.Items, 5)

	require.NoError(t, store.Save(ctx, CollectionRooms, []byte(`[]`)))
	assert.Len(t, repo.All(ctx), 5)
	repo.Reload()
	assert.Empty(t, repo.All(ctx))
}

func TestCollection_SeedIfMissing(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewTransactionRepository(store, seed.Transactions)

	created, err := repo.SeedIfMissing(ctx)
	require.NoError(t, err)
	assert.True(t, created)

	payload, err := store.Load(ctx, CollectionTransactions)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(payload))

	created, err = repo.SeedIfMissing(ctx)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, CollectionTransactions, repo.Name())
}

func TestStudentRepository_FindByIDMissing(t *testing.T) {
	_, err := NewStudentRepository(NewMemoryStore(), seed.Students).FindByID(context.Background(), "nope")
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.ErrorIs(t, err, apperrors.ErrResourceNotFound)
}
