package repositories

import (
	"context"
	"fmt"

	"github.com/tenacity/erp/internal/app/models"
	"github.com/tenacity/erp/internal/domain/hostel"
	"github.com/tenacity/erp/internal/pkg/apperrors"
)

// StudentRepository holds the student collection
type StudentRepository struct {
	*collection[models.Student]
}

// NewStudentRepository creates a StudentRepository falling back to seed
func NewStudentRepository(store CollectionStore, seed func() []models.Student) *StudentRepository {
	return &StudentRepository{collection: newCollection(CollectionStudents, store, seed, nil)}
}

// FindByID returns one student or ErrStudentNotFound
func (r *StudentRepository) FindByID(ctx context.Context, id string) (models.Student, error) {
	for _, s := range r.All(ctx) {
		if s.ID == id {
			return s, nil
		}
	}
	return models.Student{}, fmt.Errorf("find student %q: %w", id, apperrors.ErrStudentNotFound)
}

// TransactionRepository holds the fee ledger
type TransactionRepository struct {
	*collection[models.FeeTransaction]
}

// NewTransactionRepository creates a TransactionRepository falling back to seed
func NewTransactionRepository(store CollectionStore, seed func() []models.FeeTransaction) *TransactionRepository {
	return &TransactionRepository{collection: newCollection(CollectionTransactions, store, seed, nil)}
}

// RoomRepository holds the hostel rooms. Loaded rooms are normalised so
// that the occupied count matches the occupant list.
type RoomRepository struct {
	*collection[models.HostelRoom]
}

// NewRoomRepository creates a RoomRepository falling back to seed
func NewRoomRepository(store CollectionStore, seed func() []models.HostelRoom) *RoomRepository {
	return &RoomRepository{collection: newCollection(CollectionRooms, store, seed, hostel.Normalize)}
}

// Repositories holds all the repository instances
type Repositories struct {
	Store        CollectionStore
	Students     *StudentRepository
	Transactions *TransactionRepository
	Rooms        *RoomRepository
}

// Seeds supplies the fallback data of every collection
type Seeds struct {
	Students     func() []models.Student
	Transactions func() []models.FeeTransaction
	Rooms        func() []models.HostelRoom
}

// NewRepositories initializes all repositories over one store
func NewRepositories(store CollectionStore, seeds Seeds) *Repositories {
	return &Repositories{
		Store:        store,
		Students:     NewStudentRepository(store, seeds.Students),
		Transactions: NewTransactionRepository(store, seeds.Transactions),
		Rooms:        NewRoomRepository(store, seeds.Rooms),
	}
}
