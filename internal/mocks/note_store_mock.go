package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// TestifyMockNoteStore is a mock of store.NoteStore interface for use with testify/mock
type TestifyMockNoteStore struct {
	mock.Mock
}

var _ store.NoteStore = (*TestifyMockNoteStore)(nil)

// List is a mock implementation of store.NoteStore.List
func (m *TestifyMockNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	args := m.Called(ctx)
	if notes, ok := args.Get(0).([]*domain.Note); ok {
		return notes, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetByID is a mock implementation of store.NoteStore.GetByID
func (m *TestifyMockNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, id)
	if note, ok := args.Get(0).(*domain.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

// FindOneByUser is a mock implementation of store.NoteStore.FindOneByUser
func (m *TestifyMockNoteStore) FindOneByUser(ctx context.Context, userID uuid.UUID) (*domain.Note, error) {
	args := m.Called(ctx, userID)
	if note, ok := args.Get(0).(*domain.Note); ok {
		return note, args.Error(1)
	}
	return nil, args.Error(1)
}

// Create is a mock implementation of store.NoteStore.Create
func (m *TestifyMockNoteStore) Create(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// Update is a mock implementation of store.NoteStore.Update
func (m *TestifyMockNoteStore) Update(ctx context.Context, note *domain.Note) error {
	args := m.Called(ctx, note)
	return args.Error(0)
}

// Delete is a mock implementation of store.NoteStore.Delete
func (m *TestifyMockNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
