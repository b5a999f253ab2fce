package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/mocks"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/phrazzld/notes-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newNoteServiceWithMocks() (service.NoteService, *mocks.TestifyMockNoteStore, *mocks.TestifyMockUserStore) {
	notes := &mocks.TestifyMockNoteStore{}
	users := &mocks.TestifyMockUserStore{}
	return service.NewNoteService(notes, users, nil), notes, users
}

func existingNote(owner uuid.UUID, ticket int64) *domain.Note {
	return &domain.Note{
		ID:     uuid.New(),
		UserID: owner,
		Title:  "title",
		Text:   "text",
		Ticket: ticket,
	}
}

func TestNoteService_List(t *testing.T) {
	t.Parallel()

	t.Run("empty ledger is not found", func(t *testing.T) {
		t.Parallel()
		svc, notes, _ := newNoteServiceWithMocks()
		notes.On("List", mock.Anything).Return([]*domain.Note{}, nil)

		_, err := svc.List(context.Background())
		assertServiceError(t, err, service.ErrNotFound, "No notes found")
	})

	t.Run("enriches notes with usernames", func(t *testing.T) {
		t.Parallel()
		svc, notes, users := newNoteServiceWithMocks()
		alice := existingUser("alice")
		bob := existingUser("bob")
		ghost := uuid.New()
		all := []*domain.Note{existingNote(alice.ID, 1), existingNote(bob.ID, 2), existingNote(ghost, 3)}

		notes.On("List", mock.Anything).Return(all, nil)
		users.On("GetByID", mock.Anything, alice.ID).Return(alice, nil)
		users.On("GetByID", mock.Anything, bob.ID).Return(bob, nil)
		users.On("GetByID", mock.Anything, ghost).Return(nil, store.ErrUserNotFound)

		got, err := svc.List(context.Background())
		require.NoError(t, err)
		require.Len(t, got, 3)
		assert.Equal(t, "alice", got[0].Username)
		assert.Equal(t, int64(1), got[0].Ticket)
		assert.Equal(t, "bob", got[1].Username)
		assert.Empty(t, got[2].Username)
		assert.Equal(t, int64(3), got[2].Ticket)
	})

	t.Run("owner lookup failure fails the list", func(t *testing.T) {
		t.Parallel()
		svc, notes, users := newNoteServiceWithMocks()
		owner := uuid.New()
		notes.On("List", mock.Anything).Return([]*domain.Note{existingNote(owner, 1)}, nil)
		users.On("GetByID", mock.Anything, owner).Return(nil, errors.New("db down"))

		_, err := svc.List(context.Background())
		require.Error(t, err)
	})
}

func TestNoteService_Create(t *testing.T) {
	t.Parallel()

	owner := existingUser("dave")

	tests := []struct {
		name    string
		input   service.CreateNoteInput
		setup   func(notes *mocks.TestifyMockNoteStore, users *mocks.TestifyMockUserStore)
		kind    error
		message string
	}{
		{
			name:    "missing title",
			input:   service.CreateNoteInput{UserID: owner.ID.String(), Text: "x"},
			kind:    service.ErrValidation,
			message: "All fields are required",
		},
		{
			name:    "missing user",
			input:   service.CreateNoteInput{Title: "t", Text: "x"},
			kind:    service.ErrValidation,
			message: "All fields are required",
		},
		{
			name:    "malformed user id",
			input:   service.CreateNoteInput{UserID: "nope", Title: "t", Text: "x"},
			kind:    service.ErrValidation,
			message: "User does not exist",
		},
		{
			name:  "unknown user",
			input: service.CreateNoteInput{UserID: owner.ID.String(), Title: "t", Text: "x"},
			setup: func(_ *mocks.TestifyMockNoteStore, users *mocks.TestifyMockUserStore) {
				users.On("GetByID", mock.Anything, owner.ID).Return(nil, store.ErrUserNotFound)
			},
			kind:    service.ErrValidation,
			message: "User does not exist",
		},
		{
			name:  "store rejects note",
			input: service.CreateNoteInput{UserID: owner.ID.String(), Title: "t", Text: "x"},
			setup: func(notes *mocks.TestifyMockNoteStore, users *mocks.TestifyMockUserStore) {
				users.On("GetByID", mock.Anything, owner.ID).Return(owner, nil)
				notes.On("Create", mock.Anything, mock.Anything).Return(store.ErrInvalidEntity)
			},
			kind:    service.ErrValidation,
			message: "Invalid note data received",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			svc, notes, users := newNoteServiceWithMocks()
			if tt.setup != nil {
				tt.setup(notes, users)
			}

			_, _, err := svc.Create(context.Background(), tt.input)
			assertServiceError(t, err, tt.kind, tt.message)
		})
	}

	t.Run("success", func(t *testing.T) {
		t.Parallel()
		svc, notes, users := newNoteServiceWithMocks()
		users.On("GetByID", mock.Anything, owner.ID).Return(owner, nil)
		notes.On("Create", mock.Anything, mock.AnythingOfType("*domain.Note")).
			Run(func(args mock.Arguments) {
				args.Get(1).(*domain.Note).Ticket = 7
			}).
			Return(nil)

		note, user, err := svc.Create(context.Background(), service.CreateNoteInput{
			UserID: owner.ID.String(), Title: "Printer", Text: "Out of toner",
		})
		require.NoError(t, err)
		assert.Equal(t, int64(7), note.Ticket)
		assert.Equal(t, owner.ID, note.UserID)
		assert.False(t, note.Completed)
		assert.Equal(t, "dave", user.Username)
	})
}

func TestNoteService_Update(t *testing.T) {
	t.Parallel()

	valid := func(id uuid.UUID) service.UpdateNoteInput {
		return service.UpdateNoteInput{
			ID:        id.String(),
			Title:     "new title",
			Text:      "new text",
			Completed: boolPtr(true),
			Ticket:    5,
		}
	}

	t.Run("validation", func(t *testing.T) {
		t.Parallel()

		cases := map[string]func(in *service.UpdateNoteInput){
			"missing id":        func(in *service.UpdateNoteInput) { in.ID = "" },
			"missing title":     func(in *service.UpdateNoteInput) { in.Title = "" },
			"missing text":      func(in *service.UpdateNoteInput) { in.Text = "" },
			"missing completed": func(in *service.UpdateNoteInput) { in.Completed = nil },
			"missing ticket":    func(in *service.UpdateNoteInput) { in.Ticket = 0 },
		}
		for name, mutate := range cases {
			t.Run(name, func(t *testing.T) {
				t.Parallel()
				svc, notes, _ := newNoteServiceWithMocks()
				in := valid(uuid.New())
				mutate(&in)

				_, err := svc.Update(context.Background(), in)
				assertServiceError(t, err, service.ErrValidation, "All fields are required")
				notes.AssertNotCalled(t, "GetByID", mock.Anything, mock.Anything)
			})
		}
	})

	t.Run("unknown note", func(t *testing.T) {
		t.Parallel()
		svc, notes, _ := newNoteServiceWithMocks()
		id := uuid.New()
		notes.On("GetByID", mock.Anything, id).Return(nil, store.ErrNoteNotFound)

		_, err := svc.Update(context.Background(), valid(id))
		assertServiceError(t, err, service.ErrNotFound, "Note not found")
		notes.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})

	t.Run("ticket is not changed", func(t *testing.T) {
		t.Parallel()
		svc, notes, _ := newNoteServiceWithMocks()
		note := existingNote(uuid.New(), 2)
		notes.On("GetByID", mock.Anything, note.ID).Return(note, nil)
		notes.On("Update", mock.Anything, mock.MatchedBy(func(n *domain.Note) bool {
			return n.Ticket == 2 && n.Completed && n.Title == "new title"
		})).Return(nil)

		in := valid(note.ID)
		in.Ticket = 99
		updated, err := svc.Update(context.Background(), in)
		require.NoError(t, err)
		assert.Equal(t, int64(2), updated.Ticket)
		notes.AssertExpectations(t)
	})
}

func TestNoteService_Delete(t *testing.T) {
	t.Parallel()

	t.Run("missing id", func(t *testing.T) {
		t.Parallel()
		svc, _, _ := newNoteServiceWithMocks()

		_, err := svc.Delete(context.Background(), "")
		assertServiceError(t, err, service.ErrValidation, "Note ID Required")
	})

	t.Run("unknown note", func(t *testing.T) {
		t.Parallel()
		svc, notes, _ := newNoteServiceWithMocks()
		id := uuid.New()
		notes.On("GetByID", mock.Anything, id).Return(nil, store.ErrNoteNotFound)

		_, err := svc.Delete(context.Background(), id.String())
		assertServiceError(t, err, service.ErrNotFound, "Note not found")
	})

	t.Run("returns deleted ticket", func(t *testing.T) {
		t.Parallel()
		svc, notes, _ := newNoteServiceWithMocks()
		note := existingNote(uuid.New(), 4)
		notes.On("GetByID", mock.Anything, note.ID).Return(note, nil)
		notes.On("Delete", mock.Anything, note.ID).Return(nil)

		deleted, err := svc.Delete(context.Background(), note.ID.String())
		require.NoError(t, err)
		assert.Equal(t, int64(4), deleted.Ticket)
	})
}
