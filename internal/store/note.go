package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
)

// NoteStore defines the interface for note data persistence.
type NoteStore interface {
	// List returns every note ordered by ticket number.
	// Returns an empty slice when there are none.
	List(ctx context.Context) ([]*domain.Note, error)

	// GetByID retrieves a note by its unique ID.
	// Returns ErrNoteNotFound if the note does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error)

	// FindOneByUser returns any one note owned by the given user.
	// Returns ErrNoteNotFound if the user owns no notes.
	FindOneByUser(ctx context.Context, userID uuid.UUID) (*domain.Note, error)

	// Create saves a new note, assigning its ID when empty and the next ticket number.
	// It does not check that the owning user exists; callers do that first.
	Create(ctx context.Context, note *domain.Note) error

	// Update saves the title, text and completed flag of an existing note.
	// Returns ErrNoteNotFound if the note does not exist.
	Update(ctx context.Context, note *domain.Note) error

	// Delete removes a note by ID.
	// Returns ErrNoteNotFound if the note does not exist.
	Delete(ctx context.Context, id uuid.UUID) error
}
