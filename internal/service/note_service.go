package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/platform/logger"
	"github.com/phrazzld/notes-api/internal/store"
	"golang.org/x/sync/errgroup"
)

// Client-facing messages of the note ledger.
const (
	MsgNoNotesFound     = "No notes found"
	MsgUserDoesNotExist = "User does not exist"
	MsgInvalidNoteData  = "Invalid note data received"
	MsgNoteNotFound     = "Note not found"
	MsgNoteIDRequired   = "Note ID Required"
)

// ownerLookupLimit bounds the concurrent user lookups made while listing notes.
const ownerLookupLimit = 8

// NoteWithUsername is a note together with its owner's username.
// Username is empty, and omitted from JSON, when the owner no longer exists.
type NoteWithUsername struct {
	domain.Note
	Username string `json:"username,omitempty"`
}

// CreateNoteInput holds the fields of a new note.
type CreateNoteInput struct {
	UserID string `json:"user"  validate:"required"`
	Title  string `json:"title" validate:"required"`
	Text   string `json:"text"  validate:"required"`
}

// UpdateNoteInput holds a note update.
// Ticket must be set but is never written; it only echoes the note being edited.
type UpdateNoteInput struct {
	ID        string `json:"id"        validate:"required"`
	Title     string `json:"title"     validate:"required"`
	Text      string `json:"text"      validate:"required"`
	Completed *bool  `json:"completed" validate:"required"`
	Ticket    int64  `json:"ticket"    validate:"required"`
}

// NoteService manages the note ledger.
type NoteService interface {
	// List returns every note with its owner's username, ordered by ticket.
	// An empty ledger is reported as ErrNotFound.
	List(ctx context.Context) ([]NoteWithUsername, error)

	// Create adds a note for an existing user and returns it with its ticket
	// number, together with the owner.
	Create(ctx context.Context, input CreateNoteInput) (*domain.Note, *domain.User, error)

	// Update edits title, text and completed of an existing note.
	Update(ctx context.Context, input UpdateNoteInput) (*domain.Note, error)

	// Delete removes a note and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.Note, error)
}

// NoteServiceImpl implements the NoteService interface
type NoteServiceImpl struct {
	notes    store.NoteStore
	users    store.UserStore
	validate *validator.Validate
	logger   *slog.Logger
}

// NewNoteService creates a new NoteService.
func NewNoteService(notes store.NoteStore, users store.UserStore, logger *slog.Logger) NoteService {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteServiceImpl{
		notes:    notes,
		users:    users,
		validate: validator.New(),
		logger:   logger.With("component", "note_service"),
	}
}

// List implements NoteService.List
func (s *NoteServiceImpl) List(ctx context.Context) ([]NoteWithUsername, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	notes, err := s.notes.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list notes: %w", err)
	}
	if len(notes) == 0 {
		return nil, notFoundError(MsgNoNotesFound, nil)
	}

	result := make([]NoteWithUsername, len(notes))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(ownerLookupLimit)

	for i, note := range notes {
		result[i].Note = *note
		g.Go(func() error {
			owner, err := s.users.GetByID(gctx, note.UserID)
			if err != nil {
				if errors.Is(err, store.ErrUserNotFound) {
					log.Warn("note owner no longer exists",
						"note_id", note.ID,
						"user_id", note.UserID)
					return nil
				}
				return fmt.Errorf("failed to look up owner of note %s: %w", note.ID, err)
			}
			result[i].Username = owner.Username
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return result, nil
}

// Create implements NoteService.Create
func (s *NoteServiceImpl) Create(ctx context.Context, input CreateNoteInput) (*domain.Note, *domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, nil, validationError(MsgFieldsRequired, err)
	}

	userID, err := uuid.Parse(input.UserID)
	if err != nil {
		return nil, nil, validationError(MsgUserDoesNotExist, err)
	}

	owner, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, nil, validationError(MsgUserDoesNotExist, err)
		}
		return nil, nil, fmt.Errorf("failed to load note owner: %w", err)
	}

	note, err := domain.NewNote(owner.ID, input.Title, input.Text)
	if err != nil {
		return nil, nil, validationError(MsgInvalidNoteData, err)
	}

	if err := s.notes.Create(ctx, note); err != nil {
		log.Error("failed to save note", "error", err, "user_id", owner.ID)
		return nil, nil, validationError(MsgInvalidNoteData, err)
	}

	log.Info("note created", "note_id", note.ID, "ticket", note.Ticket, "user_id", owner.ID)
	return note, owner, nil
}

// Update implements NoteService.Update
func (s *NoteServiceImpl) Update(ctx context.Context, input UpdateNoteInput) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, validationError(MsgFieldsRequired, err)
	}

	note, err := s.getNote(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := note.Edit(input.Title, input.Text, *input.Completed); err != nil {
		return nil, validationError(MsgFieldsRequired, err)
	}

	if err := s.notes.Update(ctx, note); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return nil, notFoundError(MsgNoteNotFound, err)
		}
		log.Error("failed to update note", "error", err, "note_id", note.ID)
		return nil, fmt.Errorf("failed to update note: %w", err)
	}

	log.Info("note updated", "note_id", note.ID, "ticket", note.Ticket)
	return note, nil
}

// Delete implements NoteService.Delete
func (s *NoteServiceImpl) Delete(ctx context.Context, id string) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == "" {
		return nil, validationError(MsgNoteIDRequired, domain.ErrEmptyNoteID)
	}

	note, err := s.getNote(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.notes.Delete(ctx, note.ID); err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return nil, notFoundError(MsgNoteNotFound, err)
		}
		log.Error("failed to delete note", "error", err, "note_id", note.ID)
		return nil, fmt.Errorf("failed to delete note: %w", err)
	}

	log.Info("note deleted", "note_id", note.ID, "ticket", note.Ticket)
	return note, nil
}

// getNote loads a note by its textual id. A malformed id is treated like a missing note.
func (s *NoteServiceImpl) getNote(ctx context.Context, id string) (*domain.Note, error) {
	noteID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundError(MsgNoteNotFound, err)
	}

	note, err := s.notes.GetByID(ctx, noteID)
	if err != nil {
		if errors.Is(err, store.ErrNoteNotFound) {
			return nil, notFoundError(MsgNoteNotFound, err)
		}
		return nil, fmt.Errorf("failed to load note: %w", err)
	}
	return note, nil
}
