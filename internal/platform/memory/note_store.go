package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/platform/logger"
	"github.com/phrazzld/notes-api/internal/store"
)

// NoteStore is an in-memory store.NoteStore.
// Tickets start at 1 and are never reused, even after deletes.
type NoteStore struct {
	mu         sync.RWMutex
	notes      map[uuid.UUID]*domain.Note
	lastTicket int64
	logger     *slog.Logger
}

var _ store.NoteStore = (*NoteStore)(nil)

// NewNoteStore creates an empty NoteStore. If logger is nil the default logger is used.
func NewNoteStore(logger *slog.Logger) *NoteStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoteStore{
		notes:  make(map[uuid.UUID]*domain.Note),
		logger: logger.With(slog.String("component", "note_store")),
	}
}

func copyNote(n *domain.Note) *domain.Note {
	c := *n
	return &c
}

// List implements store.NoteStore.List
func (s *NoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	notes := make([]*domain.Note, 0, len(s.notes))
	for _, n := range s.notes {
		notes = append(notes, copyNote(n))
	}
	sort.Slice(notes, func(i, j int) bool { return notes[i].Ticket < notes[j].Ticket })

	logger.FromContextOrDefault(ctx, s.logger).Debug("listed notes", slog.Int("count", len(notes)))
	return notes, nil
}

// GetByID implements store.NoteStore.GetByID
func (s *NoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	n, ok := s.notes[id]
	if !ok {
		return nil, store.ErrNoteNotFound
	}
	return copyNote(n), nil
}

// FindOneByUser implements store.NoteStore.FindOneByUser
func (s *NoteStore) FindOneByUser(ctx context.Context, userID uuid.UUID) (*domain.Note, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, n := range s.notes {
		if n.UserID == userID {
			return copyNote(n), nil
		}
	}
	return nil, store.ErrNoteNotFound
}

// Create implements store.NoteStore.Create
func (s *NoteStore) Create(ctx context.Context, note *domain.Note) error {
	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}
	if err := note.Validate(); err != nil {
		return store.NewStoreError("note", "create", "validation failed",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.notes[note.ID]; exists {
		return store.ErrDuplicate
	}

	s.lastTicket++
	note.Ticket = s.lastTicket
	s.notes[note.ID] = copyNote(note)

	logger.FromContextOrDefault(ctx, s.logger).Info("note created successfully",
		slog.String("note_id", note.ID.String()),
		slog.Int64("ticket", note.Ticket))
	return nil
}

// Update implements store.NoteStore.Update
// The stored ticket number is kept whatever note.Ticket holds.
func (s *NoteStore) Update(ctx context.Context, note *domain.Note) error {
	if err := note.Validate(); err != nil {
		return store.NewStoreError("note", "update", "validation failed",
			fmt.Errorf("%w: %v", store.ErrInvalidEntity, err))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.notes[note.ID]
	if !ok {
		return store.ErrNoteNotFound
	}

	existing.Title = note.Title
	existing.Text = note.Text
	existing.Completed = note.Completed
	existing.UpdatedAt = note.UpdatedAt
	if existing.UpdatedAt.IsZero() {
		existing.UpdatedAt = time.Now().UTC()
	}

	logger.FromContextOrDefault(ctx, s.logger).Info("note updated successfully",
		slog.String("note_id", note.ID.String()),
		slog.Int64("ticket", existing.Ticket))
	return nil
}

// Delete implements store.NoteStore.Delete
func (s *NoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.notes[id]; !ok {
		return store.ErrNoteNotFound
	}
	delete(s.notes, id)
	logger.FromContextOrDefault(ctx, s.logger).Info("note deleted successfully",
		slog.String("note_id", id.String()))
	return nil
}
