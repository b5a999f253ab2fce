package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/platform/logger"
	"github.com/phrazzld/notes-api/internal/store"
)

const noteColumns = `id, user_id, title, text, completed, ticket, created_at, updated_at`

// PostgresNoteStore implements the store.NoteStore interface
// using a PostgreSQL database as the storage backend.
// Ticket numbers come from the identity column on the notes table.
type PostgresNoteStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresNoteStore creates a new PostgreSQL implementation of the NoteStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresNoteStore(db store.DBTX, logger *slog.Logger) *PostgresNoteStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresNoteStore{
		db:     db,
		logger: logger.With(slog.String("component", "note_store")),
	}
}

// Ensure PostgresNoteStore implements store.NoteStore interface
var _ store.NoteStore = (*PostgresNoteStore)(nil)

func scanNote(row rowScanner) (*domain.Note, error) {
	var note domain.Note
	err := row.Scan(
		&note.ID,
		&note.UserID,
		&note.Title,
		&note.Text,
		&note.Completed,
		&note.Ticket,
		&note.CreatedAt,
		&note.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &note, nil
}

// List implements store.NoteStore.List
func (s *PostgresNoteStore) List(ctx context.Context) ([]*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, `SELECT `+noteColumns+` FROM notes ORDER BY ticket`)
	if err != nil {
		log.Error("failed to query notes", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer func() {
		if err := rows.Close(); err != nil {
			log.Error("failed to close rows", slog.String("error", err.Error()))
		}
	}()

	notes := []*domain.Note{}
	for rows.Next() {
		note, err := scanNote(rows)
		if err != nil {
			log.Error("failed to scan note row", slog.String("error", err.Error()))
			return nil, err
		}
		notes = append(notes, note)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning rows", slog.String("error", err.Error()))
		return nil, err
	}

	log.Debug("listed notes", slog.Int("count", len(notes)))
	return notes, nil
}

// GetByID implements store.NoteStore.GetByID
func (s *PostgresNoteStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + noteColumns + ` FROM notes WHERE id = $1`

	note, err := scanNote(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("note not found", slog.String("note_id", id.String()))
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to get note by ID",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return nil, MapError(err)
	}

	return note, nil
}

// FindOneByUser implements store.NoteStore.FindOneByUser
func (s *PostgresNoteStore) FindOneByUser(ctx context.Context, userID uuid.UUID) (*domain.Note, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + noteColumns + ` FROM notes WHERE user_id = $1 LIMIT 1`

	note, err := scanNote(s.db.QueryRowContext(ctx, query, userID))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNoteNotFound
		}
		log.Error("failed to find note by user",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return nil, MapError(err)
	}

	return note, nil
}

// Create implements store.NoteStore.Create
// The ticket number is assigned by the database and written back to note.
func (s *PostgresNoteStore) Create(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if note.ID == uuid.Nil {
		note.ID = uuid.New()
	}

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during create",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO notes (id, user_id, title, text, completed, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ticket
	`
	err := s.db.QueryRowContext(
		ctx,
		query,
		note.ID,
		note.UserID,
		note.Title,
		note.Text,
		note.Completed,
		note.CreatedAt,
		note.UpdatedAt,
	).Scan(&note.Ticket)
	if err != nil {
		log.Error("failed to create note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()),
			slog.String("user_id", note.UserID.String()))
		return MapError(err)
	}

	log.Info("note created successfully",
		slog.String("note_id", note.ID.String()),
		slog.String("user_id", note.UserID.String()),
		slog.Int64("ticket", note.Ticket))
	return nil
}

// Update implements store.NoteStore.Update
// Only title, text and completed are written; the ticket column is never touched.
func (s *PostgresNoteStore) Update(ctx context.Context, note *domain.Note) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := note.Validate(); err != nil {
		log.Warn("note validation failed during update",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return fmt.Errorf("%w: %v", store.ErrInvalidEntity, err)
	}

	if note.UpdatedAt.IsZero() {
		note.UpdatedAt = time.Now().UTC()
	}

	query := `
		UPDATE notes
		SET title = $1, text = $2, completed = $3, updated_at = $4
		WHERE id = $5
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		note.Title,
		note.Text,
		note.Completed,
		note.UpdatedAt,
		note.ID,
	)
	if err != nil {
		log.Error("failed to update note",
			slog.String("error", err.Error()),
			slog.String("note_id", note.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNoteNotFound); err != nil {
		log.Debug("note not found for update", slog.String("note_id", note.ID.String()))
		return err
	}

	log.Info("note updated successfully",
		slog.String("note_id", note.ID.String()),
		slog.Int64("ticket", note.Ticket))
	return nil
}

// Delete implements store.NoteStore.Delete
func (s *PostgresNoteStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM notes WHERE id = $1`, id)
	if err != nil {
		log.Error("failed to delete note",
			slog.String("error", err.Error()),
			slog.String("note_id", id.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrNoteNotFound); err != nil {
		log.Debug("note not found for delete", slog.String("note_id", id.String()))
		return err
	}

	log.Info("note deleted successfully", slog.String("note_id", id.String()))
	return nil
}
