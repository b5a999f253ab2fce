package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// Common validation errors for Note
var (
	ErrEmptyNoteID     = errors.New("note ID cannot be empty")
	ErrEmptyNoteUserID = errors.New("note user ID cannot be empty")
	ErrEmptyNoteTitle  = errors.New("note title cannot be empty")
	ErrEmptyNoteText   = errors.New("note text cannot be empty")
)

// Note is a ticket-style work item assigned to a user.
// Ticket is a sequential number handed out by the store on creation
// and never changes afterwards.
type Note struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	Completed bool      `json:"completed"`
	Ticket    int64     `json:"ticket"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// NewNote creates an incomplete Note for the given user.
// ID and Ticket stay zero until the store persists the note.
func NewNote(userID uuid.UUID, title, text string) (*Note, error) {
	now := time.Now().UTC()
	note := &Note{
		UserID:    userID,
		Title:     title,
		Text:      text,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := note.validateFields(); err != nil {
		return nil, err
	}

	return note, nil
}

// Validate checks if a stored Note has valid data.
func (n *Note) Validate() error {
	if n.ID == uuid.Nil {
		return ErrEmptyNoteID
	}
	return n.validateFields()
}

func (n *Note) validateFields() error {
	if n.UserID == uuid.Nil {
		return ErrEmptyNoteUserID
	}

	if n.Title == "" {
		return ErrEmptyNoteTitle
	}

	if n.Text == "" {
		return ErrEmptyNoteText
	}

	return nil
}

// Edit replaces the editable fields of the note and bumps UpdatedAt.
// The ticket number is not editable.
func (n *Note) Edit(title, text string, completed bool) error {
	if title == "" {
		return ErrEmptyNoteTitle
	}
	if text == "" {
		return ErrEmptyNoteText
	}

	n.Title = title
	n.Text = text
	n.Completed = completed
	n.UpdatedAt = time.Now().UTC()
	return nil
}
