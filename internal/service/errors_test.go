package service

import (
	"errors"
	"fmt"
	"testing"

	"github.com/phrazzld/notes-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestSentinelErrors(t *testing.T) {
	t.Parallel()

	assert.False(t, errors.Is(ErrValidation, ErrNotFound))
	assert.False(t, errors.Is(ErrNotFound, ErrConflict))
	assert.False(t, errors.Is(ErrConflict, ErrValidation))
}

func TestError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		err      *Error
		wantKind error
		wantMsg  string
		wantText string
	}{
		{
			name:     "without cause",
			err:      conflictError(MsgUserHasNotes, nil),
			wantKind: ErrConflict,
			wantMsg:  "User has assigned notes",
			wantText: "User has assigned notes",
		},
		{
			name:     "with cause",
			err:      notFoundError(MsgNoteNotFound, store.ErrNoteNotFound),
			wantKind: ErrNotFound,
			wantMsg:  "Note not found",
			wantText: "Note not found: entity not found: note",
		},
		{
			name:     "validation",
			err:      validationError(MsgUserDoesNotExist, store.ErrUserNotFound),
			wantKind: ErrValidation,
			wantMsg:  "User does not exist",
			wantText: "User does not exist: entity not found: user",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			wrapped := fmt.Errorf("handler: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.wantKind)
			assert.Equal(t, tt.wantText, tt.err.Error())

			msg, ok := Message(wrapped)
			assert.True(t, ok)
			assert.Equal(t, tt.wantMsg, msg)

			if tt.err.Err != nil {
				assert.ErrorIs(t, wrapped, tt.err.Err)
			}
		})
	}
}

func TestMessage_NonServiceError(t *testing.T) {
	t.Parallel()

	msg, ok := Message(errors.New("boom"))
	assert.False(t, ok)
	assert.Empty(t, msg)
}
