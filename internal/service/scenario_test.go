package service_test

import (
	"context"
	"testing"

	"github.com/phrazzld/notes-api/internal/mocks"
	"github.com/phrazzld/notes-api/internal/platform/memory"
	"github.com/phrazzld/notes-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemoryServices() (service.UserService, service.NoteService) {
	users := memory.NewUserStore(nil)
	notes := memory.NewNoteStore(nil)
	return service.NewUserService(users, notes, &mocks.MockPasswordVerifier{}, nil),
		service.NewNoteService(notes, users, nil)
}

func TestScenario_UserWithNotesCannotBeDeleted(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userSvc, noteSvc := newMemoryServices()

	u1, err := userSvc.Create(ctx, service.CreateUserInput{
		Username: "u1", Password: "pw", Roles: []string{"Employee"},
	})
	require.NoError(t, err)
	assert.True(t, u1.Active)

	n1, _, err := noteSvc.Create(ctx, service.CreateNoteInput{UserID: u1.ID.String(), Title: "T", Text: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n1.Ticket)

	n2, _, err := noteSvc.Create(ctx, service.CreateNoteInput{UserID: u1.ID.String(), Title: "T", Text: "X"})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n2.Ticket)

	_, err = userSvc.Delete(ctx, u1.ID.String())
	assertServiceError(t, err, service.ErrConflict, "User has assigned notes")

	_, err = noteSvc.Delete(ctx, n1.ID.String())
	require.NoError(t, err)
	_, err = noteSvc.Delete(ctx, n2.ID.String())
	require.NoError(t, err)

	deleted, err := userSvc.Delete(ctx, u1.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "u1", deleted.Username)
	assert.Equal(t, u1.ID, deleted.ID)

	_, err = userSvc.List(ctx)
	assertServiceError(t, err, service.ErrNotFound, "No users found")
}

func TestScenario_UpdateMissingRecordsDoesNotMutate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userSvc, noteSvc := newMemoryServices()

	u, err := userSvc.Create(ctx, service.CreateUserInput{Username: "keep", Password: "pw"})
	require.NoError(t, err)

	_, err = userSvc.Update(ctx, service.UpdateUserInput{
		ID: "6f1c1f2e-9a55-4c77-8c38-1f7b3b1d9c11", Username: "changed", Roles: []string{"Admin"}, Active: boolPtr(true),
	})
	assertServiceError(t, err, service.ErrNotFound, "User not found")

	_, err = noteSvc.Update(ctx, service.UpdateNoteInput{
		ID: "6f1c1f2e-9a55-4c77-8c38-1f7b3b1d9c11", Title: "t", Text: "x", Completed: boolPtr(true), Ticket: 1,
	})
	assertServiceError(t, err, service.ErrNotFound, "Note not found")

	users, err := userSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, u.ID, users[0].ID)
	assert.Equal(t, "keep", users[0].Username)

	_, err = noteSvc.List(ctx)
	assertServiceError(t, err, service.ErrNotFound, "No notes found")
}

func TestScenario_UsernameUniquenessOnUpdate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	userSvc, _ := newMemoryServices()

	a, err := userSvc.Create(ctx, service.CreateUserInput{Username: "alice", Password: "pw"})
	require.NoError(t, err)
	_, err = userSvc.Create(ctx, service.CreateUserInput{Username: "bob", Password: "pw"})
	require.NoError(t, err)

	_, err = userSvc.Update(ctx, service.UpdateUserInput{
		ID: a.ID.String(), Username: "bob", Roles: []string{"Employee"}, Active: boolPtr(true),
	})
	assertServiceError(t, err, service.ErrConflict, "Duplicate username")

	_, err = userSvc.Update(ctx, service.UpdateUserInput{
		ID: a.ID.String(), Username: "alice", Roles: []string{"Employee"}, Active: boolPtr(false),
	})
	require.NoError(t, err)
}

func TestScenario_NoteListSurvivesDanglingOwner(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	users := memory.NewUserStore(nil)
	notes := memory.NewNoteStore(nil)
	userSvc := service.NewUserService(users, notes, &mocks.MockPasswordVerifier{}, nil)
	noteSvc := service.NewNoteService(notes, users, nil)

	owner, err := userSvc.Create(ctx, service.CreateUserInput{Username: "temp", Password: "pw"})
	require.NoError(t, err)
	_, _, err = noteSvc.Create(ctx, service.CreateNoteInput{UserID: owner.ID.String(), Title: "T", Text: "X"})
	require.NoError(t, err)

	// Remove the owner behind the directory's back.
	require.NoError(t, users.Delete(ctx, owner.ID))

	listed, err := noteSvc.List(ctx)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Empty(t, listed[0].Username)
	assert.Equal(t, owner.ID, listed[0].UserID)
}
