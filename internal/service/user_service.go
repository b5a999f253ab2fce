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
	"github.com/phrazzld/notes-api/internal/service/auth"
	"github.com/phrazzld/notes-api/internal/store"
)

// Client-facing messages of the user directory.
const (
	MsgNoUsersFound           = "No users found"
	MsgFieldsRequired         = "All fields are required"
	MsgUserUpdateFieldsNeeded = "All fields except password are required"
	MsgUserIDRequired         = "User ID Required"
	MsgUserNotFound           = "User not found"
	MsgDuplicateUsername      = "Duplicate username"
	MsgUserHasNotes           = "User has assigned notes"
	MsgInvalidUserData        = "Invalid user data received"
	MsgInvalidRoles           = "Invalid user roles"
)

// CreateUserInput holds the fields of a new user.
// Roles may be omitted, in which case the user gets domain.DefaultRoles.
type CreateUserInput struct {
	Username string   `json:"username" validate:"required"`
	Password string   `json:"password" validate:"required"`
	Roles    []string `json:"roles"`
}

// UpdateUserInput holds a user update. Password is optional; every other field is required.
type UpdateUserInput struct {
	ID       string   `json:"id"       validate:"required"`
	Username string   `json:"username" validate:"required"`
	Roles    []string `json:"roles"    validate:"required,min=1"`
	Active   *bool    `json:"active"   validate:"required"`
	Password string   `json:"password"`
}

// UserService manages the user directory.
type UserService interface {
	// List returns every user. An empty directory is reported as ErrNotFound.
	List(ctx context.Context) ([]*domain.User, error)

	// Create adds a user with a hashed password.
	Create(ctx context.Context, input CreateUserInput) (*domain.User, error)

	// Update replaces username, roles and active flag, and the password when one is given.
	Update(ctx context.Context, input UpdateUserInput) (*domain.User, error)

	// Delete removes a user that owns no notes and returns the removed record.
	Delete(ctx context.Context, id string) (*domain.User, error)
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	users    store.UserStore
	notes    store.NoteStore
	hasher   auth.PasswordHasher
	validate *validator.Validate
	logger   *slog.Logger
}

// NewUserService creates a new UserService.
// The note store is consulted to refuse deleting users that still own notes.
func NewUserService(
	users store.UserStore,
	notes store.NoteStore,
	hasher auth.PasswordHasher,
	logger *slog.Logger,
) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		users:    users,
		notes:    notes,
		hasher:   hasher,
		validate: validator.New(),
		logger:   logger.With("component", "user_service"),
	}
}

// List implements UserService.List
func (s *UserServiceImpl) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	if len(users) == 0 {
		return nil, notFoundError(MsgNoUsersFound, nil)
	}
	return users, nil
}

// Create implements UserService.Create
func (s *UserServiceImpl) Create(ctx context.Context, input CreateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, validationError(MsgFieldsRequired, err)
	}

	roles := domain.RolesFromStrings(input.Roles)
	if len(roles) > 0 {
		if err := domain.ValidateRoles(roles); err != nil {
			return nil, validationError(MsgInvalidRoles, err)
		}
	}

	existing, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if existing != nil {
		log.Debug("attempted to create user with existing username", "username", input.Username)
		return nil, conflictError(MsgDuplicateUsername, nil)
	}

	digest, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	user, err := domain.NewUser(input.Username, digest, roles)
	if err != nil {
		return nil, validationError(MsgInvalidUserData, err)
	}

	if err := s.users.Create(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUsernameExists):
			return nil, conflictError(MsgDuplicateUsername, err)
		case errors.Is(err, store.ErrInvalidEntity):
			return nil, validationError(MsgInvalidUserData, err)
		default:
			log.Error("failed to save user", "error", err, "username", input.Username)
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
	}

	log.Info("user created", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Update implements UserService.Update
// The duplicate check and the write are separate store calls. A username taken
// in between surfaces as store.ErrUsernameExists from the write.
func (s *UserServiceImpl) Update(ctx context.Context, input UpdateUserInput) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := s.validate.StructCtx(ctx, input); err != nil {
		return nil, validationError(MsgUserUpdateFieldsNeeded, err)
	}

	roles := domain.RolesFromStrings(input.Roles)
	if err := domain.ValidateRoles(roles); err != nil {
		return nil, validationError(MsgInvalidRoles, err)
	}

	user, err := s.getUser(ctx, input.ID)
	if err != nil {
		return nil, err
	}

	dup, err := s.users.GetByUsername(ctx, input.Username)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		return nil, fmt.Errorf("failed to check username: %w", err)
	}
	if dup != nil && dup.ID != user.ID {
		log.Debug("username taken by another user",
			"user_id", user.ID,
			"username", input.Username)
		return nil, conflictError(MsgDuplicateUsername, nil)
	}

	user.Username = input.Username
	user.Roles = roles
	user.Active = *input.Active

	if input.Password != "" {
		digest, err := s.hasher.Hash(input.Password)
		if err != nil {
			return nil, err
		}
		user.HashedPassword = digest
	}

	if err := s.users.Update(ctx, user); err != nil {
		switch {
		case errors.Is(err, store.ErrUserNotFound):
			return nil, notFoundError(MsgUserNotFound, err)
		case errors.Is(err, store.ErrUsernameExists):
			return nil, conflictError(MsgDuplicateUsername, err)
		case errors.Is(err, store.ErrInvalidEntity):
			return nil, validationError(MsgInvalidUserData, err)
		default:
			log.Error("failed to update user", "error", err, "user_id", user.ID)
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}

	log.Info("user updated", "user_id", user.ID, "password_changed", input.Password != "")
	return user, nil
}

// Delete implements UserService.Delete
// The assigned-notes check runs before the user is loaded, and nothing stops
// a note being created for the user between the check and the delete.
func (s *UserServiceImpl) Delete(ctx context.Context, id string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if id == "" {
		return nil, validationError(MsgUserIDRequired, domain.ErrEmptyUserID)
	}

	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundError(MsgUserNotFound, err)
	}

	note, err := s.notes.FindOneByUser(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNoteNotFound) {
		return nil, fmt.Errorf("failed to check assigned notes: %w", err)
	}
	if note != nil {
		log.Debug("refusing to delete user with assigned notes",
			"user_id", userID,
			"ticket", note.Ticket)
		return nil, conflictError(MsgUserHasNotes, nil)
	}

	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, notFoundError(MsgUserNotFound, err)
		}
		log.Error("failed to delete user", "error", err, "user_id", user.ID)
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}

	log.Info("user deleted", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// getUser loads a user by its textual id. A malformed id is treated like a missing user.
func (s *UserServiceImpl) getUser(ctx context.Context, id string) (*domain.User, error) {
	userID, err := uuid.Parse(id)
	if err != nil {
		return nil, notFoundError(MsgUserNotFound, err)
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, notFoundError(MsgUserNotFound, err)
		}
		return nil, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
