package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/notes-api/internal/domain"
	"github.com/phrazzld/notes-api/internal/mocks"
	"github.com/phrazzld/notes-api/internal/platform/memory"
	"github.com/phrazzld/notes-api/internal/service/auth"
	"github.com/phrazzld/notes-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func seedUser(t *testing.T, users store.UserStore, username string, active bool) *domain.User {
	t.Helper()
	u, err := domain.NewUser(username, "digest", []domain.Role{domain.RoleManager})
	require.NoError(t, err)
	u.Active = active
	require.NoError(t, users.Create(context.Background(), u))
	return u
}

func TestLogin(t *testing.T) {
	t.Parallel()

	users := memory.NewUserStore(nil)
	seedUser(t, users, "dave", true)
	seedUser(t, users, "retired", false)

	tests := []struct {
		name     string
		username string
		password bool
		wantErr  error
	}{
		{name: "success", username: "dave", password: true},
		{name: "case-insensitive username", username: "DAVE", password: true},
		{name: "unknown user", username: "nobody", password: true, wantErr: auth.ErrInvalidCredentials},
		{name: "inactive user", username: "retired", password: true, wantErr: auth.ErrInvalidCredentials},
		{name: "wrong password", username: "dave", password: false, wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var gotRoles []string
			tokens := &mocks.MockJWTService{
				GenerateTokenFn: func(ctx context.Context, username string, roles []string) (string, error) {
					gotRoles = roles
					return "access-" + username, nil
				},
				RefreshToken: "refresh",
			}
			svc := auth.NewService(users, &mocks.MockPasswordVerifier{ShouldSucceed: tt.password}, tokens, nil)

			pair, err := svc.Login(context.Background(), tt.username, "pw")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, pair)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "access-dave", pair.AccessToken)
			assert.Equal(t, "refresh", pair.RefreshToken)
			assert.Equal(t, []string{"Manager"}, gotRoles)
		})
	}
}

func TestLogin_StoreFailure(t *testing.T) {
	t.Parallel()

	users := &mocks.TestifyMockUserStore{}
	boom := errors.New("db down")
	users.On("GetByUsername", mock.Anything, "dave").Return(nil, boom)

	svc := auth.NewService(users, &mocks.MockPasswordVerifier{}, &mocks.MockJWTService{}, nil)
	_, err := svc.Login(context.Background(), "dave", "pw")
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, auth.ErrInvalidCredentials)
	users.AssertExpectations(t)
}

func TestRefresh(t *testing.T) {
	t.Parallel()

	users := memory.NewUserStore(nil)
	seedUser(t, users, "dave", true)
	seedUser(t, users, "retired", false)

	tests := []struct {
		name        string
		claims      *auth.Claims
		validateErr error
		wantErr     error
	}{
		{name: "success", claims: &auth.Claims{Username: "dave"}},
		{name: "invalid token", validateErr: auth.ErrInvalidRefreshToken, wantErr: auth.ErrInvalidRefreshToken},
		{name: "expired token", validateErr: auth.ErrExpiredRefreshToken, wantErr: auth.ErrExpiredRefreshToken},
		{name: "user gone", claims: &auth.Claims{Username: "ghost"}, wantErr: auth.ErrInvalidCredentials},
		{name: "user inactive", claims: &auth.Claims{Username: "retired"}, wantErr: auth.ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tokens := &mocks.MockJWTService{
				Claims:      tt.claims,
				ValidateErr: tt.validateErr,
				Token:       "new-access",
			}
			svc := auth.NewService(users, &mocks.MockPasswordVerifier{}, tokens, nil)

			token, err := svc.Refresh(context.Background(), "refresh")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "new-access", token)
		})
	}
}
