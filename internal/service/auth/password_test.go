package auth_test

import (
	"testing"

	"github.com/phrazzld/notes-api/internal/service/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	h := auth.NewBcryptHasher()

	digest, err := h.Hash("s3cret")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret", digest)

	cost, err := bcrypt.Cost([]byte(digest))
	require.NoError(t, err)
	assert.Equal(t, auth.PasswordCost, cost)

	assert.NoError(t, h.Compare(digest, "s3cret"))
	assert.Error(t, h.Compare(digest, "wrong"))
}

func TestBcryptHasher_SaltsEachHash(t *testing.T) {
	t.Parallel()

	h := auth.NewBcryptHasher()
	a, err := h.Hash("same")
	require.NoError(t, err)
	b, err := h.Hash("same")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}
