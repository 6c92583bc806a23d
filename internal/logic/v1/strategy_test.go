package v1

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/becore/core-auth/internal/core/domain"
	"github.com/becore/core-auth/internal/token"
)

func TestLocalCredentialStrategy_Validate(t *testing.T) {
	repo := newFakeUserRepo()
	seeded := repo.seed(t, "a@x.com", "Str0ng!Pass99")
	strategy := NewLocalCredentialStrategy(newTestService(repo))

	assert.Equal(t, "local", strategy.Name())

	identity, err := strategy.Validate(context.Background(), Input{Email: "a@x.com", Password: "Str0ng!Pass99"})
	require.NoError(t, err)
	assert.Equal(t, seeded.ID, identity.ID)

	_, err = strategy.Validate(context.Background(), Input{Email: "a@x.com", Password: "nope"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestTokenStrategy_Validate(t *testing.T) {
	issuer := token.NewIssuer(token.Config{
		Secret: "this-is-a-valid-session-token-secret-32b",
		TTL:    time.Hour,
	})
	strategy := NewTokenStrategy(issuer)

	assert.Equal(t, "token", strategy.Name())

	t.Run("valid token resolves the identity", func(t *testing.T) {
		signed, _, err := issuer.Issue(domain.Identity{ID: 5, Email: "a@x.com"})
		require.NoError(t, err)

		identity, err := strategy.Validate(context.Background(), Input{Token: signed})
		require.NoError(t, err)
		assert.Equal(t, &domain.Identity{ID: 5, Email: "a@x.com"}, identity)
	})

	t.Run("tampered token fails with the generic sentinel", func(t *testing.T) {
		signed, _, err := issuer.Issue(domain.Identity{ID: 5, Email: "a@x.com"})
		require.NoError(t, err)

		_, err = strategy.Validate(context.Background(), Input{Token: signed + "x"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage fails with the generic sentinel", func(t *testing.T) {
		_, err := strategy.Validate(context.Background(), Input{Token: "not-a-token"})
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}
