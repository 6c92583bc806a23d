package v1

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/becore/core-auth/internal/core/domain"
)

// fakeUserRepo is an in-memory domain.UserRepository.
type fakeUserRepo struct {
	users   map[string]*domain.UserRow
	nextID  int
	getErr  error
	touched []int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.UserRow{}, nextID: 1}
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*domain.UserRow, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	row, ok := f.users[email]
	if !ok {
		return nil, nil
	}
	return row, nil
}

func (f *fakeUserRepo) Create(_ context.Context, email, passwordHash string) (int, error) {
	if _, ok := f.users[email]; ok {
		return 0, domain.ErrDuplicateEmail
	}
	id := f.nextID
	f.nextID++
	f.users[email] = &domain.UserRow{ID: id, Email: email, PasswordHash: passwordHash}
	return id, nil
}

func (f *fakeUserRepo) UpdateLastLogin(_ context.Context, userID int) error {
	f.touched = append(f.touched, userID)
	return nil
}

func (f *fakeUserRepo) seed(t *testing.T, email, password string) *domain.UserRow {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	id, err := f.Create(context.Background(), email, string(hash))
	require.NoError(t, err)
	return &domain.UserRow{ID: id, Email: email, PasswordHash: string(hash)}
}

func newTestService(repo *fakeUserRepo) *AuthService {
	svc := NewAuthService(repo)
	svc.cost = bcrypt.MinCost
	return svc
}

func TestAuthService_VerifyCredentials(t *testing.T) {
	t.Run("valid credentials resolve the identity", func(t *testing.T) {
		repo := newFakeUserRepo()
		seeded := repo.seed(t, "a@x.com", "Str0ng!Pass99")
		svc := newTestService(repo)

		identity, err := svc.VerifyCredentials(context.Background(), "a@x.com", "Str0ng!Pass99")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, identity.ID)
		assert.Equal(t, "a@x.com", identity.Email)

		// last_login was touched.
		assert.Equal(t, []int{seeded.ID}, repo.touched)
	})

	t.Run("unknown email and wrong password are indistinguishable", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.seed(t, "a@x.com", "Str0ng!Pass99")
		svc := newTestService(repo)

		_, unknownErr := svc.VerifyCredentials(context.Background(), "nobody@x.com", "Str0ng!Pass99")
		_, wrongErr := svc.VerifyCredentials(context.Background(), "a@x.com", "wrong-password")

		require.Error(t, unknownErr)
		require.Error(t, wrongErr)
		assert.ErrorIs(t, unknownErr, ErrInvalidCredentials)
		assert.ErrorIs(t, wrongErr, ErrInvalidCredentials)
		// Same wrapped message: nothing for a caller to enumerate accounts with.
		assert.Equal(t, unknownErr.Error(), wrongErr.Error())
	})

	t.Run("store errors collapse into the same failure", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.getErr = errors.New("connection refused")
		svc := newTestService(repo)

		_, err := svc.VerifyCredentials(context.Background(), "a@x.com", "Str0ng!Pass99")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("emails are compared case-sensitively", func(t *testing.T) {
		repo := newFakeUserRepo()
		repo.seed(t, "a@x.com", "Str0ng!Pass99")
		svc := newTestService(repo)

		_, err := svc.VerifyCredentials(context.Background(), "A@X.COM", "Str0ng!Pass99")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestAuthService_Register(t *testing.T) {
	t.Run("creates user and never stores the plaintext", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		identity, err := svc.Register(context.Background(), "a@x.com", "Str0ng!Pass99")
		require.NoError(t, err)
		assert.Equal(t, 1, identity.ID)
		assert.Equal(t, "a@x.com", identity.Email)

		stored := repo.users["a@x.com"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "Str0ng!Pass99", stored.PasswordHash)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("Str0ng!Pass99")))
	})

	t.Run("duplicate email surfaces as ErrUserExists", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		_, err := svc.Register(context.Background(), "a@x.com", "Str0ng!Pass99")
		require.NoError(t, err)

		_, err = svc.Register(context.Background(), "a@x.com", "Str0ng!Pass99")
		assert.ErrorIs(t, err, ErrUserExists)
	})

	t.Run("weak passwords are rejected before hashing", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := newTestService(repo)

		for _, password := range []string{"short1!", "alllowercase1!", "ALLUPPERCASE1!", "NoDigits!!", "NoSymbols99"} {
			_, err := svc.Register(context.Background(), "a@x.com", password)
			assert.ErrorIs(t, err, ErrWeakPassword, "password %q", password)
		}
		assert.Empty(t, repo.users)
	})
}

func TestIsStrongPassword(t *testing.T) {
	assert.True(t, isStrongPassword("Str0ng!Pass99"))
	assert.False(t, isStrongPassword("Ab1!"))
	assert.False(t, isStrongPassword("password123!"))
}
