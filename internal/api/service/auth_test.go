package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/pixelfeedhq/pixelfeed/internal/api/store/drivers/sqlite"
	"github.com/pixelfeedhq/pixelfeed/pkg/jwtx"
)

func setupAuthService(t *testing.T) *AuthService {
	t.Helper()

	st, err := sqlite.NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())

	return &AuthService{
		Store: st,
		Codec: jwtx.NewHS256([]byte("test-secret"), "test-issuer", time.Hour),
	}
}

func TestRegisterLoginResolve(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	user, err := svc.Register(ctx, RegisterInput{
		Email:    "Alice@Example.com",
		Username: "alice",
		Password: "correct horse",
	})
	require.NoError(t, err)
	require.NotEmpty(t, user.ID)
	require.Equal(t, "alice@example.com", user.Email, "email should be stored lowercased")
	require.Equal(t, "alice", user.Username)
	require.NotEqual(t, "correct horse", user.PasswordHash, "password must never be stored in the clear")

	token, err := svc.Login(ctx, "alice@example.com", "correct horse")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	resolved, err := svc.ResolveIdentity(ctx, token)
	require.NoError(t, err)
	require.Equal(t, user.ID, resolved.ID)
	require.Equal(t, user.Email, resolved.Email)
}

func TestRegisterConflicts(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "bob@example.com",
		Username: "bob",
		Password: "hunter2hunter2",
	})
	require.NoError(t, err)

	t.Run("duplicate email", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Email:    "bob@example.com",
			Username: "otherbob",
			Password: "hunter2hunter2",
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate email different case", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Email:    "BOB@example.com",
			Username: "thirdbob",
			Password: "hunter2hunter2",
		})
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("duplicate username", func(t *testing.T) {
		_, err := svc.Register(ctx, RegisterInput{
			Email:    "bob2@example.com",
			Username: "bob",
			Password: "hunter2hunter2",
		})
		require.ErrorIs(t, err, ErrUsernameTaken)
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	cases := []struct {
		name  string
		input RegisterInput
		field string
	}{
		{
			name:  "malformed email",
			input: RegisterInput{Email: "not-an-email", Username: "carol", Password: "longenough"},
			field: "email",
		},
		{
			name:  "username too short",
			input: RegisterInput{Email: "carol@example.com", Username: "ca", Password: "longenough"},
			field: "username",
		},
		{
			name:  "password too short",
			input: RegisterInput{Email: "carol@example.com", Username: "carol", Password: "short"},
			field: "password",
		},
		{
			name: "password only whitespace padding",
			// Trimmed length is what counts, so padding cannot rescue a short password.
			input: RegisterInput{Email: "carol@example.com", Username: "carol", Password: "  short    "},
			field: "password",
		},
		{
			name:  "password over bcrypt limit",
			input: RegisterInput{Email: "carol@example.com", Username: "carol", Password: strings.Repeat("x", 73)},
			field: "password",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.input)

			var vErr *ValidationError
			require.ErrorAs(t, err, &vErr)
			require.Contains(t, vErr.Fields, tc.field)
		})
	}
}

func TestRegisterTrimsPassword(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "dave@example.com",
		Username: "dave",
		Password: "  padded password  ",
	})
	require.NoError(t, err)

	// The stored digest is of the trimmed password, so both spellings log in.
	_, err = svc.Login(ctx, "dave@example.com", "padded password")
	require.NoError(t, err)

	_, err = svc.Login(ctx, "dave@example.com", "  padded password  ")
	require.NoError(t, err)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "erin@example.com",
		Username: "erin",
		Password: "swordfish9",
	})
	require.NoError(t, err)

	t.Run("unknown email", func(t *testing.T) {
		_, err := svc.Login(ctx, "nobody@example.com", "swordfish9")
		require.ErrorIs(t, err, ErrInvalidCredential)
	})

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, "erin@example.com", "wrong password")
		require.ErrorIs(t, err, ErrInvalidCredential)
	})
}

func TestResolveIdentityFailures(t *testing.T) {
	ctx := context.Background()
	svc := setupAuthService(t)

	_, err := svc.Register(ctx, RegisterInput{
		Email:    "frank@example.com",
		Username: "frank",
		Password: "knockknock",
	})
	require.NoError(t, err)

	token, err := svc.Login(ctx, "frank@example.com", "knockknock")
	require.NoError(t, err)

	t.Run("truncated token", func(t *testing.T) {
		_, err := svc.ResolveIdentity(ctx, token[:len(token)-4])
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.ResolveIdentity(ctx, "not.a.token")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("valid token for missing user", func(t *testing.T) {
		orphan, err := svc.Codec.Issue("01JZZZZZZZZZZZZZZZZZZZZZZZ", "ghost")
		require.NoError(t, err)

		_, err = svc.ResolveIdentity(ctx, orphan)
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("expired token", func(t *testing.T) {
		past := time.Now().Add(-2 * time.Hour)
		staleCodec := jwtx.NewHS256([]byte("test-secret"), "test-issuer", time.Hour,
			jwtx.WithClock(func() time.Time { return past }))

		stale, err := staleCodec.Issue("some-user", "someone")
		require.NoError(t, err)

		_, err = svc.ResolveIdentity(ctx, stale)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}
