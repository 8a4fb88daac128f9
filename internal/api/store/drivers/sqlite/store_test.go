package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/pixelfeedhq/pixelfeed/internal/api/domain"
	"github.com/pixelfeedhq/pixelfeed/internal/api/store"
	"github.com/pixelfeedhq/pixelfeed/pkg/idx"
)

func setupStore(t *testing.T) *Store {
	t.Helper()

	st, err := NewStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.ApplyMigrations())
	return st
}

func testUser(name string) domain.User {
	return domain.User{
		ID:           idx.New().String(),
		Email:        name + "@example.com",
		Username:     name,
		PasswordHash: "$2a$12$notactuallyahash",
	}
}

func TestWithTxCommits(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	u := testUser("committed")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		return tx.Users().CreateUser(ctx, u)
	})
	require.NoError(t, err)

	got, err := st.Users().GetUserByID(ctx, u.ID)
	require.NoError(t, err)
	require.Equal(t, u.Email, got.Email)
}

func TestWithTxRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)
	u := testUser("discarded")
	boom := errors.New("boom")

	err := st.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.Users().CreateUser(ctx, u); err != nil {
			return err
		}
		return boom
	})
	require.ErrorIs(t, err, boom)

	_, err = st.Users().GetUserByID(ctx, u.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestTxExplicitCommitAndRollback(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)

	kept := testUser("kept")
	tx, err := st.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Users().CreateUser(ctx, kept))
	require.NoError(t, tx.Commit())

	dropped := testUser("dropped")
	tx, err = st.Tx(ctx)
	require.NoError(t, err)
	require.NoError(t, tx.Users().CreateUser(ctx, dropped))
	require.NoError(t, tx.Rollback())

	_, err = st.Users().GetUserByID(ctx, kept.ID)
	require.NoError(t, err)
	_, err = st.Users().GetUserByID(ctx, dropped.ID)
	require.ErrorIs(t, err, store.ErrNotFound)
}

func TestNestedTxRejected(t *testing.T) {
	ctx := context.Background()
	st := setupStore(t)

	err := st.WithTx(ctx, func(tx store.Tx) error {
		_, err := tx.Tx(ctx)
		return err
	})
	require.Error(t, err)
}
