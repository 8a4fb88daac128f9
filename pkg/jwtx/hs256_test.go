package jwtx

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret-0123456789abcdef")

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssueAndVerify(t *testing.T) {
	issued := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewHS256(testSecret, "pixelfeed", time.Hour, WithClock(fixedClock(issued)))

	token, err := codec.Issue("01JF5R3V9WZXK", "alice")
	require.NoError(t, err)
	require.Len(t, strings.Split(token, "."), 3)

	t.Run("valid immediately after issue", func(t *testing.T) {
		claims, err := codec.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "01JF5R3V9WZXK", claims.Subject)
		require.Equal(t, "alice", claims.Username)
		require.Equal(t, "pixelfeed", claims.Issuer)
		require.NotEmpty(t, claims.ID)
		require.Equal(t, issued.Add(time.Hour), claims.ExpiresAt.Time)
	})

	t.Run("valid just before expiry", func(t *testing.T) {
		late := NewHS256(testSecret, "pixelfeed", time.Hour,
			WithClock(fixedClock(issued.Add(time.Hour-time.Second))))
		claims, err := late.Verify(token)
		require.NoError(t, err)
		require.Equal(t, "01JF5R3V9WZXK", claims.Subject)
	})

	t.Run("rejected after expiry", func(t *testing.T) {
		expired := NewHS256(testSecret, "pixelfeed", time.Hour,
			WithClock(fixedClock(issued.Add(time.Hour+time.Second))))
		_, err := expired.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestVerifyRejectsTampering(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewHS256(testSecret, "pixelfeed", time.Hour, WithClock(fixedClock(now)))

	token, err := codec.Issue("user-1", "alice")
	require.NoError(t, err)

	t.Run("flipped signature character", func(t *testing.T) {
		last := token[len(token)-1]
		flip := byte('A')
		if last == flip {
			flip = 'B'
		}
		_, err := codec.Verify(token[:len(token)-1] + string(flip))
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("truncated token", func(t *testing.T) {
		_, err := codec.Verify(token[:len(token)-1])
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("garbage input", func(t *testing.T) {
		_, err := codec.Verify("not.a.jwt")
		require.ErrorIs(t, err, ErrInvalidToken)

		_, err = codec.Verify("")
		require.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("wrong secret", func(t *testing.T) {
		other := NewHS256([]byte("another-secret-entirely"), "pixelfeed", time.Hour,
			WithClock(fixedClock(now)))
		_, err := other.Verify(token)
		require.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestIssueUniqueJTI(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	codec := NewHS256(testSecret, "pixelfeed", time.Hour, WithClock(fixedClock(now)))

	t1, err := codec.Issue("user-1", "alice")
	require.NoError(t, err)
	t2, err := codec.Issue("user-1", "alice")
	require.NoError(t, err)

	// Same subject, same instant: only the jti differs.
	c1, err := codec.Verify(t1)
	require.NoError(t, err)
	c2, err := codec.Verify(t2)
	require.NoError(t, err)
	require.NotEqual(t, c1.ID, c2.ID)
}

func TestNewHS256DefaultTTL(t *testing.T) {
	codec := NewHS256(testSecret, "pixelfeed", 0)
	require.Equal(t, DefaultAccessTokenTTL, codec.TTL())
}
