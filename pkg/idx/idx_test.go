package idx

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	a := New()
	b := New()

	require.False(t, a.IsZero())
	require.NotEqual(t, a, b)
	require.Less(t, a.String(), b.String(), "later IDs sort after earlier ones")
}

func TestNewAtEmbedsTime(t *testing.T) {
	at := time.Date(2026, 2, 14, 8, 30, 0, 0, time.UTC)
	id := NewAt(at)
	require.Equal(t, at, id.Time())
}

func TestParse(t *testing.T) {
	valid := New().String()

	tests := []struct {
		name    string
		in      string
		wantErr bool
	}{
		{"valid ulid", valid, false},
		{"valid with whitespace", "  " + valid + "  ", false},
		{"empty", "", true},
		{"garbage", "not-a-ulid", true},
		{"too short", valid[:10], true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := Parse(tt.in)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalid)
				require.True(t, id.IsZero())
				return
			}
			require.NoError(t, err)
			require.Equal(t, valid, id.String())
		})
	}
}
