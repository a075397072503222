package session

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestRegistry_CreateGetRevoke(t *testing.T) {
	r := NewRegistry(time.Hour)

	s := r.Create("u_1", false)
	require.NotEmpty(t, s.Token)

	got, ok := r.Get(s.Token)
	require.True(t, ok)
	require.Equal(t, "u_1", got.UserID)
	require.False(t, got.Admin)

	r.Revoke(s.Token)
	_, ok = r.Get(s.Token)
	require.False(t, ok)
}

func TestRegistry_Expiry(t *testing.T) {
	now := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
	r := NewRegistry(time.Hour)
	r.now = func() time.Time { return now }

	s := r.Create("", true)
	now = now.Add(59 * time.Minute)
	_, ok := r.Get(s.Token)
	require.True(t, ok)

	now = now.Add(2 * time.Minute)
	_, ok = r.Get(s.Token)
	require.False(t, ok)
}

func TestRegistry_ZeroTTLNeverExpires(t *testing.T) {
	r := NewRegistry(0)
	s := r.Create("u_1", false)
	require.True(t, s.ExpiresAt.IsZero())

	r.now = func() time.Time { return time.Now().Add(1000 * time.Hour) }
	_, ok := r.Get(s.Token)
	require.True(t, ok)
}
