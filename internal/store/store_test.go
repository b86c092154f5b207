package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"katakilat/internal/leaderboard"
)

func sampleEntries() map[string]leaderboard.Entry {
	return map[string]leaderboard.Entry{
		"u1": {ParticipantID: "u1", DisplayName: "Udin", AvatarURL: "a1", Score: 12},
		"u2": {ParticipantID: "u2", DisplayName: "Wati", AvatarURL: "a2", Score: 7},
	}
}

func TestMemoryRoundTrip(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()

	loaded, err := m.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)

	require.NoError(t, m.Save(ctx, sampleEntries()))
	loaded, err = m.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleEntries(), loaded)

	// Load returns a copy; mutating it must not leak back.
	loaded["u1"] = leaderboard.Entry{ParticipantID: "u1", Score: 999}
	again, _ := m.Load(ctx)
	require.Equal(t, 12, again["u1"].Score)
}

func TestSQLiteRoundTrip(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "data", "test.db"))
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLite(db)
	ctx := context.Background()

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Empty(t, loaded)

	require.NoError(t, s.Save(ctx, sampleEntries()))
	loaded, err = s.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, sampleEntries(), loaded)
}

func TestSQLiteSaveReplacesMapping(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	defer db.Close()

	s := NewSQLite(db)
	ctx := context.Background()

	require.NoError(t, s.Save(ctx, sampleEntries()))
	require.NoError(t, s.Save(ctx, map[string]leaderboard.Entry{
		"u3": {ParticipantID: "u3", DisplayName: "Asep", Score: 3},
	}))

	loaded, err := s.Load(ctx)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	require.Equal(t, 3, loaded["u3"].Score)
}
