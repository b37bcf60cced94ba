package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

func openTest(t *testing.T) (*Store, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "nested", "quotes.db")

	s, err := Open(context.Background(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, path
}

func TestOpen_WALMode(t *testing.T) {
	s, _ := openTest(t)

	var mode string
	require.NoError(t, s.db.QueryRow("PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)
	require.NoError(t, s.Check(context.Background()))
}

func TestStore_QuotesRoundTripAcrossReopen(t *testing.T) {
	ctx := context.Background()
	s, path := openTest(t)

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.NotNil(t, got)

	quotes := []domain.Quote{
		{Text: "Be yourself; everyone else is already taken.", Category: "Life"},
		{Text: "qui est esse", Category: "Server"},
	}
	require.NoError(t, s.SaveAll(ctx, quotes))
	require.NoError(t, s.SaveAll(ctx, quotes[:1]))
	require.NoError(t, s.Close())

	reopened, err := Open(ctx, path)
	require.NoError(t, err)
	defer func() { _ = reopened.Close() }()

	got, err = reopened.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, quotes[:1], got)
}

func TestStore_Preferences(t *testing.T) {
	ctx := context.Background()
	s, _ := openTest(t)

	_, err := s.GetPreference(ctx, "selectedCategory")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.SetPreference(ctx, "selectedCategory", "Life"))
	require.NoError(t, s.SetPreference(ctx, "selectedCategory", "all"))

	v, err := s.GetPreference(ctx, "selectedCategory")
	require.NoError(t, err)
	assert.Equal(t, "all", v)

	// Preferences never collide with the quotes row.
	require.NoError(t, s.SetPreference(ctx, "quotes", "x"))
	quotes, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, quotes)
}

func TestStore_ConflictLog(t *testing.T) {
	ctx := context.Background()
	s, _ := openTest(t)
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, s.AppendConflicts(ctx, nil))
	require.NoError(t, s.AppendConflicts(ctx, []domain.ConflictRecord{
		{
			ID:         "first",
			Local:      domain.Quote{Text: "A", Category: "X"},
			Server:     domain.Quote{Text: "a", Category: "Y"},
			Resolution: domain.ResolutionServerWins,
			DetectedAt: at,
		},
		{
			Local:      domain.Quote{Text: "B", Category: "X"},
			Server:     domain.Quote{Text: "B", Category: "Z"},
			Resolution: domain.ResolutionServerWins,
			DetectedAt: at.Add(time.Second),
		},
	}))

	got, err := s.RecentConflicts(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.NotEmpty(t, got[0].ID)
	assert.Equal(t, "B", got[0].Local.Text)
	assert.Equal(t, "first", got[1].ID)
	assert.Equal(t, domain.Quote{Text: "a", Category: "Y"}, got[1].Server)
	assert.True(t, at.Equal(got[1].DetectedAt))

	limited, err := s.RecentConflicts(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	none, err := s.RecentConflicts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
