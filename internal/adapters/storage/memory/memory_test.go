package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotesync/internal/domain"
)

func TestStore_Quotes(t *testing.T) {
	ctx := context.Background()
	s := New()

	got, err := s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, got)

	in := []domain.Quote{{Text: "A", Category: "X"}}
	require.NoError(t, s.SaveAll(ctx, in))

	in[0].Text = "mutated"

	got, err = s.LoadAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []domain.Quote{{Text: "A", Category: "X"}}, got)
}

func TestStore_Preferences(t *testing.T) {
	ctx := context.Background()
	s := New()

	_, err := s.GetPreference(ctx, "selectedCategory")
	require.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, s.SetPreference(ctx, "selectedCategory", "Life"))

	v, err := s.GetPreference(ctx, "selectedCategory")
	require.NoError(t, err)
	assert.Equal(t, "Life", v)
}

func TestStore_RecentConflicts(t *testing.T) {
	ctx := context.Background()
	s := New()
	now := time.Now()

	require.NoError(t, s.AppendConflicts(ctx, []domain.ConflictRecord{
		{ID: "1", DetectedAt: now},
		{ID: "2", DetectedAt: now},
		{ID: "3", DetectedAt: now},
	}))

	got, err := s.RecentConflicts(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	got, err = s.RecentConflicts(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
