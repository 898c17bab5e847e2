package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/kataras/figma-tokens/pkg/changelog"
	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTest(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "tokens.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func colors(ids ...string) changelog.Snapshot {
	var snap changelog.Snapshot
	for _, id := range ids {
		snap.Design.Colors = append(snap.Design.Colors, extractor.ColorObject{Meta: extractor.Meta{ID: id, Name: id}, Color: "#000000"})
	}
	return snap
}

func TestLatestSnapshot_Empty(t *testing.T) {
	s := openTest(t)
	_, err := s.LatestSnapshot(context.Background(), "KEY")
	require.ErrorIs(t, err, ErrNoSnapshot)
}

func TestSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	t0 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	_, err := s.SaveSnapshot(ctx, "KEY", "v1", colors("a"), t0)
	require.NoError(t, err)
	id, err := s.SaveSnapshot(ctx, "KEY", "v2", colors("a", "b"), t0.Add(time.Hour))
	require.NoError(t, err)
	_, err = s.SaveSnapshot(ctx, "OTHER", "v9", colors("z"), t0.Add(2*time.Hour))
	require.NoError(t, err)

	got, err := s.LatestSnapshot(ctx, "KEY")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)
	assert.Equal(t, "v2", got.Version)
	assert.Equal(t, t0.Add(time.Hour), got.CreatedAt)
	require.Len(t, got.Data.Design.Colors, 2)
	assert.Equal(t, "b", got.Data.Design.Colors[1].ID)
}

func TestChangelogHistory(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	t0 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	id1, err := s.SaveSnapshot(ctx, "KEY", "v1", colors("a"), t0)
	require.NoError(t, err)
	require.NoError(t, s.AppendChangelog(ctx, "KEY", id1, changelog.BuildRecord(nil, colors("a"), t0)))

	prev := colors("a")
	id2, err := s.SaveSnapshot(ctx, "KEY", "v2", colors("a", "b"), t0.Add(time.Hour))
	require.NoError(t, err)
	require.NoError(t, s.AppendChangelog(ctx, "KEY", id2, changelog.BuildRecord(&prev, colors("a", "b"), t0.Add(time.Hour))))
	require.NoError(t, s.AppendChangelog(ctx, "KEY", id2, nil))

	h, err := s.History(ctx, "KEY", 0)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, t0.Add(time.Hour), h[0].Timestamp)
	assert.Equal(t, "b", h[0].Design.Colors[0].New.ID)

	h, err = s.History(ctx, "KEY", 1)
	require.NoError(t, err)
	assert.Len(t, h, 1)

	h, err = s.History(ctx, "OTHER", 0)
	require.NoError(t, err)
	assert.Empty(t, h)
}

func TestAppendChangelog_UnknownSnapshot(t *testing.T) {
	s := openTest(t)
	err := s.AppendChangelog(context.Background(), "KEY", "missing", changelog.BuildRecord(nil, colors("a"), time.Now()))
	assert.Error(t, err, "foreign keys are enforced")
}

func TestRecord(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	t0 := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)

	id, err := s.Record(ctx, "KEY", "v1", colors("a"), changelog.BuildRecord(nil, colors("a"), t0), t0)
	require.NoError(t, err)

	got, err := s.LatestSnapshot(ctx, "KEY")
	require.NoError(t, err)
	assert.Equal(t, id, got.ID)

	h, err := s.History(ctx, "KEY", 0)
	require.NoError(t, err)
	assert.Len(t, h, 1)

	_, err = s.Record(ctx, "KEY", "v1", colors("a"), nil, t0.Add(time.Hour))
	require.NoError(t, err, "an unchanged run stores the snapshot only")
	h, err = s.History(ctx, "KEY", 0)
	require.NoError(t, err)
	assert.Len(t, h, 1)
}

func TestRecord_RollsBackSnapshot(t *testing.T) {
	ctx := context.Background()
	s := openTest(t)
	_, err := s.conn.ExecContext(ctx, "DROP TABLE changelog")
	require.NoError(t, err)

	now := time.Now()
	_, err = s.Record(ctx, "KEY", "v1", colors("a"), changelog.BuildRecord(nil, colors("a"), now), now)
	require.Error(t, err)

	_, err = s.LatestSnapshot(ctx, "KEY")
	require.ErrorIs(t, err, ErrNoSnapshot, "the snapshot is not kept without its record")
}
