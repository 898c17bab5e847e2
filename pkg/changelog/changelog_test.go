package changelog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/kataras/figma-tokens/pkg/extractor"
	"github.com/kataras/figma-tokens/pkg/imager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Key   string
	Value int
	Tags  []string
}

func itemKey(i item) string { return i.Key }

func TestDiff(t *testing.T) {
	prev := []item{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
	next := []item{{Key: "b", Value: 2}, {Key: "c", Value: 30}, {Key: "d", Value: 4}}

	got := Diff(prev, next, itemKey)
	require.Len(t, got, 3)

	assert.Equal(t, Add, got[0].Type)
	assert.Equal(t, "d", got[0].New.Key)
	assert.Nil(t, got[0].Old)

	assert.Equal(t, Delete, got[1].Type)
	assert.Equal(t, "a", got[1].Old.Key)
	assert.Nil(t, got[1].New)

	assert.Equal(t, Change, got[2].Type)
	assert.Equal(t, 3, got[2].Old.Value)
	assert.Equal(t, 30, got[2].New.Value)
}

func TestDiff_Identical(t *testing.T) {
	items := []item{{Key: "a", Value: 1, Tags: []string{"x"}}, {Key: "b"}}
	assert.Empty(t, Diff(items, items, itemKey))

	copied := []item{{Key: "a", Value: 1, Tags: []string{"x"}}, {Key: "b", Tags: []string{}}}
	assert.Empty(t, Diff(items, copied, itemKey), "nil and empty slices are equal")

	first := Diff(items, []item{{Key: "a", Value: 2}}, itemKey)
	second := Diff(items, []item{{Key: "a", Value: 2}}, itemKey)
	assert.Equal(t, first, second)
}

func TestDiff_SingleChange(t *testing.T) {
	prev := []item{{Key: "a", Value: 1}, {Key: "b", Value: 2}, {Key: "c", Value: 3}}
	next := []item{{Key: "a", Value: 1}, {Key: "b", Value: 2, Tags: []string{"new"}}, {Key: "c", Value: 3}}

	got := Diff(prev, next, itemKey)
	require.Len(t, got, 1)
	assert.Equal(t, Change, got[0].Type)
	assert.Equal(t, prev[1], *got[0].Old)
	assert.Equal(t, next[1], *got[0].New)
}

func TestDiff_EmptyPrev(t *testing.T) {
	got := Diff(nil, []item{{Key: "a"}, {Key: "b"}}, itemKey)
	require.Len(t, got, 2)
	for _, o := range got {
		assert.Equal(t, Add, o.Type)
	}
	assert.Empty(t, Diff[item, string](nil, nil, itemKey))
}

func TestDiff_RepeatedKeyLastWins(t *testing.T) {
	got := Diff([]item{{Key: "a", Value: 1}}, []item{{Key: "a", Value: 5}, {Key: "a", Value: 1}}, itemKey)
	assert.Empty(t, got)
}

func snapshot() Snapshot {
	return Snapshot{
		Design: DesignSnapshot{
			Colors: []extractor.ColorObject{
				{Meta: extractor.Meta{ID: "k1", Name: "Brand/Primary"}, Color: "#001aff"},
				{Meta: extractor.Meta{ID: "k2", Name: "Brand/Secondary"}, Color: "#ff0000"},
			},
			Typography: []extractor.TypographyObject{
				{Meta: extractor.Meta{ID: "t1", Name: "Heading/H1"}},
			},
		},
		Assets: AssetSnapshot{
			Exported: true,
			Icons:    []imager.Asset{{Path: "icons/arrow.svg", Hash: "aaa"}},
		},
	}
}

func TestBuildRecord(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)

	t.Run("no previous snapshot adds everything", func(t *testing.T) {
		r := BuildRecord(nil, snapshot(), now)
		require.NotNil(t, r)
		assert.Equal(t, now, r.Timestamp)
		assert.Len(t, r.Design.Colors, 2)
		assert.Len(t, r.Design.Typography, 1)
		assert.Len(t, r.Assets.Icons, 1)
		assert.Empty(t, r.Assets.Logos)
		assert.Equal(t, 4, r.Len())
	})

	t.Run("identical snapshots produce no record", func(t *testing.T) {
		prev := snapshot()
		assert.Nil(t, BuildRecord(&prev, snapshot(), now))
	})

	t.Run("only changed groups are kept", func(t *testing.T) {
		prev := snapshot()
		next := snapshot()
		next.Assets.Icons[0].Hash = "bbb"

		r := BuildRecord(&prev, next, now)
		require.NotNil(t, r)
		assert.Nil(t, r.Design)
		require.Len(t, r.Assets.Icons, 1)
		assert.Equal(t, Change, r.Assets.Icons[0].Type)
		assert.Equal(t, "aaa", r.Assets.Icons[0].Old.Hash)
	})

	t.Run("run without assets keeps previous assets", func(t *testing.T) {
		prev := snapshot()
		next := snapshot()
		next.Assets = AssetSnapshot{}

		assert.Nil(t, BuildRecord(&prev, next, now))

		carried := CarryAssets(&prev, next)
		assert.Equal(t, prev.Assets, carried.Assets)
		assert.Nil(t, BuildRecord(&prev, carried, now))
		assert.Equal(t, AssetSnapshot{}, CarryAssets(nil, next).Assets)
	})

	t.Run("exported assets after a run without them are added", func(t *testing.T) {
		prev := snapshot()
		prev.Assets = AssetSnapshot{}

		r := BuildRecord(&prev, snapshot(), now)
		require.NotNil(t, r)
		require.Len(t, r.Assets.Icons, 1)
		assert.Equal(t, Add, r.Assets.Icons[0].Type)
	})

	t.Run("colors are keyed by id", func(t *testing.T) {
		prev := snapshot()
		next := snapshot()
		next.Design.Colors[0].Name = "Brand/Main"

		r := BuildRecord(&prev, next, now)
		require.NotNil(t, r)
		require.Len(t, r.Design.Colors, 1)
		assert.Equal(t, Change, r.Design.Colors[0].Type)
	})
}

func TestHistory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data", "changelog.json")

	h, err := ReadHistory(path)
	require.NoError(t, err)
	assert.Empty(t, h)

	first := BuildRecord(nil, snapshot(), time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, Append(path, first))
	require.NoError(t, Append(path, nil))

	prev := snapshot()
	next := snapshot()
	next.Design.Colors = next.Design.Colors[:1]
	second := BuildRecord(&prev, next, time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, Append(path, second))

	h, err = ReadHistory(path)
	require.NoError(t, err)
	require.Len(t, h, 2)
	assert.Equal(t, 2026, h[0].Timestamp.Year())
	assert.Equal(t, time.February, h[0].Timestamp.Month(), "newest first")
	assert.Equal(t, Delete, h[0].Design.Colors[0].Type)
	assert.Equal(t, "k2", h[0].Design.Colors[0].Old.ID)
	assert.Equal(t, time.January, h[1].Timestamp.Month())
}

func TestReadHistory_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "changelog.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o644))
	_, err := ReadHistory(path)
	assert.Error(t, err)
}
