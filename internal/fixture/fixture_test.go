package fixture

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	waterfall "github.com/grindlemire/go-waterfall"
)

const sample = `
[[child]]
title = "Welcome"
height = 40

[[child]]
title = "Hidden"
hidden = true

[[child]]
title = "Filters"

[[brick]]
id = "a"
title = "Alpha"
body = "first"
height = 120

[[brick]]
id = "b"
title = "Beta"

[[brick]]
id = "a"
title = "Alpha again"
`

func TestDecode(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)
	require.Len(t, f.Children, 3)
	require.Len(t, f.Bricks, 3)
	require.Equal(t, 120, f.Bricks[0].Height)
}

func TestDecode_Errors(t *testing.T) {
	tests := map[string]string{
		"unknown field": "[[brick]]\nid = \"a\"\ncolour = \"red\"\n",
		"missing id":    "[[brick]]\ntitle = \"x\"\n",
		"bad syntax":    "[[brick]\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(input))
			require.Error(t, err)
		})
	}
}

func TestFile_Catalog(t *testing.T) {
	f, err := Decode(strings.NewReader(sample))
	require.NoError(t, err)

	c := f.Catalog()
	require.Equal(t, []string{"childId_0", "childId_2", "a", "b"}, c.IDs())
	require.True(t, c[1].IsInlineChild)
	require.Equal(t, 2, c[1].ChildIndex)

	item, ok := c.Find("a")
	require.True(t, ok)
	require.Equal(t, "Alpha", Title(item))
	require.Equal(t, "first", Body(item))

	h, ok := Height(item)
	require.True(t, ok)
	require.Equal(t, 120, h)

	_, ok = Height(c[1])
	require.False(t, ok)
	require.Equal(t, "x", Title(waterfall.Item{ID: "x"}))
}

func TestSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bricks.toml")
	f, err := Generate(GenerateOptions{Count: 5, Seed: 7, MinHeight: 50, MaxHeight: 300, Children: 1})
	require.NoError(t, err)

	require.NoError(t, Save(path, f))
	got, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, f, got)
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestGenerate(t *testing.T) {
	a, err := Generate(GenerateOptions{Count: 20, Seed: 42, MinHeight: 10, MaxHeight: 20})
	require.NoError(t, err)
	b, err := Generate(GenerateOptions{Count: 20, Seed: 42, MinHeight: 10, MaxHeight: 20})
	require.NoError(t, err)
	require.Equal(t, a, b, "same seed should give the same fixture")

	seen := map[string]bool{}
	for _, brick := range a.Bricks {
		_, err := uuid.Parse(brick.ID)
		require.NoError(t, err)
		require.False(t, seen[brick.ID])
		seen[brick.ID] = true
		require.GreaterOrEqual(t, brick.Height, 10)
		require.LessOrEqual(t, brick.Height, 20)
		require.NotEmpty(t, brick.Title)
	}

	c, err := Generate(GenerateOptions{Count: 3, Seed: 1})
	require.NoError(t, err)
	for _, brick := range c.Bricks {
		require.Zero(t, brick.Height)
	}
}

func TestWatch_ReloadsOnWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bricks.toml")
	require.NoError(t, Save(path, File{Bricks: []Brick{{ID: "a", Title: "A"}}}))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	events, err := Watch(ctx, path)
	require.NoError(t, err)

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))
	require.NoError(t, Save(path, File{Bricks: []Brick{{ID: "a", Title: "A"}, {ID: "b", Title: "B"}}}))

	select {
	case ev := <-events:
		require.NoError(t, ev.Err)
		require.Len(t, ev.File.Bricks, 2)
	case <-time.After(5 * time.Second):
		t.Fatal("no reload event")
	}

	cancel()
	require.Eventually(t, func() bool {
		select {
		case _, ok := <-events:
			return !ok
		default:
			return false
		}
	}, 2*time.Second, 10*time.Millisecond)
}
