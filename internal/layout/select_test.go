package layout

import (
	"fmt"
	"testing"
)

func selectedIDs(sel []Selection) []string {
	out := make([]string, len(sel))
	for i, s := range sel {
		out[i] = s.ID
	}
	return out
}

func TestSelect_CapsUnpositioned(t *testing.T) {
	catalog := make([]string, 50)
	for i := range catalog {
		catalog[i] = fmt.Sprintf("item-%d", i)
	}

	sel := Select(catalog, NewCache(), Viewport{Top: 0, Bottom: 1000}, 20)

	if len(sel) != 20 {
		t.Fatalf("Select() returned %d items, want 20", len(sel))
	}
	for i, s := range sel {
		if s.Positioned {
			t.Errorf("selection %d is positioned, want unpositioned", i)
		}
		if s.Index != i {
			t.Errorf("selection %d has catalog index %d, want %d", i, s.Index, i)
		}
	}
}

func TestSelect_PositionedInViewAndBatch(t *testing.T) {
	cache := NewCache()
	cache.Put("in-view", Rect{Top: 100, Height: 300, Bottom: 400})
	cache.Put("far-below", Rect{Top: 2200, Height: 100, Bottom: 2300})
	cache.Put("far-above", Rect{Top: 0, Height: 100, Bottom: 100})

	catalog := []string{"far-above", "in-view", "new-1", "far-below", "new-2", "new-3"}
	viewport := ComputeViewport(1000, 50, 600, 1)

	sel := Select(catalog, cache, viewport, 2)
	got := selectedIDs(sel)
	want := []string{"in-view", "new-1", "new-2"}

	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("Select() = %v, want %v", got, want)
	}
	if !sel[0].Positioned || sel[0].Rect.Bottom != 400 {
		t.Errorf("Select()[0] = %+v, want positioned in-view rect", sel[0])
	}
}

func TestSelect_PositionedAfterCapStillIncluded(t *testing.T) {
	cache := NewCache()
	cache.Put("late", Rect{Top: 10, Height: 10, Bottom: 20})

	catalog := []string{"n1", "n2", "n3", "late"}
	sel := Select(catalog, cache, Viewport{Top: 0, Bottom: 100}, 1)

	got := selectedIDs(sel)
	if fmt.Sprint(got) != fmt.Sprint([]string{"n1", "late"}) {
		t.Errorf("Select() = %v, want [n1 late]", got)
	}
}

func TestSelect_Deduplicates(t *testing.T) {
	cache := NewCache()
	cache.Put("a", Rect{Top: 0, Height: 10, Bottom: 10})

	sel := Select([]string{"a", "b", "a", "b"}, cache, Viewport{Top: 0, Bottom: 100}, 20)

	if got := selectedIDs(sel); fmt.Sprint(got) != fmt.Sprint([]string{"a", "b"}) {
		t.Errorf("Select() = %v, want [a b]", got)
	}
}

func TestSelect_FullyPositionedOutOfViewIsEmpty(t *testing.T) {
	cache := NewCache()
	cache.Put("a", Rect{Top: 5000, Height: 10, Bottom: 5010})

	if sel := Select([]string{"a"}, cache, Viewport{Top: 0, Bottom: 100}, 20); len(sel) != 0 {
		t.Errorf("Select() = %v, want nothing", selectedIDs(sel))
	}
}

func BenchmarkSelect_10kCatalog(b *testing.B) {
	catalog := make([]string, 10000)
	cache := NewCache()
	cols := NewColumns(4)
	for i := range catalog {
		catalog[i] = fmt.Sprintf("item-%d", i)
		Place(cache, cols, catalog[i], 50+i%200, 240, 24)
	}
	viewport := ComputeViewport(cols.Max()/2, 0, 800, 1)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Select(catalog, cache, viewport, DefaultMaxUnpositioned)
	}
}
