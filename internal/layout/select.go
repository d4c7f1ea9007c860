package layout

// DefaultMaxUnpositioned caps how many items without a rect are mounted per pass.
const DefaultMaxUnpositioned = 20

// Selection is one catalog entry chosen for mounting.
type Selection struct {
	// Index is the position of the item in the catalog.
	Index int
	ID    string
	// Rect is only meaningful when Positioned is true.
	Rect       Rect
	Positioned bool
}

// Select picks the catalog entries to mount this pass, in catalog order and
// without duplicates.
//
// Every positioned item whose rect intersects the viewport is included. Items
// without a rect are included in catalog order until maxUnpositioned of them
// have been taken, which bounds how much is mounted per pass while layout is
// discovered progressively down a long list.
func Select(catalog []string, cache *Cache, viewport Viewport, maxUnpositioned int) []Selection {
	if maxUnpositioned < 1 {
		maxUnpositioned = DefaultMaxUnpositioned
	}

	seen := make(map[string]bool)
	var out []Selection
	unpositioned := 0
	for i, id := range catalog {
		if seen[id] {
			continue
		}

		if r, ok := cache.Get(id); ok {
			if viewport.Intersects(r) {
				seen[id] = true
				out = append(out, Selection{Index: i, ID: id, Rect: r, Positioned: true})
			}
			continue
		}

		if unpositioned >= maxUnpositioned {
			continue
		}
		seen[id] = true
		unpositioned++
		out = append(out, Selection{Index: i, ID: id})
	}
	return out
}

// CountUnpositioned returns how many selections still need a rect.
func CountUnpositioned(sel []Selection) int {
	n := 0
	for _, s := range sel {
		if !s.Positioned {
			n++
		}
	}
	return n
}

// Unpositioned returns how many catalog ids have no cached rect.
func Unpositioned(catalog []string, cache *Cache) int {
	n := 0
	for _, id := range catalog {
		if !cache.Has(id) {
			n++
		}
	}
	return n
}
