package layout

// headWindow is how close to the head of the catalog a divergence must be to
// throw the whole cache away instead of truncating it.
const headWindow = 5

// DecisionKind says how much of the cache survives a catalog change.
type DecisionKind int

const (
	// PartialInvalidate keeps every entry before FromID. An empty FromID keeps everything.
	PartialInvalidate DecisionKind = iota
	// FullReset discards the cache and zeroes every column.
	FullReset
)

// String returns a readable name for the kind.
func (k DecisionKind) String() string {
	switch k {
	case FullReset:
		return "full-reset"
	case PartialInvalidate:
		return "partial-invalidate"
	default:
		return "unknown"
	}
}

// Decision is the outcome of Reconcile.
type Decision struct {
	Kind   DecisionKind
	FromID string
	// Index is the catalog cursor at which the divergence was found, or -1.
	Index int
}

// Reconcile compares the cache's previous key order against the ids of the new
// catalog.
//
// Previous keys are walked in order against a cursor over the catalog that
// skips ids already matched, so a duplicate removed from the catalog does not
// count as a divergence. The first key that is not found at the cursor ends the
// walk: within the first headWindow positions the layout is rebuilt from
// scratch, later than that only the tail from that key onward is invalidated.
func Reconcile(previousKeys, catalog []string) Decision {
	if len(catalog) == 0 {
		return Decision{Kind: FullReset, Index: 0}
	}

	seen := make(map[string]bool, len(previousKeys))
	index := 0
	for _, key := range previousKeys {
		for index < len(catalog)-1 && seen[catalog[index]] {
			index++
		}

		if index >= len(catalog) || catalog[index] != key {
			if index < headWindow {
				return Decision{Kind: FullReset, FromID: key, Index: index}
			}
			return Decision{Kind: PartialInvalidate, FromID: key, Index: index}
		}

		seen[key] = true
		index++
	}

	return Decision{Kind: PartialInvalidate, Index: -1}
}

// Apply carries out d against the cache and column tracker. It returns the
// entries that were removed; a full reset returns nil.
func Apply(d Decision, cache *Cache, columns *Columns) []Entry {
	switch d.Kind {
	case FullReset:
		cache.Reset()
		columns.Reset(columns.Len())
		return nil
	default:
		if d.FromID == "" {
			return nil
		}
		removed := cache.Truncate(d.FromID)
		for _, e := range removed {
			columns.Rollback(e.Rect.Column, e.Rect.Top)
		}
		return removed
	}
}
