package waterfall

import "strconv"

// Item is one brick in the masonry grid.
type Item struct {
	ID      string
	Payload any
	// IsInlineChild marks static children supplied by the host rather than data items.
	IsInlineChild bool
	// ChildIndex is the child's position among the host's children. Only set
	// when IsInlineChild is true.
	ChildIndex int
}

// Catalog is the ordered, deduplicated list of items to lay out.
type Catalog []Item

// InlineChildID returns the id given to the host child at index.
func InlineChildID(index int) string {
	return "childId_" + strconv.Itoa(index)
}

// BuildCatalog concatenates the host's static children with the data items.
//
// Nil children are skipped but keep their index, so child ids stay stable when
// a child is toggled off. Children come first, so when a data item's id
// collides with a child id, the child wins. Among duplicates, the first
// occurrence wins.
func BuildCatalog[T any](children []any, data []T, idOf func(T) string) Catalog {
	seen := make(map[string]bool, len(children)+len(data))
	out := make(Catalog, 0, len(children)+len(data))

	for i, child := range children {
		if child == nil {
			continue
		}
		id := InlineChildID(i)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Item{ID: id, Payload: child, IsInlineChild: true, ChildIndex: i})
	}

	for _, d := range data {
		id := idOf(d)
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, Item{ID: id, Payload: d})
	}
	return out
}

// Dedupe drops repeated ids, keeping the first occurrence.
func (c Catalog) Dedupe() Catalog {
	seen := make(map[string]bool, len(c))
	out := make(Catalog, 0, len(c))
	for _, item := range c {
		if seen[item.ID] {
			continue
		}
		seen[item.ID] = true
		out = append(out, item)
	}
	return out
}

// IDs returns the item ids in catalog order.
func (c Catalog) IDs() []string {
	out := make([]string, len(c))
	for i, item := range c {
		out[i] = item.ID
	}
	return out
}

// Find returns the item with the given id.
func (c Catalog) Find(id string) (Item, bool) {
	for _, item := range c {
		if item.ID == id {
			return item, true
		}
	}
	return Item{}, false
}

// SetItems builds a catalog from the host's children and data items and hands
// it to e. It is BuildCatalog followed by SetCatalog.
func SetItems[T any](e *Engine, children []any, data []T, idOf func(T) string) Decision {
	return e.SetCatalog(BuildCatalog(children, data, idOf))
}
