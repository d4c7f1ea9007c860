package layout

// Entry pairs a cached rect with the id it belongs to.
type Entry struct {
	ID   string
	Rect Rect
}

// Cache maps item ids to their computed rects.
//
// Rects are never updated in place: an id is written once and only leaves the
// cache through Truncate or Reset. The cache remembers insertion order because
// the diff walk compares it against the new catalog, and it carries a
// generation number that is bumped on every Reset so in-flight measurements
// taken against an older layout can be recognised and dropped.
type Cache struct {
	rects      map[string]Rect
	order      []string
	generation uint64
}

// NewCache creates an empty cache at generation 0.
func NewCache() *Cache {
	return &Cache{rects: make(map[string]Rect)}
}

// Get returns the rect stored for id.
func (c *Cache) Get(id string) (Rect, bool) {
	r, ok := c.rects[id]
	return r, ok
}

// Has reports whether id has a rect.
func (c *Cache) Has(id string) bool {
	_, ok := c.rects[id]
	return ok
}

// Put stores the rect for id. It returns false without writing if id is
// already cached.
func (c *Cache) Put(id string, r Rect) bool {
	if _, ok := c.rects[id]; ok {
		return false
	}
	c.rects[id] = r
	c.order = append(c.order, id)
	return true
}

// Len returns the number of cached rects.
func (c *Cache) Len() int {
	return len(c.order)
}

// Keys returns the cached ids in insertion order.
func (c *Cache) Keys() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// Entries returns the cached rects in insertion order.
func (c *Cache) Entries() []Entry {
	out := make([]Entry, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, Entry{ID: id, Rect: c.rects[id]})
	}
	return out
}

// Snapshot returns a copy of the id to rect mapping.
func (c *Cache) Snapshot() map[string]Rect {
	out := make(map[string]Rect, len(c.rects))
	for id, r := range c.rects {
		out[id] = r
	}
	return out
}

// Truncate removes id and every entry inserted after it, returning the
// removed entries in insertion order. Unknown ids remove nothing.
func (c *Cache) Truncate(id string) []Entry {
	at := -1
	for i, key := range c.order {
		if key == id {
			at = i
			break
		}
	}
	if at < 0 {
		return nil
	}

	removed := make([]Entry, 0, len(c.order)-at)
	for _, key := range c.order[at:] {
		removed = append(removed, Entry{ID: key, Rect: c.rects[key]})
		delete(c.rects, key)
	}
	c.order = c.order[:at]
	return removed
}

// Reset clears every entry and starts a new generation.
func (c *Cache) Reset() {
	c.rects = make(map[string]Rect)
	c.order = nil
	c.generation++
}

// Generation returns the current generation number.
func (c *Cache) Generation() uint64 {
	return c.generation
}
