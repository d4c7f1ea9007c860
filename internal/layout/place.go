package layout

// Place puts an item of the given height into the shortest column, stores its
// rect in the cache and advances the column. It returns false if the id was
// already placed or there are no columns.
func Place(cache *Cache, columns *Columns, id string, height, columnSize, gutter int) (Rect, bool) {
	if cache.Has(id) {
		return Rect{}, false
	}
	col := columns.Pick()
	if col < 0 {
		return Rect{}, false
	}
	if height < 0 {
		height = 0
	}

	top := columns.Assign(col, height, gutter)
	r := NewRect(col, top, height, columnSize, gutter)
	cache.Put(id, r)
	return r, true
}
