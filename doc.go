// Package waterfall provides an incremental, virtualized masonry layout engine.
//
// Items of unknown height are placed into a fixed number of columns, always
// into the shortest one. Only items near the viewport are handed to the host
// for mounting, and heights are learned by measuring items after the host has
// committed them. Layout is cached by item id, so appending to a list reuses
// everything already placed while a change near the head rebuilds from scratch.
//
// The engine owns no rendering or measurement: a [Host] mounts items, measures
// them and reports container geometry. Scroll and resize notifications arrive
// through [ScrollSource] and [ResizeSource] and are fed to the engine's single
// event loop.
package waterfall
