// Package layout implements the pure algorithms behind the masonry engine.
//
// It knows nothing about rendering or measurement: it works with item ids and
// integer heights only. The pieces are a [Cache] of placement rectangles, a
// [Columns] height tracker, the [Reconcile] diff that decides how much of the
// cache survives a catalog change, the [ComputeViewport] window and the
// [Select] virtualization pass. Types are re-exported through the root
// waterfall package for public consumption.
package layout
