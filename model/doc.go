// Package model provides the data structures shared by every stage of the
// reconstruction pipeline.
//
// Detector output enters as [DetectedElement] values, tagged once with a
// [Kind] by [Ingest]. The classifier turns them into [ClassifiedElement]
// values carrying a [Role]; the hierarchy builder emits [HierarchyNode]
// forests, one [Page] at a time; the structure analyzer summarises the whole
// document as a [DocumentStructure].
//
// # Geometry
//
// [BBox] is a corner-based rectangle. The same type is used for PDF space
// (origin bottom-left, points) and image space (origin top-left, pixels);
// package coords converts between the two.
//
//	b := model.NewBBox(50, 700, 500, 770)
//	b.Width()  // 450
//	b.Area()   // 31500
//
// # Roles
//
// Roles are a closed set (title, section-header, text, list, list-item,
// table, table-cell, figure, caption, formula, page-header, page-footer,
// footnote). [RoleFromHint] maps the vocabulary of common layout detectors
// onto them.
//
// # Diagnostics
//
// Elements are never dropped. Problems found along the way are recorded as
// [Flags] on the element and its node.
package model
