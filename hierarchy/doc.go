// Package hierarchy reconstructs the parent/child structure of a page from
// its classified elements.
//
// Construction runs in two phases per page. The semantic phase assigns every
// element a level (headings 1 to 3, body content 4, table cells 5, running
// headers and footers 0) and attaches each element to the closest preceding
// element of a lower level. The spatial phase then moves table cells and list
// items under the smallest table or list region that contains them.
//
// Assemble touches no shared state, so pages can be assembled in parallel.
// Finalize hands out document-wide IDs from an IDCounter and must be called
// in page order:
//
//	counter := hierarchy.NewIDCounter()
//	b := hierarchy.NewBuilder()
//	page := b.Assemble(geom, classified).Finalize(counter)
package hierarchy
