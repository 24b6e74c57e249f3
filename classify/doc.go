// Package classify assigns structural roles to elements reported by a layout
// detector.
//
// The detector's type hint is trusted when it names a non-text role (table,
// figure, formula and so on). Text-like elements are then examined with
// text-pattern and position rules, in this order:
//
//  1. List markers: bullets, dashes, parenthesized and circled numerals,
//     roman and lettered markers, arrows, note marks, and indented clause
//     endings such as "…すること". A marker overrides a title hint.
//  2. Running headers: text centred in the top band of the page that is not
//     a section heading and does not continue a sentence from the previous
//     page.
//  3. Running footers: text in the bottom band that looks like a page
//     number, copyright line, URL or confidentiality marker.
//  4. Captions: "図1.", "Table 2:" and similar prefixes.
//  5. Section headings: "第1章", "【概要】", "Chapter 3", "2.1 Scope".
//  6. Everything else is text.
//
// Text is NFKC-normalized before matching so full-width digits and letters
// match the same patterns as their ASCII forms.
//
// Garbled text (a mis-decoded byte stream) and degenerate bounding boxes are
// flagged and logged but never dropped or corrected.
//
// Example:
//
//	c := classify.New()
//	el := c.Classify(model.Ingest("text", bbox, "・項目A"), page)
//	// el.Role == model.RoleListItem
package classify
