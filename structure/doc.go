// Package structure derives a document-level view from finalized page
// forests: headings with confidence scores, sections and their nesting,
// tables continued across page breaks, a navigation map and element
// statistics.
//
// Sections are cut at every title or section header in page and detection
// order. Content that precedes the first heading is gathered into a section
// titled "Document Start", which is left out of the table of contents.
package structure
