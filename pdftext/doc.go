// Package pdftext detects layout elements from the text layer of a PDF.
//
// Glyph runs are grouped into lines by baseline and lines into blocks by
// vertical gap and font size. Each block becomes one detected element.
// Blocks set noticeably larger than the body text are hinted as titles or
// section headings; everything else is left for the classifier to decide.
package pdftext
