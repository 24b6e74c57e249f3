// Package raster renders PDF pages to images using MuPDF through go-fitz.
//
// Rendered images back the raster+ocr extraction strategy, region OCR and
// the element crops and annotated pages written by the render package.
// Page geometry is reported in PDF points so that pixel boxes can be mapped
// back with coords.ToPDFSpace at scale dpi/72.
package raster
