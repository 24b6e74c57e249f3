// Package coords converts bounding boxes between PDF space and image space
// and provides the containment test used for table and list reconstruction.
//
// PDF space has its origin at the bottom-left corner of the page and is
// measured in points. Image space has its origin at the top-left corner of
// the rendered page and is measured in pixels at a given render scale:
//
//	img := coords.ToImageSpace(pdf, 842, 2.0, model.RoleText)
//	back := coords.ToPDFSpace(img, 842, 2.0, model.RoleText) // == pdf
//
// All functions are pure.
package coords
