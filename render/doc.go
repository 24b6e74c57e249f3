// Package render draws reconstructed pages back onto their rasters.
//
// Boxes on [model.HierarchyNode] are in image space at the render scale the
// hierarchy was built with. When the raster was produced at a different
// resolution, pass the ratio of raster pixels to image-space units.
package render
