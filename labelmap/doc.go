// Package labelmap converts segmentation results into named, coloured label maps aligned with their source image.
package labelmap
