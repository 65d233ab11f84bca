// Package segment implements the segmentation panel: it calls a segmentation model for the selected image, resamples
// the pushed label map onto the image grid and attaches it as a named segment group.
package segment
