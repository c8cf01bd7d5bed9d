// Package imgseg provides unsupervised color image segmentation using the
// Felzenszwalb–Huttenlocher graph-based algorithm.
//
// The segmenter runs independently over the three color channels of an
// 8-bit RGB image and intersects the three resulting labellings: two
// pixels end up in the same region only if every channel agrees they
// belong together and they are 8-connected through pixels that also
// agree. The single tuning parameter k trades region size against edge
// sensitivity; larger k produces larger regions.
//
// Basic usage:
//
//	img := imgseg.FromImage(decoded)
//	labels, err := imgseg.Segment(img, 300)
//
// The returned label map assigns every pixel the pixel index of its
// region's representative. Regions can be coalesced after the fact with
// [Merge], and summarized with [RegionSizes] or [WriteReport].
//
// Pre-smoothing (usually a Gaussian blur, see the gaussian subpackage)
// is the caller's responsibility; the segmenter itself never modifies
// the input image.
package imgseg
