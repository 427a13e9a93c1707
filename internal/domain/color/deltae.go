package color

import "math"

// Tolerance bands for DeltaE comparisons.
const (
	ExactDeltaE     = 0.1
	ToleranceDeltaE = 2.0
)

// maxRedmean is the red-mean distance between black and white, used to
// scale DeltaE to 0..100.
var maxRedmean = redmean(RGB{0, 0, 0}, RGB{255, 255, 255})

// DeltaE approximates perceptual color difference with a red-mean weighted
// Euclidean RGB distance scaled so black to white is 100. It is not a CIE
// Lab Delta E; the ToleranceDeltaE band is calibrated against this formula.
func DeltaE(c1, c2 RGB) float64 {
	return redmean(c1, c2) / maxRedmean * 100
}

func redmean(c1, c2 RGB) float64 {
	rm := (float64(c1.R) + float64(c2.R)) / 2
	dr := float64(c1.R) - float64(c2.R)
	dg := float64(c1.G) - float64(c2.G)
	db := float64(c1.B) - float64(c2.B)
	return math.Sqrt((2+rm/256)*dr*dr + 4*dg*dg + (2+(255-rm)/256)*db*db)
}
