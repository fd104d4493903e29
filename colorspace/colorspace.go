/*
Package colorspace converts between RGB pixels and the component video
(Y/Pb/Pr) representation used while compressing.

Luma is roughly in the range 0 to 1 and both chroma components roughly in the
range -0.5 to 0.5. Converting back to RGB always produces samples scaled to
Denominator, clamping anything that falls outside of that range.
*/
package colorspace

import "github.com/bodgit/comp40/ppm"

// Denominator is the maximum channel value of every reconstructed image.
const Denominator = 200

// YPbPr is a single luma/chroma sample.
type YPbPr struct {
	Y, Pb, Pr float32
}

// FromRGB converts c, whose channels are scaled to denominator, to
// component video.
func FromRGB(c ppm.RGB, denominator int) YPbPr {
	r := float64(c.R) / float64(denominator)
	g := float64(c.G) / float64(denominator)
	b := float64(c.B) / float64(denominator)

	return YPbPr{
		Y:  float32(0.299*r + 0.587*g + 0.114*b),
		Pb: float32(-0.168736*r - 0.331264*g + 0.5*b),
		Pr: float32(0.5*r - 0.418688*g - 0.081312*b),
	}
}

// RGB converts s back to a pixel scaled to Denominator.
func (s YPbPr) RGB() ppm.RGB {
	y, pb, pr := float64(s.Y), float64(s.Pb), float64(s.Pr)

	return ppm.RGB{
		R: clamp((y + 1.402*pr) * Denominator),
		G: clamp((y - 0.344136*pb - 0.714136*pr) * Denominator),
		B: clamp((y + 1.772*pb) * Denominator),
	}
}

// Saturate v to [0, Denominator], truncating any fraction
func clamp(v float64) uint16 {
	switch {
	case v > Denominator:
		return Denominator
	case v < 0:
		return 0
	default:
		return uint16(v)
	}
}
