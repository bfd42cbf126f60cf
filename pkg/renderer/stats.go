package renderer

import (
	"image"
)

// TraceStats counts the rays cast while rendering
type TraceStats struct {
	PrimaryRays    int // Rays cast from the camera
	ShadowRays     int // Rays cast toward lights
	ReflectionRays int // Mirror rays spawned by shading
}

// TotalRays returns the number of rays of every kind
func (s TraceStats) TotalRays() int {
	return s.PrimaryRays + s.ShadowRays + s.ReflectionRays
}

// Add accumulates another set of counters
func (s *TraceStats) Add(other TraceStats) {
	s.PrimaryRays += other.PrimaryRays
	s.ShadowRays += other.ShadowRays
	s.ReflectionRays += other.ReflectionRays
}

// CalculateAverageLuminance returns the mean Rec. 709 luminance of img in [0,1]
func CalculateAverageLuminance(img image.Image) float64 {
	bounds := img.Bounds()
	pixels := bounds.Dx() * bounds.Dy()
	if pixels == 0 {
		return 0
	}

	total := 0.0
	for y := bounds.Min.Y; y < bounds.Max.Y; y++ {
		for x := bounds.Min.X; x < bounds.Max.X; x++ {
			r, g, b, _ := img.At(x, y).RGBA()
			total += 0.2126*float64(r)/65535.0 + 0.7152*float64(g)/65535.0 + 0.0722*float64(b)/65535.0
		}
	}
	return total / float64(pixels)
}
