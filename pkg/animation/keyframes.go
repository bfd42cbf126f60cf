// Package animation holds the per-frame values substituted into animated scene objects.
package animation

import (
	"errors"
	"fmt"
)

// ErrEmptyTrack is returned when an animated object has no keyframes to read
var ErrEmptyTrack = errors.New("keyframe track is empty")

// SideTrack is the moving base edge of one pyramid side: the X and Z
// coordinates of its B and C vertices for every frame
type SideTrack struct {
	BX, BZ []float64
	CX, CZ []float64
}

// At returns the overridden coordinates for frame, wrapping past the end
func (s SideTrack) At(frame int) (bx, bz, cx, cz float64, err error) {
	n := len(s.BX)
	if n == 0 || len(s.BZ) != n || len(s.CX) != n || len(s.CZ) != n {
		return 0, 0, 0, 0, fmt.Errorf("side track: %w", ErrEmptyTrack)
	}
	i := wrap(frame, n)
	return s.BX[i], s.BZ[i], s.CX[i], s.CZ[i], nil
}

// Keyframes holds the animation tables indexed by frame
type Keyframes struct {
	BounceY []float64    // Centre Y of bouncing spheres
	Sides   [4]SideTrack // Tracks for pyramid sides 1 to 4
}

// Corner is a point of the pyramid base in the XZ plane
type Corner struct {
	X, Z float64
}

// PyramidCorners are the base corners the pyramid sides rotate through
var PyramidCorners = [4]Corner{
	{X: -9, Z: 4.5},
	{X: -7.5, Z: 3},
	{X: -6, Z: 4.5},
	{X: -7.5, Z: 6},
}

// DefaultFrameCount is the length of the built-in animation
const DefaultFrameCount = 16

// DefaultKeyframes returns the 16 frame animation: a sphere falling from
// y=8 to y=1 and back, and a pyramid base turning a quarter turn
func DefaultKeyframes() *Keyframes {
	k := &Keyframes{
		BounceY: []float64{8, 7, 6, 5, 4, 3, 2, 1, 1, 2, 3, 4, 5, 6, 7, 8},
	}

	corners := make([][]Corner, len(PyramidCorners))
	for i := range PyramidCorners {
		next := PyramidCorners[(i+1)%len(PyramidCorners)]
		corners[i] = cornerTrack(PyramidCorners[i], next, DefaultFrameCount)
	}

	for side := 0; side < 4; side++ {
		b := corners[side]
		c := corners[(side+1)%4]
		track := SideTrack{
			BX: make([]float64, DefaultFrameCount),
			BZ: make([]float64, DefaultFrameCount),
			CX: make([]float64, DefaultFrameCount),
			CZ: make([]float64, DefaultFrameCount),
		}
		for f := 0; f < DefaultFrameCount; f++ {
			track.BX[f], track.BZ[f] = b[f].X, b[f].Z
			track.CX[f], track.CZ[f] = c[f].X, c[f].Z
		}
		k.Sides[side] = track
	}

	return k
}

// cornerTrack moves from one corner toward the next by 1/frames of the edge per frame
func cornerTrack(from, to Corner, frames int) []Corner {
	track := make([]Corner, frames)
	for f := 0; f < frames; f++ {
		t := float64(f) / float64(frames)
		track[f] = Corner{
			X: from.X + (to.X-from.X)*t,
			Z: from.Z + (to.Z-from.Z)*t,
		}
	}
	return track
}

// Frames returns the number of distinct frames in the animation
func (k *Keyframes) Frames() int {
	return len(k.BounceY)
}

// Bounce returns the bouncing sphere height for frame
func (k *Keyframes) Bounce(frame int) (float64, error) {
	if len(k.BounceY) == 0 {
		return 0, fmt.Errorf("bounce track: %w", ErrEmptyTrack)
	}
	return k.BounceY[wrap(frame, len(k.BounceY))], nil
}

// Side returns the track of pyramid side n, numbered from 1
func (k *Keyframes) Side(n int) (SideTrack, error) {
	if n < 1 || n > len(k.Sides) {
		return SideTrack{}, fmt.Errorf("pyramid side %d out of range 1-%d", n, len(k.Sides))
	}
	return k.Sides[n-1], nil
}

func wrap(i, n int) int {
	if n == 0 {
		return 0
	}
	i %= n
	if i < 0 {
		i += n
	}
	return i
}
