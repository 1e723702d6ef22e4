// Package pebble places randomized circular ornaments ("pebbles") inside a
// bounded canvas without overlap.
//
// Placement uses iterative rejection sampling: for each requested pebble a
// radius is drawn from the configured range, then candidate centers are drawn
// until one clears every previously accepted pebble by at least the sum of
// radii plus the margin. The retry budget is bounded; what happens when it is
// exhausted is an explicit policy on [Constraints]. All randomness comes from
// the stream passed by the caller, so placement is byte-identical for a fixed
// seed, count, canvas, and constraints.
package pebble

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/matzehuels/pebblecal/pkg/errors"
)

// Canvas is the rectangular region pebbles are placed into. Coordinates run
// from (0, 0) at the lower-left corner to (Width, Height).
type Canvas struct {
	Width  float64
	Height float64
}

// Constraints configures the placement draw ranges and the retry policy.
// The zero value is not usable; start from [DefaultConstraints] or call
// Validate before use.
type Constraints struct {
	// MinRadius and MaxRadius bound the uniform radius draw.
	MinRadius float64
	MaxRadius float64

	// Margin is the required clearance between pebble edges.
	Margin float64

	// MaxAttempts bounds the center redraws per pebble (per shrink round).
	MaxAttempts int

	// ShrinkOnExhaust selects the exhaustion policy: when true, an exhausted
	// retry budget shrinks the candidate radius by ShrinkFactor and retries,
	// up to MaxShrinks rounds. When false, exhaustion fails the placement.
	ShrinkOnExhaust bool
	ShrinkFactor    float64
	MaxShrinks      int
}

// DefaultConstraints are tuned for a month page ornament cluster: radii in
// the range the original artwork used, a small visual margin, and fail-fast
// exhaustion.
var DefaultConstraints = Constraints{
	MinRadius:    12,
	MaxRadius:    20,
	Margin:       4,
	MaxAttempts:  200,
	ShrinkFactor: 0.8,
	MaxShrinks:   3,
}

// Validate checks the constraint ranges. It is called by Place, but callers
// constructing constraints from user input should call it early so range
// errors surface before any drawing.
func (c Constraints) Validate() error {
	if c.MinRadius <= 0 {
		return errors.New(errors.ErrCodeInvalidInput, "min radius must be positive, got %g", c.MinRadius)
	}
	if c.MaxRadius < c.MinRadius {
		return errors.New(errors.ErrCodeInvalidInput, "max radius %g below min radius %g", c.MaxRadius, c.MinRadius)
	}
	if c.Margin < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "margin must be non-negative, got %g", c.Margin)
	}
	if c.MaxAttempts < 1 {
		return errors.New(errors.ErrCodeInvalidInput, "max attempts must be at least 1, got %d", c.MaxAttempts)
	}
	if c.ShrinkOnExhaust {
		if c.ShrinkFactor <= 0 || c.ShrinkFactor >= 1 {
			return errors.New(errors.ErrCodeInvalidInput, "shrink factor must be in (0, 1), got %g", c.ShrinkFactor)
		}
		if c.MaxShrinks < 1 {
			return errors.New(errors.ErrCodeInvalidInput, "max shrinks must be at least 1, got %d", c.MaxShrinks)
		}
	}
	return nil
}

// Shade range for the random grey fill, carried over from the original
// artwork's CMYK grey band.
const (
	shadeMin = 0.1
	shadeMax = 0.9
)

// Ornament is one placed pebble. Ornaments are immutable once placed.
type Ornament struct {
	X        float64 // center
	Y        float64
	Radius   float64
	Rotation float64 // radians, display only
	Shade    float64 // grey intensity in [shadeMin, shadeMax], 0 = white
}

// Grey returns the ornament's fill as a CSS hex grey.
func (o Ornament) Grey() string {
	v := int(math.Round((1 - o.Shade) * 255))
	return fmt.Sprintf("#%02x%02x%02x", v, v, v)
}

// Place produces n non-overlapping ornaments inside canvas.
//
// For n == 0 it returns an empty slice without consuming any draws from rng.
// When the retry budget (and, if enabled, the shrink budget) is exhausted it
// returns a PLACEMENT_EXHAUSTED error naming the offending canvas and
// constraints; partial placements are never returned.
func Place(n int, canvas Canvas, c Constraints, rng *rand.Rand) ([]Ornament, error) {
	if n < 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "pebble count must be non-negative, got %d", n)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if n == 0 {
		return []Ornament{}, nil
	}
	if canvas.Width <= 0 || canvas.Height <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas must have positive area, got %gx%g", canvas.Width, canvas.Height)
	}

	placed := make([]Ornament, 0, n)
	for i := range n {
		o, ok := placeOne(canvas, c, rng, placed)
		if !ok {
			return nil, errors.New(errors.ErrCodePlacementExhausted,
				"placed %d of %d pebbles on %gx%g canvas (radius %g-%g, margin %g, %d attempts)",
				i, n, canvas.Width, canvas.Height, c.MinRadius, c.MaxRadius, c.Margin, c.MaxAttempts)
		}
		// Rotation and shade never affect acceptance, so they are drawn only
		// after the center is accepted.
		o.Rotation = rng.Float64() * 2 * math.Pi
		o.Shade = shadeMin + rng.Float64()*(shadeMax-shadeMin)
		placed = append(placed, o)
	}
	return placed, nil
}

// placeOne finds an admissible center for the next pebble, shrinking the
// radius between rounds when the policy allows it.
func placeOne(canvas Canvas, c Constraints, rng *rand.Rand, placed []Ornament) (Ornament, bool) {
	r := c.MinRadius + rng.Float64()*(c.MaxRadius-c.MinRadius)

	rounds := 1
	if c.ShrinkOnExhaust {
		rounds += c.MaxShrinks
	}
	for round := range rounds {
		if round > 0 {
			r *= c.ShrinkFactor
		}
		for range c.MaxAttempts {
			// The candidate center is drawn from the sub-region that keeps
			// the full circle inside bounds. If the circle cannot fit at all,
			// the attempt fails without consuming draws; only a shrink can
			// recover from that.
			if 2*r > canvas.Width || 2*r > canvas.Height {
				break
			}
			x := r + rng.Float64()*(canvas.Width-2*r)
			y := r + rng.Float64()*(canvas.Height-2*r)
			if clears(x, y, r, c.Margin, placed) {
				return Ornament{X: x, Y: y, Radius: r}, true
			}
		}
	}
	return Ornament{}, false
}

// clears reports whether a circle at (x, y) with radius r keeps at least
// margin clearance from every placed ornament.
func clears(x, y, r, margin float64, placed []Ornament) bool {
	for _, p := range placed {
		minDist := r + p.Radius + margin
		dx, dy := x-p.X, y-p.Y
		if dx*dx+dy*dy < minDist*minDist {
			return false
		}
	}
	return true
}
