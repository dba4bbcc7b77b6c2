package math

import (
	"errors"
	"fmt"
)

// ErrDegenerateRange is returned when a range cannot be used as a remap origin.
var ErrDegenerateRange = errors.New("degenerate range")

// Range is a closed linear interval. Min == Max is legal and collapses every
// value onto a single point.
type Range struct {
	Min, Max float32
}

// NewRange returns the range [min, max], swapping the ends if needed.
func NewRange(min, max float32) Range {
	if min > max {
		min, max = max, min
	}
	return Range{Min: min, Max: max}
}

// Span returns Max - Min.
func (r Range) Span() float32 {
	return r.Max - r.Min
}

// IsDegenerate reports whether the range has zero width.
func (r Range) IsDegenerate() bool {
	return r.Min == r.Max
}

// Contains reports whether v lies inside the closed range.
func (r Range) Contains(v float32) bool {
	return v >= r.Min && v <= r.Max
}

// Clamp limits v to the range.
func (r Range) Clamp(v float32) float32 {
	if v < r.Min {
		return r.Min
	}
	if v > r.Max {
		return r.Max
	}
	return v
}

// Validate checks that the range can be used as the origin of a remap.
func (r Range) Validate() error {
	if r.Min > r.Max {
		return fmt.Errorf("range [%g, %g]: min exceeds max", r.Min, r.Max)
	}
	if r.IsDegenerate() {
		return fmt.Errorf("range [%g, %g]: %w", r.Min, r.Max, ErrDegenerateRange)
	}
	return nil
}

// Remap converts value from the origin range into the target range.
//
// The ratio is (target.Max-target.Min)/(origin.Max-origin.Min). A degenerate
// origin has no defined ratio; Remap returns target.Min for it instead of NaN,
// so callers that care must Validate the origin first.
func Remap(origin, target Range, value float32) float32 {
	if origin.IsDegenerate() {
		return target.Min
	}
	ratio := target.Span() / origin.Span()
	return (value-origin.Min)*ratio + target.Min
}

// RangePair maps one range onto another.
type RangePair struct {
	From Range
	To   Range
}

// Map remaps value from p.From into p.To.
func (p RangePair) Map(value float32) float32 {
	return Remap(p.From, p.To, value)
}

// IsZero reports whether both ranges are the zero range.
func (p RangePair) IsZero() bool {
	return p == RangePair{}
}
