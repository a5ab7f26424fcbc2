package tensor

import "fmt"

// Shape represents the dimensions of a tensor.
// Feature maps use the fixed axis order (batch, channels, height, width).
type Shape []int

// NumElements returns the total number of elements.
func (s Shape) NumElements() int {
	n := 1
	for _, dim := range s {
		n *= dim
	}
	return n
}

// Validate checks that every dimension is positive.
func (s Shape) Validate() error {
	for i, dim := range s {
		if dim <= 0 {
			return fmt.Errorf("invalid dimension %d at axis %d (must be > 0)", dim, i)
		}
	}
	return nil
}

// Equal reports whether two shapes match exactly.
func (s Shape) Equal(other Shape) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the shape.
func (s Shape) Clone() Shape {
	c := make(Shape, len(s))
	copy(c, s)
	return c
}

// ComputeStrides returns row-major strides: stride[i] is the product of all
// dimensions after i.
func (s Shape) ComputeStrides() []int {
	strides := make([]int, len(s))
	if len(s) == 0 {
		return strides
	}
	strides[len(s)-1] = 1
	for i := len(s) - 2; i >= 0; i-- {
		strides[i] = strides[i+1] * s[i+1]
	}
	return strides
}

// BroadcastShapes applies NumPy-style broadcasting rules to a pair of shapes.
//
// Aligned from the right, two dimensions are compatible when they are equal
// or one of them is 1; missing leading dimensions count as 1. Returns the
// broadcast shape, whether any expansion is needed, and an error for
// incompatible shapes.
//
// The (N,C,H,W) * (1,C,1,1) and (N,C,H,W) * (N,1,H,W) gate patterns of the
// attention stack both reduce to this rule.
func BroadcastShapes(a, b Shape) (Shape, bool, error) {
	n := max(len(a), len(b))
	out := make(Shape, n)
	expands := false

	for i := 0; i < n; i++ {
		ad, bd := 1, 1
		if idx := len(a) - 1 - i; idx >= 0 {
			ad = a[idx]
		}
		if idx := len(b) - 1 - i; idx >= 0 {
			bd = b[idx]
		}

		switch {
		case ad == bd:
			out[n-1-i] = ad
		case ad == 1:
			out[n-1-i] = bd
			expands = true
		case bd == 1:
			out[n-1-i] = ad
			expands = true
		default:
			return nil, false, fmt.Errorf("shapes %v and %v are not broadcast-compatible at axis %d (%d vs %d)",
				a, b, n-1-i, ad, bd)
		}
	}

	return out, expands, nil
}
