package geometry

import "fmt"

// ConfigurationError reports size bounds that cannot be satisfied.
type ConfigurationError struct {
	Field string
	Min   Size
	Max   Size
}

func (e *ConfigurationError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("invalid %s bounds: min %s, max %s", e.Field, e.Min, e.Max)
}

// Constraints bounds the size of an element.
type Constraints struct {
	Min Size
	Max Size
}

// NoConstraints allows any non-negative size.
func NoConstraints() Constraints {
	return Constraints{Max: Size{Width: Unbounded, Height: Unbounded}}
}

// Validate rejects negative extents and a minimum larger than the maximum on
// either axis.
func (c Constraints) Validate() error {
	bad := c.Min.Width < 0 || c.Min.Height < 0 || c.Max.Width < 0 || c.Max.Height < 0 ||
		c.Min.Width > c.Max.Width || c.Min.Height > c.Max.Height
	if bad {
		return &ConfigurationError{Field: "size", Min: c.Min, Max: c.Max}
	}
	return nil
}

// Grow returns the constraints with d added to both bounds. Unbounded maxima
// stay unbounded.
func (c Constraints) Grow(d Size) Constraints {
	out := Constraints{Min: c.Min.Add(d), Max: c.Max}
	if c.Max.Width < Unbounded {
		out.Max.Width += d.Width
	}
	if c.Max.Height < Unbounded {
		out.Max.Height += d.Height
	}
	return out
}

// ClampSize limits s to the constraints.
func (c Constraints) ClampSize(s Size) Size {
	return Size{
		Width:  Clamp(s.Width, c.Min.Width, c.Max.Width),
		Height: Clamp(s.Height, c.Min.Height, c.Max.Height),
	}
}
