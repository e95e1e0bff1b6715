package layered

import "fmt"

// Class identifies the kind of relation an edge represents.
// Lower values take precedence over higher ones.
type Class uint8

const (
	// Structural edges are listed explicitly in the L1 source.
	Structural Class = iota
	// Induced edges connect members of two categories related in the L2 source.
	Induced
	// SameCategory edges connect members of one category.
	SameCategory
)

// Classes lists every class in precedence order.
var Classes = []Class{Structural, Induced, SameCategory}

// String returns the class name used in logs and serialized snapshots.
func (c Class) String() string {
	switch c {
	case Structural:
		return "structural"
	case Induced:
		return "induced"
	case SameCategory:
		return "same-category"
	default:
		return fmt.Sprintf("class(%d)", uint8(c))
	}
}

// Color returns the source-domain color of the class.
func (c Class) Color() string {
	switch c {
	case Induced:
		return "red"
	case SameCategory:
		return "blue"
	default:
		return "black"
	}
}

// Style returns the line style hint for diagrams.
func (c Class) Style() string {
	if c == SameCategory {
		return "dotted"
	}
	return "solid"
}

// Augmenting reports whether the class is derived from the L2 source.
func (c Class) Augmenting() bool { return c == Induced || c == SameCategory }

// Valid reports whether c is one of the defined classes.
func (c Class) Valid() bool { return c <= SameCategory }

// ParseClass converts a class name produced by [Class.String] back to a Class.
func ParseClass(s string) (Class, error) {
	for _, c := range Classes {
		if c.String() == s {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown edge class %q", s)
}

// Weights assigns a traversal weight to each class.
type Weights struct {
	Structural   float64 `toml:"structural" json:"structural" validate:"gte=0"`
	Induced      float64 `toml:"induced" json:"induced" validate:"gte=0"`
	SameCategory float64 `toml:"same_category" json:"same_category" validate:"gte=0"`
}

// DefaultWeights returns 1.0 for structural and induced edges and 0.5 for
// same-category edges.
func DefaultWeights() Weights {
	return Weights{Structural: 1.0, Induced: 1.0, SameCategory: 0.5}
}

// Of returns the weight for class c.
func (w Weights) Of(c Class) float64 {
	switch c {
	case Induced:
		return w.Induced
	case SameCategory:
		return w.SameCategory
	default:
		return w.Structural
	}
}
