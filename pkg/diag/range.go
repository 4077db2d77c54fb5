package diag

// Ranger wraps the Range method.
type Ranger interface {
	// Range returns the range associated with the value.
	Range() Ranging
}

// Ranging represents a range [From, To) of byte offsets within a source text.
// AST nodes embed Ranging to satisfy the Ranger interface.
//
// A From of -1 means the position is unknown, which is the case for nodes that
// were built programmatically rather than decoded from a parser's output.
type Ranging struct {
	From int
	To   int
}

// Range returns the Ranging itself.
func (r Ranging) Range() Ranging { return r }

// Known reports whether the range carries a real position.
func (r Ranging) Known() bool { return r.From >= 0 }

// NoRanging is the Ranging of nodes without position information.
var NoRanging = Ranging{-1, -1}

// PointRanging returns a zero-width Ranging at the given point.
func PointRanging(p int) Ranging {
	return Ranging{p, p}
}

// MixedRanging returns a Ranging from the start position of a to the end
// position of b.
func MixedRanging(a, b Ranger) Ranging {
	return Ranging{a.Range().From, b.Range().To}
}
