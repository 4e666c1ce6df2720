package core

// Variables is the decision-variable part of a solution. The core never looks
// inside it; problems and operators agree on the concrete encoding.
type Variables interface {
	// Len returns the number of decision variables.
	Len() int
	// Copy returns a deep copy of the variables.
	Copy() Variables
}

// Solution is the unit every algorithm manipulates: decision variables under
// an opaque encoding, an objective vector (lower is better), an aggregate
// constraint violation, and the metadata the ranking machinery maintains.
//
// Objectives are written only by evaluators; Rank and Distance only by the
// sorting/density helpers and the archives. Problems never touch metadata.
type Solution struct {
	Variables  Variables
	Objectives []float64

	// Violation is the aggregate constraint violation: 0 when feasible,
	// more negative meaning a worse violation.
	Violation float64

	// Rank is the non-domination front index, 0 being the best front.
	Rank int
	// Distance is the crowding distance, larger meaning more isolated.
	Distance float64
}

// NewSolution creates a solution with an objective vector of the given length.
func NewSolution(vars Variables, numObjectives int) *Solution {
	return &Solution{
		Variables:  vars,
		Objectives: make([]float64, numObjectives),
	}
}

// Copy deep-copies the solution, including variables and metadata.
func (s *Solution) Copy() *Solution {
	objs := make([]float64, len(s.Objectives))
	copy(objs, s.Objectives)
	return &Solution{
		Variables:  s.Variables.Copy(),
		Objectives: objs,
		Violation:  s.Violation,
		Rank:       s.Rank,
		Distance:   s.Distance,
	}
}

// Feasible reports whether the solution violates no constraints.
func (s *Solution) Feasible() bool { return s.Violation == 0 }

// RealVars is a real-valued encoding.
type RealVars []float64

func (v RealVars) Len() int { return len(v) }

func (v RealVars) Copy() Variables {
	c := make(RealVars, len(v))
	copy(c, v)
	return c
}

// BinaryVars is a bit-string encoding.
type BinaryVars []bool

func (v BinaryVars) Len() int { return len(v) }

func (v BinaryVars) Copy() Variables {
	c := make(BinaryVars, len(v))
	copy(c, v)
	return c
}
