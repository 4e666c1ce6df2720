package core

// Compare ranks two solutions by Pareto dominance over their objective
// vectors. It returns -1 if a dominates b, +1 if b dominates a, and 0 when
// neither dominates (including full equality). A result of 0 carries no
// ordering information and must never be coerced into a tie-break.
func Compare(a, b *Solution) (int, error) {
	if len(a.Objectives) != len(b.Objectives) {
		return 0, &IncompatibleSolutionsError{LenA: len(a.Objectives), LenB: len(b.Objectives)}
	}

	aBetter, bBetter := false, false
	for i := range a.Objectives {
		switch {
		case a.Objectives[i] < b.Objectives[i]:
			aBetter = true
		case a.Objectives[i] > b.Objectives[i]:
			bBetter = true
		}
	}

	switch {
	case aBetter && !bBetter:
		return -1, nil
	case bBetter && !aBetter:
		return 1, nil
	default:
		return 0, nil
	}
}

// CompareWithConstraints ranks two solutions with feasibility decided first:
// if either carries a nonzero aggregate violation, the one closer to zero
// wins outright, regardless of objectives. Equal violations fall through to
// Pareto dominance.
func CompareWithConstraints(a, b *Solution) (int, error) {
	if a.Violation != b.Violation {
		if a.Violation > b.Violation {
			return -1, nil
		}
		return 1, nil
	}
	return Compare(a, b)
}

// Dominates reports whether a dominates b under constraint-aware dominance.
// It panics on incompatible objective vectors; callers inside the engine own
// both solutions and guarantee matching lengths.
func Dominates(a, b *Solution) bool {
	r, err := CompareWithConstraints(a, b)
	if err != nil {
		panic(err)
	}
	return r == -1
}
