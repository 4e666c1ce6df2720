package core

import "fmt"

// IncompatibleSolutionsError reports a dominance comparison between solutions
// whose objective vectors have different lengths. This is a problem-definition
// bug, never retried.
type IncompatibleSolutionsError struct {
	LenA, LenB int
}

func (e *IncompatibleSolutionsError) Error() string {
	return fmt.Sprintf("incompatible solutions: objective lengths %d and %d", e.LenA, e.LenB)
}

func (e *IncompatibleSolutionsError) Is(target error) bool {
	_, ok := target.(*IncompatibleSolutionsError)
	return ok
}

// ErrIncompatibleSolutions matches any IncompatibleSolutionsError via errors.Is.
var ErrIncompatibleSolutions = &IncompatibleSolutionsError{}

// EvaluationError reports that a problem's scoring logic failed. It is fatal
// for the current run: no partial generation is accepted.
type EvaluationError struct {
	Problem string
	Err     error
}

func (e *EvaluationError) Error() string {
	return fmt.Sprintf("evaluating %s: %v", e.Problem, e.Err)
}

func (e *EvaluationError) Unwrap() error { return e.Err }

func (e *EvaluationError) Is(target error) bool {
	_, ok := target.(*EvaluationError)
	return ok
}

// ErrEvaluation matches any EvaluationError via errors.Is.
var ErrEvaluation = &EvaluationError{}

// InvalidStateError reports an engine operation performed in the wrong
// lifecycle state, such as requesting a result before termination.
type InvalidStateError struct {
	Op    string
	State string
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("%s not allowed in state %q", e.Op, e.State)
}

func (e *InvalidStateError) Is(target error) bool {
	_, ok := target.(*InvalidStateError)
	return ok
}

// ErrInvalidState matches any InvalidStateError via errors.Is.
var ErrInvalidState = &InvalidStateError{}
