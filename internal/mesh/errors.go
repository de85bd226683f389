package mesh

import (
	"errors"
	"fmt"
)

// Mesh errors.
var (
	ErrResourceExhausted = errors.New("triangle store exhausted")
	ErrDegenerate        = errors.New("degenerate triangle")
	ErrEdgeMismatch      = errors.New("shared edge endpoints differ")
	ErrAsymmetric        = errors.New("neighbour link is not symmetric")
	ErrIndexMismatch     = errors.New("triangle index does not match its slot")
	ErrAlreadyUTM        = errors.New("mesh coordinates already projected to UTM")
	ErrInvalidTolerance  = errors.New("tolerance must be positive")
)

// Kind classifies fatal mesh failures.
type Kind int

// Failure kinds.
const (
	KindResourceExhausted Kind = iota + 1
	KindDegenerate
	KindEdgeMismatch
	KindAsymmetric
	KindIndexMismatch
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindResourceExhausted:
		return "resource-exhausted"
	case KindDegenerate:
		return "degenerate"
	case KindEdgeMismatch:
		return "edge-mismatch"
	case KindAsymmetric:
		return "asymmetric"
	case KindIndexMismatch:
		return "index-mismatch"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// ExitCode returns the process status a command should exit with.
func (k Kind) ExitCode() int {
	switch k {
	case KindResourceExhausted:
		return 6
	case KindDegenerate:
		return 5
	case KindEdgeMismatch, KindAsymmetric, KindIndexMismatch:
		return 4
	default:
		return 1
	}
}

func (k Kind) sentinel() error {
	switch k {
	case KindResourceExhausted:
		return ErrResourceExhausted
	case KindDegenerate:
		return ErrDegenerate
	case KindEdgeMismatch:
		return ErrEdgeMismatch
	case KindAsymmetric:
		return ErrAsymmetric
	case KindIndexMismatch:
		return ErrIndexMismatch
	}
	return nil
}

// Error is a fatal mesh failure. Triangle, Neighbour and Edge are -1 when
// they do not apply.
type Error struct {
	Kind      Kind
	Triangle  int
	Neighbour int
	Edge      int
}

func (e *Error) Error() string {
	switch e.Kind {
	case KindResourceExhausted:
		return fmt.Sprintf("%v: cannot grow beyond %d triangles", e.Unwrap(), e.Triangle)
	case KindDegenerate, KindIndexMismatch:
		return fmt.Sprintf("%v: triangle %d", e.Unwrap(), e.Triangle)
	default:
		return fmt.Sprintf("%v: triangle %d edge %d neighbour %d", e.Unwrap(), e.Triangle, e.Edge, e.Neighbour)
	}
}

// Unwrap returns the sentinel for the error's kind.
func (e *Error) Unwrap() error {
	return e.Kind.sentinel()
}

// KindOf returns the kind of the first mesh Error in err's chain.
func KindOf(err error) (Kind, bool) {
	var me *Error
	if errors.As(err, &me) {
		return me.Kind, true
	}
	return 0, false
}
