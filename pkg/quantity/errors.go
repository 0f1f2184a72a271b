package quantity

import (
	"fmt"

	"github.com/leapstack-labs/dynq/pkg/unit"
)

// UnitsNotEqualError reports an addition or subtraction of two
// quantities whose units differ. Both units are kept for inspection.
type UnitsNotEqualError struct {
	Left  unit.Unit
	Right unit.Unit
}

func (e *UnitsNotEqualError) Error() string {
	return fmt.Sprintf("unit %s not equal to unit %s", e.Left, e.Right)
}

// NotRealError reports a failed narrowing of a complex value to a real
// one, i.e. the imaginary component did not cancel out.
type NotRealError struct {
	Value      complex128
	TargetType string
}

func (e *NotRealError) Error() string {
	return fmt.Sprintf("could not convert from %s into target type %s", formatComplex(e.Value), e.TargetType)
}

// UnitMismatchError reports that a quantity carried a different unit
// than the operation expected.
type UnitMismatchError struct {
	Expected unit.Unit
	Found    unit.Unit
}

func (e *UnitMismatchError) Error() string {
	return fmt.Sprintf("expected %s, found %s", e.Expected, e.Found)
}
