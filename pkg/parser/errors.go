package parser

import (
	"fmt"

	"github.com/leapstack-labs/dynq/pkg/quantity"
	"github.com/leapstack-labs/dynq/pkg/token"
)

// Reason classifies why parsing failed.
type Reason int

const (
	// ReasonCouldNotParse is the generic fallback.
	ReasonCouldNotParse Reason = iota
	// ReasonUnexpectedToken marks input the lexer could not recognize.
	ReasonUnexpectedToken
	// ReasonInputIsEmpty marks an input without any tokens.
	ReasonInputIsEmpty
	// ReasonUnbalancedBrackets marks a missing opening or closing bracket.
	ReasonUnbalancedBrackets
	// ReasonTwoNumbersWithoutOperator marks two adjacent number
	// literals, e.g. "5 32".
	ReasonTwoNumbersWithoutOperator
	// ReasonTwoOperatorsWithoutNumber marks two adjacent operators,
	// e.g. "3 / * 2".
	ReasonTwoOperatorsWithoutNumber
	// ReasonMustNotStartWith marks an input starting with an operator
	// that needs a left operand, e.g. "*3".
	ReasonMustNotStartWith
	// ReasonUnitsNotEqual marks an addition or subtraction of
	// quantities with different units.
	ReasonUnitsNotEqual
	// ReasonNotReal marks a complex result where a real one was
	// required.
	ReasonNotReal
)

// ParseError describes why a string could not be parsed into a
// quantity. Span locates the offending bytes in the input and
// Substring is the corresponding text.
type ParseError struct {
	Substring string
	Span      token.Span
	Reason    Reason

	// Units is set when Reason is ReasonUnitsNotEqual.
	Units *quantity.UnitsNotEqualError
	// NotReal is set when Reason is ReasonNotReal.
	NotReal *quantity.NotRealError
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("could not parse %s: %s", e.Substring, e.reasonMessage())
}

// Unwrap exposes the underlying unit or narrowing error for errors.As.
func (e *ParseError) Unwrap() error {
	switch {
	case e.Units != nil:
		return e.Units
	case e.NotReal != nil:
		return e.NotReal
	}
	return nil
}

func (e *ParseError) reasonMessage() string {
	switch e.Reason {
	case ReasonUnexpectedToken:
		return "unexpected token"
	case ReasonInputIsEmpty:
		return "input is empty"
	case ReasonUnbalancedBrackets:
		return "unbalanced number of brackets"
	case ReasonTwoNumbersWithoutOperator:
		return "encountered two numbers without an operator (+ or -) between them"
	case ReasonTwoOperatorsWithoutNumber:
		return "encountered two operators (+, -, * or /) without a number between them"
	case ReasonMustNotStartWith:
		return "input must not start with this token"
	case ReasonUnitsNotEqual:
		return e.Units.Error()
	case ReasonNotReal:
		return e.NotReal.Error()
	}
	return "could not parse the input"
}
