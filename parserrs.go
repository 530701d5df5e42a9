package fieldgen

import "strconv"

// OperatorError is an error indicating an operator token that is not
// understood by the parser. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched brackets in the
// input. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Left is the opening bracket.
	Left string
	// Right is the mismatched closing bracket.
	Right string
}

// Error renders the unmatched side. The grammar has a single bracket pair,
// so one of Left and Right is always empty.
func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// SeparatorError is an error indicating a comma outside the argument list
// of a generator call. It implements InputError.
type SeparatorError struct {
	// Col is the position of the separator.
	Col int
	// Sep is the separator.
	Sep string
}

func (err *SeparatorError) Error() string {
	return errpos(err.Col, "invalid occurrence of separator "+strconv.Quote(err.Sep))
}

func (err *SeparatorError) Pos() int {
	return err.Col
}

// ArityError is an error indicating that a generator was cloned with an
// argument list whose length its kind does not accept. It implements
// InputError; clones performed outside parsing report position 0.
type ArityError struct {
	// Col is the position of the end of the call expression, or 0 if the
	// clone did not come from parsed input.
	Col int
	// Name is the name of the generator kind that rejected the list.
	Name string
	// Want describes the lengths the kind accepts, such as "1" or "1 or 2".
	Want string
	// Got is the length of the rejected argument list.
	Got int
}

func (err *ArityError) Error() string {
	msg := "cannot call " + err.Name + " with " + strconv.Itoa(err.Got) + " arguments: expected " + err.Want
	if err.Col == 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *ArityError) Pos() int {
	return err.Col
}

// NameError is an error indicating a name which is neither a registered
// generator nor a bound parameter. It implements InputError.
type NameError struct {
	// Col is the position of the name.
	Col int
	// Name is the name that could not be resolved.
	Name string
}

func (err *NameError) Error() string {
	return errpos(err.Col, "unknown generator "+strconv.Quote(err.Name))
}

func (err *NameError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty subexpression.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "no expression")
		}
		return errpos(err.Col, "no expression at end")
	}
	return errpos(err.Col, "no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*SeparatorError)(nil)
	_ InputError = (*ArityError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)
