package errprop

import "strconv"

// MalformedExpressionError is the error Parse returns for input that does not
// describe an expression. Err describes the problem.
type MalformedExpressionError struct {
	// Input is the text that failed to parse.
	Input string
	// Err is the specific problem with the input.
	Err InputError
}

func (err *MalformedExpressionError) Error() string {
	return "malformed expression " + strconv.Quote(err.Input) + ": " + err.Err.Error()
}

func (err *MalformedExpressionError) Unwrap() error {
	return err.Err
}

func (err *MalformedExpressionError) Pos() int {
	return err.Err.Pos()
}

// BracketError is an error indicating unbalanced brackets in the input. It
// implements InputError.
type BracketError struct {
	// Col is the position of the unmatched bracket.
	Col int
	// Left is the opening bracket with no match, if any.
	Left string
	// Right is the closing bracket with no match, if any.
	Right string
}

func (err *BracketError) Error() string {
	if err.Left == "" {
		return errpos(err.Col, "close bracket "+err.Right+" with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Left+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// OperandError is an error indicating an operator with nothing on one of its
// sides. It implements InputError.
type OperandError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the operator token.
	Operator string
	// Right is whether the missing operand is on the right.
	Right bool
}

func (err *OperandError) Error() string {
	s := "left"
	if err.Right {
		s = "right"
	}
	return errpos(err.Col, "operator "+strconv.Quote(err.Operator)+" has no "+s+" operand")
}

func (err *OperandError) Pos() int {
	return err.Col
}

// CallError is an error indicating a function applied to the wrong number of
// arguments. It implements InputError.
type CallError struct {
	// Col is the position of the function name.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call tried to imply.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int {
	return err.Col
}

// FuncError is an error indicating a call of a function that does not exist.
// It implements InputError.
type FuncError struct {
	// Col is the position of the function name.
	Col int
	// Name is the unknown function name.
	Name string
}

func (err *FuncError) Error() string {
	return errpos(err.Col, "unknown function "+strconv.Quote(err.Name))
}

func (err *FuncError) Pos() int {
	return err.Col
}

// TermError is an error indicating terms next to each other with no operator
// between them. It implements InputError.
type TermError struct {
	// Col is the position of the first term that has no operator before it.
	Col int
	// Text is that term.
	Text string
}

func (err *TermError) Error() string {
	return errpos(err.Col, "missing operator before "+strconv.Quote(err.Text))
}

func (err *TermError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that is not a number, name, or
// operator. It implements InputError.
type TokenError struct {
	// Col is the position of the token.
	Col int
	// Text is the token.
	Text string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an empty input or group.
type EmptyExpressionError struct {
	// Col is the position of the empty group's open bracket, or of the end of
	// the input.
	Col int
	// Group is whether the empty expression is a bracketed group.
	Group bool
}

func (err *EmptyExpressionError) Error() string {
	if err.Group {
		return errpos(err.Col, "empty group")
	}
	return errpos(err.Col, "no expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// malformed input implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
}

var (
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperandError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*FuncError)(nil)
	_ InputError = (*TermError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
)
