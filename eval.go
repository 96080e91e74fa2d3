package errprop

import (
	"math"
	"strconv"
)

// Eval evaluates e with the given variable values. Division by zero follows
// IEEE semantics. Evaluation fails with *UnboundVariableError if vars does
// not define a variable in e, or with *DomainError for the logarithm of a
// non-positive number or a non-integer power of a negative number.
func (e *Expr) Eval(vars map[string]float64) (float64, error) {
	switch e.kind {
	case Constant, NamedConstant:
		return e.val, nil
	case Variable:
		v, ok := vars[e.name]
		if !ok {
			return 0, &UnboundVariableError{Name: e.name}
		}
		return v, nil
	case Negate:
		x, err := e.left.Eval(vars)
		if err != nil {
			return 0, err
		}
		return -x, nil
	case Sine, Cosine, Logarithm:
		x, err := e.left.Eval(vars)
		if err != nil {
			return 0, err
		}
		switch e.kind {
		case Sine:
			return math.Sin(x), nil
		case Cosine:
			return math.Cos(x), nil
		}
		// Guard against invalid logarithms. NaN passes through.
		if x <= 0 {
			return 0, &DomainError{X: x, Func: "log"}
		}
		return math.Log(x), nil
	case PowerByConstant:
		x, err := e.left.Eval(vars)
		if err != nil {
			return 0, err
		}
		return pow(x, e.val)
	}
	// Binary operations.
	x, err := e.left.Eval(vars)
	if err != nil {
		return 0, err
	}
	y, err := e.right.Eval(vars)
	if err != nil {
		return 0, err
	}
	switch e.kind {
	case Sum:
		return x + y, nil
	case Difference:
		return x - y, nil
	case Product:
		return x * y, nil
	case Quotient:
		return x / y, nil
	case PowerGeneral:
		return pow(x, y)
	default:
		panic("errprop: invalid expression kind " + e.kind.String())
	}
}

// pow computes x^y, rejecting non-integer powers of negative numbers.
func pow(x, y float64) (float64, error) {
	if x < 0 && !math.IsInf(y, 0) && !math.IsNaN(y) && y != math.Trunc(y) {
		return 0, &DomainError{X: x, Arg: 1, Func: "^"}
	}
	return math.Pow(x, y), nil
}

// UnboundVariableError is an error from evaluating or rendering an expression
// containing a variable with no value.
type UnboundVariableError struct {
	// Name is the name that was missing.
	Name string
}

func (err *UnboundVariableError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// DomainError is an error returned when a function is evaluated on an
// argument outside its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Arg is the 1-based index of the argument, or 0 for unary functions.
	Arg int
	// Func is a name identifying the function.
	Func string
}

func (err *DomainError) Error() string {
	r := strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	if err.Arg > 0 {
		r += " (argument " + strconv.Itoa(err.Arg) + ")"
	}
	return r
}
