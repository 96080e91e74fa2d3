package errprop

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pkg/errors"
)

// Parsing happens in two stages. First, group splits the input into tokens at
// white space and brackets and nests bracketed parts. Then fold turns each
// list of sibling terms into an expression by splitting at the leftmost
// occurrence of the loosest operator present, in this order:
//
//	term          number, named constant, or variable
//	fn term       log, sin, or cos of a term
//	x + y         Sum
//	x - y         Difference; the first binary minus is used, so
//	              a - b - c is a - (b - c)
//	- x           Negate of all of x
//	x * y         Product
//	x / y         Quotient; a / b / c is a / (b / c)
//	x ^ y         PowerByConstant if y simplifies to a constant, else
//	              PowerGeneral
//
// Operators and terms must be separated by spaces or brackets: "x+1" is a
// single (invalid) token.

// Parse parses an expression. Variables that reg does not define are passed
// to the resolver set with OnUnknown, and their measurements are added to reg.
// If reg is nil, every identifier is accepted as a variable.
//
// Parse returns a *MalformedExpressionError if src does not describe an
// expression. If a variable is not defined and there is no resolver, the
// error is an *UnboundVariableError. Errors from the resolver are returned
// wrapped.
func Parse(src string, reg *Registry, opts ...ParseOption) (*Expr, error) {
	p := parsectx{reg: reg, passes: 2}
	for _, opt := range opts {
		p = opt.parseOption(p)
	}
	ts, err := group(src)
	if err != nil {
		return nil, malformed(src, err)
	}
	e, err := p.fold(ts, utf8.RuneCountInString(src)+1)
	if err != nil {
		return nil, malformed(src, err)
	}
	return e, nil
}

// malformed wraps input errors in a MalformedExpressionError and returns
// other errors unchanged.
func malformed(src string, err error) error {
	if ie, ok := err.(InputError); ok {
		return &MalformedExpressionError{Input: src, Err: ie}
	}
	return err
}

// fold converts a list of sibling terms to an expression. col is the position
// to report if ts is empty.
func (p *parsectx) fold(ts []term, col int) (*Expr, error) {
	switch len(ts) {
	case 0:
		return nil, &EmptyExpressionError{Col: col}
	case 1:
		t := ts[0]
		if t.group {
			// Only empty groups survive grouping as single terms.
			if len(t.sub) == 0 {
				return nil, &EmptyExpressionError{Col: t.pos, Group: true}
			}
			return p.fold(t.sub, t.pos)
		}
		return p.leaf(t)
	case 2:
		if k, ok := funcs[ts[0].text]; ok && !ts[0].group {
			x, err := p.fold(ts[1:], ts[1].pos)
			if err != nil {
				return nil, err
			}
			return unary(k, x), nil
		}
	}
	if k := index(ts, "+"); k >= 0 {
		return p.binary(ts, k, Add)
	}
	if k := binaryMinus(ts); k >= 0 {
		return p.binary(ts, k, Sub)
	}
	if isOp(ts[0], "-") {
		x, err := p.fold(ts[1:], ts[1].pos)
		if err != nil {
			return nil, err
		}
		return Neg(x), nil
	}
	if k := index(ts, "*"); k >= 0 {
		return p.binary(ts, k, Mul)
	}
	if k := index(ts, "/"); k >= 0 {
		return p.binary(ts, k, Div)
	}
	if k := index(ts, "^"); k >= 0 {
		return p.binary(ts, k, p.power)
	}
	return nil, junk(ts)
}

// binary folds the terms on each side of the operator at ts[k] and combines
// them with mk.
func (p *parsectx) binary(ts []term, k int, mk func(x, y *Expr) *Expr) (*Expr, error) {
	if k == 0 {
		return nil, &OperandError{Col: ts[k].pos, Operator: ts[k].text}
	}
	if k == len(ts)-1 {
		return nil, &OperandError{Col: ts[k].pos, Operator: ts[k].text, Right: true}
	}
	x, err := p.fold(ts[:k], ts[k].pos)
	if err != nil {
		return nil, err
	}
	y, err := p.fold(ts[k+1:], ts[k+1].pos)
	if err != nil {
		return nil, err
	}
	return mk(x, y), nil
}

// power creates x^y, using a constant exponent when y simplifies to one.
func (p *parsectx) power(x, y *Expr) *Expr {
	s := y
	for i := 0; i < p.passes; i++ {
		s = s.Simplify()
	}
	switch s.kind {
	case Constant, NamedConstant:
		return PowConst(x, s.val)
	}
	return Pow(x, y)
}

// leaf converts a single token to an expression.
func (p *parsectx) leaf(t term) (*Expr, error) {
	v, err := strconv.ParseFloat(t.text, 64)
	switch {
	case err == nil:
		return Const(v), nil
	case errors.Is(err, strconv.ErrRange):
		// Overflow and underflow give ±Inf and 0, which is what we want.
		return Const(v), nil
	}
	if c := Named(t.text); c != nil {
		return c, nil
	}
	if _, ok := funcs[t.text]; ok {
		return nil, &CallError{Col: t.pos, Func: t.text}
	}
	if isOperator(t) {
		return nil, &OperandError{Col: t.pos, Operator: t.text}
	}
	if !ValidName(t.text) {
		return nil, &TokenError{Col: t.pos, Text: t.text}
	}
	return p.variable(t.text)
}

// variable creates a variable, resolving it first if it is new.
func (p *parsectx) variable(name string) (*Expr, error) {
	if p.reg == nil {
		return Var(name), nil
	}
	if _, ok := p.reg.Lookup(name); ok {
		return Var(name), nil
	}
	if p.unknown == nil {
		return nil, &UnboundVariableError{Name: name}
	}
	m, err := p.unknown(name)
	if err != nil {
		return nil, errors.Wrapf(err, "resolving %s", name)
	}
	if err := p.reg.Set(name, m); err != nil {
		return nil, errors.Wrapf(err, "resolving %s", name)
	}
	return Var(name), nil
}

// junk creates an error describing a list of terms with no operator.
func junk(ts []term) error {
	t := ts[0]
	if !t.group {
		if _, ok := funcs[t.text]; ok {
			return &CallError{Col: t.pos, Func: t.text, Len: len(ts) - 1}
		}
		if len(ts) == 2 && ts[1].group && ValidName(t.text) && !Reserved(t.text) {
			return &FuncError{Col: t.pos, Name: t.text}
		}
	}
	return &TermError{Col: ts[1].pos, Text: ts[1].String()}
}

// index returns the index of the first token in ts that is the operator op,
// or -1 if there is none.
func index(ts []term, op string) int {
	for i, t := range ts {
		if isOp(t, op) {
			return i
		}
	}
	return -1
}

// binaryMinus returns the index of the first minus in ts that follows an
// operand, or -1 if there is none.
func binaryMinus(ts []term) int {
	for i := 1; i < len(ts); i++ {
		if isOp(ts[i], "-") && !isOperator(ts[i-1]) {
			return i
		}
	}
	return -1
}

func isOp(t term, op string) bool {
	return !t.group && t.text == op
}

// Operators contains the binary operator tokens, loosest first.
const Operators = "+-*/^"

func isOperator(t term) bool {
	return !t.group && len(t.text) == 1 && strings.IndexByte(Operators, t.text[0]) >= 0
}
