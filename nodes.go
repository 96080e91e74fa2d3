package errprop

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the variant of an expression node.
type Kind int8

const (
	kindNone Kind = iota

	Constant      // numeric literal
	NamedConstant // pi, e
	Variable      // free identifier

	Negate     // -left
	Sum        // left + right
	Difference // left - right
	Product    // left * right
	Quotient   // left / right

	PowerByConstant // left ^ val
	PowerGeneral    // left ^ right

	Sine      // sin(left)
	Cosine    // cos(left)
	Logarithm // log(left)
)

var kindNames = [...]string{
	kindNone:        "None",
	Constant:        "Constant",
	NamedConstant:   "NamedConstant",
	Variable:        "Variable",
	Negate:          "Negate",
	Sum:             "Sum",
	Difference:      "Difference",
	Product:         "Product",
	Quotient:        "Quotient",
	PowerByConstant: "PowerByConstant",
	PowerGeneral:    "PowerGeneral",
	Sine:            "Sine",
	Cosine:          "Cosine",
	Logarithm:       "Logarithm",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// Expr is a node in a symbolic expression tree. An Expr is never modified
// after it is constructed, so it is safe to use concurrently.
type Expr struct {
	kind Kind

	// val is the value of a Constant or NamedConstant or the exponent of a
	// PowerByConstant.
	val float64
	// name is the identifier of a Variable or the input token of a
	// NamedConstant.
	name string

	left  *Expr
	right *Expr
}

// Const creates a numeric constant.
func Const(v float64) *Expr {
	return &Expr{kind: Constant, val: v}
}

// Var creates a variable.
func Var(name string) *Expr {
	return &Expr{kind: Variable, name: name}
}

// Neg creates the negation of x.
func Neg(x *Expr) *Expr {
	return &Expr{kind: Negate, left: x}
}

// Add creates the sum x + y.
func Add(x, y *Expr) *Expr {
	return &Expr{kind: Sum, left: x, right: y}
}

// Sub creates the difference x - y.
func Sub(x, y *Expr) *Expr {
	return &Expr{kind: Difference, left: x, right: y}
}

// Mul creates the product x * y.
func Mul(x, y *Expr) *Expr {
	return &Expr{kind: Product, left: x, right: y}
}

// Div creates the quotient x / y.
func Div(x, y *Expr) *Expr {
	return &Expr{kind: Quotient, left: x, right: y}
}

// PowConst creates x raised to a fixed exponent n.
func PowConst(x *Expr, n float64) *Expr {
	return &Expr{kind: PowerByConstant, left: x, val: n}
}

// Pow creates x raised to the expression y.
func Pow(x, y *Expr) *Expr {
	return &Expr{kind: PowerGeneral, left: x, right: y}
}

// Sin creates the sine of x, in radians.
func Sin(x *Expr) *Expr {
	return &Expr{kind: Sine, left: x}
}

// Cos creates the cosine of x, in radians.
func Cos(x *Expr) *Expr {
	return &Expr{kind: Cosine, left: x}
}

// Log creates the natural logarithm of x.
func Log(x *Expr) *Expr {
	return &Expr{kind: Logarithm, left: x}
}

// Kind returns the variant of e.
func (e *Expr) Kind() Kind {
	return e.kind
}

// Value returns the value of a Constant or NamedConstant or the exponent of a
// PowerByConstant. It is zero for other kinds.
func (e *Expr) Value() float64 {
	return e.val
}

// Name returns the identifier of a Variable or the input token of a
// NamedConstant.
func (e *Expr) Name() string {
	return e.name
}

// Left returns the first operand of e: the operand of a unary node, the left
// side of a binary node, or the base of a power. It is nil for leaves.
func (e *Expr) Left() *Expr {
	return e.left
}

// Right returns the second operand of a binary node or the exponent of a
// PowerGeneral. It is nil otherwise.
func (e *Expr) Right() *Expr {
	return e.right
}

// Contains returns whether the variable name appears anywhere in e.
func (e *Expr) Contains(name string) bool {
	switch e.kind {
	case Constant, NamedConstant:
		return false
	case Variable:
		return e.name == name
	case Negate, PowerByConstant, Sine, Cosine, Logarithm:
		return e.left.Contains(name)
	case Sum, Difference, Product, Quotient, PowerGeneral:
		return e.left.Contains(name) || e.right.Contains(name)
	default:
		panic("errprop: invalid expression kind " + e.kind.String())
	}
}

// Vars returns the sorted names of the variables e contains.
func (e *Expr) Vars() []string {
	m := make(map[string]bool)
	e.vars(m)
	if len(m) == 0 {
		return nil
	}
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}

func (e *Expr) vars(m map[string]bool) {
	switch {
	case e.kind == Variable:
		m[e.name] = true
	case e.left != nil:
		e.left.vars(m)
		if e.right != nil {
			e.right.vars(m)
		}
	}
}

// Equal reports whether e and f are structurally identical trees. Constants
// and exponents are equal if they have the same value, with NaN equal to
// itself.
func (e *Expr) Equal(f *Expr) bool {
	if e == nil || f == nil {
		return e == f
	}
	if e.kind != f.kind {
		return false
	}
	switch e.kind {
	case Constant:
		return sameval(e.val, f.val)
	case NamedConstant, Variable:
		return e.name == f.name
	case PowerByConstant:
		return sameval(e.val, f.val) && e.left.Equal(f.left)
	default:
		return e.left.Equal(f.left) && e.right.Equal(f.right)
	}
}

func sameval(x, y float64) bool {
	return x == y || math.IsNaN(x) && math.IsNaN(y)
}

// clone makes a deep copy of e so that derivative trees never share nodes
// with the tree they are derived from.
func (e *Expr) clone() *Expr {
	if e == nil {
		return nil
	}
	n := *e
	n.left = e.left.clone()
	n.right = e.right.clone()
	return &n
}

// String formats e in the syntax accepted by Parse, with every operation
// bracketed and every token separated by spaces.
func (e *Expr) String() string {
	var b strings.Builder
	e.fmt(&b)
	return b.String()
}

func (e *Expr) fmt(b *strings.Builder) {
	switch e.kind {
	case Constant:
		b.WriteString(strconv.FormatFloat(e.val, 'g', -1, 64))
	case NamedConstant, Variable:
		b.WriteString(e.name)
	case Negate:
		b.WriteString("(- ")
		e.left.fmt(b)
		b.WriteByte(')')
	case Sum, Difference, Product, Quotient, PowerGeneral:
		b.WriteByte('(')
		e.left.fmt(b)
		b.WriteByte(' ')
		b.WriteString(opText(e.kind))
		b.WriteByte(' ')
		e.right.fmt(b)
		b.WriteByte(')')
	case PowerByConstant:
		b.WriteByte('(')
		e.left.fmt(b)
		b.WriteString(" ^ ")
		b.WriteString(strconv.FormatFloat(e.val, 'g', -1, 64))
		b.WriteByte(')')
	case Sine, Cosine, Logarithm:
		b.WriteByte('(')
		b.WriteString(funcName(e.kind))
		b.WriteByte(' ')
		e.left.fmt(b)
		b.WriteByte(')')
	default:
		panic("errprop: invalid expression kind " + e.kind.String() + " after writing " + b.String())
	}
}

// opText returns the operator token for a binary kind.
func opText(k Kind) string {
	switch k {
	case Sum:
		return "+"
	case Difference:
		return "-"
	case Product:
		return "*"
	case Quotient:
		return "/"
	case PowerByConstant, PowerGeneral:
		return "^"
	default:
		panic("errprop: no operator for " + k.String())
	}
}
