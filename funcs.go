package errprop

import "math"

// namedconst describes a named mathematical constant.
type namedconst struct {
	// token is the canonical input token.
	token string
	// latex is the display symbol.
	latex string
	val   float64
}

var (
	constPi = namedconst{token: "math.pi", latex: `\pi`, val: math.Pi}
	constE  = namedconst{token: "math.e", latex: "e", val: math.E}
)

// namedconsts maps every accepted input token to its constant.
var namedconsts = map[string]*namedconst{
	"math.pi": &constPi,
	"π":       &constPi,
	"math.e":  &constE,
}

// Pi creates the named constant π.
func Pi() *Expr {
	return &Expr{kind: NamedConstant, name: constPi.token, val: constPi.val}
}

// E creates the named constant e, the base of the natural logarithm.
func E() *Expr {
	return &Expr{kind: NamedConstant, name: constE.token, val: constE.val}
}

// Named creates the named constant with the given input token. The result is
// nil if there is no such constant.
func Named(token string) *Expr {
	c := namedconsts[token]
	if c == nil {
		return nil
	}
	return &Expr{kind: NamedConstant, name: c.token, val: c.val}
}

// isE returns whether e is the named constant e.
func (e *Expr) isE() bool {
	return e.kind == NamedConstant && e.name == constE.token
}

// funcs maps function keywords to the kinds they create.
var funcs = map[string]Kind{
	"log": Logarithm,
	"sin": Sine,
	"cos": Cosine,
}

// funcName returns the input keyword of a function kind.
func funcName(k Kind) string {
	switch k {
	case Logarithm:
		return "log"
	case Sine:
		return "sin"
	case Cosine:
		return "cos"
	default:
		panic("errprop: no function for " + k.String())
	}
}

// unary creates a node of a unary function kind.
func unary(k Kind, x *Expr) *Expr {
	return &Expr{kind: k, left: x}
}

// Reserved returns whether name is a function keyword or the token of a named
// constant, and therefore cannot be used as a variable.
func Reserved(name string) bool {
	if _, ok := funcs[name]; ok {
		return true
	}
	return namedconsts[name] != nil
}
