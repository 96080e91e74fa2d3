package errprop

import (
	"math"
	"math/big"
	"strings"

	"github.com/pkg/errors"
)

// PropagateOption is an option for Propagate.
type PropagateOption interface {
	propOption()
}

type (
	propPasses int
	precopt    uint
)

func (propPasses) propOption() {}
func (precopt) propOption()    {}

// Passes sets the number of simplification passes applied to the function and
// its partial derivatives. The default is 2.
func Passes(n int) PropagateOption {
	return propPasses(n)
}

// Prec sets the precision in bits of the sum of squared contributions. The
// default is 64.
func Prec(prec uint) PropagateOption {
	return precopt(prec)
}

// Term is the contribution of one variable to a propagated uncertainty.
type Term struct {
	Name string
	Measurement
	// Partial is the simplified partial derivative of the function with
	// respect to the variable.
	Partial *Expr
	// Slope is the value of Partial at the means of all variables.
	Slope float64
}

// Contribution returns |Slope·Err|, which is 0 for an exact value.
func (t Term) Contribution() float64 {
	if t.Err == 0 {
		return 0
	}
	return math.Abs(t.Slope * t.Err)
}

// LaTeX renders the partial derivative as an equation.
func (t Term) LaTeX() string {
	return `\frac{\partial}{\partial ` + t.Name + "} = " + mustLaTeX(t.Partial)
}

// Result is the outcome of propagating uncertainties through a function.
type Result struct {
	// Func is the simplified function.
	Func *Expr
	// Mean is the value of Func at the means of its variables.
	Mean float64
	// Err is the propagated uncertainty.
	Err float64
	// Terms holds the contribution of each variable Func contains, in
	// registry order.
	Terms []Term
}

// Propagate computes the Gaussian propagation of the uncertainties in reg
// through f: the square root of the sum over each variable v of
// (∂f/∂v · Δv)², with the partial derivatives evaluated at the means.
func Propagate(f *Expr, reg *Registry, opts ...PropagateOption) (*Result, error) {
	passes, prec := 2, uint(64)
	for _, opt := range opts {
		switch opt := opt.(type) {
		case propPasses:
			passes = int(opt)
		case precopt:
			prec = uint(opt)
		default:
			panic("errprop: unknown option type")
		}
	}
	f = simplifyN(f, passes)
	means := reg.Means()
	mean, err := f.Eval(means)
	if err != nil {
		return nil, err
	}
	r := Result{Func: f, Mean: mean}
	sum := new(big.Float).SetPrec(prec)
	var nan, inf bool
	for _, name := range reg.Names() {
		if !f.Contains(name) {
			continue
		}
		m, _ := reg.Lookup(name)
		d := simplifyN(f.Diff(name), passes)
		slope, err := d.Eval(means)
		if err != nil {
			return nil, errors.Wrapf(err, "evaluating derivative by %s", name)
		}
		r.Terms = append(r.Terms, Term{Name: name, Measurement: m, Partial: d, Slope: slope})
		if m.Err == 0 {
			// Exact values contribute nothing, even where the slope is infinite.
			continue
		}
		c := slope * m.Err
		switch {
		case math.IsNaN(c):
			nan = true
		case math.IsInf(c, 0):
			inf = true
		default:
			x := new(big.Float).SetPrec(prec).SetFloat64(c)
			sum.Add(sum, x.Mul(x, x))
		}
	}
	switch {
	case nan:
		r.Err = math.NaN()
	case inf:
		r.Err = math.Inf(1)
	default:
		r.Err, _ = sum.Sqrt(sum).Float64()
	}
	return &r, nil
}

// Formula renders the propagated uncertainty symbolically.
func (r *Result) Formula() string {
	return r.aligned(func(t Term) string {
		return "(" + mustLaTeX(t.Partial) + `\cdot\Delta ` + t.Name + ")^2"
	})
}

// Numbers renders the propagated uncertainty with the values of the partial
// derivatives and uncertainties.
func (r *Result) Numbers() string {
	return r.aligned(func(t Term) string {
		return "(" + FormatNumber(t.Slope) + `\cdot ` + FormatNumber(t.Err) + ")^2"
	})
}

func (r *Result) aligned(f func(Term) string) string {
	if len(r.Terms) == 0 {
		return "0"
	}
	s := make([]string, len(r.Terms))
	for i, t := range r.Terms {
		s[i] = f(t)
	}
	return `\sqrt{\begin{aligned}` + strings.Join(s, ` \\ + `) + `\end{aligned}}`
}

// simplifyN applies Simplify n times.
func simplifyN(e *Expr, n int) *Expr {
	for i := 0; i < n; i++ {
		e = e.Simplify()
	}
	return e
}

// mustLaTeX renders an expression symbolically, which cannot fail.
func mustLaTeX(e *Expr) string {
	s, err := e.LaTeX(nil)
	if err != nil {
		panic(err)
	}
	return s
}
