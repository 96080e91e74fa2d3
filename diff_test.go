package errprop_test

import (
	"math"
	"testing"

	"github.com/zephyrtronium/errprop"
)

func TestDiff(t *testing.T) {
	cases := []struct {
		name string
		src  string
		by   string
		want string
	}{
		{"const", "3", "x", "0"},
		{"named", "math.pi", "x", "0"},
		{"self", "x", "x", "1"},
		{"other", "y", "x", "0"},
		{"absent", "y * sin z", "x", "0"},
		{"sum", "x + y", "x", "1"},
		{"sum-both", "x + x", "x", "2"},
		{"diff-rhs", "y - x", "x", "-1"},
		{"neg", "- x", "x", "-1"},
		{"prod", "x * y", "x", "y"},
		{"prod-rhs", "y * x", "x", "y"},
		{"prod-both", "x * x", "x", "(x + x)"},
		{"quot-num", "x / y", "x", "(y ^ -1)"},
		{"quot-den", "x / y", "y", "(- (x / (y ^ 2)))"},
		{"powconst", "x ^ 3", "x", "(3 * (x ^ 2))"},
		{"square", "x ^ 2", "x", "(2 * x)"},
		{"sqrt", "x ^ 0.5", "x", "(0.5 * (x ^ -0.5))"},
		{"exp", "math.e ^ x", "x", "(math.e ^ x)"},
		{"exppi", "math.pi ^ x", "x", "((math.pi ^ x) * (log math.pi))"},
		{"powvar", "x ^ y", "x", "((x ^ (y - 1)) * y)"},
		{"sin", "sin x", "x", "(cos x)"},
		{"cos", "cos x", "x", "(- (sin x))"},
		{"log", "log x", "x", "(x ^ -1)"},
		{"chain", "sin (2 * x)", "x", "((cos (2 * x)) * 2)"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			e, err := errprop.Parse(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			d := e.Diff(c.by).Simplify().Simplify()
			if got := d.String(); got != c.want {
				t.Errorf("d/d%s %s: want %s, got %s", c.by, c.src, c.want, got)
			}
		})
	}
}

func TestDiffProductRule(t *testing.T) {
	e, err := errprop.Parse("x * sin x", nil)
	if err != nil {
		t.Fatal(err)
	}
	d, err := e.Diff("x").Simplify().Eval(map[string]float64{"x": 2})
	if err != nil {
		t.Fatal(err)
	}
	want := math.Sin(2) + 2*math.Cos(2)
	if math.Abs(d-want) > 1e-9 {
		t.Errorf("d/dx x sin x at 2: want %g, got %g", want, d)
	}
}

// TestDiffNumeric compares derivatives against central differences.
func TestDiffNumeric(t *testing.T) {
	cases := []struct {
		src  string
		vars map[string]float64
	}{
		{"x ^ 3", map[string]float64{"x": 2}},
		{"sin x * cos x", map[string]float64{"x": 0.7}},
		{"log (x ^ 2 + 1)", map[string]float64{"x": 1.3}},
		{"x ^ x", map[string]float64{"x": 1.5}},
		{"math.e ^ (2 * x)", map[string]float64{"x": 0.3}},
		{"2 ^ x", map[string]float64{"x": 1.1}},
		{"1 / (x - 3)", map[string]float64{"x": 1}},
		{"x / (1 + x ^ 2)", map[string]float64{"x": 0.4}},
		{"- x ^ 2 - x", map[string]float64{"x": 0.9}},
		{"x * y ^ 2 + sin (x * y)", map[string]float64{"x": 0.5, "y": 1.5}},
		{"x ^ y / log y", map[string]float64{"x": 1.2, "y": 2.5}},
		{"(x - y) / (x + y)", map[string]float64{"x": 2, "y": 0.5}},
	}
	const h = 1e-6
	for _, c := range cases {
		e, err := errprop.Parse(c.src, nil)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", c.src, err)
		}
		for name, v := range c.vars {
			d, err := e.Diff(name).Simplify().Eval(c.vars)
			if err != nil {
				t.Errorf("d/d%s %s: evaluation failed: %v", name, c.src, err)
				continue
			}
			at := func(x float64) float64 {
				vars := make(map[string]float64, len(c.vars))
				for k, v := range c.vars {
					vars[k] = v
				}
				vars[name] = x
				r, err := e.Eval(vars)
				if err != nil {
					t.Fatalf("%s at %s=%g: %v", c.src, name, x, err)
				}
				return r
			}
			fd := (at(v+h) - at(v-h)) / (2 * h)
			if math.Abs(d-fd) > 1e-5*math.Max(1, math.Abs(d)) {
				t.Errorf("d/d%s %s: derivative is %g, central difference is %g", name, c.src, d, fd)
			}
		}
	}
}

// TestDiffShares checks that derivative trees are distinct from their source.
func TestDiffShares(t *testing.T) {
	srcs := []string{
		"x * y",
		"x / y",
		"y / x",
		"sin (x * y)",
		"x ^ 3 + log (x + y)",
		"x ^ y",
		"y ^ x",
		"math.e ^ (x * y)",
	}
	for _, src := range srcs {
		e, err := errprop.Parse(src, nil)
		if err != nil {
			t.Fatalf("%q failed to parse: %v", src, err)
		}
		nodes := make(map[*errprop.Expr]bool)
		walk(e, func(n *errprop.Expr) { nodes[n] = true })
		for _, name := range []string{"x", "y"} {
			walk(e.Diff(name), func(n *errprop.Expr) {
				if nodes[n] {
					t.Errorf("d/d%s %s shares node %v", name, src, n)
				}
			})
		}
	}
}

func walk(e *errprop.Expr, f func(*errprop.Expr)) {
	if e == nil {
		return
	}
	f(e)
	walk(e.Left(), f)
	walk(e.Right(), f)
}
