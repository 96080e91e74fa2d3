package errprop_test

import (
	"errors"
	"fmt"
	"math"
	"reflect"
	"testing"

	"github.com/zephyrtronium/errprop"
)

func TestEval(t *testing.T) {
	type vc struct {
		vars map[string]float64
		r    float64
	}
	cases := []struct {
		name string
		src  string
		r    []vc
	}{
		{"num", "1", []vc{{nil, 1}}},
		{"ident", "x", []vc{
			{map[string]float64{"x": 4}, 4},
			{map[string]float64{"x": 5}, 5},
		}},
		{"neg", "- x", []vc{{map[string]float64{"x": 4}, -4}}},
		{"add", "4 + 5 + 6", []vc{{nil, 4 + 5 + 6}}},
		{"sub", "4 - 5 - 6", []vc{{nil, 4 - (5 - 6)}}},
		{"mul", "4 * 5 * 6", []vc{{nil, 4 * 5 * 6}}},
		{"div", "12 / 6 / 2", []vc{{nil, 4}}},
		{"pow", "4 ^ 3 ^ 2", []vc{{nil, 262144}}},
		{"pow-var", "x ^ y", []vc{{map[string]float64{"x": 2, "y": 10}, 1024}}},
		{"pow-negint", "x ^ 3", []vc{{map[string]float64{"x": -2}, -8}}},
		{"pi", "math.pi", []vc{{nil, math.Pi}}},
		{"e", "math.e", []vc{{nil, math.E}}},
		{"log", "log 1", []vc{{nil, 0}}},
		{"sin", "sin 0", []vc{{nil, 0}}},
		{"cos", "cos 0", []vc{{nil, 1}}},
		{"prec", "1 + 2 * 3 ^ 2", []vc{{nil, 19}}},
		{"divzero", "1 / x", []vc{{map[string]float64{"x": 0}, math.Inf(1)}}},
		{"inf", "1e999 - 1", []vc{{nil, math.Inf(1)}}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := errprop.Parse(c.src, nil)
			if err != nil {
				t.Fatal(c.src, "failed to parse:", err)
			}
			for _, v := range c.r {
				r, err := a.Eval(v.vars)
				if err != nil {
					t.Error("evaluation error:", err)
				}
				if r != v.r {
					t.Errorf("wrong result: want %g, got %g", v.r, r)
				}
			}
		})
	}
}

func TestEvalUndefNames(t *testing.T) {
	cases := []struct {
		name string
		src  string
		r    []string
	}{
		{"x", "x", []string{"x"}},
		{"neg", "- x", []string{"x"}},
		{"add-lhs", "x + 1", []string{"x"}},
		{"add-rhs", "1 + x", []string{"x"}},
		{"sub-lhs", "x - 1", []string{"x"}},
		{"sub-rhs", "1 - x", []string{"x"}},
		{"mul-lhs", "x * 1", []string{"x"}},
		{"mul-rhs", "1 * x", []string{"x"}},
		{"div-lhs", "x / 1", []string{"x"}},
		{"div-rhs", "1 / x", []string{"x"}},
		{"pow-lhs", "x ^ 1", []string{"x"}},
		{"pow-rhs", "1 ^ x", []string{"x"}},
		{"call", "sin x", []string{"x"}},
		{"two", "y * x", []string{"x", "y"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := errprop.Parse(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); !reflect.DeepEqual(c.r, v) {
				t.Errorf("wrong vars: want %q, got %q", c.r, v)
			}
			_, err = a.Eval(map[string]float64{"z": 1})
			var uerr *errprop.UnboundVariableError
			if !errors.As(err, &uerr) {
				t.Fatalf("wrong error: want *UnboundVariableError, got %T %v", err, err)
			}
			if uerr.Name != c.r[len(c.r)-1] && uerr.Name != c.r[0] {
				t.Errorf("wrong name in error: %q", uerr.Name)
			}
		})
	}
}

func TestEvalDomainError(t *testing.T) {
	cases := []struct {
		name string
		src  string
		x    float64
		fn   string
	}{
		{"log0", "log x", 0, "log"},
		{"logneg", "log x", -1, "log"},
		{"sqrtneg", "x ^ 0.5", -4, "^"},
		{"powneg", "x ^ (1 / 3)", -8, "^"},
		{"general", "x ^ (x / 4)", -2, "^"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := errprop.Parse(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			r, err := a.Eval(map[string]float64{"x": c.x})
			var derr *errprop.DomainError
			if !errors.As(err, &derr) {
				t.Fatalf("wrong error: want *DomainError, got %T %v (result %g)", err, err, r)
			}
			if derr.X != c.x || derr.Func != c.fn {
				t.Errorf("wrong error: want %g outside %s, got %+v", c.x, c.fn, derr)
			}
		})
	}
}

func TestEvalConstantsIgnoreBindings(t *testing.T) {
	a, err := errprop.Parse("math.pi + math.e", nil)
	if err != nil {
		t.Fatal(err)
	}
	r, err := a.Eval(map[string]float64{"math.pi": 0, "math.e": 0, "π": 0})
	if err != nil {
		t.Fatal(err)
	}
	if want := errprop.Pi().Value() + errprop.E().Value(); r != want {
		t.Errorf("constants changed by bindings: want %g, got %g", want, r)
	}
}

func TestVars(t *testing.T) {
	cases := []struct {
		name string
		src  string
		vars []string
	}{
		{"none", "1 + math.pi", nil},
		{"one", "x", []string{"x"}},
		{"sorted", "z + y * x", []string{"x", "y", "z"}},
		{"repeated", "x * x - x", []string{"x"}},
		{"funcs", "sin a + cos b + log c", []string{"a", "b", "c"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			a, err := errprop.Parse(c.src, nil)
			if err != nil {
				t.Fatalf("%q failed to parse: %v", c.src, err)
			}
			if v := a.Vars(); !reflect.DeepEqual(c.vars, v) {
				t.Errorf("wrong vars: want %q, got %q", c.vars, v)
			}
			for _, v := range c.vars {
				if !a.Contains(v) {
					t.Errorf("%v does not contain %s", a, v)
				}
			}
			if a.Contains("w") {
				t.Errorf("%v contains w", a)
			}
		})
	}
}

func BenchmarkEval(b *testing.B) {
	vars := map[string]float64{"x": 2, "y": 3, "z": 4}
	b.Run("nums", func(b *testing.B) {
		b.ReportAllocs()
		a, err := errprop.Parse("2 + 3 + 4", nil)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(nil)
		}
	})
	b.Run("vars", func(b *testing.B) {
		b.ReportAllocs()
		a, err := errprop.Parse("x + y * sin z", nil)
		if err != nil {
			b.Fatal(err)
		}
		for i := 0; i < b.N; i++ {
			a.Eval(vars)
		}
	})
}

func Example() {
	reg := errprop.NewRegistry()
	reg.Set("x", errprop.Measurement{Mean: 3, Err: 0.1})
	reg.Set("y", errprop.Measurement{Mean: 2, Err: 0.05})

	f, _ := errprop.Parse("x ^ 2 * y", reg)
	r, _ := errprop.Propagate(f, reg)
	fmt.Printf("f = %.4g ± %.4g\n", r.Mean, r.Err)
	for _, t := range r.Terms {
		fmt.Println(t.LaTeX())
	}

	// Output:
	// f = 18 ± 1.282
	// \frac{\partial}{\partial x} = 2\cdot x\cdot y
	// \frac{\partial}{\partial y} = (x)^{2}
}
