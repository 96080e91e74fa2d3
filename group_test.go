package errprop

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func tok(text string, pos int) term {
	return term{text: text, pos: pos}
}

func grp(pos int, sub ...term) term {
	return term{sub: sub, group: true, pos: pos}
}

func TestGroup(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []term
	}{
		{"empty", "", nil},
		{"spaces", " \t \n ", nil},
		{"single", "x", []term{tok("x", 1)}},
		{"tokens", "x + 1", []term{tok("x", 1), tok("+", 3), tok("1", 5)}},
		{"unspaced", "x+1", []term{tok("x+1", 1)}},
		{"unicode-space", "x\u00a0y", []term{tok("x", 1), tok("y", 3)}},
		{"runes", "π * r", []term{tok("π", 1), tok("*", 3), tok("r", 5)}},
		{"outer", "( x + 1 )", []term{tok("x", 3), tok("+", 5), tok("1", 7)}},
		{"double-outer", "((x + 1))", []term{tok("x", 3), tok("+", 5), tok("1", 7)}},
		{"collapse", "(x) + (1)", []term{tok("x", 2), tok("+", 5), tok("1", 8)}},
		{"nested", "2 * (x + 1)", []term{
			tok("2", 1), tok("*", 3), grp(5, tok("x", 6), tok("+", 8), tok("1", 10)),
		}},
		{"adjacent", "sin(x)", []term{tok("sin", 1), tok("x", 5)}},
		{"call", "sin (x + 1)", []term{
			tok("sin", 1), grp(5, tok("x", 6), tok("+", 8), tok("1", 10)),
		}},
		{"empty-group", "x ()", []term{tok("x", 1), grp(3)}},
		{"only-empty", "()", nil},
		{"deep", "(a * (b - (c)))", []term{
			tok("a", 2), tok("*", 4), grp(6, tok("b", 7), tok("-", 9), tok("c", 12)),
		}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := group(c.src)
			if err != nil {
				t.Fatalf("grouping %q failed: %v", c.src, err)
			}
			if diff := cmp.Diff(c.want, got, cmp.AllowUnexported(term{})); diff != "" {
				t.Errorf("grouping %q gave wrong terms (-want +got):\n%s", c.src, diff)
			}
		})
	}
}

func TestGroupErrors(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want *BracketError
	}{
		{"unclosed", "(x", &BracketError{Col: 1, Left: "("}},
		{"unclosed-inner", "(x * (y)", &BracketError{Col: 1, Left: "("}},
		{"unclosed-last", "(x) * (y", &BracketError{Col: 7, Left: "("}},
		{"unopened", "x)", &BracketError{Col: 2, Right: ")"}},
		{"unopened-later", "(x)) + 1", &BracketError{Col: 4, Right: ")"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := group(c.src)
			if got != nil {
				t.Errorf("grouping %q gave non-nil terms %v", c.src, got)
			}
			if !reflect.DeepEqual(err, c.want) {
				t.Errorf("wrong error grouping %q: want %v, got %v", c.src, c.want, err)
			}
		})
	}
}

func TestTermString(t *testing.T) {
	cases := []struct {
		src  string
		want string
	}{
		{"x", "(x)"},
		{"x + 1", "(x + 1)"},
		{"2 * (x + (y - 1))", "(2 * (x + (y - 1)))"},
		{"f ()", "(f ())"},
	}
	for _, c := range cases {
		ts, err := group(c.src)
		if err != nil {
			t.Fatalf("grouping %q failed: %v", c.src, err)
		}
		if got := grp(1, ts...).String(); got != c.want {
			t.Errorf("wrong string for %q: want %q, got %q", c.src, c.want, got)
		}
	}
}
