package errprop

import (
	"strings"
	"unicode"
)

// term is one element of a grouped expression: either a token or a bracketed
// group of terms.
type term struct {
	// text is the token text. It is empty for groups.
	text string
	// sub is the contents of a group.
	sub   []term
	group bool
	// pos is the position of the token or of the group's open bracket as the
	// number of runes up to and including it.
	pos int
}

func (t term) String() string {
	if !t.group {
		return t.text
	}
	var b strings.Builder
	t.fmt(&b)
	return b.String()
}

func (t term) fmt(b *strings.Builder) {
	if !t.group {
		b.WriteString(t.text)
		return
	}
	b.WriteByte('(')
	for i, s := range t.sub {
		if i > 0 {
			b.WriteByte(' ')
		}
		s.fmt(b)
	}
	b.WriteByte(')')
}

// group splits src into tokens separated by white space and brackets, nesting
// bracketed parts into groups. A group holding a single term is replaced by
// that term, and if the whole input is a single group, the result is its
// contents.
func group(src string) ([]term, error) {
	var (
		// cur is the group currently being filled, and stack holds the
		// groups enclosing it.
		cur   []term
		stack [][]term
		opens []int

		buf   strings.Builder
		start int
		col   int
	)
	flush := func() {
		if buf.Len() == 0 {
			return
		}
		cur = append(cur, term{text: buf.String(), pos: start})
		buf.Reset()
	}
	for _, r := range src {
		col++
		switch {
		case r == '(':
			flush()
			stack = append(stack, cur)
			opens = append(opens, col)
			cur = nil
		case r == ')':
			flush()
			if len(stack) == 0 {
				return nil, &BracketError{Col: col, Right: ")"}
			}
			g := collapse(term{sub: cur, group: true, pos: opens[len(opens)-1]})
			cur = append(stack[len(stack)-1], g)
			stack = stack[:len(stack)-1]
			opens = opens[:len(opens)-1]
		case unicode.IsSpace(r):
			flush()
		default:
			if buf.Len() == 0 {
				start = col
			}
			buf.WriteRune(r)
		}
	}
	flush()
	if len(opens) != 0 {
		return nil, &BracketError{Col: opens[len(opens)-1], Left: "("}
	}
	for len(cur) == 1 && cur[0].group {
		cur = cur[0].sub
	}
	return cur, nil
}

// collapse replaces a group of one term with that term.
func collapse(t term) term {
	if t.group && len(t.sub) == 1 {
		return t.sub[0]
	}
	return t
}
