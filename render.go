package errprop

import (
	"strconv"
	"strings"
)

// LaTeX renders e in LaTeX notation. If vals is nil, variables are written by
// name; otherwise each variable is replaced by its value, and the result is
// an *UnboundVariableError if vals lacks one.
func (e *Expr) LaTeX(vals map[string]float64) (string, error) {
	var b strings.Builder
	if err := e.latex(&b, vals); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (e *Expr) latex(b *strings.Builder, vals map[string]float64) error {
	switch e.kind {
	case Constant:
		b.WriteString(FormatNumber(e.val))
	case NamedConstant:
		b.WriteString(namedconsts[e.name].latex)
	case Variable:
		if vals == nil {
			b.WriteString(e.name)
			return nil
		}
		v, ok := vals[e.name]
		if !ok {
			return &UnboundVariableError{Name: e.name}
		}
		b.WriteString(FormatNumber(v))
	case Negate:
		b.WriteString("(-")
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteByte(')')
	case Sum, Difference:
		b.WriteByte('(')
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteString(opText(e.kind))
		if err := e.right.latex(b, vals); err != nil {
			return err
		}
		b.WriteByte(')')
	case Product:
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteString(`\cdot `)
		return e.right.latex(b, vals)
	case Quotient:
		b.WriteString(`\frac{`)
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteString("}{")
		if err := e.right.latex(b, vals); err != nil {
			return err
		}
		b.WriteByte('}')
	case PowerByConstant, PowerGeneral:
		b.WriteByte('(')
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteString(")^{")
		if e.kind == PowerByConstant {
			b.WriteString(FormatNumber(e.val))
		} else if err := e.right.latex(b, vals); err != nil {
			return err
		}
		b.WriteByte('}')
	case Sine, Cosine:
		b.WriteString(`\` + funcName(e.kind) + "{(")
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteString(")}")
	case Logarithm:
		b.WriteString(`\log{`)
		if err := e.left.latex(b, vals); err != nil {
			return err
		}
		b.WriteByte('}')
	default:
		panic("errprop: invalid expression kind " + e.kind.String() + " after writing " + b.String())
	}
	return nil
}

// FormatNumber formats a number for LaTeX output. Numbers that would be
// written with an exponent are written as m\cdot 10^{k}.
func FormatNumber(v float64) string {
	s := strconv.FormatFloat(v, 'g', -1, 64)
	k := strings.IndexByte(s, 'e')
	if k < 0 {
		return s
	}
	exp, err := strconv.Atoi(s[k+1:])
	if err != nil {
		panic("errprop: bad exponent formatting " + s)
	}
	return s[:k] + `\cdot 10^{` + strconv.Itoa(exp) + "}"
}
