package errprop

// Diff returns the partial derivative of e with respect to the variable name.
// The result is not simplified. It shares no nodes with e.
func (e *Expr) Diff(name string) *Expr {
	switch e.kind {
	case Constant, NamedConstant:
		return Const(0)
	case Variable:
		if e.name == name {
			return Const(1)
		}
		return Const(0)
	}
	if !e.Contains(name) {
		return Const(0)
	}
	f, g := e.left, e.right
	switch e.kind {
	case Negate:
		return Neg(f.Diff(name))
	case Sum:
		switch {
		case !f.Contains(name):
			return g.Diff(name)
		case !g.Contains(name):
			return f.Diff(name)
		}
		return Add(f.Diff(name), g.Diff(name))
	case Difference:
		switch {
		case !f.Contains(name):
			return Neg(g.Diff(name))
		case !g.Contains(name):
			return f.Diff(name)
		}
		return Sub(f.Diff(name), g.Diff(name))
	case Product:
		switch {
		case !f.Contains(name):
			return Mul(f.clone(), g.Diff(name))
		case !g.Contains(name):
			return Mul(f.Diff(name), g.clone())
		}
		// (fg)' = fg' + f'g
		return Add(Mul(f.clone(), g.Diff(name)), Mul(f.Diff(name), g.clone()))
	case Quotient:
		switch {
		case !g.Contains(name):
			return Div(f.Diff(name), g.clone())
		case !f.Contains(name):
			// (f/g)' = -(fg')/g^2
			return Neg(Div(Mul(f.clone(), g.Diff(name)), PowConst(g.clone(), 2)))
		}
		// (f/g)' = (f'g - fg')/g^2
		return Div(
			Sub(Mul(f.Diff(name), g.clone()), Mul(f.clone(), g.Diff(name))),
			PowConst(g.clone(), 2),
		)
	case PowerByConstant:
		n := e.val
		switch n {
		case 0:
			return Const(0)
		case 1:
			return f.Diff(name)
		}
		// (f^n)' = n f^(n-1) f'
		return Mul(Mul(Const(n), PowConst(f.clone(), n-1)), f.Diff(name))
	case PowerGeneral:
		return e.diffpow(name)
	case Sine:
		// sin(f)' = cos(f) f'
		return Mul(Cos(f.clone()), f.Diff(name))
	case Cosine:
		// cos(f)' = -sin(f) f'
		return Mul(Neg(Sin(f.clone())), f.Diff(name))
	case Logarithm:
		// log(f)' = f'/f
		return Div(f.Diff(name), f.clone())
	default:
		panic("errprop: invalid expression kind " + e.kind.String())
	}
}

// diffpow differentiates a PowerGeneral that contains name.
func (e *Expr) diffpow(name string) *Expr {
	f, g := e.left, e.right
	if f.Simplify().isE() {
		// (e^g)' = e^g g'
		return Mul(e.clone(), g.Diff(name))
	}
	switch {
	case !f.Contains(name):
		// (f^g)' = f^g g' log(f)
		return Mul(Mul(e.clone(), g.Diff(name)), Log(f.clone()))
	case !g.Contains(name):
		// (f^g)' = f^(g-1) g f'
		return Mul(Pow(f.clone(), Sub(g.clone(), Const(1))), Mul(g.clone(), f.Diff(name)))
	}
	// (f^g)' = f^(g-1) (g f' + f g' log(f))
	return Mul(
		Pow(f.clone(), Sub(g.clone(), Const(1))),
		Add(
			Mul(g.clone(), f.Diff(name)),
			Mul(Mul(f.clone(), g.Diff(name)), Log(f.clone())),
		),
	)
}
