package errprop

import "math"

// Simplify returns an equivalent expression with constant subexpressions
// folded and identities such as x+0, x*1, x^1, and log(e^x) removed. The
// rewrite is a single bottom-up pass that is not guaranteed to reach a normal
// form, but applying it to its own result gives the same tree.
func (e *Expr) Simplify() *Expr {
	switch e.kind {
	case Constant, NamedConstant, Variable:
		n := *e
		return &n
	case Negate:
		return simpNeg(e.left.Simplify())
	case Sum:
		return simpAdd(e.left.Simplify(), e.right.Simplify())
	case Difference:
		return simpSub(e.left.Simplify(), e.right.Simplify())
	case Product:
		return simpMul(e.left.Simplify(), e.right.Simplify())
	case Quotient:
		return simpDiv(e.left.Simplify(), e.right.Simplify())
	case PowerByConstant:
		return simpPowConst(e.left.Simplify(), e.val)
	case PowerGeneral:
		return simpPow(e.left.Simplify(), e.right.Simplify())
	case Sine:
		return simpSin(e.left.Simplify())
	case Cosine:
		return simpCos(e.left.Simplify())
	case Logarithm:
		return simpLog(e.left.Simplify())
	default:
		panic("errprop: invalid expression kind " + e.kind.String())
	}
}

// The simp functions build a node from already simplified operands, applying
// the local rewrite rules for that node kind.

func simpNeg(x *Expr) *Expr {
	switch x.kind {
	case Constant:
		return Const(-x.val)
	case Negate:
		return x.left
	}
	return Neg(x)
}

func simpAdd(x, y *Expr) *Expr {
	switch {
	case x.kind == Constant && y.kind == Constant:
		return Const(x.val + y.val)
	case isNum(x, 0):
		return y
	case isNum(y, 0):
		return x
	}
	return Add(x, y)
}

func simpSub(x, y *Expr) *Expr {
	switch {
	case x.kind == Constant && y.kind == Constant:
		return Const(x.val - y.val)
	case isNum(x, 0):
		return simpNeg(y)
	case isNum(y, 0):
		return x
	}
	return Sub(x, y)
}

func simpMul(x, y *Expr) *Expr {
	switch {
	case x.kind == Constant && y.kind == Constant:
		return Const(x.val * y.val)
	case isNum(x, 0), isNum(y, 0):
		return Const(0)
	case isNum(x, 1):
		return y
	case isNum(y, 1):
		return x
	case isNum(x, -1):
		return simpNeg(y)
	case isNum(y, -1):
		return simpNeg(x)
	}
	return Mul(x, y)
}

func simpDiv(x, y *Expr) *Expr {
	switch {
	case x.kind == Constant && y.kind == Constant:
		return Const(x.val / y.val)
	case isNum(x, 0):
		return Const(0)
	case isNum(y, 1):
		return x
	case isNum(y, -1):
		return simpNeg(x)
	case isNum(x, 1):
		return simpPowConst(y, -1)
	case isNum(x, -1):
		return simpNeg(simpPowConst(y, -1))
	}
	return Div(x, y)
}

func simpPowConst(x *Expr, n float64) *Expr {
	switch {
	case n == 0:
		return Const(1)
	case n == 1:
		return x
	case x.kind == Constant:
		// Leave invalid powers for Eval to report.
		if r, err := pow(x.val, n); err == nil {
			return Const(r)
		}
	case x.kind == PowerByConstant && isInt(x.val) && isInt(n):
		// (b^m)^n = b^(mn) holds for integers regardless of the sign of b.
		return simpPowConst(x.left, x.val*n)
	}
	return PowConst(x, n)
}

func simpPow(x, y *Expr) *Expr {
	switch {
	case y.kind == Constant:
		return simpPowConst(x, y.val)
	case isNum(x, 1):
		return Const(1)
	case x.isE() && y.kind == Logarithm:
		return y.left
	}
	return Pow(x, y)
}

func simpSin(x *Expr) *Expr {
	if x.kind == Constant {
		return Const(math.Sin(x.val))
	}
	return Sin(x)
}

func simpCos(x *Expr) *Expr {
	if x.kind == Constant {
		return Const(math.Cos(x.val))
	}
	return Cos(x)
}

func simpLog(x *Expr) *Expr {
	switch {
	case x.kind == Constant && x.val > 0:
		return Const(math.Log(x.val))
	case x.isE():
		return Const(1)
	case x.kind == PowerGeneral && x.left.isE():
		return x.right
	case x.kind == PowerByConstant && x.left.isE():
		return Const(x.val)
	}
	return Log(x)
}

// isNum returns whether x is a Constant with the value v.
func isNum(x *Expr, v float64) bool {
	return x.kind == Constant && x.val == v
}

func isInt(v float64) bool {
	return v == math.Trunc(v) && !math.IsInf(v, 0)
}
