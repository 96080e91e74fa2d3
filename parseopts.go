package errprop

import "strconv"

// ParseOption is an option for parsing.
type ParseOption interface {
	parseOption(parsectx) parsectx
}

// Resolver supplies the measurement of a variable that is not yet defined.
type Resolver func(name string) (Measurement, error)

type (
	unknownopt Resolver
	passesopt  int
)

// parsectx holds general data for parsing.
type parsectx struct {
	// reg is the registry of known variables. If it is nil, every name is
	// accepted.
	reg *Registry
	// unknown resolves names missing from reg.
	unknown Resolver
	// passes is the number of simplification passes applied to an exponent
	// to decide whether it is constant.
	passes int
}

// OnUnknown sets the function that supplies measurements for variables which
// the registry passed to Parse does not define. It is called at most once for
// each such variable, in the order the variables appear in the input.
func OnUnknown(fn Resolver) ParseOption {
	return unknownopt(fn)
}

func (o unknownopt) parseOption(p parsectx) parsectx {
	p.unknown = Resolver(o)
	return p
}

// SimplifyPasses sets the number of times an exponent is simplified before
// deciding whether it is a constant. The default is 2. Panics if n is
// negative.
func SimplifyPasses(n int) ParseOption {
	if n < 0 {
		panic("errprop: negative simplify passes " + strconv.Itoa(n))
	}
	return passesopt(n)
}

func (o passesopt) parseOption(p parsectx) parsectx {
	p.passes = int(o)
	return p
}
