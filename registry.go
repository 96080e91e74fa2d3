package errprop

import (
	"math"
	"strconv"
	"unicode"
	"unicode/utf8"
)

// Measurement is a measured value with its uncertainty.
type Measurement struct {
	Mean float64
	Err  float64
}

// Registry holds the measurements of variables, remembering the order in which
// they were defined. Variables may be redefined but are never removed. The
// zero value is an empty registry. A Registry is not safe for concurrent use
// while it is being modified.
type Registry struct {
	names []string
	vals  map[string]Measurement
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{vals: make(map[string]Measurement)}
}

// Set defines or redefines a variable. The name must be valid and not
// reserved, and the uncertainty must be non-negative.
func (r *Registry) Set(name string, m Measurement) error {
	switch {
	case !ValidName(name), Reserved(name):
		return &NameError{Name: name}
	case m.Err < 0, math.IsNaN(m.Err):
		return &UncertaintyError{Name: name, Err: m.Err}
	}
	if r.vals == nil {
		r.vals = make(map[string]Measurement)
	}
	if _, ok := r.vals[name]; !ok {
		r.names = append(r.names, name)
	}
	r.vals[name] = m
	return nil
}

// Lookup returns the measurement of a variable.
func (r *Registry) Lookup(name string) (Measurement, bool) {
	m, ok := r.vals[name]
	return m, ok
}

// Len returns the number of variables defined.
func (r *Registry) Len() int {
	return len(r.names)
}

// Names returns the names of the defined variables in the order in which they
// were first defined.
func (r *Registry) Names() []string {
	return append([]string(nil), r.names...)
}

// Means returns a map of each variable to its mean, suitable for Eval.
func (r *Registry) Means() map[string]float64 {
	m := make(map[string]float64, len(r.vals))
	for k, v := range r.vals {
		m[k] = v.Mean
	}
	return m
}

// Errors returns a map of each variable to its uncertainty.
func (r *Registry) Errors() map[string]float64 {
	m := make(map[string]float64, len(r.vals))
	for k, v := range r.vals {
		m[k] = v.Err
	}
	return m
}

// ValidName returns whether name can be used as a variable identifier: a
// letter or underscore followed by letters, digits, underscores, and dots.
// Words that read as numbers, like inf and NaN, are not identifiers.
func ValidName(name string) bool {
	if name == "" {
		return false
	}
	if _, err := strconv.ParseFloat(name, 64); err == nil {
		return false
	}
	r, sz := utf8.DecodeRuneInString(name)
	if r != '_' && !unicode.IsLetter(r) {
		return false
	}
	for _, r := range name[sz:] {
		switch {
		case r == '_', r == '.', unicode.IsLetter(r), unicode.IsDigit(r):
		default:
			return false
		}
	}
	return true
}

// NameError is an error indicating a variable name that is not a valid
// identifier or is reserved for a function or constant.
type NameError struct {
	Name string
}

func (err *NameError) Error() string {
	if Reserved(err.Name) {
		return strconv.Quote(err.Name) + " is reserved"
	}
	return "invalid variable name " + strconv.Quote(err.Name)
}

// UncertaintyError is an error indicating a negative or NaN uncertainty.
type UncertaintyError struct {
	Name string
	Err  float64
}

func (err *UncertaintyError) Error() string {
	return "invalid uncertainty " + strconv.FormatFloat(err.Err, 'g', -1, 64) + " for " + strconv.Quote(err.Name)
}
