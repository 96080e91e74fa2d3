package errprop

import (
	"math"
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Round formats a measurement with its uncertainty rounded to sig significant
// digits and its mean rounded to the same decimal place. Halves round away
// from zero. If the uncertainty is zero or either value is not finite, both
// are formatted in full.
func (m Measurement) Round(sig int) (mean, err string) {
	if sig < 1 {
		sig = 1
	}
	if m.Err == 0 || !finite(m.Err) || !finite(m.Mean) {
		return strconv.FormatFloat(m.Mean, 'g', -1, 64), strconv.FormatFloat(m.Err, 'g', -1, 64)
	}
	// Decimal exponent of the leading digit of the uncertainty once it is
	// rounded, so that 0.0996 to two digits is 0.10.
	s := strconv.FormatFloat(math.Abs(m.Err), 'e', sig-1, 64)
	exp, _ := strconv.Atoi(s[strings.IndexByte(s, 'e')+1:])
	places := sig - 1 - exp
	return roundPlaces(m.Mean, places), roundPlaces(m.Err, places)
}

func finite(v float64) bool {
	return !math.IsInf(v, 0) && !math.IsNaN(v)
}

// roundPlaces formats v rounded to the given number of decimal places, which
// may be negative to round to tens, hundreds, and so on. The scaling by a
// power of ten is exact when places is non-negative.
func roundPlaces(v float64, places int) string {
	n := places
	if n < 0 {
		n = -n
	}
	scale := new(big.Int).Exp(big.NewInt(10), big.NewInt(int64(n)), nil)
	x := new(big.Float).SetPrec(53 + uint(scale.BitLen()) + 64).SetFloat64(v)
	if places >= 0 {
		x.Mul(x, new(big.Float).SetInt(scale))
	} else {
		x.Quo(x, new(big.Float).SetInt(scale))
	}
	bigfloat.Round(x, x, big.ToNearestAway)
	r, _ := x.Int(nil)
	neg := r.Sign() < 0
	digits := r.Abs(r).String()
	switch {
	case places > 0:
		if len(digits) <= places {
			digits = strings.Repeat("0", places-len(digits)+1) + digits
		}
		digits = digits[:len(digits)-places] + "." + digits[len(digits)-places:]
	case places < 0 && r.Sign() != 0:
		digits += strings.Repeat("0", -places)
	}
	if neg {
		digits = "-" + digits
	}
	return digits
}
