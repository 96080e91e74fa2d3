package errprop

import (
	"math"

	"github.com/pkg/errors"
)

// ErrTooFewSamples is returned when summarizing fewer than two samples.
var ErrTooFewSamples = errors.New("errprop: need at least two samples")

// Summary describes a series of repeated measurements of one quantity.
type Summary struct {
	// N is the number of samples.
	N int
	// Mean is the sample mean.
	Mean float64
	// Variance is the sample variance, with Bessel's correction.
	Variance float64
	// Deviation is the sample standard deviation.
	Deviation float64
	// Err is the standard error of the mean.
	Err float64
	// ErrOfErr is the relative uncertainty of Err itself, 1/sqrt(2(N-1)).
	ErrOfErr float64
}

// Summarize computes the mean and standard error of a series of samples.
func Summarize(samples []float64) (Summary, error) {
	n := len(samples)
	if n < 2 {
		return Summary{}, ErrTooFewSamples
	}
	var sum float64
	for _, v := range samples {
		sum += v
	}
	mean := sum / float64(n)
	var sq float64
	for _, v := range samples {
		sq += (v - mean) * (v - mean)
	}
	s := Summary{N: n, Mean: mean, Variance: sq / float64(n-1)}
	s.Deviation = math.Sqrt(s.Variance)
	s.Err = s.Deviation / math.Sqrt(float64(n))
	s.ErrOfErr = 1 / math.Sqrt(2*float64(n-1))
	return s, nil
}

// Measurement returns the mean and standard error as a Measurement.
func (s Summary) Measurement() Measurement {
	return Measurement{Mean: s.Mean, Err: s.Err}
}
