package distribution

import (
	"errors"
	"fmt"
	"math"
)

// MinSeparation is the smallest allowed gap between adjacent bounds.
const MinSeparation = 0.1

const epsilon = 1e-9

// ErrInvalidBounds indicates bounds that break min < mean < max.
var ErrInvalidBounds = errors.New("invalid distribution bounds")

// Bounds are the user-facing minimum, mean and maximum in minutes.
type Bounds struct {
	Min  float64
	Mean float64
	Max  float64
}

// Parameters are the location, scale and shape of a generalized Pareto distribution.
type Parameters struct {
	Location float64
	Scale    float64
	Shape    float64
}

// RoundToTenth rounds x to the nearest 0.1.
func RoundToTenth(x float64) float64 {
	return math.Round(10*x) / 10
}

// Rounded returns the bounds with every value rounded to a tenth.
func (bounds Bounds) Rounded() Bounds {
	return Bounds{
		Min:  RoundToTenth(bounds.Min),
		Mean: RoundToTenth(bounds.Mean),
		Max:  RoundToTenth(bounds.Max),
	}
}

// Validate reports whether min + 0.1 <= mean <= max - 0.1 holds.
func (bounds Bounds) Validate() error {
	if math.IsNaN(bounds.Min) || math.IsNaN(bounds.Mean) || math.IsNaN(bounds.Max) {
		return fmt.Errorf("%w: not a number", ErrInvalidBounds)
	}
	if bounds.Mean < bounds.Min+MinSeparation-epsilon {
		return fmt.Errorf("%w: mean %.1f must be at least %.1f above min %.1f", ErrInvalidBounds, bounds.Mean, MinSeparation, bounds.Min)
	}
	if bounds.Mean > bounds.Max-MinSeparation+epsilon {
		return fmt.Errorf("%w: mean %.1f must be at least %.1f below max %.1f", ErrInvalidBounds, bounds.Mean, MinSeparation, bounds.Max)
	}
	return nil
}

// Derive converts bounds into distribution parameters.
//
// The support of the result is [Min, Max] and its mean is Mean.
func Derive(bounds Bounds) (Parameters, error) {
	if err := bounds.Validate(); err != nil {
		return Parameters{}, err
	}
	shape := -(bounds.Mean - bounds.Min) / (bounds.Max - bounds.Mean)
	return Parameters{
		Location: bounds.Min,
		Scale:    -shape * (bounds.Max - bounds.Min),
		Shape:    shape,
	}, nil
}

// MustDerive is like Derive but panics on invalid bounds.
func MustDerive(bounds Bounds) Parameters {
	params, err := Derive(bounds)
	if err != nil {
		panic(err)
	}
	return params
}

// Upper returns the upper end of the support, or +Inf when unbounded.
func (params Parameters) Upper() float64 {
	if params.Shape >= 0 {
		return math.Inf(1)
	}
	return params.Location - params.Scale/params.Shape
}

// Mean returns the expected value, or +Inf when it does not exist.
func (params Parameters) Mean() float64 {
	if params.Shape >= 1 {
		return math.Inf(1)
	}
	return params.Location + params.Scale/(1-params.Shape)
}
