package distribution

import (
	"math"
	"time"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// Sampler draws durations from a generalized Pareto distribution by inverse-CDF sampling.
type Sampler struct {
	uniform distuv.Uniform
}

// NewSampler creates a sampler that reads uniform draws from src.
func NewSampler(src rand.Source) *Sampler {
	return &Sampler{
		uniform: distuv.Uniform{Min: 0, Max: 1, Src: src},
	}
}

// NewSeededSampler creates a deterministic sampler.
func NewSeededSampler(seed uint64) *Sampler {
	return NewSampler(rand.NewSource(seed))
}

// Minutes returns a single draw in minutes.
func (sampler *Sampler) Minutes(params Parameters) float64 {
	return Quantile(params, sampler.uniform.Rand())
}

// Duration returns a single draw as a duration, never negative.
func (sampler *Sampler) Duration(params Parameters) time.Duration {
	minutes := sampler.Minutes(params)
	if math.IsNaN(minutes) || minutes <= 0 {
		return 0
	}
	if math.IsInf(minutes, 1) || minutes*float64(time.Minute) > math.MaxInt64 {
		return time.Duration(math.MaxInt64)
	}
	return time.Duration(minutes * float64(time.Minute))
}

// Quantile maps a uniform value u in [0,1) onto the distribution.
func Quantile(params Parameters, u float64) float64 {
	return params.Location + params.Scale*(math.Pow(u, -params.Shape)-1)/params.Shape
}
