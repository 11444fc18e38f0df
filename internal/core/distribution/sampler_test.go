package distribution

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/stat"
)

func TestQuantile_Endpoints(t *testing.T) {
	params := MustDerive(Bounds{Min: 1, Mean: 5, Max: 10})

	assert.InDelta(t, 10.0, Quantile(params, 0), 1e-9)
	assert.InDelta(t, 1.0, Quantile(params, 1), 1e-9)
}

func TestQuantile_PositiveShape(t *testing.T) {
	params := Parameters{Location: 1, Scale: 2, Shape: 0.5}

	assert.InDelta(t, 1.0, Quantile(params, 1), 1e-9)
	assert.Greater(t, Quantile(params, 0.01), 10.0)
}

func TestSampler_StaysWithinBounds(t *testing.T) {
	bounds := Bounds{Min: 1, Mean: 5, Max: 10}
	params := MustDerive(bounds)
	sampler := NewSeededSampler(42)

	values := make([]float64, 0, 5000)
	for i := 0; i < 5000; i++ {
		value := sampler.Minutes(params)
		assert.GreaterOrEqual(t, value, bounds.Min-1e-9)
		assert.LessOrEqual(t, value, bounds.Max+1e-9)
		values = append(values, value)
	}

	assert.InDelta(t, bounds.Mean, stat.Mean(values, nil), 0.25)
}

func TestSampler_DeterministicUnderSeed(t *testing.T) {
	params := MustDerive(Bounds{Min: 0.5, Mean: 2, Max: 4})
	first := NewSeededSampler(7)
	second := NewSeededSampler(7)

	for i := 0; i < 20; i++ {
		assert.Equal(t, first.Minutes(params), second.Minutes(params))
	}
}

func TestSampler_Duration(t *testing.T) {
	params := MustDerive(Bounds{Min: 1, Mean: 1.5, Max: 2})
	sampler := NewSeededSampler(3)

	for i := 0; i < 100; i++ {
		duration := sampler.Duration(params)
		assert.GreaterOrEqual(t, duration, time.Minute-time.Millisecond)
		assert.LessOrEqual(t, duration, 2*time.Minute+time.Millisecond)
	}
}

func TestSampler_DurationClampsNegative(t *testing.T) {
	sampler := NewSeededSampler(1)

	assert.Equal(t, time.Duration(0), sampler.Duration(Parameters{Location: -5, Scale: 0.1, Shape: -0.5}))
}
