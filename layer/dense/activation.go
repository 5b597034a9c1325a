package dense

import "math"

import "github.com/pkg/errors"

// Activation is the elementwise function applied to the dense output.
type Activation string

const (
	Linear  Activation = "linear"
	ReLU    Activation = "relu"
	Sigmoid Activation = "sigmoid"
	Tanh    Activation = "tanh"
)

type activation struct {
	f  func(z float64) float64
	df func(z float64) float64 // derivative at pre-activation z
}

var activations = map[Activation]activation{
	Linear: {
		f:  func(z float64) float64 { return z },
		df: func(float64) float64 { return 1 },
	},
	ReLU: {
		f: func(z float64) float64 {
			if z > 0 {
				return z
			}
			return 0
		},
		df: func(z float64) float64 {
			if z > 0 {
				return 1
			}
			return 0
		},
	},
	Sigmoid: {
		f: sigmoid,
		df: func(z float64) float64 {
			s := sigmoid(z)
			return s * (1 - s)
		},
	},
	Tanh: {
		f: math.Tanh,
		df: func(z float64) float64 {
			t := math.Tanh(z)
			return 1 - t*t
		},
	},
}

func sigmoid(z float64) float64 {
	return 1 / (1 + math.Exp(-z))
}

func lookup(name Activation) (activation, error) {
	if name == "" {
		name = Linear
	}
	a, ok := activations[name]
	if !ok {
		return activation{}, errors.Errorf("dense: unknown activation %q", name)
	}
	return a, nil
}
