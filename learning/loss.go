package learning

import "math"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/stat"

const (
	MeanSquaredError  = "mean_squared_error"
	MeanAbsoluteError = "mean_absolute_error"
)

// Loss scores one prediction against its target.
type Loss struct {
	Name string

	// Value is the per sample loss.
	Value func(predicted, target float64) float64

	// Grad is the derivative of Value with respect to predicted.
	Grad func(predicted, target float64) float64
}

var losses = map[string]Loss{
	MeanSquaredError: {
		Name: MeanSquaredError,
		Value: func(p, t float64) float64 {
			return (p - t) * (p - t)
		},
		Grad: func(p, t float64) float64 {
			return 2 * (p - t)
		},
	},
	MeanAbsoluteError: {
		Name: MeanAbsoluteError,
		Value: func(p, t float64) float64 {
			return math.Abs(p - t)
		},
		Grad: func(p, t float64) float64 {
			switch {
			case p > t:
				return 1
			case p < t:
				return -1
			}
			return 0
		},
	},
}

var lossAliases = map[string]string{
	"mse": MeanSquaredError,
	"mae": MeanAbsoluteError,
}

// LossByName looks up a loss by its name or short alias.
func LossByName(name string) (Loss, error) {
	if full, ok := lossAliases[name]; ok {
		name = full
	}
	l, ok := losses[name]
	if !ok {
		return Loss{}, errors.Errorf("learning: unknown loss %q", name)
	}
	return l, nil
}

// Mean averages the loss over paired predictions and targets.
func (l Loss) Mean(predicted, target []float64) float64 {
	if len(predicted) == 0 {
		return 0
	}
	values := make([]float64, len(predicted))
	for i := range predicted {
		values[i] = l.Value(predicted[i], target[i])
	}
	return stat.Mean(values, nil)
}
