package learning

import "bytes"
import "math"
import "testing"

import "github.com/neurlang/taskpriority/layer"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "gonum.org/v1/gonum/mat"

func TestDefaults(t *testing.T) {
	h := Defaults()
	assert.Equal(t, 10, h.Epochs)
	assert.Equal(t, 32, h.BatchSize)
	assert.True(t, h.Shuffle)
	assert.Equal(t, Adam, h.Optimizer)
	assert.Equal(t, MeanSquaredError, h.Loss)
	assert.Equal(t, 0.001, h.LearningRate)
	assert.Equal(t, 1e-7, h.Epsilon)
}

func TestLogger(t *testing.T) {
	h := Defaults()
	var buf bytes.Buffer
	h.SetOutput(&buf)
	h.Logger().Printf("epoch %d", 1)
	assert.Contains(t, buf.String(), "epoch 1")
}

func TestRandSeed(t *testing.T) {
	h := Defaults()
	h.Seed = 7
	a, b := h.Rand().Int63(), h.Rand().Int63()
	assert.Equal(t, a, b)

	h.Seed = 0
	h.Rand()
	assert.NotZero(t, h.Seed)
}

func TestLossByName(t *testing.T) {
	mse, err := LossByName("mse")
	require.NoError(t, err)
	assert.Equal(t, MeanSquaredError, mse.Name)
	assert.Equal(t, 4.0, mse.Value(3, 1))
	assert.Equal(t, 4.0, mse.Grad(3, 1))
	assert.InDelta(t, 2.5, mse.Mean([]float64{1, 3}, []float64{0, 1}), 1e-12)

	mae, err := LossByName(MeanAbsoluteError)
	require.NoError(t, err)
	assert.Equal(t, 2.0, mae.Value(1, 3))
	assert.Equal(t, -1.0, mae.Grad(1, 3))

	_, err = LossByName("hinge")
	assert.Error(t, err)
}

func TestNewOptimizer(t *testing.T) {
	h := Defaults()
	o, err := NewOptimizer(h)
	require.NoError(t, err)
	assert.Equal(t, Adam, o.Name())

	h.Optimizer = "rmsprop"
	_, err = NewOptimizer(h)
	assert.Error(t, err)

	h.Optimizer = SGD
	h.LearningRate = 0
	_, err = NewOptimizer(h)
	assert.Error(t, err)
}

func TestAdamFirstStep(t *testing.T) {
	// the first bias corrected adam step moves each weight by about lr
	// against the sign of its gradient
	h := Defaults()
	o, err := NewOptimizer(h)
	require.NoError(t, err)

	p := &layer.Param{Name: "w", Value: mat.NewDense(1, 3, []float64{1, 1, 1})}
	g := mat.NewDense(1, 3, []float64{0.5, -2, 0})
	o.Step([]*layer.Param{p}, []*mat.Dense{g})

	assert.InDelta(t, 1-0.001, p.Value.At(0, 0), 1e-6)
	assert.InDelta(t, 1+0.001, p.Value.At(0, 1), 1e-6)
	assert.Equal(t, 1.0, p.Value.At(0, 2))
}

func TestSGDStep(t *testing.T) {
	h := Defaults()
	h.Optimizer = SGD
	h.LearningRate = 0.1
	o, err := NewOptimizer(h)
	require.NoError(t, err)

	p := &layer.Param{Name: "w", Value: mat.NewDense(1, 2, []float64{1, 2})}
	o.Step([]*layer.Param{p}, []*mat.Dense{mat.NewDense(1, 2, []float64{1, -1})})
	assert.InDelta(t, 0.9, p.Value.At(0, 0), 1e-12)
	assert.InDelta(t, 2.1, p.Value.At(0, 1), 1e-12)
}

func TestAdamMinimisesQuadratic(t *testing.T) {
	h := Defaults()
	h.LearningRate = 0.05
	o, err := NewOptimizer(h)
	require.NoError(t, err)

	p := &layer.Param{Name: "w", Value: mat.NewDense(1, 1, []float64{3})}
	for i := 0; i < 2000; i++ {
		w := p.Value.At(0, 0)
		o.Step([]*layer.Param{p}, []*mat.Dense{mat.NewDense(1, 1, []float64{2 * (w - 1)})})
	}
	assert.Less(t, math.Abs(p.Value.At(0, 0)-1), 0.01)
}
