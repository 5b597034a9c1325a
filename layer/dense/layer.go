// Package dense implements a fully connected layer
package dense

import "math"
import "math/rand"

import "github.com/neurlang/taskpriority/layer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// Type is the Spec.Type of dense layers.
const Type = "dense"

// DenseLayer computes activation(x·kernel + bias) for a 1×n input.
type DenseLayer struct {
	units      int
	activation Activation
	act        activation

	kernel *layer.Param
	bias   *layer.Param
}

// MustNew creates a new dense layer with units outputs
func MustNew(units int, activation Activation) *DenseLayer {
	o, err := New(units, activation)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new dense layer with units outputs
func New(units int, activation Activation) (o *DenseLayer, err error) {
	if units <= 0 {
		return nil, errors.Errorf("dense: units must be positive, got %d", units)
	}
	act, err := lookup(activation)
	if err != nil {
		return nil, err
	}
	if activation == "" {
		activation = Linear
	}
	o = new(DenseLayer)
	o.units = units
	o.activation = activation
	o.act = act
	return
}

// Build initialises the kernel with Glorot uniform values and the bias with zeros.
func (d *DenseLayer) Build(in layer.Shape, rng *rand.Rand) (layer.Shape, error) {
	if in.Rows != 1 || in.Cols <= 0 {
		return layer.Shape{}, errors.Errorf("dense: expects a flat 1×n input, got %d×%d", in.Rows, in.Cols)
	}
	limit := math.Sqrt(6 / float64(in.Cols+d.units))
	data := make([]float64, in.Cols*d.units)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * limit
	}
	d.kernel = &layer.Param{Name: "kernel", Value: mat.NewDense(in.Cols, d.units, data)}
	d.bias = &layer.Param{Name: "bias", Value: mat.NewDense(1, d.units, nil)}
	return layer.Shape{Rows: 1, Cols: d.units}, nil
}

// Params returns the kernel and the bias.
func (d *DenseLayer) Params() []*layer.Param {
	if d.kernel == nil {
		return nil
	}
	return []*layer.Param{d.kernel, d.bias}
}

// Spec describes the layer.
func (d *DenseLayer) Spec() layer.Spec {
	return layer.Spec{Type: Type, Units: d.units, Activation: string(d.activation)}
}

// Lay creates a tape
func (d *DenseLayer) Lay() layer.Tape {
	return &tape{d: d}
}

type tape struct {
	d *DenseLayer
	x *mat.Dense
	z *mat.Dense
}

func (t *tape) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, c := x.Dims()
	in, _ := t.d.kernel.Value.Dims()
	if r != 1 || c != in {
		return nil, errors.Errorf("dense: input %d×%d, want 1×%d", r, c, in)
	}
	t.x = x
	t.z = mat.NewDense(1, t.d.units, nil)
	t.z.Mul(x, t.d.kernel.Value)
	t.z.Add(t.z, t.d.bias.Value)

	a := mat.NewDense(1, t.d.units, nil)
	a.Apply(func(_, _ int, v float64) float64 {
		return t.d.act.f(v)
	}, t.z)
	return a, nil
}

func (t *tape) Backward(grad *mat.Dense, grads []*mat.Dense) *mat.Dense {
	gz := mat.NewDense(1, t.d.units, nil)
	gz.Apply(func(i, j int, v float64) float64 {
		return v * t.d.act.df(t.z.At(i, j))
	}, grad)

	var dw mat.Dense
	dw.Mul(t.x.T(), gz)
	grads[0].Add(grads[0], &dw)
	grads[1].Add(grads[1], gz)

	var dx mat.Dense
	dx.Mul(gz, t.d.kernel.Value.T())
	return &dx
}
