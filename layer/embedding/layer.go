// Package embedding implements a lookup table layer turning integer indices into dense vectors
package embedding

import "math/rand"

import "github.com/neurlang/taskpriority/layer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/floats"
import "gonum.org/v1/gonum/mat"

// Type is the Spec.Type of embedding layers.
const Type = "embedding"

// InitRange bounds the uniform initial values of the table.
const InitRange = 0.05

type EmbeddingLayer struct {
	inputDim  int
	outputDim int
	width     int

	table *layer.Param
}

// MustNew creates a new embedding layer or panics
func MustNew(inputDim, outputDim int) *EmbeddingLayer {
	o, err := New(inputDim, outputDim)
	if err != nil {
		panic(err.Error())
	}
	return o
}

// New creates a new embedding of inputDim indices into outputDim values
func New(inputDim, outputDim int) (o *EmbeddingLayer, err error) {
	if inputDim <= 0 || outputDim <= 0 {
		return nil, errors.Errorf("embedding: dims must be positive, got %d and %d", inputDim, outputDim)
	}
	o = new(EmbeddingLayer)
	o.inputDim = inputDim
	o.outputDim = outputDim
	return
}

// InputDim is the number of rows of the table.
func (e *EmbeddingLayer) InputDim() int {
	return e.inputDim
}

// Build takes a 1×width row of indices and outputs a width×outputDim matrix.
func (e *EmbeddingLayer) Build(in layer.Shape, rng *rand.Rand) (layer.Shape, error) {
	if in.Rows != 1 || in.Cols <= 0 {
		return layer.Shape{}, errors.Errorf("embedding: expects a 1×n row of indices, got %d×%d", in.Rows, in.Cols)
	}
	data := make([]float64, e.inputDim*e.outputDim)
	for i := range data {
		data[i] = (2*rng.Float64() - 1) * InitRange
	}
	e.width = in.Cols
	e.table = &layer.Param{Name: "embeddings", Value: mat.NewDense(e.inputDim, e.outputDim, data)}
	return layer.Shape{Rows: in.Cols, Cols: e.outputDim}, nil
}

func (e *EmbeddingLayer) Params() []*layer.Param {
	if e.table == nil {
		return nil
	}
	return []*layer.Param{e.table}
}

func (e *EmbeddingLayer) Spec() layer.Spec {
	return layer.Spec{Type: Type, InputDim: e.inputDim, OutputDim: e.outputDim}
}

// Lay creates a tape
func (e *EmbeddingLayer) Lay() layer.Tape {
	return &tape{e: e}
}

type tape struct {
	e   *EmbeddingLayer
	idx []int
}

func (t *tape) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, c := x.Dims()
	if r != 1 || c != t.e.width {
		return nil, errors.Errorf("embedding: input %d×%d, want 1×%d", r, c, t.e.width)
	}
	t.idx = t.idx[:0]
	out := mat.NewDense(c, t.e.outputDim, nil)
	for j := 0; j < c; j++ {
		v := x.At(0, j)
		i := int(v)
		if float64(i) != v || i < 0 || i >= t.e.inputDim {
			return nil, errors.Errorf("embedding: index %v at column %d outside [0, %d)", v, j, t.e.inputDim)
		}
		out.SetRow(j, t.e.table.Value.RawRowView(i))
		t.idx = append(t.idx, i)
	}
	return out, nil
}

// Backward scatters the output gradient rows into the table gradient.
// Indices are not differentiable, so the input gradient is nil.
func (t *tape) Backward(grad *mat.Dense, grads []*mat.Dense) *mat.Dense {
	for j, i := range t.idx {
		floats.Add(grads[0].RawRowView(i), grad.RawRowView(j))
	}
	return nil
}
