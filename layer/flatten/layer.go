// Package flatten implements a stateless layer reshaping a matrix into a single row
package flatten

import "math/rand"

import "github.com/neurlang/taskpriority/layer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// Type is the Spec.Type of flatten layers.
const Type = "flatten"

type FlattenLayer struct {
	in layer.Shape
}

// New creates a flatten layer
func New() *FlattenLayer {
	return new(FlattenLayer)
}

func (f *FlattenLayer) Build(in layer.Shape, _ *rand.Rand) (layer.Shape, error) {
	if in.Size() <= 0 {
		return layer.Shape{}, errors.Errorf("flatten: empty input %d×%d", in.Rows, in.Cols)
	}
	f.in = in
	return layer.Shape{Rows: 1, Cols: in.Size()}, nil
}

func (f *FlattenLayer) Params() []*layer.Param {
	return nil
}

func (f *FlattenLayer) Spec() layer.Spec {
	return layer.Spec{Type: Type}
}

func (f *FlattenLayer) Lay() layer.Tape {
	return &tape{f: f}
}

type tape struct {
	f *FlattenLayer
}

// Forward copies the rows of x one after another.
func (t *tape) Forward(x *mat.Dense) (*mat.Dense, error) {
	r, c := x.Dims()
	if r != t.f.in.Rows || c != t.f.in.Cols {
		return nil, errors.Errorf("flatten: input %d×%d, want %d×%d", r, c, t.f.in.Rows, t.f.in.Cols)
	}
	out := mat.NewDense(1, r*c, nil)
	row := out.RawRowView(0)
	for i := 0; i < r; i++ {
		copy(row[i*c:(i+1)*c], x.RawRowView(i))
	}
	return out, nil
}

func (t *tape) Backward(grad *mat.Dense, _ []*mat.Dense) *mat.Dense {
	r, c := t.f.in.Rows, t.f.in.Cols
	out := mat.NewDense(r, c, nil)
	src := grad.RawRowView(0)
	for i := 0; i < r; i++ {
		copy(out.RawRowView(i), src[i*c:(i+1)*c])
	}
	return out
}
