package flatten

import (
	"testing"

	"github.com/neurlang/taskpriority/layer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

func TestFlattenRoundTrip(t *testing.T) {
	f := New()
	out, err := f.Build(layer.Shape{Rows: 2, Cols: 3}, nil)
	require.NoError(t, err)
	assert.Equal(t, layer.Shape{Rows: 1, Cols: 6}, out)
	assert.Nil(t, f.Params())

	tp := f.Lay()
	y, err := tp.Forward(mat.NewDense(2, 3, []float64{1, 2, 3, 4, 5, 6}))
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3, 4, 5, 6}, y.RawRowView(0))

	g := tp.Backward(mat.NewDense(1, 6, []float64{6, 5, 4, 3, 2, 1}), nil)
	assert.Equal(t, []float64{6, 5, 4}, g.RawRowView(0))
	assert.Equal(t, []float64{3, 2, 1}, g.RawRowView(1))
}

func TestFlattenErrors(t *testing.T) {
	f := New()
	_, err := f.Build(layer.Shape{}, nil)
	assert.Error(t, err)

	_, err = f.Build(layer.Shape{Rows: 2, Cols: 2}, nil)
	require.NoError(t, err)
	_, err = f.Lay().Forward(mat.NewDense(1, 4, nil))
	assert.Error(t, err)
}
