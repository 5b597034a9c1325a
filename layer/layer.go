// Package layer defines the layer and tape interfaces of a sequential network
package layer

import "math/rand"

import "gonum.org/v1/gonum/mat"

// Shape is the per sample shape of an activation.
type Shape struct {
	Rows, Cols int
}

// Size returns the number of scalars in the shape.
func (s Shape) Size() int {
	return s.Rows * s.Cols
}

// Param is a named trainable weight matrix.
type Param struct {
	Name  string
	Value *mat.Dense
}

// Size returns the number of scalars in the parameter.
func (p *Param) Size() int {
	r, c := p.Value.Dims()
	return r * c
}

// Spec describes a layer well enough to recreate it.
type Spec struct {
	Type       string
	Name       string
	InputDim   int
	OutputDim  int
	Units      int
	Activation string
}

// Layer is one stage of a sequential network.
type Layer interface {

	// Build allocates the weights for inputs of shape in, drawing initial
	// values from rng, and reports the output shape.
	Build(in Shape, rng *rand.Rand) (out Shape, err error)

	// Lay creates a tape for one forward and backward pass
	Lay() Tape

	// Params returns the trainable parameters, nil for stateless layers.
	Params() []*Param

	// Spec describes the layer.
	Spec() Spec
}
