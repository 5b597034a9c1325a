package layer

import "gonum.org/v1/gonum/mat"

// Tape records one forward pass of a single sample through a layer, so
// that the same pass can be differentiated. A tape is used by one goroutine.
type Tape interface {

	// Forward computes the layer output for input x.
	Forward(x *mat.Dense) (*mat.Dense, error)

	// Backward takes the loss gradient with respect to the last output,
	// adds the parameter gradients into grads (aligned with Params) and
	// returns the gradient with respect to the last input, or nil when the
	// input is not differentiable.
	Backward(grad *mat.Dense, grads []*mat.Dense) *mat.Dense
}

// ZeroGrads allocates zero gradient buffers shaped like params.
func ZeroGrads(params []*Param) []*mat.Dense {
	o := make([]*mat.Dense, len(params))
	for i, p := range params {
		r, c := p.Value.Dims()
		o[i] = mat.NewDense(r, c, nil)
	}
	return o
}
