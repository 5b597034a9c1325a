package feedforward

import "github.com/neurlang/taskpriority/layer"
import "gonum.org/v1/gonum/mat"

// Pass is one forward pass of a single sample. It is used by one goroutine.
type Pass struct {
	f     *FeedforwardNetwork
	tapes []layer.Tape
	out   float64
}

// Output returns the network output of the pass.
func (p *Pass) Output() float64 {
	return p.out
}

// Backward propagates dOut back through all layers, adding the parameter
// gradients into grads, aligned with the network Params.
func (p *Pass) Backward(dOut float64, grads []*mat.Dense) {
	g := mat.NewDense(1, 1, []float64{dOut})
	for i := len(p.tapes) - 1; i >= 0 && g != nil; i-- {
		g = p.tapes[i].Backward(g, grads[p.f.offsets[i]:p.f.offsets[i+1]])
	}
}
