package learning

import "math"

import "github.com/neurlang/taskpriority/layer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

const (
	Adam = "adam"
	SGD  = "sgd"
)

// Optimizer applies one update to params given their gradients.
type Optimizer interface {
	Step(params []*layer.Param, grads []*mat.Dense)
	Name() string
}

// NewOptimizer creates the optimizer named by h.Optimizer.
func NewOptimizer(h HyperParameters) (Optimizer, error) {
	if h.LearningRate <= 0 {
		return nil, errors.Errorf("learning: learning rate must be positive, got %v", h.LearningRate)
	}
	switch h.Optimizer {
	case Adam, "":
		return &adam{lr: h.LearningRate, beta1: h.Beta1, beta2: h.Beta2, epsilon: h.Epsilon}, nil
	case SGD:
		return &sgd{lr: h.LearningRate}, nil
	}
	return nil, errors.Errorf("learning: unknown optimizer %q", h.Optimizer)
}

type sgd struct {
	lr float64
}

func (o *sgd) Name() string {
	return SGD
}

func (o *sgd) Step(params []*layer.Param, grads []*mat.Dense) {
	for i, p := range params {
		p.Value.Add(p.Value, scaled(-o.lr, grads[i]))
	}
}

func scaled(f float64, m *mat.Dense) *mat.Dense {
	var o mat.Dense
	o.Scale(f, m)
	return &o
}

// adam keeps first and second moment estimates per parameter and uses the
// bias corrected step size lr·sqrt(1-β2^t)/(1-β1^t).
type adam struct {
	lr, beta1, beta2, epsilon float64

	t    int
	m, v [][]float64
}

func (o *adam) Name() string {
	return Adam
}

func (o *adam) Step(params []*layer.Param, grads []*mat.Dense) {
	if o.m == nil {
		o.m = make([][]float64, len(params))
		o.v = make([][]float64, len(params))
		for i, p := range params {
			o.m[i] = make([]float64, p.Size())
			o.v[i] = make([]float64, p.Size())
		}
	}
	o.t++
	t := float64(o.t)
	lr := o.lr * math.Sqrt(1-math.Pow(o.beta2, t)) / (1 - math.Pow(o.beta1, t))

	for i, p := range params {
		w := p.Value.RawMatrix().Data
		g := grads[i].RawMatrix().Data
		m, v := o.m[i], o.v[i]
		for j := range w {
			m[j] = o.beta1*m[j] + (1-o.beta1)*g[j]
			v[j] = o.beta2*v[j] + (1-o.beta2)*g[j]*g[j]
			w[j] -= lr * m[j] / (math.Sqrt(v[j]) + o.epsilon)
		}
	}
}
