package trainer

import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/parallel"
import "gonum.org/v1/gonum/mat"

// NewEvaluateFunc returns a function computing the loss of net over the
// whole of X and y, together with a digest of all predictions. Equal
// weights give equal digests.
func NewEvaluateFunc(net *feedforward.FeedforwardNetwork, X *mat.Dense, y *mat.VecDense, loss learning.Loss) func() (float64, [32]byte, error) {
	return func() (float64, [32]byte, error) {
		pred, err := net.Predict(X)
		if err != nil {
			return 0, [32]byte{}, err
		}
		n := pred.Len()
		digest := parallel.NewDigest(n)
		p := make([]float64, n)
		t := make([]float64, n)
		for i := 0; i < n; i++ {
			p[i] = pred.AtVec(i)
			t[i] = y.AtVec(i)
			digest.MustPutFloat64(i, p[i])
		}
		return loss.Mean(p, t), digest.Sum(), nil
	}
}
