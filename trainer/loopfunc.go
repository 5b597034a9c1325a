package trainer

import "math/rand"

import "github.com/neurlang/taskpriority/datasets"
import "github.com/neurlang/taskpriority/layer"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/parallel"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// NewLoopFunc returns a function running one training epoch over X and y.
// Each batch computes per sample gradients on up to threads goroutines,
// sums them in sample order and takes one optimizer step, so the outcome
// does not depend on scheduling. The epoch function returns the mean of
// the per sample losses, each measured before the update of its batch, so a
// short final batch weighs by its size. Every batch calls
// progress, which may be nil.
func NewLoopFunc(net *feedforward.FeedforwardNetwork, X *mat.Dense, y *mat.VecDense,
	h *learning.HyperParameters, opt learning.Optimizer, loss learning.Loss, rng *rand.Rand,
	progress func()) func() (float64, error) {

	n, _ := X.Dims()
	params := net.Params()
	threads := h.Threads
	if threads <= 0 {
		threads = parallel.Threads()
	}

	return func() (float64, error) {
		var order []int
		if h.Shuffle {
			order = datasets.Permutation(rng, n)
		} else {
			order = datasets.Permutation(nil, n)
		}

		var sum float64
		for _, b := range datasets.Batches(n, h.BatchSize) {
			size := b[1] - b[0]
			grads := make([][]*mat.Dense, size)
			losses := make([]float64, size)
			errs := make([]error, size)

			parallel.ForEach(size, threads, func(k int) {
				i := order[b[0]+k]
				pass, err := net.Lay(X.RawRowView(i))
				if err != nil {
					errs[k] = errors.Wrapf(err, "sample %d", i)
					return
				}
				target := y.AtVec(i)
				losses[k] = loss.Value(pass.Output(), target)
				grads[k] = layer.ZeroGrads(params)
				pass.Backward(loss.Grad(pass.Output(), target)/float64(size), grads[k])
			})

			total := layer.ZeroGrads(params)
			for k := 0; k < size; k++ {
				if errs[k] != nil {
					return 0, errs[k]
				}
				for j := range total {
					total[j].Add(total[j], grads[k][j])
				}
				sum += losses[k]
			}
			opt.Step(params, total)
			if progress != nil {
				progress()
			}
		}
		return sum / float64(n), nil
	}
}
