package trainer

import "github.com/cheggaaa/pb/v3"
import "github.com/neurlang/taskpriority/datasets"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// History holds the mean training loss of every epoch.
type History struct {
	Loss []float64
}

// Last returns the loss of the final epoch.
func (h *History) Last() float64 {
	if len(h.Loss) == 0 {
		return 0
	}
	return h.Loss[len(h.Loss)-1]
}

// Fit trains net on X and y for h.Epochs epochs. There is no validation
// split and no early stopping.
func Fit(net *feedforward.FeedforwardNetwork, X *mat.Dense, y *mat.VecDense, h *learning.HyperParameters) (*History, error) {
	n, width := X.Dims()
	if n != y.Len() {
		return nil, errors.Errorf("trainer: %d samples but %d targets", n, y.Len())
	}
	if width != net.InputWidth() {
		return nil, errors.Errorf("trainer: input width %d does not match model input width %d", width, net.InputWidth())
	}
	if h.Epochs <= 0 {
		return nil, errors.Errorf("trainer: epochs must be positive, got %d", h.Epochs)
	}
	loss, err := learning.LossByName(h.Loss)
	if err != nil {
		return nil, err
	}
	opt, err := learning.NewOptimizer(*h)
	if err != nil {
		return nil, err
	}

	var bar *pb.ProgressBar
	progress := func() {
		if bar != nil {
			bar.Increment()
		}
	}
	epoch := NewLoopFunc(net, X, y, h, opt, loss, h.Rand(), progress)
	batches := len(datasets.Batches(n, h.BatchSize))
	l := h.Logger()

	var history History
	for e := 1; e <= h.Epochs; e++ {
		if h.Verbose {
			bar = pb.New(batches).SetWriter(l.Writer()).Start()
		}
		value, err := epoch()
		if bar != nil {
			bar.Finish()
			bar = nil
		}
		if err != nil {
			return &history, errors.Wrapf(err, "trainer: epoch %d", e)
		}
		history.Loss = append(history.Loss, value)
		l.Printf("epoch %d/%d loss=%.4f", e, h.Epochs, value)
	}
	return &history, nil
}
