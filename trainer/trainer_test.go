package trainer

import "bytes"
import "testing"

import "github.com/neurlang/taskpriority/layer"
import "github.com/neurlang/taskpriority/layer/dense"
import "github.com/neurlang/taskpriority/layer/embedding"
import "github.com/neurlang/taskpriority/layer/flatten"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/storage"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"
import "gonum.org/v1/gonum/mat"

func data() (*mat.Dense, *mat.VecDense) {
	X := mat.NewDense(4, 11, []float64{
		0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 14,
		0, 0, 0, 0, 0, 0, 0, 0, 3, 4, 9,
		0, 0, 0, 0, 0, 0, 0, 0, 5, 6, 18,
		0, 0, 0, 0, 0, 0, 0, 0, 7, 8, 11,
	})
	return X, mat.NewVecDense(4, []float64{2, 1, 3, 2})
}

func network(t *testing.T, seed int64) *feedforward.FeedforwardNetwork {
	net := new(feedforward.FeedforwardNetwork)
	net.NewLayer(embedding.MustNew(1000, 8))
	net.NewLayer(flatten.New())
	net.NewLayer(dense.MustNew(10, dense.ReLU))
	net.NewLayer(dense.MustNew(1, dense.Linear))
	require.NoError(t, net.Build(11, seed))
	return net
}

func hyper(epochs int) *learning.HyperParameters {
	h := learning.Defaults()
	h.Epochs = epochs
	h.Seed = 42
	h.Threads = 2
	h.SetOutput(new(bytes.Buffer))
	return &h
}

func TestFitReducesLoss(t *testing.T) {
	X, y := data()
	net := network(t, 42)
	history, err := Fit(net, X, y, hyper(200))
	require.NoError(t, err)
	require.Len(t, history.Loss, 200)
	assert.Less(t, history.Last(), history.Loss[0])
}

func TestFitIsDeterministic(t *testing.T) {
	X, y := data()
	loss, err := learning.LossByName(learning.MeanSquaredError)
	require.NoError(t, err)

	run := func() ([]float64, float64, [32]byte) {
		net := network(t, 7)
		history, err := Fit(net, X, y, hyper(10))
		require.NoError(t, err)
		value, digest, err := NewEvaluateFunc(net, X, y, loss)()
		require.NoError(t, err)
		return history.Loss, value, digest
	}
	h1, l1, d1 := run()
	h2, l2, d2 := run()
	assert.Equal(t, h1, h2)
	assert.Equal(t, l1, l2)
	assert.Equal(t, d1, d2)
}

type frozen struct{}

func (frozen) Step([]*layer.Param, []*mat.Dense) {}
func (frozen) Name() string { return "frozen" }

func TestLoopFuncWeighsBatchesBySize(t *testing.T) {
	X, y := data()
	loss, err := learning.LossByName(learning.MeanSquaredError)
	require.NoError(t, err)
	net := network(t, 3)
	h := hyper(1)
	h.BatchSize = 3
	h.Threads = 4

	// weights stay put, so every batch sees the same network
	got, err := NewLoopFunc(net, X, y, h, frozen{}, loss, h.Rand(), nil)()
	require.NoError(t, err)

	pred, err := net.Predict(X)
	require.NoError(t, err)
	var per []float64
	for i := 0; i < y.Len(); i++ {
		per = append(per, loss.Value(pred.AtVec(i), y.AtVec(i)))
	}
	assert.InDelta(t, (per[0]+per[1]+per[2]+per[3])/4, got, 1e-9)

	value, _, err := NewEvaluateFunc(net, X, y, loss)()
	require.NoError(t, err)
	assert.InDelta(t, value, got, 1e-9)
}

func TestFitMultiBatchIsDeterministic(t *testing.T) {
	X, y := data()
	run := func() []float64 {
		h := hyper(20)
		h.BatchSize = 3
		h.Threads = 4
		history, err := Fit(network(t, 5), X, y, h)
		require.NoError(t, err)
		require.Len(t, history.Loss, 20)
		return history.Loss
	}
	assert.Equal(t, run(), run())
}

func TestFitLogsEpochs(t *testing.T) {
	X, y := data()
	h := hyper(2)
	h.Verbose = true
	var buf bytes.Buffer
	h.SetOutput(&buf)
	_, err := Fit(network(t, 1), X, y, h)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "epoch 1/2 loss=")
	assert.Contains(t, buf.String(), "epoch 2/2 loss=")
}

func TestFitErrors(t *testing.T) {
	X, y := data()
	net := network(t, 1)

	_, err := Fit(net, mat.NewDense(4, 10, nil), y, hyper(1))
	assert.Error(t, err)

	_, err = Fit(net, X, mat.NewVecDense(3, nil), hyper(1))
	assert.Error(t, err)

	h := hyper(0)
	_, err = Fit(net, X, y, h)
	assert.Error(t, err)

	h = hyper(1)
	h.Optimizer = "adagrad"
	_, err = Fit(net, X, y, h)
	assert.Error(t, err)

	h = hyper(1)
	h.Loss = "huber"
	_, err = Fit(net, X, y, h)
	assert.Error(t, err)
}

func TestEvaluateFunc(t *testing.T) {
	X, y := data()
	net := network(t, 3)
	loss, err := learning.LossByName(learning.MeanSquaredError)
	require.NoError(t, err)

	value, digest, err := NewEvaluateFunc(net, X, y, loss)()
	require.NoError(t, err)

	pred, err := net.Predict(X)
	require.NoError(t, err)
	var want float64
	for i := 0; i < 4; i++ {
		d := pred.AtVec(i) - y.AtVec(i)
		want += d * d / 4
	}
	assert.InDelta(t, want, value, 1e-12)

	_, other, err := NewEvaluateFunc(network(t, 4), X, y, loss)()
	require.NoError(t, err)
	assert.NotEqual(t, digest, other)
}

func TestResume(t *testing.T) {
	X, y := data()
	store, err := storage.NewDiskBackend(t.TempDir())
	require.NoError(t, err)

	trained := network(t, 5)
	_, err = Fit(trained, X, y, hyper(5))
	require.NoError(t, err)
	meta := feedforward.NewMetadata()
	meta.Epochs = 5
	var buf bytes.Buffer
	require.NoError(t, trained.WriteCompressedWeights(&buf, meta))
	require.NoError(t, store.Put("model.json.lzw", buf.Bytes()))

	fresh := network(t, 6)
	got, err := Resume(fresh, store, "model.json.lzw")
	require.NoError(t, err)
	assert.Equal(t, meta.RunID, got.RunID)

	a, err := trained.Predict(X)
	require.NoError(t, err)
	b, err := fresh.Predict(X)
	require.NoError(t, err)
	assert.True(t, mat.Equal(a, b))

	_, err = Resume(fresh, store, "missing.json.lzw")
	assert.Error(t, err)
}
