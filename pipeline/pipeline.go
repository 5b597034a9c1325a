package pipeline

import "bytes"
import "log"

import "github.com/neurlang/taskpriority/config"
import "github.com/neurlang/taskpriority/datasets"
import "github.com/neurlang/taskpriority/datasets/taskpriority"
import "github.com/neurlang/taskpriority/layer/dense"
import "github.com/neurlang/taskpriority/layer/embedding"
import "github.com/neurlang/taskpriority/layer/flatten"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/sequence"
import "github.com/neurlang/taskpriority/storage"
import "github.com/neurlang/taskpriority/tokenizer"
import "github.com/neurlang/taskpriority/trainer"
import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// Result summarises a finished run.
type Result struct {
	History *trainer.History
	Loss    float64  // loss over all records after training
	Digest  [32]byte // digest of the final predictions

	ModelKey     string
	TokenizerKey string
	RunID        string
	Seed         int64

	Net       *feedforward.FeedforwardNetwork
	Tokenizer *tokenizer.Tokenizer
}

// Features tokenizes and pads the descriptions of tasks and appends the
// hour column.
func Features(tok *tokenizer.Tokenizer, o sequence.Options, tasks []taskpriority.Task) (*mat.Dense, error) {
	seqs, err := tok.TextsToSequences(taskpriority.Descriptions(tasks))
	if err != nil {
		return nil, err
	}
	padded, err := sequence.Pad(seqs, o)
	if err != nil {
		return nil, err
	}
	return datasets.HStack(padded, taskpriority.Hours(tasks))
}

// NewNetwork creates the unbuilt embedding, flatten, dense, dense stack.
func NewNetwork(m config.ModelConfig) (*feedforward.FeedforwardNetwork, error) {
	emb, err := embedding.New(m.InputDim, m.EmbeddingDim)
	if err != nil {
		return nil, err
	}
	hidden, err := dense.New(m.HiddenUnits, dense.Activation(m.HiddenActivation))
	if err != nil {
		return nil, err
	}
	out, err := dense.New(1, dense.Activation(m.OutputActivation))
	if err != nil {
		return nil, err
	}
	net := new(feedforward.FeedforwardNetwork)
	net.NewLayer(emb)
	net.NewLayer(flatten.New())
	net.NewLayer(hidden)
	net.NewLayer(out)
	return net, nil
}

// Run trains on the built-in records and stores both artifacts in store.
func Run(cfg *config.Config, store storage.Backend, logger *log.Logger) (*Result, error) {
	h := cfg.HyperParameters()
	if logger != nil {
		h.SetLog(logger)
	}
	l := h.Logger()

	tasks := taskpriority.Records()

	tok, err := tokenizer.New(cfg.TokenizerOptions())
	if err != nil {
		return nil, err
	}
	if err := tok.FitOnTexts(taskpriority.Descriptions(tasks)); err != nil {
		return nil, errors.Wrap(err, "pipeline: fit tokenizer")
	}
	seqOpts, err := cfg.SequenceOptions()
	if err != nil {
		return nil, err
	}
	X, err := Features(tok, seqOpts, tasks)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: features")
	}
	y := datasets.Targets(taskpriority.Priorities(tasks))
	_, width := X.Dims()
	l.Printf("vocabulary %d words, features %d×%d", len(tok.WordIndex()), y.Len(), width)

	net, err := NewNetwork(cfg.Model)
	if err != nil {
		return nil, errors.Wrap(err, "pipeline: model")
	}
	h.Rand() // fixes a zero seed so the run can be repeated
	if err := net.Build(width, h.Seed); err != nil {
		return nil, errors.Wrap(err, "pipeline: model")
	}
	net.SetThreads(h.Threads)
	l.Printf("model %d parameters, seed %d", net.Len(), h.Seed)

	if cfg.Train.Resume && store.Has(cfg.Store.ModelKey) {
		prev, err := trainer.Resume(net, store, cfg.Store.ModelKey)
		if err != nil {
			return nil, err
		}
		l.Printf("resumed from run %s", prev.RunID)
	}

	history, err := trainer.Fit(net, X, y, &h)
	if err != nil {
		return nil, err
	}
	loss, err := learning.LossByName(h.Loss)
	if err != nil {
		return nil, err
	}
	value, digest, err := trainer.NewEvaluateFunc(net, X, y, loss)()
	if err != nil {
		return nil, err
	}

	meta := feedforward.NewMetadata()
	meta.Optimizer = h.Optimizer
	meta.Loss = h.Loss
	meta.Epochs = h.Epochs
	meta.History = history.Loss
	meta.Sequence = feedforward.SequenceMetadata{
		MaxLen:     width - 1,
		Padding:    string(seqOpts.Padding),
		Truncating: string(seqOpts.Truncating),
	}

	var model bytes.Buffer
	if err := net.WriteCompressedWeights(&model, meta); err != nil {
		return nil, err
	}
	if err := store.Put(cfg.Store.ModelKey, model.Bytes()); err != nil {
		return nil, err
	}
	var tokJSON bytes.Buffer
	if _, err := tok.WriteTo(&tokJSON); err != nil {
		return nil, err
	}
	if err := store.Put(cfg.Store.TokenizerKey, tokJSON.Bytes()); err != nil {
		return nil, err
	}
	l.Printf("saved model to %s and tokenizer to %s", store.Locate(cfg.Store.ModelKey), store.Locate(cfg.Store.TokenizerKey))

	return &Result{
		History:      history,
		Loss:         value,
		Digest:       digest,
		ModelKey:     cfg.Store.ModelKey,
		TokenizerKey: cfg.Store.TokenizerKey,
		RunID:        meta.RunID,
		Seed:         h.Seed,
		Net:          net,
		Tokenizer:    tok,
	}, nil
}
