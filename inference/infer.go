package inference

import "bytes"

import "github.com/hashicorp/golang-lru"
import "github.com/neurlang/taskpriority/datasets/taskpriority"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/parallel"
import "github.com/neurlang/taskpriority/sequence"
import "github.com/neurlang/taskpriority/storage"
import "github.com/neurlang/taskpriority/tokenizer"
import "github.com/pkg/errors"

// CacheSize is the number of encoded descriptions a Predictor keeps.
const CacheSize = 1024

// Predictor scores tasks with a trained network and its tokenizer.
type Predictor struct {
	net  *feedforward.FeedforwardNetwork
	tok  *tokenizer.Tokenizer
	seq  sequence.Options
	meta feedforward.Metadata

	cache *lru.Cache
}

// New creates a predictor encoding rows the way meta.Sequence records. The
// padded length is the model input width minus the hour column; unset
// modes mean pre padding and pre truncating.
func New(net *feedforward.FeedforwardNetwork, tok *tokenizer.Tokenizer, meta feedforward.Metadata) (*Predictor, error) {
	seq, err := sequenceOptions(net.InputWidth(), meta.Sequence)
	if err != nil {
		return nil, err
	}
	cache, err := lru.New(CacheSize)
	if err != nil {
		return nil, err
	}
	return &Predictor{
		net:   net,
		tok:   tok,
		seq:   seq,
		meta:  meta,
		cache: cache,
	}, nil
}

func sequenceOptions(width int, m feedforward.SequenceMetadata) (o sequence.Options, err error) {
	if width < 2 {
		return o, errors.Errorf("inference: model input width %d leaves no room for a description", width)
	}
	o.MaxLen = width - 1
	if m.MaxLen != 0 && m.MaxLen != o.MaxLen {
		return o, errors.Errorf("inference: sequences padded to %d do not fit model input width %d", m.MaxLen, width)
	}
	if o.Padding, err = sequence.ParseMode(m.Padding); err != nil {
		return o, errors.Wrap(err, "inference")
	}
	if o.Truncating, err = sequence.ParseMode(m.Truncating); err != nil {
		return o, errors.Wrap(err, "inference")
	}
	return o, nil
}

// Load reads the model and tokenizer artifacts from store.
func Load(store storage.Backend, modelKey, tokenizerKey string) (*Predictor, error) {
	data, err := store.Get(modelKey)
	if err != nil {
		return nil, errors.Wrap(err, "inference: model")
	}
	net, meta, err := feedforward.ReadCompressedModel(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "inference: %s", store.Locate(modelKey))
	}
	data, err = store.Get(tokenizerKey)
	if err != nil {
		return nil, errors.Wrap(err, "inference: tokenizer")
	}
	tok, err := tokenizer.ReadTokenizer(bytes.NewReader(data))
	if err != nil {
		return nil, errors.Wrapf(err, "inference: %s", store.Locate(tokenizerKey))
	}
	return New(net, tok, meta)
}

// Metadata describes the training run of the loaded model.
func (p *Predictor) Metadata() feedforward.Metadata {
	return p.meta
}

// Encode returns the feature row of a task.
func (p *Predictor) Encode(description string, hour int) ([]float64, error) {
	var padded []int
	if v, ok := p.cache.Get(description); ok {
		padded = v.([]int)
	} else {
		seq, err := p.tok.TextToSequence(description)
		if err != nil {
			return nil, err
		}
		out, err := sequence.Pad([][]int{seq}, p.seq)
		if err != nil {
			return nil, err
		}
		padded = out[0]
		p.cache.Add(description, padded)
	}
	row := make([]float64, len(padded)+1)
	for i, v := range padded {
		row[i] = float64(v)
	}
	row[len(padded)] = float64(hour)
	return row, nil
}

// Predict returns the priority of one task.
func (p *Predictor) Predict(description string, hour int) (float64, error) {
	row, err := p.Encode(description, hour)
	if err != nil {
		return 0, err
	}
	return p.net.Infer(row)
}

// PredictAll scores tasks in parallel, keeping their order.
func (p *Predictor) PredictAll(tasks []taskpriority.Task) ([]float64, error) {
	out := make([]float64, len(tasks))
	errs := make([]error, len(tasks))
	parallel.ForEach(len(tasks), parallel.Threads(), func(i int) {
		out[i], errs[i] = p.Predict(tasks[i].Description, tasks[i].Hour)
	})
	for i, err := range errs {
		if err != nil {
			return nil, errors.Wrapf(err, "task %d", i)
		}
	}
	return out, nil
}

// Cached reports how many descriptions are cached.
func (p *Predictor) Cached() int {
	return p.cache.Len()
}
