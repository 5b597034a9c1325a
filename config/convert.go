package config

import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/sequence"
import "github.com/neurlang/taskpriority/tokenizer"

// HyperParameters returns the training settings. The logger is left at its
// default.
func (c *Config) HyperParameters() learning.HyperParameters {
	h := learning.Defaults()
	h.Epochs = c.Train.Epochs
	h.BatchSize = c.Train.BatchSize
	h.Shuffle = c.Train.Shuffle
	h.Seed = c.Train.Seed
	h.Threads = c.Train.Threads
	h.Verbose = c.Train.Verbose
	h.Optimizer = c.Optimizer.Name
	h.LearningRate = c.Optimizer.LearningRate
	h.Loss = c.Loss
	return h
}

func (c *Config) TokenizerOptions() tokenizer.Options {
	o := tokenizer.DefaultOptions()
	o.NumWords = c.Tokenizer.NumWords
	o.OOVToken = c.Tokenizer.OOVToken
	o.OOVBuckets = c.Tokenizer.OOVBuckets
	o.Analyzer = tokenizer.Analyzer(c.Tokenizer.Analyzer)
	o.Lower = c.Tokenizer.Lower
	o.Stopwords = c.Tokenizer.Stopwords
	o.Stem = c.Tokenizer.Stem
	return o
}

func (c *Config) SequenceOptions() (o sequence.Options, err error) {
	o.MaxLen = c.Sequence.MaxLen
	if o.Padding, err = sequence.ParseMode(c.Sequence.Padding); err != nil {
		return
	}
	o.Truncating, err = sequence.ParseMode(c.Sequence.Truncating)
	return
}
