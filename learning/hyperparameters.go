// Package learning holds the training hyperparameters, losses and optimizers
package learning

import (
	"io"
	"log"
	"os"

	"github.com/pkg/errors"
)

// SetLogger appends the training log to filename instead of stderr.
func (h *HyperParameters) SetLogger(filename string) error {
	outfile, err := os.OpenFile(filename, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		return errors.Wrap(err, "open log")
	}
	h.l = log.New(outfile, "", log.LstdFlags)
	return nil
}

// SetOutput sends the training log to w.
func (h *HyperParameters) SetOutput(w io.Writer) {
	h.l = log.New(w, "", log.LstdFlags)
}

// SetLog sends the training log to an existing logger.
func (h *HyperParameters) SetLog(l *log.Logger) {
	h.l = l
}

// Logger returns the training logger, stderr unless SetLogger or SetOutput was called.
func (h *HyperParameters) Logger() *log.Logger {
	if h.l == nil {
		h.l = log.New(os.Stderr, "", log.LstdFlags)
	}
	return h.l
}

type HyperParameters struct {
	Epochs    int   // number of passes over the dataset
	BatchSize int   // samples per optimizer step, <= 0 means the whole set
	Shuffle   bool  // whether to shuffle the samples before each epoch
	Seed      int64 // prng seed for initialisation and shuffling, 0 seeds from crypto/rand
	Threads   int   // number of goroutines computing per sample gradients

	Verbose bool // draw a progress bar per epoch

	Optimizer    string
	LearningRate float64
	Beta1        float64
	Beta2        float64
	Epsilon      float64

	Loss string

	l *log.Logger
}

// Defaults returns the hyperparameters of the task priority training run.
func Defaults() HyperParameters {
	return HyperParameters{
		Epochs:       10,
		BatchSize:    32,
		Shuffle:      true,
		Threads:      1,
		Optimizer:    Adam,
		LearningRate: 0.001,
		Beta1:        0.9,
		Beta2:        0.999,
		Epsilon:      1e-7,
		Loss:         MeanSquaredError,
	}
}
