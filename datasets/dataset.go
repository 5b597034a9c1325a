// Package datasets assembles numeric training data from preprocessed records
package datasets

import "math/rand"

import "github.com/pkg/errors"
import "gonum.org/v1/gonum/mat"

// HStack concatenates equal length integer rows with one extra column into
// a feature matrix of shape (len(seqs), width+1).
func HStack(seqs [][]int, column []int) (*mat.Dense, error) {
	if len(seqs) == 0 {
		return nil, errors.New("datasets: no rows")
	}
	if len(seqs) != len(column) {
		return nil, errors.Errorf("datasets: %d rows but %d column values", len(seqs), len(column))
	}
	width := len(seqs[0])
	data := make([]float64, 0, len(seqs)*(width+1))
	for i, row := range seqs {
		if len(row) != width {
			return nil, errors.Errorf("datasets: row %d has width %d, want %d", i, len(row), width)
		}
		for _, v := range row {
			data = append(data, float64(v))
		}
		data = append(data, float64(column[i]))
	}
	return mat.NewDense(len(seqs), width+1, data), nil
}

// Targets converts integer labels into a regression target vector.
func Targets(values []int) *mat.VecDense {
	data := make([]float64, len(values))
	for i, v := range values {
		data[i] = float64(v)
	}
	return mat.NewVecDense(len(data), data)
}

// Permutation returns the sample order for one epoch. A nil rng keeps the
// natural order.
func Permutation(rng *rand.Rand, n int) []int {
	if rng == nil {
		o := make([]int, n)
		for i := range o {
			o[i] = i
		}
		return o
	}
	return rng.Perm(n)
}

// Batches splits n samples into half open [from, to) ranges of at most size
// samples. A size of zero or less yields a single batch.
func Batches(n, size int) (o [][2]int) {
	if size <= 0 {
		size = n
	}
	for from := 0; from < n; from += size {
		to := from + size
		if to > n {
			to = n
		}
		o = append(o, [2]int{from, to})
	}
	return
}
