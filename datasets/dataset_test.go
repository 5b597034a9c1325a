package datasets

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHStack(t *testing.T) {
	x, err := HStack([][]int{{0, 1, 2}, {0, 3, 4}}, []int{14, 9})
	require.NoError(t, err)
	r, c := x.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 4, c)
	assert.Equal(t, []float64{0, 3, 4, 9}, x.RawRowView(1))
}

func TestHStackErrors(t *testing.T) {
	_, err := HStack(nil, nil)
	assert.Error(t, err)
	_, err = HStack([][]int{{1}}, []int{1, 2})
	assert.Error(t, err)
	_, err = HStack([][]int{{1, 2}, {3}}, []int{1, 2})
	assert.Error(t, err)
}

func TestTargets(t *testing.T) {
	y := Targets([]int{2, 1, 3})
	assert.Equal(t, 3, y.Len())
	assert.Equal(t, 3.0, y.AtVec(2))
}

func TestBatches(t *testing.T) {
	assert.Equal(t, [][2]int{{0, 4}}, Batches(4, 32))
	assert.Equal(t, [][2]int{{0, 2}, {2, 4}, {4, 5}}, Batches(5, 2))
	assert.Equal(t, [][2]int{{0, 3}}, Batches(3, 0))
	assert.Empty(t, Batches(0, 8))
}

func TestPermutation(t *testing.T) {
	assert.Equal(t, []int{0, 1, 2}, Permutation(nil, 3))
	a := Permutation(rand.New(rand.NewSource(7)), 10)
	b := Permutation(rand.New(rand.NewSource(7)), 10)
	assert.Equal(t, a, b)
	assert.ElementsMatch(t, Permutation(nil, 10), a)
}
