package parallel

import (
	"crypto/sha256"
	"encoding/binary"
	"math"
)

// Digest collects float64 values written concurrently at distinct positions
// and hashes them in position order. Writing the same position twice panics.
type Digest struct {
	values  []float64
	written []bool
}

// NewDigest creates a digest for n values.
func NewDigest(n int) *Digest {
	return &Digest{
		values:  make([]float64, n),
		written: make([]bool, n),
	}
}

// MustPutFloat64 stores value at position n. Safe for concurrent use as long
// as every goroutine writes its own positions.
func (d *Digest) MustPutFloat64(n int, value float64) {
	if d.written[n] {
		panic("duplicate write")
	}
	d.values[n] = value
	d.written[n] = true
}

// Sum returns the SHA-256 of all values in position order. Missing positions
// hash as NaN.
func (d *Digest) Sum() (ret [32]byte) {
	sha := sha256.New()
	var buf [8]byte
	for i, v := range d.values {
		if !d.written[i] {
			v = math.NaN()
		}
		binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
		sha.Write(buf[:])
	}
	copy(ret[:], sha.Sum(nil))
	return
}
