package learning

import crypto_rand "crypto/rand"
import "encoding/binary"
import "math/rand"
import "time"

// Rand returns the prng of a training run. A zero Seed is first replaced by
// a random one and stored back, so the run can be repeated.
func (h *HyperParameters) Rand() *rand.Rand {
	if h.Seed == 0 {
		var b [8]byte
		if _, err := crypto_rand.Read(b[:]); err == nil {
			h.Seed = int64(binary.LittleEndian.Uint64(b[:]) >> 1)
		}
		if h.Seed == 0 {
			h.Seed = time.Now().UnixNano()
		}
	}
	return rand.New(rand.NewSource(h.Seed))
}
