// Package hash implements the fast salted modular hash used for feature hashing
package hash

// Hash mixes n with the salt s and reduces the result into the range 0 to max-1.
func Hash(n uint32, s uint32, max uint32) uint32 {
	// mixing stage, mix input with salt using subtraction
	var m = uint32(n) - uint32(s)

	// hashing stage, use xor shift with prime coefficients
	m ^= m << 2
	m ^= m << 3
	m ^= m >> 5
	m ^= m >> 7
	m ^= m << 11
	m ^= m << 13
	m ^= m >> 17
	m ^= m << 19

	// mixing stage 2, mix input with salt using addition
	m += s

	// multiply shift reduction instead of modulo
	// https://lemire.me/blog/2016/06/27/a-fast-alternative-to-the-modulo-reduction/
	return uint32((uint64(m) * uint64(max)) >> 32)
}

// StringHash hashes the string str salted by salt into the full uint32 range.
func StringHash(salt uint32, str string) (h uint32) {
	h = salt
	for i := 0; i < len(str); i++ {
		h = Hash(h^uint32(str[i]), uint32(i)+salt, 0xFFFFFFFF)
	}
	return Hash(h, uint32(len(str)), 0xFFFFFFFF)
}

// StringBucket hashes str into one of buckets buckets. Returns 0 if buckets is 0.
func StringBucket(str string, buckets uint32) uint32 {
	return Hash(StringHash(0, str), buckets, buckets)
}
