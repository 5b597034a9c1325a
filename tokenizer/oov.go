package tokenizer

import "github.com/jbarham/primegen"

import "github.com/neurlang/taskpriority/hash"

// primeAtLeast returns the smallest prime not below n.
func primeAtLeast(n uint32) uint32 {
	pg := primegen.New()
	pg.SkipTo(uint64(n))
	return uint32(pg.Next())
}

// bucket hashes an out of vocabulary word into one of buckets slots.
func bucket(word string, buckets uint32) uint32 {
	return hash.StringBucket(word, buckets)
}
