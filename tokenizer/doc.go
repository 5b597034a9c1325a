// Package tokenizer turns task descriptions into integer sequences using a
// frequency ordered word index. Indices start at 1, index 0 is left for padding.
package tokenizer
