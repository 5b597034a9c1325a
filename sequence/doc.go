// Package sequence pads and truncates integer token sequences to a fixed length,
// so that variable length texts can be stacked into a feature matrix.
package sequence
