// Package pipeline runs the whole task priority training: tokenizing the
// built-in records, padding, assembling features, fitting the network and
// storing the model and tokenizer artifacts.
package pipeline
