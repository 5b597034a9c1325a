// Package inference loads stored task priority artifacts and predicts the
// priority of new tasks.
package inference
