// Package trainer provides high-level training orchestration for feedforward
// networks: the epoch loop, evaluation and resuming from a stored model.
package trainer
