// Package main trains the task priority regressor on the built-in task
// records and saves the model and tokenizer artifacts, by default under
// models/.
package main
