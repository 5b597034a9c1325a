// Package main loads the trained task priority artifacts and prints
// predictions, either for one task given on the command line or for the
// built-in task records.
package main
