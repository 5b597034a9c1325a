// Package storage keeps the trained artifacts, either as files in a
// directory or as rows of a single SQLite file.
package storage
