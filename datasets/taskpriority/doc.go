// Package taskpriority provides the built-in task dataset: a short description,
// the hour of day the task was scheduled for, and the priority label (lower
// numbers mean higher priority).
package taskpriority
