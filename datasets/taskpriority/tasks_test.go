package taskpriority

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecords(t *testing.T) {
	tasks := Records()
	assert.Len(t, tasks, 4)
	assert.Equal(t, []string{"Buy groceries", "Finish report", "Call mom", "Prepare presentation"}, Descriptions(tasks))
	assert.Equal(t, []int{14, 9, 18, 11}, Hours(tasks))
	assert.Equal(t, []int{2, 1, 3, 2}, Priorities(tasks))
	for _, task := range tasks {
		assert.True(t, task.Hour >= 0 && task.Hour < 24)
	}
}
