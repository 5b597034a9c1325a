package taskpriority

// Task is one labelled training record.
type Task struct {
	Description string
	Hour        int
	Priority    int
}

// Records returns the training records.
func Records() []Task {
	return []Task{
		{Description: "Buy groceries", Hour: 14, Priority: 2},
		{Description: "Finish report", Hour: 9, Priority: 1},
		{Description: "Call mom", Hour: 18, Priority: 3},
		{Description: "Prepare presentation", Hour: 11, Priority: 2},
	}
}

// Descriptions projects the description column.
func Descriptions(tasks []Task) []string {
	o := make([]string, len(tasks))
	for i := range tasks {
		o[i] = tasks[i].Description
	}
	return o
}

// Hours projects the hour column.
func Hours(tasks []Task) []int {
	o := make([]int, len(tasks))
	for i := range tasks {
		o[i] = tasks[i].Hour
	}
	return o
}

// Priorities projects the label column.
func Priorities(tasks []Task) []int {
	o := make([]int, len(tasks))
	for i := range tasks {
		o[i] = tasks[i].Priority
	}
	return o
}
