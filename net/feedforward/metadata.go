package feedforward

import "time"

import "github.com/google/uuid"

// Format identifies the model artifact layout.
const Format = "taskpriority.model.v1"

// Metadata describes the training run that produced a model artifact.
type Metadata struct {
	RunID     string
	Created   time.Time
	Optimizer string
	Loss      string
	Epochs    int
	History   []float64 // mean loss of each epoch

	// Sequence is how descriptions were padded into the input rows.
	Sequence SequenceMetadata
}

// SequenceMetadata records the padding of the token sequences fed to the
// network, so rows can be encoded the same way after loading.
type SequenceMetadata struct {
	MaxLen     int
	Padding    string
	Truncating string
}

// NewMetadata returns metadata for a new run with a fresh run id.
func NewMetadata() Metadata {
	return Metadata{
		RunID:   uuid.NewString(),
		Created: time.Now().UTC().Truncate(time.Second),
	}
}

// FinalLoss returns the loss of the last epoch, 0 without history.
func (m Metadata) FinalLoss() float64 {
	if len(m.History) == 0 {
		return 0
	}
	return m.History[len(m.History)-1]
}
