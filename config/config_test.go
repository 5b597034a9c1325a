package config

import "os"
import "path/filepath"
import "testing"

import "github.com/neurlang/taskpriority/sequence"
import "github.com/neurlang/taskpriority/tokenizer"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func write(t *testing.T, name, content string) string {
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, 10, cfg.Train.Epochs)
	assert.Equal(t, 32, cfg.Train.BatchSize)
	assert.Equal(t, 1000, cfg.Tokenizer.NumWords)
	assert.Equal(t, 10, cfg.Sequence.MaxLen)
	assert.Equal(t, 8, cfg.Model.EmbeddingDim)
	assert.Equal(t, "models", cfg.Store.URI)
	assert.Equal(t, "task_priority_model.json.lzw", cfg.Store.ModelKey)
	assert.Equal(t, "tokenizer.json", cfg.Store.TokenizerKey)
}

func TestLoadProperties(t *testing.T) {
	path := write(t, "run.properties", `
# smaller run
train.epochs = 3
train.seed = 99
train.shuffle = false
optimizer.learning_rate = 0.01
tokenizer.oov_token = <OOV>
sequence.padding = post
store.uri = sqlite:models/artifacts.db
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Train.Epochs)
	assert.Equal(t, int64(99), cfg.Train.Seed)
	assert.False(t, cfg.Train.Shuffle)
	assert.Equal(t, 0.01, cfg.Optimizer.LearningRate)
	assert.Equal(t, "<OOV>", cfg.Tokenizer.OOVToken)
	assert.Equal(t, "sqlite:models/artifacts.db", cfg.Store.URI)
	assert.Equal(t, 32, cfg.Train.BatchSize)

	seq, err := cfg.SequenceOptions()
	require.NoError(t, err)
	assert.Equal(t, sequence.Post, seq.Padding)
	assert.Equal(t, sequence.Pre, seq.Truncating)
}

func TestLoadYAML(t *testing.T) {
	path := write(t, "run.yaml", `
train:
  epochs: 4
  batch_size: 2
tokenizer:
  analyzer: prose
  stem: true
model:
  hidden_units: 16
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 4, cfg.Train.Epochs)
	assert.Equal(t, 2, cfg.Train.BatchSize)
	assert.Equal(t, 16, cfg.Model.HiddenUnits)
	assert.Equal(t, 8, cfg.Model.EmbeddingDim)

	o := cfg.TokenizerOptions()
	assert.Equal(t, tokenizer.Prose, o.Analyzer)
	assert.True(t, o.Stem)
	assert.Equal(t, 1000, o.NumWords)
}

func TestEnvOverridesFile(t *testing.T) {
	path := write(t, "run.properties", "train.epochs = 3\n")
	t.Setenv("TASKPRIO_TRAIN_EPOCHS", "7")
	t.Setenv("TASKPRIO_STORE_MODEL_KEY", "model.lzw")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Train.Epochs)
	assert.Equal(t, "model.lzw", cfg.Store.ModelKey)
}

func TestBadValues(t *testing.T) {
	_, err := Load(write(t, "bad.properties", "train.epochs = many\n"))
	assert.Error(t, err)

	t.Setenv("TASKPRIO_TRAIN_SHUFFLE", "sometimes")
	_, err = Load("")
	assert.Error(t, err)
}

func TestMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.properties"))
	assert.Error(t, err)
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.Train.Epochs = -1
	cfg.Train.Threads = -4
	applyDefaults(cfg)
	assert.Equal(t, 10, cfg.Train.Epochs)
	assert.Equal(t, 0, cfg.Train.Threads)
	assert.Equal(t, "adam", cfg.Optimizer.Name)
	assert.Equal(t, 1000, cfg.Model.InputDim)
	assert.Equal(t, "tokenizer.json", cfg.Store.TokenizerKey)
}

func TestLongestMaxLen(t *testing.T) {
	path := write(t, "run.properties", "sequence.maxlen = 0\n")
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 0, cfg.Sequence.MaxLen)
	seq, err := cfg.SequenceOptions()
	require.NoError(t, err)
	assert.Equal(t, 0, seq.MaxLen)

	cfg = Default()
	cfg.Sequence.MaxLen = -3
	applyDefaults(cfg)
	assert.Equal(t, 10, cfg.Sequence.MaxLen)
}

func TestEnvName(t *testing.T) {
	assert.Equal(t, "TASKPRIO_OPTIMIZER_LEARNING_RATE", EnvName("optimizer.learning_rate"))
}

func TestHyperParameters(t *testing.T) {
	cfg := Default()
	cfg.Train.Seed = 5
	h := cfg.HyperParameters()
	assert.Equal(t, int64(5), h.Seed)
	assert.Equal(t, "adam", h.Optimizer)
	assert.Equal(t, 0.9, h.Beta1)
}
