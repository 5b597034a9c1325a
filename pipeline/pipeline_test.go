package pipeline

import "bytes"
import "log"
import "path/filepath"
import "testing"

import "github.com/neurlang/taskpriority/config"
import "github.com/neurlang/taskpriority/datasets/taskpriority"
import "github.com/neurlang/taskpriority/net/feedforward"
import "github.com/neurlang/taskpriority/storage"
import "github.com/neurlang/taskpriority/tokenizer"
import "github.com/stretchr/testify/assert"
import "github.com/stretchr/testify/require"

func testConfig(seed int64) *config.Config {
	cfg := config.Default()
	cfg.Train.Seed = seed
	cfg.Train.Verbose = false
	return cfg
}

func run(t *testing.T, cfg *config.Config) (*Result, storage.Backend, *bytes.Buffer) {
	store, err := storage.NewDiskBackend(filepath.Join(t.TempDir(), "models"))
	require.NoError(t, err)
	var buf bytes.Buffer
	res, err := Run(cfg, store, log.New(&buf, "", 0))
	require.NoError(t, err)
	return res, store, &buf
}

func TestRunWritesArtifacts(t *testing.T) {
	res, store, logs := run(t, testConfig(1))

	for _, key := range []string{"task_priority_model.json.lzw", "tokenizer.json"} {
		data, err := store.Get(key)
		require.NoError(t, err)
		assert.NotEmpty(t, data, key)
	}
	assert.Equal(t, "task_priority_model.json.lzw", res.ModelKey)
	assert.Equal(t, "tokenizer.json", res.TokenizerKey)
	assert.Len(t, res.History.Loss, 10)
	assert.NotEmpty(t, res.RunID)
	assert.Equal(t, 11, res.Net.InputWidth())
	assert.Equal(t, 8901, res.Net.Len())
	assert.Contains(t, logs.String(), "epoch 10/10 loss=")
}

func TestFeatures(t *testing.T) {
	cfg := testConfig(1)
	tok := tokenizer.MustNew(cfg.TokenizerOptions())
	tasks := taskpriority.Records()
	require.NoError(t, tok.FitOnTexts(taskpriority.Descriptions(tasks)))
	seq, err := cfg.SequenceOptions()
	require.NoError(t, err)

	X, err := Features(tok, seq, tasks)
	require.NoError(t, err)
	r, c := X.Dims()
	assert.Equal(t, 4, r)
	assert.Equal(t, 11, c)
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 1, 2, 14}, X.RawRowView(0))
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 0, 0, 7, 8, 11}, X.RawRowView(3))
}

func TestSameSeedSameDigest(t *testing.T) {
	a, _, _ := run(t, testConfig(42))
	b, _, _ := run(t, testConfig(42))
	assert.Equal(t, a.History.Loss, b.History.Loss)
	assert.Equal(t, a.Digest, b.Digest)
	assert.Equal(t, a.Loss, b.Loss)
	assert.NotEqual(t, a.RunID, b.RunID)
}

func TestArtifactsRoundTrip(t *testing.T) {
	res, store, _ := run(t, testConfig(3))

	data, err := store.Get(res.ModelKey)
	require.NoError(t, err)
	net, meta, err := feedforward.ReadCompressedModel(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, res.RunID, meta.RunID)
	assert.Equal(t, res.History.Loss, meta.History)

	data, err = store.Get(res.TokenizerKey)
	require.NoError(t, err)
	tok, err := tokenizer.ReadTokenizer(bytes.NewReader(data))
	require.NoError(t, err)

	cfg := testConfig(3)
	seq, err := cfg.SequenceOptions()
	require.NoError(t, err)
	X, err := Features(tok, seq, taskpriority.Records())
	require.NoError(t, err)

	want, err := res.Net.Predict(X)
	require.NoError(t, err)
	got, err := net.Predict(X)
	require.NoError(t, err)
	for i := 0; i < want.Len(); i++ {
		assert.Equal(t, want.AtVec(i), got.AtVec(i))
	}
}

func TestResume(t *testing.T) {
	cfg := testConfig(5)
	first, store, _ := run(t, cfg)

	cfg.Train.Resume = true
	var buf bytes.Buffer
	second, err := Run(cfg, store, log.New(&buf, "", 0))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "resumed from run "+first.RunID)
	assert.Less(t, second.History.Loss[0], first.History.Loss[0])
}

func TestSQLiteStore(t *testing.T) {
	store, err := storage.Open("sqlite:" + filepath.Join(t.TempDir(), "artifacts.db"))
	require.NoError(t, err)
	defer store.Close()

	_, err = Run(testConfig(2), store, log.New(new(bytes.Buffer), "", 0))
	require.NoError(t, err)
	assert.True(t, store.Has("task_priority_model.json.lzw"))
	assert.True(t, store.Has("tokenizer.json"))
}

func TestBadModelConfig(t *testing.T) {
	cfg := testConfig(1)
	cfg.Model.HiddenActivation = "softmax"
	store, err := storage.NewDiskBackend(t.TempDir())
	require.NoError(t, err)
	_, err = Run(cfg, store, log.New(new(bytes.Buffer), "", 0))
	assert.Error(t, err)
}
