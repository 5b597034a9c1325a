package config

import "os"
import "path/filepath"
import "strconv"
import "strings"

import "github.com/joho/godotenv"
import "github.com/magiconair/properties"
import "github.com/pkg/errors"
import "gopkg.in/yaml.v3"

// EnvPrefix prefixes the environment variable of every key, so
// train.epochs is read from TASKPRIO_TRAIN_EPOCHS.
const EnvPrefix = "TASKPRIO_"

// Candidates are tried in order when Load is given no path.
var Candidates = []string{"taskpriority.properties", "configs/taskpriority.properties", "taskpriority.yaml"}

type Config struct {
	Train     TrainConfig     `yaml:"train"`
	Optimizer OptimizerConfig `yaml:"optimizer"`
	Loss      string          `yaml:"loss"`
	Tokenizer TokenizerConfig `yaml:"tokenizer"`
	Sequence  SequenceConfig  `yaml:"sequence"`
	Model     ModelConfig     `yaml:"model"`
	Store     StoreConfig     `yaml:"store"`
}

type TrainConfig struct {
	Epochs    int   `yaml:"epochs"`
	BatchSize int   `yaml:"batch_size"`
	Shuffle   bool  `yaml:"shuffle"`
	Seed      int64 `yaml:"seed"` // 0 picks a random seed
	Threads   int   `yaml:"threads"`
	Verbose   bool  `yaml:"verbose"`
	Resume    bool  `yaml:"resume"` // continue from the stored model
}

type OptimizerConfig struct {
	Name         string  `yaml:"name"`
	LearningRate float64 `yaml:"learning_rate"`
}

type TokenizerConfig struct {
	NumWords   int    `yaml:"num_words"`
	OOVToken   string `yaml:"oov_token"`
	OOVBuckets int    `yaml:"oov_buckets"`
	Analyzer   string `yaml:"analyzer"`
	Lower      bool   `yaml:"lower"`
	Stopwords  bool   `yaml:"stopwords"`
	Stem       bool   `yaml:"stem"`
}

type SequenceConfig struct {
	MaxLen     int    `yaml:"maxlen"` // zero pads to the longest description
	Padding    string `yaml:"padding"`
	Truncating string `yaml:"truncating"`
}

type ModelConfig struct {
	EmbeddingDim     int    `yaml:"embedding_dim"`
	InputDim         int    `yaml:"input_dim"` // embedding vocabulary size
	HiddenUnits      int    `yaml:"hidden_units"`
	HiddenActivation string `yaml:"hidden_activation"`
	OutputActivation string `yaml:"output_activation"`
}

type StoreConfig struct {
	URI          string `yaml:"uri"`
	ModelKey     string `yaml:"model_key"`
	TokenizerKey string `yaml:"tokenizer_key"`
}

// Default returns the settings of the reference training run.
func Default() *Config {
	return &Config{
		Train: TrainConfig{
			Epochs:    10,
			BatchSize: 32,
			Shuffle:   true,
			Threads:   0,
			Verbose:   true,
		},
		Optimizer: OptimizerConfig{
			Name:         "adam",
			LearningRate: 0.001,
		},
		Loss: "mean_squared_error",
		Tokenizer: TokenizerConfig{
			NumWords: 1000,
			Analyzer: "split",
			Lower:    true,
		},
		Sequence: SequenceConfig{
			MaxLen:     10,
			Padding:    "pre",
			Truncating: "pre",
		},
		Model: ModelConfig{
			EmbeddingDim:     8,
			InputDim:         1000,
			HiddenUnits:      10,
			HiddenActivation: "relu",
			OutputActivation: "linear",
		},
		Store: StoreConfig{
			URI:          "models",
			ModelKey:     "task_priority_model.json.lzw",
			TokenizerKey: "tokenizer.json",
		},
	}
}

// Load returns the defaults overridden by the file at configPath (or the
// first existing Candidate when configPath is empty), then by .env and the
// environment.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	if configPath == "" {
		for _, p := range Candidates {
			if _, err := os.Stat(p); err == nil {
				configPath = p
				break
			}
		}
	}
	if configPath != "" {
		if err := cfg.loadFile(configPath); err != nil {
			return cfg, err
		}
	}

	// a missing .env is fine
	_ = godotenv.Load()

	if err := cfg.loadEnv(); err != nil {
		return cfg, err
	}
	applyDefaults(cfg)
	return cfg, nil
}

func (c *Config) loadFile(path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "config")
		}
		return errors.Wrapf(yaml.Unmarshal(data, c), "config: %s", path)
	}
	p, err := properties.LoadFile(path, properties.UTF8)
	if err != nil {
		return errors.Wrap(err, "config")
	}
	for _, f := range c.fields() {
		if v, ok := p.Get(f.key); ok {
			if err := f.set(v); err != nil {
				return errors.Wrapf(err, "config: %s", path)
			}
		}
	}
	return nil
}

func (c *Config) loadEnv() error {
	for _, f := range c.fields() {
		if v, ok := os.LookupEnv(EnvName(f.key)); ok {
			if err := f.set(v); err != nil {
				return errors.Wrapf(err, "config: %s", EnvName(f.key))
			}
		}
	}
	return nil
}

// EnvName returns the environment variable overriding key.
func EnvName(key string) string {
	return EnvPrefix + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
}

type field struct {
	key string
	ptr interface{}
}

func (c *Config) fields() []field {
	return []field{
		{"train.epochs", &c.Train.Epochs},
		{"train.batch_size", &c.Train.BatchSize},
		{"train.shuffle", &c.Train.Shuffle},
		{"train.seed", &c.Train.Seed},
		{"train.threads", &c.Train.Threads},
		{"train.verbose", &c.Train.Verbose},
		{"train.resume", &c.Train.Resume},
		{"optimizer.name", &c.Optimizer.Name},
		{"optimizer.learning_rate", &c.Optimizer.LearningRate},
		{"loss", &c.Loss},
		{"tokenizer.num_words", &c.Tokenizer.NumWords},
		{"tokenizer.oov_token", &c.Tokenizer.OOVToken},
		{"tokenizer.oov_buckets", &c.Tokenizer.OOVBuckets},
		{"tokenizer.analyzer", &c.Tokenizer.Analyzer},
		{"tokenizer.lower", &c.Tokenizer.Lower},
		{"tokenizer.stopwords", &c.Tokenizer.Stopwords},
		{"tokenizer.stem", &c.Tokenizer.Stem},
		{"sequence.maxlen", &c.Sequence.MaxLen},
		{"sequence.padding", &c.Sequence.Padding},
		{"sequence.truncating", &c.Sequence.Truncating},
		{"model.embedding_dim", &c.Model.EmbeddingDim},
		{"model.input_dim", &c.Model.InputDim},
		{"model.hidden_units", &c.Model.HiddenUnits},
		{"model.hidden_activation", &c.Model.HiddenActivation},
		{"model.output_activation", &c.Model.OutputActivation},
		{"store.uri", &c.Store.URI},
		{"store.model_key", &c.Store.ModelKey},
		{"store.tokenizer_key", &c.Store.TokenizerKey},
	}
}

func (f field) set(s string) (err error) {
	s = strings.TrimSpace(s)
	switch p := f.ptr.(type) {
	case *string:
		*p = s
	case *int:
		*p, err = strconv.Atoi(s)
	case *int64:
		*p, err = strconv.ParseInt(s, 10, 64)
	case *float64:
		*p, err = strconv.ParseFloat(s, 64)
	case *bool:
		*p, err = strconv.ParseBool(s)
	}
	return errors.Wrapf(err, "%s", f.key)
}

func applyDefaults(cfg *Config) {
	def := Default()
	if cfg.Train.Epochs <= 0 {
		cfg.Train.Epochs = def.Train.Epochs
	}
	if cfg.Train.BatchSize <= 0 {
		cfg.Train.BatchSize = def.Train.BatchSize
	}
	if cfg.Train.Threads < 0 {
		cfg.Train.Threads = 0
	}
	if cfg.Optimizer.Name == "" {
		cfg.Optimizer.Name = def.Optimizer.Name
	}
	if cfg.Optimizer.LearningRate <= 0 {
		cfg.Optimizer.LearningRate = def.Optimizer.LearningRate
	}
	if cfg.Loss == "" {
		cfg.Loss = def.Loss
	}
	if cfg.Tokenizer.NumWords < 0 {
		cfg.Tokenizer.NumWords = 0
	}
	if cfg.Tokenizer.Analyzer == "" {
		cfg.Tokenizer.Analyzer = def.Tokenizer.Analyzer
	}
	if cfg.Sequence.MaxLen < 0 {
		cfg.Sequence.MaxLen = def.Sequence.MaxLen
	}
	if cfg.Model.EmbeddingDim <= 0 {
		cfg.Model.EmbeddingDim = def.Model.EmbeddingDim
	}
	if cfg.Model.InputDim <= 0 {
		cfg.Model.InputDim = def.Model.InputDim
	}
	if cfg.Model.HiddenUnits <= 0 {
		cfg.Model.HiddenUnits = def.Model.HiddenUnits
	}
	if cfg.Store.URI == "" {
		cfg.Store.URI = def.Store.URI
	}
	if cfg.Store.ModelKey == "" {
		cfg.Store.ModelKey = def.Store.ModelKey
	}
	if cfg.Store.TokenizerKey == "" {
		cfg.Store.TokenizerKey = def.Store.TokenizerKey
	}
}
