package main

import "fmt"
import "log"
import "os"

import "github.com/alexflint/go-arg"
import "github.com/neurlang/taskpriority/config"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/parallel"
import "github.com/neurlang/taskpriority/pipeline"
import "github.com/neurlang/taskpriority/storage"

var (
	name    = "train_priority"
	version = "1.0.0"
)

type args struct {
	Config  string `arg:"-c" help:"properties or yaml file with the training settings"`
	Store   string `help:"artifact store, a directory or sqlite:<file>"`
	Epochs  int    `help:"number of training epochs"`
	Seed    int64  `help:"prng seed, 0 picks a random one"`
	Resume  bool   `help:"continue training from the stored model"`
	Quiet   bool   `arg:"-q" help:"no progress bars"`
	Log     string `help:"append the training log to this file"`
	Summary bool   `help:"print the model summary after training"`
	Pgo     bool   `help:"write a cpu profile to default.pgo"`
}

func (args) Version() string {
	return version
}

func (args) Description() string {
	return fmt.Sprintf("%s\ntrains a task priority regressor on the built-in task records", name)
}

func main() {
	var args args
	arg.MustParse(&args)
	if err := run(args); err != nil {
		log.Fatal(err)
	}
}

// run trains and saves the model. The profile, when requested, is flushed
// on every return path.
func run(args args) error {
	if args.Pgo {
		stop, err := startProfile()
		if err != nil {
			return err
		}
		defer stop()
	}

	cfg, err := config.Load(args.Config)
	if err != nil {
		return err
	}
	if args.Store != "" {
		cfg.Store.URI = args.Store
	}
	if args.Epochs > 0 {
		cfg.Train.Epochs = args.Epochs
	}
	if args.Seed != 0 {
		cfg.Train.Seed = args.Seed
	}
	if args.Resume {
		cfg.Train.Resume = true
	}
	if args.Quiet {
		cfg.Train.Verbose = false
	}

	var h learning.HyperParameters
	if args.Log != "" {
		if err := h.SetLogger(args.Log); err != nil {
			return err
		}
	}
	logger := h.Logger()
	logger.Printf("cpu: %s", parallel.Describe())

	store, err := storage.Open(cfg.Store.URI)
	if err != nil {
		return err
	}
	defer store.Close()

	res, err := pipeline.Run(cfg, store, logger)
	if err != nil {
		return err
	}
	if args.Summary {
		if err := res.Net.Summary(os.Stdout); err != nil {
			return err
		}
	}
	fmt.Printf("run %s seed %d loss %.4f digest %x\n", res.RunID, res.Seed, res.Loss, res.Digest)
	return nil
}
