package main

import "fmt"
import "log"

import "github.com/alexflint/go-arg"
import "github.com/neurlang/taskpriority/config"
import "github.com/neurlang/taskpriority/datasets/taskpriority"
import "github.com/neurlang/taskpriority/inference"
import "github.com/neurlang/taskpriority/learning"
import "github.com/neurlang/taskpriority/storage"

type args struct {
	Config string `arg:"-c" help:"properties or yaml file naming the store and keys"`
	Store  string `help:"artifact store, a directory or sqlite:<file>"`
	Task   string `arg:"-d,--description" help:"task description to score"`
	Hour   int    `help:"hour of the task, 0 to 23"`
}

func (args) Description() string {
	return "infer_priority\npredicts task priorities with the stored model"
}

func main() {
	var args args
	arg.MustParse(&args)

	cfg, err := config.Load(args.Config)
	if err != nil {
		log.Fatal(err)
	}
	if args.Store != "" {
		cfg.Store.URI = args.Store
	}
	store, err := storage.Open(cfg.Store.URI)
	if err != nil {
		log.Fatal(err)
	}
	defer store.Close()

	p, err := inference.Load(store, cfg.Store.ModelKey, cfg.Store.TokenizerKey)
	if err != nil {
		log.Fatal(err)
	}
	meta := p.Metadata()
	log.Printf("model of run %s, %d epochs, final loss %.4f", meta.RunID, meta.Epochs, meta.FinalLoss())

	if args.Task != "" {
		y, err := p.Predict(args.Task, args.Hour)
		if err != nil {
			log.Fatal(err)
		}
		fmt.Printf("%.4f\n", y)
		return
	}

	tasks := taskpriority.Records()
	pred, err := p.PredictAll(tasks)
	if err != nil {
		log.Fatal(err)
	}
	loss, err := learning.LossByName(meta.Loss)
	if err != nil {
		loss, _ = learning.LossByName(learning.MeanSquaredError)
	}
	target := make([]float64, len(tasks))
	for i, task := range tasks {
		target[i] = float64(task.Priority)
		fmt.Printf("%-24s %2d  expected %d  predicted %.4f\n", task.Description, task.Hour, task.Priority, pred[i])
	}
	fmt.Printf("%s %.4f\n", loss.Name, loss.Mean(pred, target))
}
