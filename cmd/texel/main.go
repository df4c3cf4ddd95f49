package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/ChizhovVadim/CounterTexel/internal/checkpoint"
	"github.com/ChizhovVadim/CounterTexel/internal/dataset"
	"github.com/ChizhovVadim/CounterTexel/internal/report"
	"github.com/ChizhovVadim/CounterTexel/internal/tuner"
	"github.com/ChizhovVadim/CounterTexel/pkg/eval"
)

type Config struct {
	trainingPath    string
	threads         int
	datasetMaxSize  int
	sigmoidScale    float64
	scaleStep       float64
	scaleIterations int
	epochs          int
	checkpointPath  string
	resume          bool
	initPath        string
	outPath         string
	svgPath         string
	goSource        bool
}

var config Config

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	flag.StringVar(&config.trainingPath, "td", "", "Path to training dataset")
	flag.IntVar(&config.threads, "threads", runtime.NumCPU(), "Number of threads")
	flag.IntVar(&config.datasetMaxSize, "dms", 0, "Max size of dataset (0 for all)")
	flag.Float64Var(&config.sigmoidScale, "k", 0.4, "Initial sigmoid scale")
	flag.Float64Var(&config.scaleStep, "kstep", 0.001, "Sigmoid scale search step")
	flag.IntVar(&config.scaleIterations, "kiters", 10000, "Max sigmoid scale search steps")
	flag.IntVar(&config.epochs, "epochs", 0, "Max number of epochs (0 until no improvement)")
	flag.StringVar(&config.checkpointPath, "checkpoint", "", "Checkpoint database folder")
	flag.BoolVar(&config.resume, "resume", false, "Resume from the checkpoint")
	flag.StringVar(&config.initPath, "init", "", "Starting weights written with -go")
	flag.StringVar(&config.outPath, "out", "", "Output file for the weight table (stdout if empty)")
	flag.StringVar(&config.svgPath, "svg", "", "Output file for the piece-square heat map")
	flag.BoolVar(&config.goSource, "go", false, "Write weights as Go source")
	flag.Parse()

	log.Printf("%+v", config)

	var err = run(context.Background())
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
}

func validate(config Config) error {
	if config.trainingPath == "" {
		return errors.New("-td is required")
	}
	if config.resume && config.checkpointPath == "" {
		return errors.New("-resume requires -checkpoint")
	}
	return nil
}

func run(ctx context.Context) error {
	var err = validate(config)
	if err != nil {
		return err
	}

	var tunerConfig = tuner.Config{
		Threads:          config.threads,
		K:                config.sigmoidScale,
		KStep:            config.scaleStep,
		CalibrationIters: config.scaleIterations,
		MaxEpochs:        config.epochs,
		Resume:           config.resume,
	}

	if config.initPath != "" {
		data, err := os.ReadFile(config.initPath)
		if err != nil {
			return err
		}
		tunerConfig.Weights, err = report.ParseGo(string(data))
		if err != nil {
			return err
		}
	}

	var store tuner.ICheckpointStore
	if config.checkpointPath != "" {
		s, err := checkpoint.Open(config.checkpointPath)
		if err != nil {
			return err
		}
		defer s.Close()
		store = s
	}

	result, err := tuner.Run(ctx,
		&dataset.ZurichessDatasetProvider{
			FilePath:    config.trainingPath,
			MaxPosCount: config.datasetMaxSize,
		},
		store,
		tunerConfig)
	if err != nil {
		return err
	}
	log.Println("Tuned", "epochs", result.Epochs, "k", result.K, "error", result.Error)

	err = writeWeights(result.Weights)
	if err != nil {
		return err
	}

	if config.svgPath != "" {
		err = writeFile(config.svgPath, func(f *os.File) error {
			return report.WriteHeatMap(f, result.Weights)
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func writeWeights(weights eval.Weights) error {
	var write = func(f *os.File) error {
		if config.goSource {
			return report.WriteGo(f, weights)
		}
		return report.WriteTable(f, weights)
	}
	if config.outPath == "" {
		return write(os.Stdout)
	}
	return writeFile(config.outPath, write)
}

func writeFile(path string, write func(f *os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	err = write(f)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	return err
}
