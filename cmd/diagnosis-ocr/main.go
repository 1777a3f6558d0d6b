package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexflint/go-arg"

	"github.com/ironsheep/diagnosis-ocr/internal/config"
	"github.com/ironsheep/diagnosis-ocr/internal/imaging"
	"github.com/ironsheep/diagnosis-ocr/internal/logging"
	"github.com/ironsheep/diagnosis-ocr/internal/ocr"
	"github.com/ironsheep/diagnosis-ocr/internal/pipeline"
	"github.com/ironsheep/diagnosis-ocr/internal/storage"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

type args struct {
	Image             string `arg:"positional,required" help:"image file to read"`
	Output            string `arg:"-o,--output" help:"CSV file to write (default: diagnosis.csv next to the executable)"`
	Config            string `arg:"-c,--config" help:"YAML configuration file"`
	Lang              string `arg:"-l,--lang" help:"Tesseract language code, e.g. eng or eng+deu"`
	OCRSource         string `arg:"--ocr-source" help:"image given to OCR: preprocessed or original"`
	SavePreprocessed  string `arg:"--save-preprocessed" help:"also write the binarized image to this PNG file"`
	NormalizePolarity bool   `arg:"--normalize-polarity" help:"invert light-on-dark images before thresholding"`
	Archive           bool   `arg:"--archive" help:"upload the CSV to the configured bucket"`
	LogLevel          string `arg:"--log-level" help:"debug, info, warn or error"`
}

func (args) Version() string {
	return fmt.Sprintf("diagnosis-ocr %s (built %s, commit %s, preprocess backend %s)",
		Version, BuildTime, GitCommit, imaging.Backend)
}

func (args) Description() string {
	return "diagnosis-ocr - read the text of an image into a one-column CSV file"
}

func (args) Epilogue() string {
	return "Environment variables:\n" +
		"  DIAGNOSIS_OCR_LOG_LEVEL=debug   Enable debug logging\n" +
		"  DIAGNOSIS_OCR_OUTPUT, DIAGNOSIS_OCR_LANG, DIAGNOSIS_OCR_OCR_SOURCE, ...\n" +
		"  MINIO_ENDPOINT, MINIO_ACCESS_KEY, MINIO_SECRET_KEY, MINIO_BUCKET   Archive target"
}

func main() {
	var a args
	arg.MustParse(&a)

	cfg, err := loadConfig(a, os.Getenv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	if !logging.SetLevel(cfg.LogLevel) {
		logging.Warnf("unknown log level %q, using info", cfg.LogLevel)
	}
	defer logging.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, a.Image, cfg); err != nil {
		logging.Errorf("%v", err)
		logging.Sync()
		stop()
		os.Exit(1)
	}
}

// loadConfig layers defaults, the optional config file, the environment and
// command line flags, in that order.
func loadConfig(a args, getenv func(string) string) (*config.Config, error) {
	cfg := config.Default()
	if a.Config != "" {
		var err error
		if cfg, err = config.Load(a.Config); err != nil {
			return nil, err
		}
	}

	if err := cfg.ApplyEnv(getenv); err != nil {
		return nil, err
	}

	if a.Output != "" {
		cfg.OutputPath = a.Output
	}
	if a.Lang != "" {
		cfg.Language = a.Lang
	}
	if a.OCRSource != "" {
		cfg.OCRSource = a.OCRSource
	}
	if a.SavePreprocessed != "" {
		cfg.SavePreprocessed = a.SavePreprocessed
	}
	if a.NormalizePolarity {
		cfg.Preprocess.NormalizePolarity = true
	}
	if a.Archive {
		cfg.Storage.Enabled = true
	}
	if a.LogLevel != "" {
		cfg.LogLevel = a.LogLevel
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func run(ctx context.Context, input string, cfg *config.Config) error {
	logging.Debugf("diagnosis-ocr %s (built %s, commit %s), log level %s",
		Version, BuildTime, GitCommit, logging.Level())

	outputPath, err := cfg.OutputFile()
	if err != nil {
		return err
	}

	level, err := ocr.ParseLevel(cfg.FragmentLevel)
	if err != nil {
		return err
	}

	rec, err := ocr.New(ocr.Options{
		Language:       cfg.Language,
		TessdataPrefix: cfg.TessdataPrefix,
		PageSegMode:    cfg.PageSegMode,
		Level:          level,
	})
	if err != nil {
		return fmt.Errorf("failed to start OCR engine: %w", err)
	}
	defer rec.Close()
	logging.Debugf("tesseract %s, language %s", rec.Version(), cfg.Language)

	opts := pipeline.Options{
		OutputPath:       outputPath,
		Source:           cfg.OCRSource,
		SavePreprocessed: cfg.SavePreprocessed,
		Preprocess:       preprocessOptions(cfg.Preprocess),
	}

	if cfg.Storage.Enabled {
		archiver, err := storage.New(ctx, cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to connect to storage: %w", err)
		}
		opts.Archiver = archiver
		logging.Debugf("archiving to bucket %s at %s", archiver.Bucket(), cfg.Storage.Endpoint)
	}

	p, err := pipeline.New(rec, opts)
	if err != nil {
		return err
	}

	res, err := p.Run(ctx, input)
	if err != nil {
		return err
	}
	logging.Debugf("run %s done in %s", res.RunID, res.Duration)
	return nil
}

func preprocessOptions(c config.PreprocessConfig) imaging.PreprocessOptions {
	opts := imaging.DefaultPreprocessOptions()
	opts.BlurKernel = c.BlurKernel
	opts.BlockSize = c.BlockSize
	opts.C = c.C
	opts.CloseKernel = c.CloseKernel
	opts.NormalizePolarity = c.NormalizePolarity
	return opts
}
