// Package pipeline runs one image through load, preprocess, recognize,
// collect and persist, and optionally archives the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/ironsheep/diagnosis-ocr/internal/config"
	"github.com/ironsheep/diagnosis-ocr/internal/diagnosis"
	"github.com/ironsheep/diagnosis-ocr/internal/imaging"
	"github.com/ironsheep/diagnosis-ocr/internal/logging"
)

// Recognizer extracts text from an image file or an in-memory image.
type Recognizer interface {
	RecognizeFile(path string) (string, error)
	RecognizeImage(img image.Image) (string, error)
}

// Archiver stores a written CSV file and returns the key it was stored under.
type Archiver interface {
	Upload(ctx context.Context, runID, path string) (string, error)
}

// Options configures a Pipeline.
type Options struct {
	// OutputPath is the CSV file to write. Required.
	OutputPath string

	// Source is config.SourcePreprocessed (default) to recognize the
	// binarized buffer, or config.SourceOriginal to recognize the input file
	// as it is on disk.
	Source string

	// SavePreprocessed, when set, receives a PNG copy of the binary buffer.
	SavePreprocessed string

	// Preprocess holds the filter constants. The zero value selects
	// imaging.DefaultPreprocessOptions.
	Preprocess imaging.PreprocessOptions

	// Archiver, when set, uploads the CSV after it is written.
	Archiver Archiver

	// Stdout receives the confirmation line. Defaults to os.Stdout.
	Stdout io.Writer
}

// Result describes a completed run.
type Result struct {
	RunID      string
	InputPath  string
	OutputPath string
	Text       string
	ObjectKey  string
	Duration   time.Duration
}

// Pipeline processes images one at a time. It holds no per-run state, but the
// Recognizer it wraps usually is not safe for concurrent use.
type Pipeline struct {
	pre  *imaging.Preprocessor
	rec  Recognizer
	opts Options
}

// New returns a Pipeline recognizing text with rec.
func New(rec Recognizer, opts Options) (*Pipeline, error) {
	if rec == nil {
		return nil, errors.New("recognizer is required")
	}
	if opts.OutputPath == "" {
		return nil, errors.New("output path is required")
	}
	switch opts.Source {
	case "":
		opts.Source = config.SourcePreprocessed
	case config.SourcePreprocessed, config.SourceOriginal:
	default:
		return nil, fmt.Errorf("unknown OCR source %q", opts.Source)
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}

	if opts.Preprocess == (imaging.PreprocessOptions{}) {
		opts.Preprocess = imaging.DefaultPreprocessOptions()
	}

	pre, err := imaging.NewPreprocessor(opts.Preprocess)
	if err != nil {
		return nil, err
	}

	return &Pipeline{pre: pre, rec: rec, opts: opts}, nil
}

// Run processes the image at input and writes its text to the output CSV.
//
// The steps run in order and the first failure aborts the run. Nothing is
// written before recognition succeeds, so a missing or unreadable input
// leaves any existing output file untouched. Cancellation of ctx is checked
// between steps.
func (p *Pipeline) Run(ctx context.Context, input string) (*Result, error) {
	start := time.Now()
	res := &Result{
		RunID:     uuid.NewString(),
		InputPath: input,
	}
	log := logging.With("run_id", res.RunID)

	if info, err := imaging.LoadInfo(input); err == nil {
		log.Debugf("input %s: %dx%d %s, %d bytes", input, info.Width, info.Height, info.Format, info.FileSizeBytes)
	}

	img, err := imaging.Load(input)
	if err != nil {
		return nil, fmt.Errorf("load image: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	bin, err := p.pre.Process(img)
	if err != nil {
		return nil, fmt.Errorf("preprocess: %w", err)
	}
	po := p.pre.Options()
	log.Debugf("preprocessed with %s backend (blur %d, block %d, C %g, close %d)",
		imaging.Backend, po.BlurKernel, po.BlockSize, po.C, po.CloseKernel)

	if p.opts.SavePreprocessed != "" {
		if err := imaging.SavePNG(bin, p.opts.SavePreprocessed); err != nil {
			return nil, fmt.Errorf("save preprocessed image: %w", err)
		}
		log.Debugf("saved preprocessed image to %s", p.opts.SavePreprocessed)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.Text, err = p.recognize(input, bin)
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}
	log.Debugf("recognized %d characters from %s source", len(res.Text), p.opts.Source)
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	res.OutputPath, err = diagnosis.Save(p.opts.OutputPath, diagnosis.Collect(res.Text))
	if err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	fmt.Fprintf(p.opts.Stdout, "Data successfully written to %s\n", res.OutputPath)

	if p.opts.Archiver != nil {
		res.ObjectKey, err = p.opts.Archiver.Upload(ctx, res.RunID, res.OutputPath)
		if err != nil {
			return nil, fmt.Errorf("archive csv: %w", err)
		}
		log.Infof("archived %s as %s", res.OutputPath, res.ObjectKey)
	}

	res.Duration = time.Since(start)
	log.Debugf("run finished in %s", res.Duration)
	return res, nil
}

func (p *Pipeline) recognize(input string, bin *image.Gray) (string, error) {
	if p.opts.Source == config.SourceOriginal {
		return p.rec.RecognizeFile(input)
	}
	return p.rec.RecognizeImage(imaging.ForOCR(bin))
}
