// Package config holds the run configuration and loads it from defaults, an
// optional YAML file and environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/diagnosis-ocr/internal/diagnosis"
	"github.com/ironsheep/diagnosis-ocr/internal/ocr"
)

// ErrInvalid is wrapped by every validation failure.
var ErrInvalid = errors.New("invalid configuration")

// OCR sources.
const (
	SourcePreprocessed = "preprocessed"
	SourceOriginal     = "original"
)

// EnvPrefix prefixes every environment variable read by ApplyEnv, apart from
// the MINIO_* storage variables.
const EnvPrefix = "DIAGNOSIS_OCR_"

// Config is the full run configuration.
type Config struct {
	OutputPath       string           `yaml:"output_path"`
	Language         string           `yaml:"language"`
	TessdataPrefix   string           `yaml:"tessdata_prefix"`
	PageSegMode      int              `yaml:"page_seg_mode"`
	FragmentLevel    string           `yaml:"fragment_level"`
	OCRSource        string           `yaml:"ocr_source"`
	SavePreprocessed string           `yaml:"save_preprocessed"`
	LogLevel         string           `yaml:"log_level"`
	Preprocess       PreprocessConfig `yaml:"preprocess"`
	Storage          StorageConfig    `yaml:"storage"`
}

// PreprocessConfig holds the filter chain constants.
type PreprocessConfig struct {
	BlurKernel        int     `yaml:"blur_kernel"`
	BlockSize         int     `yaml:"block_size"`
	C                 float64 `yaml:"c"`
	CloseKernel       int     `yaml:"close_kernel"`
	NormalizePolarity bool    `yaml:"normalize_polarity"`
}

// StorageConfig configures the optional S3-compatible archive of the CSV.
type StorageConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	Region    string `yaml:"region"`
	Prefix    string `yaml:"prefix"`
	UseSSL    bool   `yaml:"use_ssl"`
}

// Default returns the configuration used when nothing else is given. The
// output path is left empty and resolved by OutputFile.
func Default() *Config {
	return &Config{
		Language:      "eng",
		PageSegMode:   3,
		FragmentLevel: "line",
		OCRSource:     SourcePreprocessed,
		LogLevel:      "info",
		Preprocess: PreprocessConfig{
			BlurKernel:  5,
			BlockSize:   11,
			C:           2,
			CloseKernel: 2,
		},
		Storage: StorageConfig{
			Endpoint: "localhost:9000",
			Bucket:   "diagnoses",
			Region:   "us-east-1",
			Prefix:   "diagnoses",
		},
	}
}

// Load returns the defaults overlaid with the YAML file at path. Keys missing
// from the file keep their default values.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return cfg, nil
}

// ApplyEnv overrides fields from environment variables looked up with getenv.
// Empty values are ignored.
func (c *Config) ApplyEnv(getenv func(string) string) error {
	if v := getenv(EnvPrefix + "OUTPUT"); v != "" {
		c.OutputPath = v
	}
	if v := getenv(EnvPrefix + "LANG"); v != "" {
		c.Language = v
	}
	if v := getenv("TESSDATA_PREFIX"); v != "" {
		c.TessdataPrefix = v
	}
	if v := getenv(EnvPrefix + "TESSDATA_PREFIX"); v != "" {
		c.TessdataPrefix = v
	}
	if v := getenv(EnvPrefix + "PSM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %sPSM: %v", ErrInvalid, EnvPrefix, err)
		}
		c.PageSegMode = n
	}
	if v := getenv(EnvPrefix + "FRAGMENT_LEVEL"); v != "" {
		c.FragmentLevel = v
	}
	if v := getenv(EnvPrefix + "OCR_SOURCE"); v != "" {
		c.OCRSource = v
	}
	if v := getenv(EnvPrefix + "SAVE_PREPROCESSED"); v != "" {
		c.SavePreprocessed = v
	}
	if v := getenv(EnvPrefix + "LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := getenv(EnvPrefix + "NORMALIZE_POLARITY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sNORMALIZE_POLARITY: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Preprocess.NormalizePolarity = b
	}

	if v := getenv(EnvPrefix + "ARCHIVE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %sARCHIVE: %v", ErrInvalid, EnvPrefix, err)
		}
		c.Storage.Enabled = b
	}
	if v := getenv("MINIO_ENDPOINT"); v != "" {
		c.Storage.Endpoint = v
	}
	if v := getenv("MINIO_ACCESS_KEY"); v != "" {
		c.Storage.AccessKey = v
	}
	if v := getenv("MINIO_SECRET_KEY"); v != "" {
		c.Storage.SecretKey = v
	}
	if v := getenv("MINIO_BUCKET"); v != "" {
		c.Storage.Bucket = v
	}
	if v := getenv("MINIO_REGION"); v != "" {
		c.Storage.Region = v
	}
	if v := getenv("MINIO_USE_SSL"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: MINIO_USE_SSL: %v", ErrInvalid, err)
		}
		c.Storage.UseSSL = b
	}

	return nil
}

// Validate reports the first invalid field, wrapped in ErrInvalid.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Language) == "" {
		return fmt.Errorf("%w: language must not be empty", ErrInvalid)
	}
	// Mode 0 only detects orientation and yields no text.
	if c.PageSegMode < 1 || c.PageSegMode > 13 {
		return fmt.Errorf("%w: page_seg_mode %d out of range 1-13", ErrInvalid, c.PageSegMode)
	}
	if _, err := ocr.ParseLevel(c.FragmentLevel); err != nil {
		return fmt.Errorf("%w: fragment_level: %v", ErrInvalid, err)
	}
	switch c.OCRSource {
	case SourcePreprocessed, SourceOriginal:
	default:
		return fmt.Errorf("%w: ocr_source must be %q or %q, got %q",
			ErrInvalid, SourcePreprocessed, SourceOriginal, c.OCRSource)
	}
	if c.Storage.Enabled {
		if c.Storage.Endpoint == "" {
			return fmt.Errorf("%w: storage.endpoint is required when storage is enabled", ErrInvalid)
		}
		if c.Storage.Bucket == "" {
			return fmt.Errorf("%w: storage.bucket is required when storage is enabled", ErrInvalid)
		}
	}
	return nil
}

// OutputFile returns the configured output path, or diagnosis.csv in the
// directory of the running executable when none is set.
func (c *Config) OutputFile() (string, error) {
	if c.OutputPath != "" {
		return c.OutputPath, nil
	}
	return DefaultOutputPath()
}

// DefaultOutputPath returns diagnosis.csv in the directory holding the
// running executable, with symlinks resolved.
func DefaultOutputPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("failed to locate executable: %w", err)
	}
	exe, err = filepath.EvalSymlinks(exe)
	if err != nil {
		return "", fmt.Errorf("failed to resolve executable path: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), diagnosis.FileName), nil
}
