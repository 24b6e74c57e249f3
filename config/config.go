// Package config loads docstruct settings from defaults, a YAML file, a
// .env file and DOCSTRUCT_* environment variables, in that order.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/docstruct/docstruct/classify"
	"github.com/docstruct/docstruct/extraction"
	"github.com/docstruct/docstruct/hierarchy"
)

// EnvPrefix prefixes every environment override
const EnvPrefix = "DOCSTRUCT_"

// Config holds all docstruct settings
type Config struct {
	Render     RenderConfig     `yaml:"render"`
	Pipeline   PipelineConfig   `yaml:"pipeline"`
	Extraction ExtractionConfig `yaml:"extraction"`
	OCR        OCRConfig        `yaml:"ocr"`
	Classify   ClassifyConfig   `yaml:"classify"`
	Hierarchy  HierarchyConfig  `yaml:"hierarchy"`
	Log        LogConfig        `yaml:"log"`
}

// RenderConfig controls image space and rasterization
type RenderConfig struct {
	Scale float64 `yaml:"scale"`
	DPI   float64 `yaml:"dpi"`
}

// PipelineConfig controls page parallelism
type PipelineConfig struct {
	Workers int `yaml:"workers"`
}

// ExtractionConfig controls the fallback orchestrator
type ExtractionConfig struct {
	StrategyTimeout time.Duration `yaml:"strategy_timeout"`
	Variants        []string      `yaml:"variants"`
	Password        string        `yaml:"password"`
}

// OCRConfig controls Tesseract
type OCRConfig struct {
	Language string `yaml:"language"`
}

// ClassifyConfig holds the page band ratios
type ClassifyConfig struct {
	HeaderRatio float64 `yaml:"header_ratio"`
	FooterRatio float64 `yaml:"footer_ratio"`
}

// HierarchyConfig controls spatial correction
type HierarchyConfig struct {
	ContainmentMargin float64 `yaml:"containment_margin"`
}

// LogConfig holds logging settings
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// DefaultConfig returns the built-in settings
func DefaultConfig() *Config {
	return &Config{
		Render:   RenderConfig{Scale: 2.0, DPI: 300},
		Pipeline: PipelineConfig{Workers: 4},
		Extraction: ExtractionConfig{
			StrategyTimeout: extraction.DefaultConfig().StrategyTimeout,
			Variants:        []string{"normalize", "repair", "decrypt"},
		},
		OCR: OCRConfig{Language: "jpn+eng"},
		Classify: ClassifyConfig{
			HeaderRatio: classify.DefaultConfig().HeaderRatio,
			FooterRatio: classify.DefaultConfig().FooterRatio,
		},
		Hierarchy: HierarchyConfig{ContainmentMargin: hierarchy.DefaultConfig().ContainmentMargin},
		Log:       LogConfig{Level: "info", Format: "console"},
	}
}

// Load reads configuration from a YAML file and applies .env and
// environment overrides. An empty path skips the file. A .env file is read
// from the config file's directory, or the working directory when path is
// empty, and is optional.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	envFile := ".env"
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
		envFile = filepath.Join(filepath.Dir(path), ".env")
	}

	// godotenv.Load never overrides variables already set
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks the configuration for errors
func (c *Config) Validate() error {
	if c.Render.Scale <= 0 {
		return fmt.Errorf("render.scale must be positive, got %v", c.Render.Scale)
	}
	if c.Render.DPI < 36 || c.Render.DPI > 1200 {
		return fmt.Errorf("render.dpi must be between 36 and 1200, got %v", c.Render.DPI)
	}
	if c.Pipeline.Workers < 1 {
		return fmt.Errorf("pipeline.workers must be at least 1, got %d", c.Pipeline.Workers)
	}
	if c.Extraction.StrategyTimeout <= 0 {
		return fmt.Errorf("extraction.strategy_timeout must be positive")
	}
	if err := validRatio("classify.header_ratio", c.Classify.HeaderRatio); err != nil {
		return err
	}
	if err := validRatio("classify.footer_ratio", c.Classify.FooterRatio); err != nil {
		return err
	}
	if c.Hierarchy.ContainmentMargin < 0 {
		return fmt.Errorf("hierarchy.containment_margin must not be negative")
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format: %s", c.Log.Format)
	}
	return nil
}

func validRatio(key string, v float64) error {
	if v <= 0 || v >= 0.5 {
		return fmt.Errorf("%s must be in (0, 0.5), got %v", key, v)
	}
	return nil
}

// ClassifierConfig returns classifier settings with the configured bands
func (c *Config) ClassifierConfig() classify.Config {
	cc := classify.DefaultConfig()
	cc.HeaderRatio = c.Classify.HeaderRatio
	cc.FooterRatio = c.Classify.FooterRatio
	return cc
}

// HierarchyConfig returns hierarchy builder settings
func (c *Config) HierarchyConfig() hierarchy.Config {
	return hierarchy.Config{
		Scale:             c.Render.Scale,
		ContainmentMargin: c.Hierarchy.ContainmentMargin,
	}
}

// OrchestratorConfig returns fallback orchestrator settings
func (c *Config) OrchestratorConfig() extraction.Config {
	return extraction.Config{StrategyTimeout: c.Extraction.StrategyTimeout}
}

func applyEnvOverrides(cfg *Config) error {
	floats := map[string]*float64{
		"RENDER_SCALE":       &cfg.Render.Scale,
		"RENDER_DPI":         &cfg.Render.DPI,
		"HEADER_RATIO":       &cfg.Classify.HeaderRatio,
		"FOOTER_RATIO":       &cfg.Classify.FooterRatio,
		"CONTAINMENT_MARGIN": &cfg.Hierarchy.ContainmentMargin,
	}
	for key, dst := range floats {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			f, err := strconv.ParseFloat(v, 64)
			if err != nil {
				return fmt.Errorf("%s%s: %w", EnvPrefix, key, err)
			}
			*dst = f
		}
	}

	if v := os.Getenv(EnvPrefix + "WORKERS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sWORKERS: %w", EnvPrefix, err)
		}
		cfg.Pipeline.Workers = n
	}

	if v := os.Getenv(EnvPrefix + "STRATEGY_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sSTRATEGY_TIMEOUT: %w", EnvPrefix, err)
		}
		cfg.Extraction.StrategyTimeout = d
	}

	if v := os.Getenv(EnvPrefix + "VARIANTS"); v != "" {
		var variants []string
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				variants = append(variants, part)
			}
		}
		cfg.Extraction.Variants = variants
	}

	strs := map[string]*string{
		"PDF_PASSWORD": &cfg.Extraction.Password,
		"OCR_LANGUAGE": &cfg.OCR.Language,
		"LOG_LEVEL":    &cfg.Log.Level,
		"LOG_FORMAT":   &cfg.Log.Format,
	}
	for key, dst := range strs {
		if v := os.Getenv(EnvPrefix + key); v != "" {
			*dst = v
		}
	}
	return nil
}
