package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/PaoloLupo/rcsection/internal/corpus"
	"github.com/PaoloLupo/rcsection/internal/fixture"
	"github.com/go-playground/validator/v10"
)

const (
	DefaultInputDir    = "examples"
	DefaultOutputDir   = "tests"
	DefaultExampleExt  = ".rcs"
	DefaultOutputName  = "test.typ"
	DefaultOnCollision = string(fixture.PolicyOverwrite)
)

// Config stores runtime options for one generation run.
type Config struct {
	In          string           `yaml:"in" validate:"required"`
	Out         string           `yaml:"out" validate:"required"`
	Ext         string           `yaml:"ext" validate:"required,startswith=."`
	Recursive   bool             `yaml:"recursive"`
	OutputName  string           `yaml:"output_name" validate:"required,excludesall=/\\"`
	OnCollision string           `yaml:"on_collision" validate:"oneof=overwrite fail"`
	Template    fixture.Template `yaml:"template"`

	ReportJSON string `yaml:"report_json"`
	ReportCSV  string `yaml:"report_csv"`

	Check   bool `yaml:"-"`
	Watch   bool `yaml:"-"`
	Verbose bool `yaml:"-"`
}

// Default returns baseline configuration values used by CLI flags.
func Default() Config {
	return Config{
		In:          DefaultInputDir,
		Out:         DefaultOutputDir,
		Ext:         DefaultExampleExt,
		OutputName:  DefaultOutputName,
		OnCollision: DefaultOnCollision,
		Template:    fixture.DefaultTemplate(),
	}
}

// Validate normalizes and checks the configuration before execution.
// A missing input directory is not a validation failure.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.In) == "" {
		c.In = DefaultInputDir
	}
	if strings.TrimSpace(c.Out) == "" {
		c.Out = DefaultOutputDir
	}
	if strings.TrimSpace(c.Ext) == "" {
		c.Ext = DefaultExampleExt
	}
	if strings.TrimSpace(c.OutputName) == "" {
		c.OutputName = DefaultOutputName
	}
	if strings.TrimSpace(c.OnCollision) == "" {
		c.OnCollision = DefaultOnCollision
	}
	if c.Check && c.Watch {
		return fmt.Errorf("--check and --watch cannot be combined")
	}

	c.In = filepath.Clean(c.In)
	c.Out = filepath.Clean(c.Out)

	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.In == c.Out {
		return fmt.Errorf("input and output directories must differ, both are %q", c.In)
	}
	return nil
}

// Pattern returns the discovery glob derived from Ext and Recursive.
func (c Config) Pattern() string {
	return corpus.PatternFor(c.Ext, c.Recursive)
}

// Policy returns the collision policy as a fixture.Policy.
func (c Config) Policy() fixture.Policy {
	return fixture.Policy(c.OnCollision)
}
