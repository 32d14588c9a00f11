package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/YashJagani/citypop/internal/series"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// Output formats understood by the CLI.
var Formats = []string{"markdown", "json", "yaml"}

// Global configuration structure.
type Global struct {
	City           string `mapstructure:"city" yaml:"city"`
	APIBaseURL     string `mapstructure:"api_base_url" yaml:"api_base_url"`
	MinYear        int    `mapstructure:"min_year" yaml:"min_year"`
	MaxYear        int    `mapstructure:"max_year" yaml:"max_year"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	OutputFormat   string `mapstructure:"output_format" yaml:"output_format"`
}

// SeriesOptions returns the normalizer bounds.
func (c *Global) SeriesOptions() series.Options {
	return series.Options{MinYear: c.MinYear, MaxYear: c.MaxYear}
}

// Validate checks values that would otherwise fail silently downstream.
func (c *Global) Validate() error {
	if c.MinYear > c.MaxYear {
		return fmt.Errorf("min_year %d is after max_year %d", c.MinYear, c.MaxYear)
	}
	if c.HTTPTimeoutSec < 0 {
		return fmt.Errorf("http_timeout_sec must not be negative: %d", c.HTTPTimeoutSec)
	}
	if !ValidFormat(c.OutputFormat) {
		return fmt.Errorf("unknown output_format %q (use %s)", c.OutputFormat, strings.Join(Formats, "|"))
	}
	return nil
}

// ValidFormat reports whether f names a supported output format.
func ValidFormat(f string) bool {
	for _, x := range Formats {
		if f == x {
			return true
		}
	}
	return false
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.citypop/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		dir, err := defaultDir()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	return load(cfgFile, true)
}

// LoadStored loads only the config file and defaults, ignoring CITYPOP_*
// environment values. It is the base for edits that are saved back to disk.
func LoadStored(cfgFile string) (*Global, error) {
	return load(cfgFile, false)
}

func load(cfgFile string, withEnv bool) (*Global, error) {
	v := viper.New()
	if withEnv {
		v.SetEnvPrefix("CITYPOP")
		v.AutomaticEnv()
	}

	def := series.DefaultOptions()
	v.SetDefault("city", "Kitchener-Cambridge-Waterloo")
	v.SetDefault("api_base_url", "https://countriesnow.space/api/v0.1")
	v.SetDefault("min_year", def.MinYear)
	v.SetDefault("max_year", def.MaxYear)
	v.SetDefault("http_timeout_sec", 30)
	v.SetDefault("output_format", "markdown")

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		dir, err := defaultDir()
		if err != nil {
			return nil, err
		}
		v.AddConfigPath(dir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// optional read
		_ = v.ReadInConfig()
	}

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	c.OutputFormat = strings.ToLower(strings.TrimSpace(c.OutputFormat))
	return &c, nil
}

func defaultDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home dir: %w", err)
	}
	return filepath.Join(home, ".citypop"), nil
}
