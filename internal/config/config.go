package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/pflag"

	"github.com/mgignac/swifstat/internal/status"
)

// Config captures CLI options sourced from defaults, the config file,
// SWIFSTAT_* environment variables and flags, in increasing precedence.
type Config struct {
	Basename string `koanf:"basename"`
	Count    int    `koanf:"count" validate:"gte=0"`

	Workflows []string `koanf:"workflows"`
	Include   []string `koanf:"include"`
	Exclude   []string `koanf:"exclude"`
	Fields    []string `koanf:"fields"`

	SwifBin  string        `koanf:"swif_bin" validate:"required"`
	Timeout  time.Duration `koanf:"timeout" validate:"gt=0"`
	Parallel int           `koanf:"parallel" validate:"min=1,max=64"`
	FromDir  string        `koanf:"from_dir"`

	Format   string `koanf:"format" validate:"oneof=pretty json yaml prom"`
	Verbose  bool   `koanf:"verbose"`
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
}

const (
	// FileName is the config file looked up in the working directory.
	FileName = ".swifstat.yml"
	// EnvPrefix prefixes environment variable overrides.
	EnvPrefix = "SWIFSTAT_"

	// FormatPretty renders human readable tables.
	FormatPretty = "pretty"
	// FormatJSON renders machine readable output.
	FormatJSON = "json"
	// FormatYAML renders the JSON document as YAML.
	FormatYAML = "yaml"
	// FormatProm renders Prometheus text exposition.
	FormatProm = "prom"
)

// Default returns the baseline configuration used when nothing else specifies values.
func Default() Config {
	return Config{
		SwifBin:  "swif2",
		Timeout:  60 * time.Second,
		Parallel: 1,
		Format:   FormatPretty,
		LogLevel: "info",
	}
}

var validate = validator.New()

// Load builds the configuration. When path is empty, FileName in root is
// read if it exists; an explicit path must exist. Only flags that were
// changed on the command line override other sources.
func Load(root, path string, flags *pflag.FlagSet) (Config, error) {
	k := koanf.New(".")
	def := Default()

	if err := k.Load(confmap.Provider(map[string]interface{}{
		"swif_bin":  def.SwifBin,
		"timeout":   def.Timeout.String(),
		"parallel":  def.Parallel,
		"format":    def.Format,
		"log_level": def.LogLevel,
		"verbose":   false,
	}, "."), nil); err != nil {
		return Config{}, fmt.Errorf("load defaults: %w", err)
	}

	cfgPath, err := resolveFile(root, path)
	if err != nil {
		return Config{}, err
	}
	if cfgPath != "" {
		if err := k.Load(file.Provider(cfgPath), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("parse config %q: %w", cfgPath, err)
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("load environment: %w", err)
	}

	if flags != nil {
		if err := k.Load(posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
			if !f.Changed || f.Name == "config" {
				return "", nil
			}
			key := strings.ReplaceAll(f.Name, "-", "_")
			// --workflow and --field are repeatable; the file keys are plural.
			if key == "workflow" || key == "field" {
				key += "s"
			}
			if f.Value.Type() == "stringArray" {
				v, _ := flags.GetStringArray(f.Name)
				return key, v
			}
			return key, posflag.FlagVal(flags, f)
		}), nil); err != nil {
			return Config{}, fmt.Errorf("load flags: %w", err)
		}
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if cfg.FromDir != "" && !filepath.IsAbs(cfg.FromDir) {
		cfg.FromDir = filepath.Join(root, cfg.FromDir)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if _, err := status.ParseFields(c.Fields); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}

func resolveFile(root, path string) (string, error) {
	if path != "" {
		if !filepath.IsAbs(path) {
			path = filepath.Join(root, path)
		}
		if _, err := os.Stat(path); err != nil {
			return "", fmt.Errorf("read config %q: %w", path, err)
		}
		return path, nil
	}
	candidate := filepath.Join(root, FileName)
	if _, err := os.Stat(candidate); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("read config %q: %w", candidate, err)
	}
	return candidate, nil
}
