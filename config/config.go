// Package config holds the run configuration of timbretag: a YAML document
// layered with TIMBRETAG_* environment overrides, validated before use and
// translated into augment engine options.
package config

import (
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/timbretag/augment"
	"github.com/katalvlaran/timbretag/format"
	"github.com/katalvlaran/timbretag/interp"
	"github.com/katalvlaran/timbretag/noise"
	"github.com/katalvlaran/timbretag/outlier"
	"github.com/katalvlaran/timbretag/patch"
)

// EnvPrefix prefixes every environment override, e.g. TIMBRETAG_SCALE_FACTOR.
const EnvPrefix = "TIMBRETAG"

// Config is the complete run configuration.
type Config struct {
	Mode          string  `yaml:"mode" mapstructure:"mode" validate:"required"`
	ScaleFactor   int     `yaml:"scale_factor" mapstructure:"scale_factor" validate:"min=1"`
	Seed          int64   `yaml:"seed" mapstructure:"seed"`
	LibraryDir    string  `yaml:"library_dir" mapstructure:"library_dir" validate:"required"`
	OutputDB      string  `yaml:"output_db" mapstructure:"output_db" validate:"required"`
	TrainFraction float64 `yaml:"train_fraction" mapstructure:"train_fraction" validate:"gt=0,lt=1"`

	NoiseAmplitude float64 `yaml:"noise_amplitude" mapstructure:"noise_amplitude" validate:"gte=0"`

	// Channel names to interpolate; empty selects every channel.
	SpectralChannels []string `yaml:"spectral_channels" mapstructure:"spectral_channels" validate:"dive,required"`
	TemporalChannels []string `yaml:"temporal_channels" mapstructure:"temporal_channels" validate:"dive,required"`

	// Per-category rule overrides keyed by category name. A listed category
	// gets exactly these rules; an empty list leaves it ungoverned.
	ThresholdOverrides map[string][]RuleConfig `yaml:"thresholds,omitempty" mapstructure:"thresholds" validate:"dive,dive"`

	Logging LoggingConfig `yaml:"logging" mapstructure:"logging"`
}

// RuleConfig is one outlier rule in configuration form.
type RuleConfig struct {
	Channel   string  `yaml:"channel" mapstructure:"channel" validate:"required"`
	Direction string  `yaml:"direction" mapstructure:"direction" validate:"required"`
	Threshold float64 `yaml:"threshold" mapstructure:"threshold" validate:"gte=0,lte=1"`
}

// LoggingConfig selects the zap logger built by the CLI.
type LoggingConfig struct {
	Level  string `yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `yaml:"format" mapstructure:"format" validate:"oneof=json console"`
}

var validate = validator.New()

// DefaultConfig returns the configuration used when nothing is overridden.
func DefaultConfig() *Config {
	return &Config{
		Mode:             augment.DefaultMode.String(),
		ScaleFactor:      augment.DefaultScaleFactor,
		Seed:             augment.DefaultSeed,
		LibraryDir:       "library",
		OutputDB:         "timbretag.db",
		TrainFraction:    format.DefaultTrainFraction,
		NoiseAmplitude:   noise.DefaultAmplitude,
		SpectralChannels: append([]string(nil), interp.DefaultSpectralChannels...),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load reads path (when it exists) over the defaults, then applies
// TIMBRETAG_* environment overrides. An empty path or a missing file yields
// defaults plus environment. The result is not validated.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("config: read %s: %w", path, err)
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config: stat %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("config: decode: %w", err)
	}
	return cfg, nil
}

func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("mode", d.Mode)
	v.SetDefault("scale_factor", d.ScaleFactor)
	v.SetDefault("seed", d.Seed)
	v.SetDefault("library_dir", d.LibraryDir)
	v.SetDefault("output_db", d.OutputDB)
	v.SetDefault("train_fraction", d.TrainFraction)
	v.SetDefault("noise_amplitude", d.NoiseAmplitude)
	v.SetDefault("spectral_channels", d.SpectralChannels)
	v.SetDefault("temporal_channels", d.TemporalChannels)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Save writes c to path as YAML, creating the directory if needed.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("config: write %s: %w", path, err)
	}
	return nil
}

// Validate checks field constraints and that every name used resolves:
// the mode, the selected channels and each threshold override.
// Failures wrap patch.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config: %w: %v", patch.ErrInvalidConfiguration, err)
	}
	if _, err := augment.ParseMode(c.Mode); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := c.channels(patch.Spectral); err != nil {
		return err
	}
	if _, err := c.channels(patch.Temporal); err != nil {
		return err
	}
	if _, err := c.Thresholds(); err != nil {
		return err
	}
	return nil
}

// channels resolves the channel selection of d; nil means every channel.
func (c *Config) channels(d patch.Domain) ([]int, error) {
	names := c.SpectralChannels
	if d == patch.Temporal {
		names = c.TemporalChannels
	}
	if len(names) == 0 {
		return nil, nil
	}
	idx, err := patch.ChannelIndices(d, names)
	if err != nil {
		return nil, fmt.Errorf("config: %s_channels: %w: %v", d, patch.ErrInvalidConfiguration, err)
	}
	return idx, nil
}

// Thresholds returns the default table with the configured overrides applied.
func (c *Config) Thresholds() (outlier.Table, error) {
	table := outlier.DefaultTable()
	for name, rules := range c.ThresholdOverrides {
		cat, err := patch.ParseCategory(name)
		if err != nil {
			return outlier.Table{}, fmt.Errorf("config: thresholds: %w: %v", patch.ErrInvalidConfiguration, err)
		}
		parsed := make([]outlier.Rule, 0, len(rules))
		for _, rc := range rules {
			r, err := rc.rule(cat.Domain())
			if err != nil {
				return outlier.Table{}, fmt.Errorf("config: thresholds.%s: %w", cat, err)
			}
			parsed = append(parsed, r)
		}
		table = table.With(cat, parsed...)
	}
	return table, nil
}

func (rc RuleConfig) rule(d patch.Domain) (outlier.Rule, error) {
	ch, err := patch.ChannelIndex(d, rc.Channel)
	if err != nil {
		return outlier.Rule{}, fmt.Errorf("%w: %v", patch.ErrInvalidConfiguration, err)
	}
	dir, err := outlier.ParseDirection(rc.Direction)
	if err != nil {
		return outlier.Rule{}, err
	}
	return outlier.Rule{Channel: ch, Threshold: rc.Threshold, Direction: dir}, nil
}

// EngineOptions translates c into augment options. c should be valid.
func (c *Config) EngineOptions(logger *zap.Logger) ([]augment.Option, error) {
	mode, err := augment.ParseMode(c.Mode)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	table, err := c.Thresholds()
	if err != nil {
		return nil, err
	}
	spectral, err := c.channels(patch.Spectral)
	if err != nil {
		return nil, err
	}
	temporal, err := c.channels(patch.Temporal)
	if err != nil {
		return nil, err
	}
	if c.NoiseAmplitude < 0 || math.IsNaN(c.NoiseAmplitude) || math.IsInf(c.NoiseAmplitude, 0) {
		return nil, fmt.Errorf("config: %w: noise_amplitude %v", patch.ErrInvalidConfiguration, c.NoiseAmplitude)
	}

	opts := []augment.Option{
		augment.WithMode(mode),
		augment.WithScaleFactor(c.ScaleFactor),
		augment.WithSeed(c.Seed),
		augment.WithThresholds(table),
		augment.WithNoiseAmplitude(c.NoiseAmplitude),
		augment.WithSpectralChannels(spectral...),
		augment.WithTemporalChannels(temporal...),
	}
	if logger != nil {
		opts = append(opts, augment.WithLogger(logger))
	}
	return opts, nil
}

// Build returns a production zap logger at the configured level and
// encoding; verbose forces debug level.
func (l LoggingConfig) Build(verbose bool) (*zap.Logger, error) {
	zc := zap.NewProductionConfig()
	level, err := zapcore.ParseLevel(l.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	if l.Format == "console" {
		zc.Encoding = "console"
		zc.EncoderConfig = zap.NewDevelopmentEncoderConfig()
	}
	return zc.Build()
}

// RulesOf renders every governed category of t in configuration form,
// keyed by category name. Channels beyond the schema keep their index.
func RulesOf(t outlier.Table) map[string][]RuleConfig {
	out := make(map[string][]RuleConfig)
	for _, c := range t.Categories() {
		rules := t.Rules(c)
		rcs := make([]RuleConfig, 0, len(rules))
		for _, r := range rules {
			name := patch.ChannelName(c.Domain(), r.Channel)
			if name == "" {
				name = strconv.Itoa(r.Channel)
			}
			rcs = append(rcs, RuleConfig{Channel: name, Direction: r.Direction.String(), Threshold: r.Threshold})
		}
		out[c.String()] = rcs
	}
	return out
}
