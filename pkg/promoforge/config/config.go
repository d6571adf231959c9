// Package config holds the harvesting and generation configuration.
//
// Config is an immutable value passed into pipeline calls; there is no
// package-level mutable state, so concurrent runs with different
// settings cannot contaminate each other.
package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cognicore/promoforge/pkg/promoforge/collect"
	"github.com/cognicore/promoforge/pkg/promoforge/gen"
	"github.com/cognicore/promoforge/pkg/promoforge/infer"
	"github.com/cognicore/promoforge/pkg/promoforge/internalerr"
)

// Duration wraps time.Duration so YAML can express delays either as a
// duration string ("1500ms") or as a bare number of seconds.
type Duration time.Duration

// UnmarshalYAML implements yaml.Unmarshaler.
func (d *Duration) UnmarshalYAML(value *yaml.Node) error {
	var s string
	if err := value.Decode(&s); err == nil {
		parsed, perr := time.ParseDuration(s)
		if perr != nil {
			return fmt.Errorf("%w: bad duration %q", internalerr.ErrInvalidConfig, s)
		}
		*d = Duration(parsed)
		return nil
	}

	var secs float64
	if err := value.Decode(&secs); err != nil {
		return fmt.Errorf("%w: bad duration", internalerr.ErrInvalidConfig)
	}
	*d = Duration(time.Duration(secs * float64(time.Second)))
	return nil
}

// Std returns the wrapped time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// Config collects every knob of the pipeline. Zero fields fall back to
// the corresponding default on use.
type Config struct {
	// HintWords flag candidate text during collection.
	HintWords []string `yaml:"hint_words"`

	// Marker tags every generated code. Never effectively empty.
	Marker string `yaml:"marker"`

	// Symbols is the pool for the template symbol class.
	Symbols string `yaml:"symbols"`

	// Top-K cutoffs for the ranked inference views.
	TopTemplates int `yaml:"top_templates"`
	TopAffixes   int `yaml:"top_affixes"`

	// GenerateCount is the default batch size.
	GenerateCount int `yaml:"generate_count"`

	// Fixed affixes overriding the inferred ones when set.
	Prefix string `yaml:"prefix"`
	Suffix string `yaml:"suffix"`

	// Fetch politeness and identification.
	Delay     Duration `yaml:"delay"`
	Timeout   Duration `yaml:"timeout"`
	UserAgent string   `yaml:"user_agent"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		HintWords:     append([]string(nil), collect.DefaultHintWords...),
		Marker:        gen.DefaultMarker,
		Symbols:       gen.DefaultSymbols,
		TopTemplates:  infer.DefaultTopTemplates,
		TopAffixes:    infer.DefaultTopAffixes,
		GenerateCount: 20,
		Delay:         Duration(time.Second),
		Timeout:       Duration(18 * time.Second),
	}
}

// Load reads a YAML file over the defaults. Fields absent from the file
// keep their default values.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects settings the pipeline cannot honor.
func (c Config) Validate() error {
	if c.TopTemplates < 0 || c.TopAffixes < 0 {
		return fmt.Errorf("%w: top-k cutoffs must not be negative", internalerr.ErrInvalidConfig)
	}
	if c.Delay < 0 {
		return fmt.Errorf("%w: delay must not be negative", internalerr.ErrInvalidConfig)
	}
	return nil
}
