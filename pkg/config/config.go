// Package config loads the YAML run configuration shared by the tools.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/dd0wney/cluso-conceal/pkg/concealment"
	"github.com/dd0wney/cluso-conceal/pkg/dice"
	"github.com/dd0wney/cluso-conceal/pkg/graphio"
	"github.com/dd0wney/cluso-conceal/pkg/targets"
	"github.com/dd0wney/cluso-conceal/pkg/validation"
)

// Config is the full run configuration.
type Config struct {
	VerboseLogging bool   `yaml:"verbose_logging"`
	LogLevel       string `yaml:"log_level" validate:"oneof=DEBUG INFO WARN ERROR debug info warn error"`
	// Seed 0 derives a seed from the clock.
	Seed          uint64 `yaml:"seed"`
	DropSelfLoops bool   `yaml:"drop_self_loops"`
	MetricsFile   string `yaml:"metrics_file"`

	Dice    DiceConfig    `yaml:"dice"`
	Noise   NoiseConfig   `yaml:"noise"`
	Scoring ScoringConfig `yaml:"scoring"`
	Sampler SamplerConfig `yaml:"sampler"`
	Storage StorageConfig `yaml:"storage"`
}

// DiceConfig sets the DICE edit budget.
type DiceConfig struct {
	Budget      int `yaml:"budget" validate:"gte=0"`
	Disconnects int `yaml:"disconnects" validate:"gte=0,ltefield=Budget"`
	Rounds      int `yaml:"rounds" validate:"gte=1"`
}

// NoiseConfig sets the probability that a pair keeps its state.
type NoiseConfig struct {
	Beta float64 `yaml:"beta" validate:"gte=0,lte=1"`
}

// ScoringConfig sets the weight of the first concealment measure.
type ScoringConfig struct {
	Alpha float64 `yaml:"alpha" validate:"gte=0,lte=1"`
}

// SamplerConfig controls target-set sampling.
type SamplerConfig struct {
	TargetSizes         []int  `yaml:"target_sizes" validate:"min=1,dive,gte=1"`
	SamplesPerCommunity int    `yaml:"samples_per_community" validate:"gte=1"`
	Policy              string `yaml:"policy" validate:"oneof=simple bounded"`
}

// StorageConfig locates result storage and remote inputs.
type StorageConfig struct {
	S3          graphio.S3Config `yaml:"s3"`
	DatabaseURL string           `yaml:"database_url"`
	ResultsFile string           `yaml:"results_file"`
}

// Default returns the experiment defaults: DICE 4/2, beta 0.99, alpha 0.5.
func Default() *Config {
	diceDefaults := dice.DefaultConfig()
	samplerDefaults := targets.DefaultConfig()

	return &Config{
		LogLevel:      "INFO",
		DropSelfLoops: true,
		Dice: DiceConfig{
			Budget:      diceDefaults.Budget,
			Disconnects: diceDefaults.Disconnects,
			Rounds:      1,
		},
		Noise:   NoiseConfig{Beta: 0.99},
		Scoring: ScoringConfig{Alpha: concealment.DefaultAlpha},
		Sampler: SamplerConfig{
			TargetSizes:         samplerDefaults.TargetSizes,
			SamplesPerCommunity: samplerDefaults.SamplesPerCommunity,
			Policy:              string(samplerDefaults.Policy),
		},
		Storage: StorageConfig{ResultsFile: "results.out"},
	}
}

// Load reads path over Default and validates the result. An empty path
// returns the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section's tags.
func (c *Config) Validate() error {
	return validation.Struct(c)
}

// DiceSettings converts the dice section.
func (c *Config) DiceSettings() dice.Config {
	return dice.Config{Budget: c.Dice.Budget, Disconnects: c.Dice.Disconnects}
}

// SamplerSettings converts the sampler section.
func (c *Config) SamplerSettings() targets.Config {
	return targets.Config{
		TargetSizes:         c.Sampler.TargetSizes,
		SamplesPerCommunity: c.Sampler.SamplesPerCommunity,
		Policy:              targets.Policy(c.Sampler.Policy),
	}
}
