package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigValidator_Chained(t *testing.T) {
	cv := NewConfigValidator("DiceConfig").
		NonNegative("Budget", 4).
		NonNegative("Disconnects", 2).
		MaxInt("Disconnects", 2, 4)

	if err := cv.Validate(); err != nil {
		t.Errorf("Expected valid config, got %v", err)
	}
}

func TestConfigValidator_SingleError(t *testing.T) {
	err := NewConfigValidator("DiceConfig").
		NonNegative("Budget", -1).
		Validate()

	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("Expected ErrInvalidConfig, got %v", err)
	}
	if !strings.Contains(err.Error(), "DiceConfig.Budget") {
		t.Errorf("Expected field path in error, got %q", err.Error())
	}
}

func TestConfigValidator_CollectsAll(t *testing.T) {
	cv := NewConfigValidator("SamplerConfig").
		NotEmpty("TargetSizes", 0).
		Positive("SamplesPerCommunity", 0).
		OneOf("Policy", "greedy", []string{"simple", "bounded"}).
		Probability("Beta", 1.5).
		MinInt("Rounds", 0, 1).
		Custom("Sizes", func() error { return errors.New("bad") })

	err := cv.Validate()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("combined error should wrap ErrInvalidConfig: %v", err)
	}
	if !strings.Contains(err.Error(), "6 errors") {
		t.Errorf("combined error should report count, got %q", err.Error())
	}
}

type roundsConfig struct{ rounds int }

func (c roundsConfig) Validate() error {
	return NewConfigValidator("RoundsConfig").MinInt("Rounds", c.rounds, 1).Validate()
}

func TestValidateConfig(t *testing.T) {
	if err := ValidateConfig(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ValidateConfig(nil) = %v", err)
	}
	if err := ValidateConfig(roundsConfig{rounds: 3}); err != nil {
		t.Errorf("ValidateConfig(valid) = %v", err)
	}
	if err := ValidateConfig(roundsConfig{rounds: 0}); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("ValidateConfig(zero rounds) = %v", err)
	}
}
