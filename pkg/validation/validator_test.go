package validation

import (
	"errors"
	"math"
	"strings"
	"testing"
)

type samplerRequest struct {
	TargetSizes []int  `validate:"required,min=1,dive,min=1"`
	Samples     int    `validate:"min=1"`
	Policy      string `validate:"oneof=simple bounded"`
}

func TestStruct(t *testing.T) {
	tests := []struct {
		name        string
		req         samplerRequest
		expectError bool
		errorField  string
	}{
		{
			name:        "Valid request",
			req:         samplerRequest{TargetSizes: []int{2, 4}, Samples: 2, Policy: "simple"},
			expectError: false,
		},
		{
			name:        "Missing sizes",
			req:         samplerRequest{Samples: 2, Policy: "simple"},
			expectError: true,
			errorField:  "TargetSizes",
		},
		{
			name:        "Zero size element",
			req:         samplerRequest{TargetSizes: []int{2, 0}, Samples: 2, Policy: "bounded"},
			expectError: true,
			errorField:  "TargetSizes[1]",
		},
		{
			name:        "Non-positive samples",
			req:         samplerRequest{TargetSizes: []int{2}, Samples: 0, Policy: "simple"},
			expectError: true,
			errorField:  "Samples",
		},
		{
			name:        "Unknown policy",
			req:         samplerRequest{TargetSizes: []int{2}, Samples: 1, Policy: "greedy"},
			expectError: true,
			errorField:  "Policy",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Struct(&tt.req)
			if tt.expectError {
				if err == nil {
					t.Fatal("Expected error, got nil")
				}
				if !errors.Is(err, ErrInvalidConfig) {
					t.Errorf("Expected ErrInvalidConfig, got %v", err)
				}
				if !strings.Contains(err.Error(), tt.errorField) {
					t.Errorf("Expected error mentioning %q, got %q", tt.errorField, err.Error())
				}
			} else if err != nil {
				t.Errorf("Expected no error, got %v", err)
			}
		})
	}
}

func TestStruct_Nil(t *testing.T) {
	if err := Struct(nil); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("Struct(nil) = %v, want ErrInvalidConfig", err)
	}
}

func TestProbability(t *testing.T) {
	tests := []struct {
		value   float64
		wantErr bool
	}{
		{0, false},
		{0.5, false},
		{1, false},
		{-0.01, true},
		{1.01, true},
		{math.NaN(), true},
	}

	for _, tt := range tests {
		err := Probability("beta", tt.value)
		if (err != nil) != tt.wantErr {
			t.Errorf("Probability(%v) error = %v, wantErr %v", tt.value, err, tt.wantErr)
		}
		if err != nil && !errors.Is(err, ErrInvalidConfig) {
			t.Errorf("Probability(%v) should wrap ErrInvalidConfig", tt.value)
		}
	}
}
