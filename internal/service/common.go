package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"

	"github.com/saadjs/pawfuel-cli/internal/engine"
)

func validateNonNegativeFloat(name string, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("%s must be a finite number: %w", name, engine.ErrInvalidInput)
	}
	if value < 0 {
		return fmt.Errorf("%s must be >= 0: %w", name, engine.ErrInvalidInput)
	}
	return nil
}

func validateRatio(name string, value float64) error {
	if err := validateNonNegativeFloat(name, value); err != nil {
		return err
	}
	if value > 1 {
		return fmt.Errorf("%s must be <= 1: %w", name, engine.ErrInvalidInput)
	}
	return nil
}

func normalizeName(name string) string {
	return strings.TrimSpace(strings.ToLower(name))
}

// ParseList splits a comma-separated list into trimmed, lower-cased entries.
func ParseList(raw string) []string {
	out := make([]string, 0)
	for _, part := range strings.Split(raw, ",") {
		if v := normalizeName(part); v != "" {
			out = append(out, v)
		}
	}
	return out
}

func newID(prefix string) string {
	return prefix + uuid.NewString()
}

// stockEpsilon absorbs float drift from fractional broth packs.
const stockEpsilon = 1e-9
