package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/saadjs/pawfuel-cli/internal/engine"
	"github.com/saadjs/pawfuel-cli/internal/i18n"
	"github.com/saadjs/pawfuel-cli/internal/model"
	"github.com/saadjs/pawfuel-cli/internal/order"
)

var SettingKeys = []string{"units", "feeding_percent", "morning_time", "evening_time", "thaw_time", "language", "branch"}

func (a *App) Settings() model.Settings { return a.state.Settings }

// SetSetting validates and stores one user preference.
func (a *App) SetSetting(ctx context.Context, key, value string) error {
	s := &a.state.Settings
	value = strings.TrimSpace(value)
	switch normalizeName(key) {
	case "units":
		switch v := normalizeName(value); v {
		case "metric", "imperial":
			s.Units = v
		default:
			return fmt.Errorf("units must be metric or imperial: %w", engine.ErrInvalidInput)
		}
	case "feeding_percent":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("feeding_percent must be a number: %w", engine.ErrInvalidInput)
		}
		if err := validateRatio("feeding_percent", v); err != nil {
			return err
		}
		if v == 0 {
			return fmt.Errorf("feeding_percent must be > 0: %w", engine.ErrInvalidInput)
		}
		s.FeedingPercent = v
	case "morning_time", "evening_time", "thaw_time":
		v, err := order.ParseClock(value)
		if err != nil {
			return errors.Join(err, engine.ErrInvalidInput)
		}
		switch normalizeName(key) {
		case "morning_time":
			s.MorningTime = v
		case "evening_time":
			s.EveningTime = v
		default:
			s.ThawTime = v
		}
	case "language":
		v := normalizeName(value)
		if !i18n.Supported(v) {
			return fmt.Errorf("language must be one of %v: %w", i18n.Languages(), engine.ErrInvalidInput)
		}
		s.Language = v
	case "branch":
		v, err := order.NormalizeBranch(value)
		if err != nil {
			return errors.Join(err, engine.ErrInvalidInput)
		}
		s.Branch = v
	default:
		return fmt.Errorf("unknown setting %q (valid: %s): %w", key, strings.Join(SettingKeys, ", "), engine.ErrInvalidInput)
	}
	a.save(ctx)
	return nil
}
