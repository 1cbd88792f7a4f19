package config

import (
	"errors"
	"fmt"
)

// ErrMissingWaveField is returned when no wave config at or below the
// requested wave defines a field.
var ErrMissingWaveField = errors.New("config: no wave config defines field")

// WaveConfig holds sparse per-wave overrides. A config applies from Wave
// onward until a later config overrides the same field.
type WaveConfig struct {
	Wave               int       `yaml:"wave"`
	MeanUFOTime        *float64  `yaml:"mean_ufo_time,omitempty"`
	SmallUFOChance     *float64  `yaml:"small_ufo_chance,omitempty"`
	MaxUFOs            *int      `yaml:"max_ufos,omitempty"`
	UFOAccuracy        *float64  `yaml:"ufo_accuracy,omitempty"` // 1 = no aim jitter
	UFOMaxShots        *int      `yaml:"ufo_max_shots,omitempty"`
	UFOShotSpeed       *float64  `yaml:"ufo_shot_speed,omitempty"`
	UFOMaxSpeed        []float64 `yaml:"ufo_max_speed,omitempty,flow"` // [big, small]
	AsteroidSpeedBoost *float64  `yaml:"asteroid_speed_boost,omitempty"`
}

// WaveTable is the list of wave configs. Order does not matter.
type WaveTable []WaveConfig

// Field names used in lookup errors.
const (
	FieldMeanUFOTime        = "mean_ufo_time"
	FieldSmallUFOChance     = "small_ufo_chance"
	FieldMaxUFOs            = "max_ufos"
	FieldUFOAccuracy        = "ufo_accuracy"
	FieldUFOMaxShots        = "ufo_max_shots"
	FieldUFOShotSpeed       = "ufo_shot_speed"
	FieldUFOMaxSpeed        = "ufo_max_speed"
	FieldAsteroidSpeedBoost = "asteroid_speed_boost"
)

// lookup returns the field value from the config with the largest Wave
// that is <= wave and defines the field.
func lookup[T any](t WaveTable, wave int, field string, pick func(WaveConfig) (T, bool)) (T, error) {
	var (
		best  T
		found bool
		at    int
	)
	for _, wc := range t {
		if wc.Wave > wave || (found && wc.Wave <= at) {
			continue
		}
		if v, ok := pick(wc); ok {
			best, at, found = v, wc.Wave, true
		}
	}
	if !found {
		return best, fmt.Errorf("%w: %s at wave %d", ErrMissingWaveField, field, wave)
	}
	return best, nil
}

func deref[T any](p *T) (T, bool) {
	if p == nil {
		var zero T
		return zero, false
	}
	return *p, true
}

// MeanUFOTime returns the mean seconds between UFO spawn checks.
func (t WaveTable) MeanUFOTime(wave int) (float64, error) {
	return lookup(t, wave, FieldMeanUFOTime, func(c WaveConfig) (float64, bool) { return deref(c.MeanUFOTime) })
}

// SmallUFOChance returns the probability that a spawned UFO is small.
func (t WaveTable) SmallUFOChance(wave int) (float64, error) {
	return lookup(t, wave, FieldSmallUFOChance, func(c WaveConfig) (float64, bool) { return deref(c.SmallUFOChance) })
}

// MaxUFOs returns the maximum number of concurrent UFOs.
func (t WaveTable) MaxUFOs(wave int) (int, error) {
	return lookup(t, wave, FieldMaxUFOs, func(c WaveConfig) (int, bool) { return deref(c.MaxUFOs) })
}

// UFOAccuracy returns the UFO aim accuracy in [0, 1].
func (t WaveTable) UFOAccuracy(wave int) (float64, error) {
	return lookup(t, wave, FieldUFOAccuracy, func(c WaveConfig) (float64, bool) { return deref(c.UFOAccuracy) })
}

// UFOMaxShots returns the maximum shots a single UFO may have in flight.
func (t WaveTable) UFOMaxShots(wave int) (int, error) {
	return lookup(t, wave, FieldUFOMaxShots, func(c WaveConfig) (int, bool) { return deref(c.UFOMaxShots) })
}

// UFOShotSpeed returns the UFO shot speed.
func (t WaveTable) UFOShotSpeed(wave int) (float64, error) {
	return lookup(t, wave, FieldUFOShotSpeed, func(c WaveConfig) (float64, bool) { return deref(c.UFOShotSpeed) })
}

// UFOMaxSpeed returns the UFO max speed for the given size class.
func (t WaveTable) UFOMaxSpeed(wave int, small bool) (float64, error) {
	return lookup(t, wave, FieldUFOMaxSpeed, func(c WaveConfig) (float64, bool) {
		if len(c.UFOMaxSpeed) != 2 {
			return 0, false
		}
		if small {
			return c.UFOMaxSpeed[1], true
		}
		return c.UFOMaxSpeed[0], true
	})
}

// AsteroidSpeedBoost returns the post-split speed multiplier.
func (t WaveTable) AsteroidSpeedBoost(wave int) (float64, error) {
	return lookup(t, wave, FieldAsteroidSpeedBoost, func(c WaveConfig) (float64, bool) { return deref(c.AsteroidSpeedBoost) })
}

// Covers reports an error for the first field with no definition at wave.
// Lookups only ever move to later waves, so coverage at the first queried
// wave implies coverage for every wave after it.
func (t WaveTable) Covers(wave int) error {
	for _, v := range t {
		if v.UFOMaxSpeed != nil && len(v.UFOMaxSpeed) != 2 {
			return fmt.Errorf("wave %d: ufo_max_speed needs [big, small], got %d values", v.Wave, len(v.UFOMaxSpeed))
		}
	}
	checks := []func() error{
		func() error { _, err := t.MeanUFOTime(wave); return err },
		func() error { _, err := t.SmallUFOChance(wave); return err },
		func() error { _, err := t.MaxUFOs(wave); return err },
		func() error { _, err := t.UFOAccuracy(wave); return err },
		func() error { _, err := t.UFOMaxShots(wave); return err },
		func() error { _, err := t.UFOShotSpeed(wave); return err },
		func() error { _, err := t.UFOMaxSpeed(wave, false); return err },
		func() error { _, err := t.AsteroidSpeedBoost(wave); return err },
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

// Must unwraps a lookup result, panicking on a missing field. Missing
// coverage is a content defect, never a runtime condition.
func Must[T any](v T, err error) T {
	if err != nil {
		panic(err)
	}
	return v
}

// Float returns a pointer to v, for building wave configs in code.
func Float(v float64) *float64 {
	return &v
}

// Int returns a pointer to v, for building wave configs in code.
func Int(v int) *int {
	return &v
}
