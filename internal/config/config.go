// Package config resolves the balance constants that drive the pet: decay
// rates, interaction effects, stat ceilings and evolution thresholds.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed presets.yaml
var presetsYAML []byte

// LevelCount is the number of evolution levels (Egg through Ancient).
const LevelCount = 7

// Preset selects one bundle of decay rates and interaction effects.
type Preset int

const (
	PresetDefault Preset = iota
	PresetEasy
	PresetHard
	PresetRealistic
)

func (p Preset) String() string {
	switch p {
	case PresetEasy:
		return "easy"
	case PresetHard:
		return "hard"
	case PresetRealistic:
		return "realistic"
	default:
		return "default"
	}
}

// ParsePreset maps a preset name to its Preset. Empty means Default.
func ParsePreset(name string) (Preset, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "default":
		return PresetDefault, nil
	case "easy":
		return PresetEasy, nil
	case "hard":
		return PresetHard, nil
	case "realistic":
		return PresetRealistic, nil
	}
	return PresetDefault, fmt.Errorf("unknown preset %q", name)
}

// File mirrors presets.yaml.
type File struct {
	Presets      PresetTable `yaml:"presets"`
	MaxStats     []float32   `yaml:"max_stats"`
	XPThresholds []uint32    `yaml:"xp_thresholds"`
	Warnings     Warnings    `yaml:"warnings"`
	Initial      Initial     `yaml:"initial"`
	Time         TimeConfig  `yaml:"time"`
}

// PresetTable holds one rate block per preset. It is a struct rather than a
// map so that an override file can change a single key of a single preset.
type PresetTable struct {
	Default   Rates `yaml:"default"`
	Easy      Rates `yaml:"easy"`
	Hard      Rates `yaml:"hard"`
	Realistic Rates `yaml:"realistic"`
}

// Rates is the per-preset part of the balance.
type Rates struct {
	HungerDecreaseRate    float64 `yaml:"hunger_decrease_rate"`    // per hour
	HappinessDecreaseRate float64 `yaml:"happiness_decrease_rate"` // per hour
	EnergyIncreaseRate    float64 `yaml:"energy_increase_rate"`    // per hour, pet rests while away
	Feeding               Feeding `yaml:"feeding"`
	Playing               Playing `yaml:"playing"`
}

type Feeding struct {
	HungerIncrease float32 `yaml:"hunger_increase"`
	XPGain         uint32  `yaml:"xp_gain"`
}

type Playing struct {
	HappinessIncrease float32 `yaml:"happiness_increase"`
	EnergyDecrease    float32 `yaml:"energy_decrease"`
	XPGain            uint32  `yaml:"xp_gain"`
}

type Warnings struct {
	Hunger    float32 `yaml:"hunger"`
	Happiness float32 `yaml:"happiness"`
}

type Initial struct {
	Hunger    float32 `yaml:"hunger"`
	Happiness float32 `yaml:"happiness"`
	Energy    float32 `yaml:"energy"`
}

type TimeConfig struct {
	MinElapsedHours         float64 `yaml:"min_elapsed_hours"`
	SignificantElapsedHours float64 `yaml:"significant_elapsed_hours"`
}

// Balance is the resolved, read-only configuration consumed by the pet.
// It is a plain value: copy it freely, never mutate it after Load.
type Balance struct {
	Preset Preset

	HungerDecreaseRate    float64
	HappinessDecreaseRate float64
	EnergyIncreaseRate    float64

	FeedHungerIncrease    float32
	FeedXP                uint32
	PlayHappinessIncrease float32
	PlayEnergyDecrease    float32
	PlayXP                uint32

	MaxStats     [LevelCount]float32
	XPThresholds [LevelCount - 1]uint32

	HungerWarning    float32
	HappinessWarning float32

	InitialHunger    float32
	InitialHappiness float32
	InitialEnergy    float32

	MinElapsedHours         float64
	SignificantElapsedHours float64
}

// MaxStatFor returns the stat ceiling for an evolution level. Unknown levels
// fall back to the Egg ceiling.
func (b Balance) MaxStatFor(level uint8) float32 {
	if int(level) >= LevelCount {
		return b.MaxStats[0]
	}
	return b.MaxStats[level]
}

// XPThreshold returns the cumulative XP needed to evolve out of level, or 0
// when the level is terminal.
func (b Balance) XPThreshold(level uint8) uint32 {
	if int(level) >= len(b.XPThresholds) {
		return 0
	}
	return b.XPThresholds[level]
}

// Default returns the Default preset with no override file.
func Default() Balance {
	b, err := Load("", PresetDefault)
	if err != nil {
		// presets.yaml is compiled in; failing here is a build defect
		panic(err)
	}
	return b
}

// Load resolves a Balance from the embedded tables, overlaid by the YAML file
// at path when path is not empty.
func Load(path string, preset Preset) (Balance, error) {
	f := &File{}
	if err := yaml.Unmarshal(presetsYAML, f); err != nil {
		return Balance{}, fmt.Errorf("parsing embedded presets: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Balance{}, fmt.Errorf("reading config file: %w", err)
		}
		// Only keys present in the file are overwritten
		if err := yaml.Unmarshal(data, f); err != nil {
			return Balance{}, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := f.validate(); err != nil {
		return Balance{}, err
	}
	return f.resolve(preset), nil
}

func (f *File) rates(p Preset) Rates {
	switch p {
	case PresetEasy:
		return f.Presets.Easy
	case PresetHard:
		return f.Presets.Hard
	case PresetRealistic:
		return f.Presets.Realistic
	default:
		return f.Presets.Default
	}
}

func (f *File) validate() error {
	if len(f.MaxStats) != LevelCount {
		return fmt.Errorf("max_stats: want %d entries, got %d", LevelCount, len(f.MaxStats))
	}
	if len(f.XPThresholds) != LevelCount-1 {
		return fmt.Errorf("xp_thresholds: want %d entries, got %d", LevelCount-1, len(f.XPThresholds))
	}
	for i := 1; i < len(f.MaxStats); i++ {
		if f.MaxStats[i] < f.MaxStats[i-1] {
			return fmt.Errorf("max_stats must not decrease with level (level %d)", i)
		}
	}
	for i := 1; i < len(f.XPThresholds); i++ {
		if f.XPThresholds[i] <= f.XPThresholds[i-1] {
			return fmt.Errorf("xp_thresholds must increase with level (level %d)", i)
		}
	}
	if f.MaxStats[0] <= 0 {
		return fmt.Errorf("max_stats must be positive")
	}
	return nil
}

func (f *File) resolve(p Preset) Balance {
	r := f.rates(p)
	b := Balance{
		Preset:                  p,
		HungerDecreaseRate:      r.HungerDecreaseRate,
		HappinessDecreaseRate:   r.HappinessDecreaseRate,
		EnergyIncreaseRate:      r.EnergyIncreaseRate,
		FeedHungerIncrease:      r.Feeding.HungerIncrease,
		FeedXP:                  r.Feeding.XPGain,
		PlayHappinessIncrease:   r.Playing.HappinessIncrease,
		PlayEnergyDecrease:      r.Playing.EnergyDecrease,
		PlayXP:                  r.Playing.XPGain,
		HungerWarning:           f.Warnings.Hunger,
		HappinessWarning:        f.Warnings.Happiness,
		InitialHunger:           f.Initial.Hunger,
		InitialHappiness:        f.Initial.Happiness,
		InitialEnergy:           f.Initial.Energy,
		MinElapsedHours:         f.Time.MinElapsedHours,
		SignificantElapsedHours: f.Time.SignificantElapsedHours,
	}
	copy(b.MaxStats[:], f.MaxStats)
	copy(b.XPThresholds[:], f.XPThresholds)
	return b
}
