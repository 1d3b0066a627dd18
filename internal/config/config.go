package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

type Config struct {
	Combat    CombatConfig    `toml:"combat"`
	Scripting ScriptingConfig `toml:"scripting"`
	Arena     ArenaConfig     `toml:"arena"`
	Logging   LoggingConfig   `toml:"logging"`
}

// CombatConfig holds the tunable combat numbers. Modifiers are decimal
// strings so they survive parsing exactly.
type CombatConfig struct {
	MaxHealth      int    `toml:"max_health"`
	LevelGap       int    `toml:"level_gap"`
	WeakModifier   string `toml:"weak_modifier"`   // defender outlevels attacker
	StrongModifier string `toml:"strong_modifier"` // attacker outlevels defender
	MeleeRange     int    `toml:"melee_range"`
	RangedRange    int    `toml:"ranged_range"`
}

type ScriptingConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type ArenaConfig struct {
	TickRate duration `toml:"tick_rate"`
	MaxTicks int      `toml:"max_ticks"` // safety stop for scenario runs
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// duration lets TOML carry "200ms" style strings.
type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the combat numbers. Modifiers must parse as non-negative
// decimals.
func (c *Config) Validate() error {
	var errs []error
	if c.Combat.MaxHealth <= 0 {
		errs = append(errs, fmt.Errorf("combat.max_health must be positive, got %d", c.Combat.MaxHealth))
	}
	if c.Combat.LevelGap <= 0 {
		errs = append(errs, fmt.Errorf("combat.level_gap must be positive, got %d", c.Combat.LevelGap))
	}
	if c.Combat.MeleeRange < 0 || c.Combat.RangedRange < 0 {
		errs = append(errs, errors.New("combat ranges must not be negative"))
	}
	for _, m := range []struct{ key, value string }{
		{"combat.weak_modifier", c.Combat.WeakModifier},
		{"combat.strong_modifier", c.Combat.StrongModifier},
	} {
		if err := checkModifier(m.value); err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", m.key, err))
		}
	}
	if c.Arena.MaxTicks <= 0 {
		errs = append(errs, fmt.Errorf("arena.max_ticks must be positive, got %d", c.Arena.MaxTicks))
	}
	return errors.Join(errs...)
}

// checkModifier 檢查倍率字串：必須可解析且不得為負，否則扣血會變成補血。
func checkModifier(v string) error {
	if v == "" {
		return errors.New("must be set")
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		return fmt.Errorf("not a decimal: %q", v)
	}
	if d.IsNegative() {
		return fmt.Errorf("must not be negative, got %s", v)
	}
	return nil
}

// Defaults returns the stock configuration.
func Defaults() *Config {
	return &Config{
		Combat: CombatConfig{
			MaxHealth:      1000,
			LevelGap:       5,
			WeakModifier:   "0.5",
			StrongModifier: "1.5",
			MeleeRange:     2,
			RangedRange:    20,
		},
		Scripting: ScriptingConfig{
			Enabled: false,
			Dir:     "scripts",
		},
		Arena: ArenaConfig{
			TickRate: duration{200 * time.Millisecond},
			MaxTicks: 100,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}
