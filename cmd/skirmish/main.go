package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/config"
	"github.com/combatkata/arena/internal/core/ecs"
	"github.com/combatkata/arena/internal/core/event"
	"github.com/combatkata/arena/internal/data"
	"github.com/combatkata/arena/internal/scripting"
	"github.com/combatkata/arena/internal/system"
	"github.com/combatkata/arena/internal/world"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "fatal: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfgPath := flag.String("config", "config/skirmish.toml", "path to TOML config")
	rosterPath := flag.String("roster", "data/yaml/roster.yaml", "path to roster YAML")
	scenarioPath := flag.String("scenario", "data/yaml/scenario.yaml", "path to scenario YAML")
	flag.Parse()

	// 1. Load config
	if p := os.Getenv("SKIRMISH_CONFIG"); p != "" {
		*cfgPath = p
	}
	cfg, err := config.Load(*cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	// 2. Init logger
	log, err := newLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	// 3. Combat rules, optionally overridden by Lua
	rules, err := combat.NewRules(cfg.Combat)
	if err != nil {
		return fmt.Errorf("combat rules: %w", err)
	}
	if cfg.Scripting.Enabled {
		engine, err := scripting.NewEngine(cfg.Scripting.Dir, log)
		if err != nil {
			return fmt.Errorf("lua engine: %w", err)
		}
		defer engine.Close()
		if engine.HasModifier() {
			rules.Modifier = engine.ModifierFunc()
			log.Info("lua damage modifier enabled", zap.String("dir", cfg.Scripting.Dir))
		}
	}

	// 4. Load roster and scenario
	roster, err := data.LoadRoster(*rosterPath)
	if err != nil {
		return err
	}
	scenario, err := data.LoadScenario(*scenarioPath)
	if err != nil {
		return err
	}

	state := world.NewState()
	if err := roster.Spawn(state, rules); err != nil {
		return fmt.Errorf("spawn roster: %w", err)
	}
	log.Info("arena ready",
		zap.Stringer("match", state.Match),
		zap.String("scenario", scenario.Name),
		zap.Int("characters", state.CharacterCount()),
		zap.Int("props", state.PropCount()),
	)

	// 5. Play
	arena := system.NewArena(state, log)
	subscribeReport(arena.Bus)
	if err := arena.Play(scenario, cfg.Arena.TickRate.Duration, cfg.Arena.MaxTicks); err != nil {
		return fmt.Errorf("play %s: %w", scenario.Name, err)
	}

	printStandings(state)
	return nil
}

// subscribeReport prints one line per combat event. Names come from the
// events: destroyed props are already gone when their events are delivered.
func subscribeReport(bus *event.Bus) {
	event.Subscribe(bus, func(e event.EntityDamaged) {
		fmt.Printf("  %s hits %s for %d (%d left)\n", e.AttackerName, e.TargetName, e.Applied, e.Remaining)
	})
	event.Subscribe(bus, func(e event.AttackRejected) {
		fmt.Printf("  %s cannot hit %s: %s\n", e.AttackerName, e.TargetName, e.Reason)
	})
	event.Subscribe(bus, func(e event.EntityKilled) {
		fmt.Printf("  %s is slain by %s\n", e.VictimName, e.KillerName)
	})
	event.Subscribe(bus, func(e event.PropDestroyed) {
		fmt.Printf("  %s destroys %s\n", e.AttackerName, e.PropName)
	})
	event.Subscribe(bus, func(e event.EntityHealed) {
		fmt.Printf("  %s heals %s for %d\n", e.HealerName, e.TargetName, e.Healed)
	})
	event.Subscribe(bus, func(e event.HealRejected) {
		fmt.Printf("  %s cannot heal %s: %s\n", e.HealerName, e.TargetName, e.Reason)
	})
	event.Subscribe(bus, func(e event.FactionChanged) {
		verb := "leaves"
		if e.Joined {
			verb = "joins"
		}
		fmt.Printf("  %s %s the %s\n", e.Name, verb, e.Faction)
	})
}

func printStandings(state *world.State) {
	fmt.Println()
	fmt.Println("  standings:")
	state.EachCharacter(func(id ecs.EntityID, c *combat.Character) {
		status := "alive"
		if !c.Alive() {
			status = "dead"
		}
		fmt.Printf("    %-12s lvl %-3d hp %-5d %s %v\n", state.NameOf(id), c.Level(), c.Health(), status, c.Factions())
	})
	state.EachProp(func(id ecs.EntityID, p *combat.Prop) {
		fmt.Printf("    %-12s hp %-5d\n", state.NameOf(id), p.Health())
	})
}

func newLogger(cfg config.LoggingConfig) (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	return zapCfg.Build()
}
