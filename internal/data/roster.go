package data

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/world"
)

// CharacterEntry is one character in a roster file. Omitted fields take
// the values of a freshly created character.
type CharacterEntry struct {
	Name       string   `yaml:"name"`
	Health     *int     `yaml:"health"`
	Level      *int     `yaml:"level"`
	Alive      *bool    `yaml:"alive"`
	AttackType string   `yaml:"attack_type"` // "melee" (default) or "ranged"
	Factions   []string `yaml:"factions"`
}

// PropEntry is one prop in a roster file.
type PropEntry struct {
	Name      string `yaml:"name"`
	Health    int    `yaml:"health"`
	Destroyed bool   `yaml:"destroyed"`
}

// Roster is the set of entities a match starts with.
type Roster struct {
	Characters []CharacterEntry `yaml:"characters"`
	Props      []PropEntry      `yaml:"props"`
}

// LoadRoster loads a roster from YAML.
func LoadRoster(path string) (*Roster, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	var r Roster
	if err := yaml.Unmarshal(raw, &r); err != nil {
		return nil, fmt.Errorf("parse roster: %w", err)
	}
	return &r, nil
}

// Build turns e into a character under rules.
func (e *CharacterEntry) Build(rules *combat.Rules) (*combat.Character, error) {
	opts := []combat.CharacterOption{combat.WithName(e.Name), combat.WithRules(rules)}
	if e.AttackType != "" {
		t, err := combat.ParseAttackType(e.AttackType)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", e.Name, err)
		}
		opts = append(opts, combat.WithAttackType(t))
	}
	for _, name := range e.Factions {
		f, err := combat.ParseFaction(name)
		if err != nil {
			return nil, fmt.Errorf("character %q: %w", e.Name, err)
		}
		opts = append(opts, combat.WithFactions(f))
	}

	if e.Health == nil && e.Level == nil && e.Alive == nil {
		return combat.NewCharacter(opts...), nil
	}

	fresh := combat.NewCharacter(combat.WithRules(rules))
	health, level, alive := fresh.Health(), fresh.Level(), fresh.Alive()
	if e.Health != nil {
		health = *e.Health
	}
	if e.Level != nil {
		level = *e.Level
	}
	if e.Alive != nil {
		alive = *e.Alive
	}
	return combat.NewCharacterWith(health, level, alive, opts...), nil
}

// Spawn adds every roster entry to state. It stops at the first bad entry.
func (r *Roster) Spawn(state *world.State, rules *combat.Rules) error {
	for i := range r.Characters {
		c, err := r.Characters[i].Build(rules)
		if err != nil {
			return err
		}
		if _, err := state.AddCharacter(c); err != nil {
			return fmt.Errorf("spawn character: %w", err)
		}
	}
	for _, p := range r.Props {
		if _, err := state.AddProp(combat.NewProp(p.Name, p.Health, p.Destroyed)); err != nil {
			return fmt.Errorf("spawn prop: %w", err)
		}
	}
	return nil
}
