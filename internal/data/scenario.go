package data

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Action kinds understood by a scenario.
const (
	ActionAttack = "attack"
	ActionHeal   = "heal"
	ActionJoin   = "join"
	ActionLeave  = "leave"
)

// Action is one queued request. Actor and Target are roster names.
type Action struct {
	Kind     string `yaml:"kind"`
	Actor    string `yaml:"actor"`
	Target   string `yaml:"target"`
	Amount   int    `yaml:"amount"`   // damage or heal points
	Distance int    `yaml:"distance"` // attack only
	Faction  string `yaml:"faction"`  // join/leave only
}

// Turn is the set of actions resolved in one tick.
type Turn struct {
	Actions []Action `yaml:"actions"`
}

type Scenario struct {
	Name  string `yaml:"name"`
	Turns []Turn `yaml:"turns"`
}

// LoadScenario loads and validates a scenario file.
func LoadScenario(path string) (*Scenario, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	var s Scenario
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := s.Validate(); err != nil {
		return nil, fmt.Errorf("scenario %s: %w", path, err)
	}
	return &s, nil
}

// Validate checks that every action carries the fields its kind needs.
func (s *Scenario) Validate() error {
	var errs []error
	for ti, turn := range s.Turns {
		for ai, a := range turn.Actions {
			where := fmt.Sprintf("turn %d action %d", ti+1, ai+1)
			if a.Actor == "" {
				errs = append(errs, fmt.Errorf("%s: missing actor", where))
			}
			switch a.Kind {
			case ActionAttack, ActionHeal:
				if a.Target == "" {
					errs = append(errs, fmt.Errorf("%s: %s needs a target", where, a.Kind))
				}
			case ActionJoin, ActionLeave:
				if a.Faction == "" {
					errs = append(errs, fmt.Errorf("%s: %s needs a faction", where, a.Kind))
				}
			default:
				errs = append(errs, fmt.Errorf("%s: unknown kind %q", where, a.Kind))
			}
		}
	}
	return errors.Join(errs...)
}
