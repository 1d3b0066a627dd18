package combat

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// Faction is a membership tag. Characters sharing any faction are allies.
type Faction int

const (
	Cleric Faction = iota + 1
	Wizard
	Ranger
	Warrior
	Rogue
)

var ErrUnknownFaction = errors.New("unknown faction")

var factionNames = map[Faction]string{
	Cleric:  "cleric",
	Wizard:  "wizard",
	Ranger:  "ranger",
	Warrior: "warrior",
	Rogue:   "rogue",
}

func (f Faction) String() string {
	if s, ok := factionNames[f]; ok {
		return s
	}
	return fmt.Sprintf("Faction(%d)", int(f))
}

// ParseFaction resolves a faction by name, case-insensitively.
func ParseFaction(s string) (Faction, error) {
	folded := cases.Fold().String(s)
	for f, name := range factionNames {
		if name == folded {
			return f, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownFaction, s)
}

// sharesFaction reports whether the two membership lists intersect.
func sharesFaction(a, b []Faction) bool {
	for _, fa := range a {
		for _, fb := range b {
			if fa == fb {
				return true
			}
		}
	}
	return false
}
