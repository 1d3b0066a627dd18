package combat

import (
	"errors"
	"fmt"

	"golang.org/x/text/cases"
)

// AttackType is how a character delivers its attacks. The set is closed.
type AttackType int

const (
	Melee AttackType = iota
	Ranged
)

// Default reach per attack type, in tiles.
const (
	MeleeRange  = 2
	RangedRange = 20
)

var ErrUnknownAttackType = errors.New("unknown attack type")

var attackTypeNames = map[AttackType]string{
	Melee:  "melee",
	Ranged: "ranged",
}

func (t AttackType) String() string {
	if s, ok := attackTypeNames[t]; ok {
		return s
	}
	return fmt.Sprintf("AttackType(%d)", int(t))
}

// ParseAttackType accepts the names produced by String, in any case.
func ParseAttackType(s string) (AttackType, error) {
	folded := cases.Fold().String(s)
	for t, name := range attackTypeNames {
		if name == folded {
			return t, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownAttackType, s)
}
