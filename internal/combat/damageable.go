package combat

import "github.com/shopspring/decimal"

// Damageable is anything a character can attack.
// Pass 0 as attackDistance for an adjacent attack.
type Damageable interface {
	Attack(attacker *Character, damage, attackDistance int)
}

// Target is a Damageable that also reports what an attack did.
// Both Character and Prop implement it; the arena systems use it for logging
// and events.
type Target interface {
	Damageable
	Name() string
	Health() int
	Resolve(attacker *Character, damage, attackDistance int) Outcome
}

// Reason explains an attack outcome.
type Reason int

const (
	Applied Reason = iota
	RejectAlly
	RejectOutOfRange
	RejectSelf
)

func (r Reason) String() string {
	switch r {
	case Applied:
		return "applied"
	case RejectAlly:
		return "ally"
	case RejectOutOfRange:
		return "out_of_range"
	case RejectSelf:
		return "self"
	}
	return "unknown"
}

// Outcome is the result of a single attack. Rejected attacks are ordinary
// outcomes with Applied == 0.
type Outcome struct {
	Reason   Reason
	Applied  int             // health actually removed, after clamping
	Modifier decimal.Decimal // zero value when rejected
	Killed   bool            // target went from alive/intact to dead/destroyed
}

// Landed reports whether the attack passed every gate.
func (o Outcome) Landed() bool { return o.Reason == Applied }

// HealReason explains a heal outcome.
type HealReason int

const (
	Healed HealReason = iota
	RejectDead
	RejectStranger
)

func (r HealReason) String() string {
	switch r {
	case Healed:
		return "healed"
	case RejectDead:
		return "dead"
	case RejectStranger:
		return "stranger"
	}
	return "unknown"
}

// HealOutcome is the result of a single heal.
type HealOutcome struct {
	Reason HealReason
	Healed int // health actually restored, after the cap
}

var (
	_ Target = (*Character)(nil)
	_ Target = (*Prop)(nil)
)
