package combat

import "fmt"

// Character is a combatant: it can attack, be attacked, heal and join
// factions. Characters are compared by pointer; two characters with equal
// stats are still different characters.
type Character struct {
	GameObject
	level      int
	alive      bool
	attackType AttackType
	factions   []Faction
	rules      *Rules
}

// CharacterOption customizes NewCharacterWith.
type CharacterOption func(*Character)

func WithAttackType(t AttackType) CharacterOption {
	return func(c *Character) { c.attackType = t }
}

func WithName(name string) CharacterOption {
	return func(c *Character) { c.name = name }
}

// WithRules replaces the default combat rules.
func WithRules(r *Rules) CharacterOption {
	return func(c *Character) {
		if r != nil {
			c.rules = r
		}
	}
}

// WithFactions joins each faction in order, duplicates included.
func WithFactions(fs ...Faction) CharacterOption {
	return func(c *Character) {
		for _, f := range fs {
			c.JoinFaction(f)
		}
	}
}

// NewCharacter returns a fresh level 1 melee character at full health.
func NewCharacter(opts ...CharacterOption) *Character {
	c := &Character{
		level:      1,
		alive:      true,
		attackType: Melee,
		rules:      defaultRules,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.setHealth(c.rules.MaxHealth)
	return c
}

// NewCharacterWith returns a character with the given vitals. The values are
// taken as given: health is only clamped at zero, not capped, and alive is
// not derived from health.
func NewCharacterWith(health, level int, alive bool, opts ...CharacterOption) *Character {
	c := &Character{
		level:      level,
		alive:      alive,
		attackType: Melee,
		rules:      defaultRules,
	}
	c.setHealth(health)
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *Character) Level() int             { return c.level }
func (c *Character) Alive() bool            { return c.alive }
func (c *Character) AttackType() AttackType { return c.attackType }

// Factions returns a copy of the membership list.
func (c *Character) Factions() []Faction {
	out := make([]Faction, len(c.factions))
	copy(out, c.factions)
	return out
}

// IsAllyOf reports whether c and other share at least one faction.
func (c *Character) IsAllyOf(other *Character) bool {
	return sharesFaction(c.factions, other.factions)
}

// AttackRange returns the reach of attack type t under c's rules.
func (c *Character) AttackRange(t AttackType) (int, error) {
	return c.rules.Range(t)
}

// ==================== 攻擊判定 ====================

// Attack applies an attack from attacker to c.
func (c *Character) Attack(attacker *Character, damage, attackDistance int) {
	c.Resolve(attacker, damage, attackDistance)
}

// Resolve runs the attack gates in order (allegiance, range, self) and, if
// all pass, applies the level-scaled damage.
func (c *Character) Resolve(attacker *Character, damage, attackDistance int) Outcome {
	if c.IsAllyOf(attacker) {
		return Outcome{Reason: RejectAlly}
	}

	// 射程依攻擊者自身的攻擊類型
	reach, err := attacker.AttackRange(attacker.attackType)
	if err != nil {
		// attack types are a closed set; anything else is corrupt state
		panic(fmt.Errorf("attacker %q: %w", attacker.name, err))
	}
	if attackDistance > reach {
		return Outcome{Reason: RejectOutOfRange}
	}

	if c == attacker {
		return Outcome{Reason: RejectSelf}
	}

	// 等級差倍率以受擊者的規則計算
	mod := c.rules.DamageModifier(c.level, attacker.level)
	wasAlive := c.alive
	before := c.health
	c.setHealth(damagedHealth(c.health, damage, mod))
	c.alive = c.health > 0

	return Outcome{
		Reason:   Applied,
		Applied:  before - c.health,
		Modifier: mod,
		Killed:   wasAlive && !c.alive,
	}
}

// ==================== 治療 ====================

// Heal restores health to c, up to the rules' max health.
func (c *Character) Heal(healer *Character, amount int) {
	c.ResolveHeal(healer, amount)
}

// ResolveHeal heals c only while it is alive, and only from itself or an
// ally. Rejections change nothing.
func (c *Character) ResolveHeal(healer *Character, amount int) HealOutcome {
	if !c.alive {
		return HealOutcome{Reason: RejectDead}
	}
	if c != healer && !c.IsAllyOf(healer) {
		return HealOutcome{Reason: RejectStranger}
	}

	before := c.health
	next := c.health + amount
	if next > c.rules.MaxHealth {
		next = c.rules.MaxHealth
	}
	c.setHealth(next)
	// 建構時高於上限的角色，治療後會被壓回上限；回報量不為負。
	healed := c.health - before
	if healed < 0 {
		healed = 0
	}
	return HealOutcome{Reason: Healed, Healed: healed}
}

// ==================== 陣營 ====================

// JoinFaction adds f to c's memberships. Joining twice records f twice.
func (c *Character) JoinFaction(f Faction) {
	c.factions = append(c.factions, f)
}

// LeaveFaction removes one membership of f, if any.
func (c *Character) LeaveFaction(f Faction) {
	for i, have := range c.factions {
		if have == f {
			c.factions = append(c.factions[:i], c.factions[i+1:]...)
			return
		}
	}
}
