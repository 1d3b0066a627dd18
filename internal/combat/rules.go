package combat

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"

	"github.com/combatkata/arena/internal/config"
)

// ModifierFunc overrides the level-gap damage modifier. Returning false falls
// back to the built-in table.
type ModifierFunc func(defenderLevel, attackerLevel int) (decimal.Decimal, bool)

// Rules holds the tunable numbers of combat resolution. Characters keep a
// pointer to the Rules they were created with.
type Rules struct {
	MaxHealth      int // healing cap and default starting health
	LevelGap       int // level difference at which modifiers kick in
	WeakModifier   decimal.Decimal
	StrongModifier decimal.Decimal
	Ranges         map[AttackType]int
	Modifier       ModifierFunc
}

// DefaultRules returns the stock combat numbers.
func DefaultRules() *Rules {
	return &Rules{
		MaxHealth:      1000,
		LevelGap:       5,
		WeakModifier:   decimal.RequireFromString("0.5"),
		StrongModifier: decimal.RequireFromString("1.5"),
		Ranges: map[AttackType]int{
			Melee:  MeleeRange,
			Ranged: RangedRange,
		},
	}
}

var defaultRules = DefaultRules()

// NewRules builds Rules from the [combat] config section.
func NewRules(cfg config.CombatConfig) (*Rules, error) {
	weak, err := decimal.NewFromString(cfg.WeakModifier)
	if err != nil {
		return nil, fmt.Errorf("weak_modifier %q: %w", cfg.WeakModifier, err)
	}
	strong, err := decimal.NewFromString(cfg.StrongModifier)
	if err != nil {
		return nil, fmt.Errorf("strong_modifier %q: %w", cfg.StrongModifier, err)
	}
	return &Rules{
		MaxHealth:      cfg.MaxHealth,
		LevelGap:       cfg.LevelGap,
		WeakModifier:   weak,
		StrongModifier: strong,
		Ranges: map[AttackType]int{
			Melee:  cfg.MeleeRange,
			Ranged: cfg.RangedRange,
		},
	}, nil
}

// Range returns the reach of an attack type.
func (r *Rules) Range(t AttackType) (int, error) {
	if d, ok := r.Ranges[t]; ok {
		return d, nil
	}
	return 0, fmt.Errorf("%w: %v", ErrUnknownAttackType, t)
}

// DamageModifier returns the multiplier applied to damage dealt by an
// attacker of attackerLevel to a defender of defenderLevel.
func (r *Rules) DamageModifier(defenderLevel, attackerLevel int) decimal.Decimal {
	if r.Modifier != nil {
		if m, ok := r.Modifier(defenderLevel, attackerLevel); ok {
			return m
		}
	}
	d := defenderLevel - attackerLevel
	switch {
	case d >= r.LevelGap:
		return r.WeakModifier
	case -d >= r.LevelGap:
		return r.StrongModifier
	}
	return decimal.NewFromInt(1)
}

var maxHealth = decimal.NewFromInt(math.MaxInt)

// damagedHealth 回傳受到 damage×modifier（向零截斷）後的血量，夾在 [0, MaxInt]。
// 全程以 decimal 計算，極大的傷害值不會溢位。
func damagedHealth(health, damage int, modifier decimal.Decimal) int {
	dealt := decimal.NewFromInt(int64(damage)).Mul(modifier).Truncate(0)
	next := decimal.NewFromInt(int64(health)).Sub(dealt)
	switch {
	case next.IsNegative():
		return 0
	case next.GreaterThan(maxHealth):
		return math.MaxInt
	}
	return int(next.IntPart())
}
