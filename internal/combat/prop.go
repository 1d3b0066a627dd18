package combat

import "github.com/shopspring/decimal"

// Prop is a destructible object: trees, barrels, doors. Props take every
// hit at face value and never fight back.
type Prop struct {
	GameObject
	destroyed bool
}

var one = decimal.NewFromInt(1)

func NewProp(name string, health int, destroyed bool) *Prop {
	p := &Prop{destroyed: destroyed}
	p.name = name
	p.setHealth(health)
	return p
}

func (p *Prop) Destroyed() bool { return p.destroyed }

// Attack ignores the attacker and distance.
func (p *Prop) Attack(attacker *Character, damage, attackDistance int) {
	p.Resolve(attacker, damage, attackDistance)
}

func (p *Prop) Resolve(_ *Character, damage, _ int) Outcome {
	wasDestroyed := p.destroyed
	before := p.health
	p.setHealth(damagedHealth(p.health, damage, one))
	p.destroyed = p.health <= 0
	return Outcome{
		Reason:   Applied,
		Applied:  before - p.health,
		Modifier: one,
		Killed:   !wasDestroyed && p.destroyed,
	}
}
