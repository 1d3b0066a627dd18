package combat

import (
	"errors"
	"math"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNewCharacterDefaults(t *testing.T) {
	c := NewCharacter()

	if c.Health() != 1000 {
		t.Errorf("Health() = %d, want 1000", c.Health())
	}
	if c.Level() != 1 {
		t.Errorf("Level() = %d, want 1", c.Level())
	}
	if !c.Alive() {
		t.Error("expected new character to be alive")
	}
	if c.AttackType() != Melee {
		t.Errorf("AttackType() = %v, want melee", c.AttackType())
	}
	if len(c.Factions()) != 0 {
		t.Errorf("Factions() = %v, want none", c.Factions())
	}
}

func TestNewCharacterWithTrustsValues(t *testing.T) {
	c := NewCharacterWith(1500, 3, false)
	if c.Health() != 1500 {
		t.Errorf("Health() = %d, want 1500 (construction is uncapped)", c.Health())
	}
	if c.Alive() {
		t.Error("alive flag should be stored as given")
	}

	neg := NewCharacterWith(-20, 1, true)
	if neg.Health() != 0 {
		t.Errorf("Health() = %d, want 0 after clamp", neg.Health())
	}
	if !neg.Alive() {
		t.Error("alive is not derived at construction")
	}
}

func TestCharacterAttack(t *testing.T) {
	tests := []struct {
		name          string
		victimLevel   int
		attackerLevel int
		damage        int
		wantHealth    int
		wantAlive     bool
	}{
		{"plain damage", 1, 1, 100, 900, true},
		{"kill", 1, 1, 1000, 0, false},
		{"overkill clamps", 1, 1, 5000, 0, false},
		{"victim much stronger halves", 6, 1, 200, 900, true},
		{"attacker much stronger amplifies", 1, 6, 200, 700, true},
		{"gap of four is neutral", 5, 1, 200, 800, true},
		{"halving truncates", 6, 1, 3, 999, true},
		{"amplifying truncates", 1, 6, 3, 996, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := NewCharacterWith(1000, tt.attackerLevel, true)
			victim := NewCharacterWith(1000, tt.victimLevel, true)

			victim.Attack(attacker, tt.damage, 0)

			if victim.Health() != tt.wantHealth {
				t.Errorf("Health() = %d, want %d", victim.Health(), tt.wantHealth)
			}
			if victim.Alive() != tt.wantAlive {
				t.Errorf("Alive() = %v, want %v", victim.Alive(), tt.wantAlive)
			}
		})
	}
}

func TestCharacterCannotDamageItself(t *testing.T) {
	c := NewCharacter()

	out := c.Resolve(c, 100, 0)

	if out.Reason != RejectSelf {
		t.Errorf("Reason = %v, want self", out.Reason)
	}
	if c.Health() != 1000 || !c.Alive() {
		t.Errorf("self attack changed state: health=%d alive=%v", c.Health(), c.Alive())
	}
}

func TestIdenticalCharactersAreDistinct(t *testing.T) {
	a := NewCharacter()
	b := NewCharacter()

	b.Attack(a, 100, 0)

	if b.Health() != 900 {
		t.Errorf("Health() = %d, want 900", b.Health())
	}
}

func TestAlliesCannotDamageEachOther(t *testing.T) {
	attacker := NewCharacter(WithFactions(Wizard, Ranger))
	victim := NewCharacter(WithFactions(Ranger))

	out := victim.Resolve(attacker, 999999, 0)

	if out.Reason != RejectAlly {
		t.Errorf("Reason = %v, want ally", out.Reason)
	}
	if victim.Health() != 1000 {
		t.Errorf("Health() = %d, want 1000", victim.Health())
	}
}

func TestNoFactionsAreNotAllies(t *testing.T) {
	a := NewCharacter()
	b := NewCharacter()
	if a.IsAllyOf(b) {
		t.Error("characters without factions must not be allies")
	}
}

func TestAttackRangeGate(t *testing.T) {
	tests := []struct {
		name       string
		kind       AttackType
		distance   int
		wantHealth int
	}{
		{"melee within reach", Melee, 2, 800},
		{"melee out of reach", Melee, 3, 1000},
		{"ranged within reach", Ranged, 20, 800},
		{"ranged out of reach", Ranged, 21, 1000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := NewCharacterWith(1000, 1, true, WithAttackType(tt.kind))
			victim := NewCharacter()

			victim.Attack(attacker, 200, tt.distance)

			if victim.Health() != tt.wantHealth {
				t.Errorf("Health() = %d, want %d", victim.Health(), tt.wantHealth)
			}
			if !victim.Alive() {
				t.Error("victim should still be alive")
			}
		})
	}
}

func TestRangeUsesAttackerType(t *testing.T) {
	archer := NewCharacterWith(1000, 1, true, WithAttackType(Ranged))
	brawler := NewCharacter()

	out := brawler.Resolve(archer, 50, 10)
	if !out.Landed() {
		t.Errorf("Reason = %v, want applied", out.Reason)
	}
	if brawler.Health() != 950 {
		t.Errorf("Health() = %d, want 950", brawler.Health())
	}
}

func TestGetAttackRange(t *testing.T) {
	c := NewCharacter()

	if got, err := c.AttackRange(Melee); err != nil || got != 2 {
		t.Errorf("AttackRange(Melee) = %d, %v; want 2", got, err)
	}
	if got, err := c.AttackRange(Ranged); err != nil || got != 20 {
		t.Errorf("AttackRange(Ranged) = %d, %v; want 20", got, err)
	}
	if _, err := c.AttackRange(AttackType(42)); !errors.Is(err, ErrUnknownAttackType) {
		t.Errorf("AttackRange(42) error = %v, want ErrUnknownAttackType", err)
	}
}

func TestAttackWithCorruptAttackTypePanics(t *testing.T) {
	attacker := NewCharacterWith(1000, 1, true, WithAttackType(AttackType(42)))
	victim := NewCharacter()

	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrUnknownAttackType) {
			t.Errorf("recover() = %v, want ErrUnknownAttackType", r)
		}
	}()
	victim.Attack(attacker, 10, 0)
}

func TestOutcomeReportsKill(t *testing.T) {
	attacker := NewCharacter()
	victim := NewCharacterWith(50, 1, true)

	out := victim.Resolve(attacker, 80, 0)
	if !out.Killed || out.Applied != 50 {
		t.Errorf("outcome = %+v, want killed with 50 applied", out)
	}

	again := victim.Resolve(attacker, 80, 0)
	if again.Killed || again.Applied != 0 {
		t.Errorf("second outcome = %+v, want no kill and nothing applied", again)
	}
}

func TestHeal(t *testing.T) {
	t.Run("self heal", func(t *testing.T) {
		patient := NewCharacterWith(500, 1, true)
		patient.Heal(patient, 100)
		if patient.Health() != 600 {
			t.Errorf("Health() = %d, want 600", patient.Health())
		}
	})

	t.Run("capped at max", func(t *testing.T) {
		patient := NewCharacterWith(500, 1, true)
		for i := 0; i < 3; i++ {
			patient.Heal(patient, 1000)
		}
		if patient.Health() != 1000 {
			t.Errorf("Health() = %d, want 1000", patient.Health())
		}
	})

	t.Run("dead cannot be healed", func(t *testing.T) {
		patient := NewCharacterWith(0, 1, false)
		out := patient.ResolveHeal(patient, 100)
		if out.Reason != RejectDead {
			t.Errorf("Reason = %v, want dead", out.Reason)
		}
		if patient.Health() != 0 || patient.Alive() {
			t.Errorf("health=%d alive=%v, want 0 and dead", patient.Health(), patient.Alive())
		}
	})

	t.Run("stranger cannot heal", func(t *testing.T) {
		healer := NewCharacter()
		patient := NewCharacterWith(500, 1, true)
		out := patient.ResolveHeal(healer, 100)
		if out.Reason != RejectStranger {
			t.Errorf("Reason = %v, want stranger", out.Reason)
		}
		if patient.Health() != 500 {
			t.Errorf("Health() = %d, want 500", patient.Health())
		}
	})

	t.Run("ally can heal", func(t *testing.T) {
		healer := NewCharacter(WithFactions(Cleric))
		patient := NewCharacterWith(500, 1, true, WithFactions(Cleric))
		out := patient.ResolveHeal(healer, 700)
		if out.Reason != Healed || out.Healed != 500 {
			t.Errorf("outcome = %+v, want 500 healed", out)
		}
	})
}

func TestFactionMembership(t *testing.T) {
	c := NewCharacter()
	c.JoinFaction(Cleric)
	c.JoinFaction(Cleric)
	c.JoinFaction(Wizard)

	if got := len(c.Factions()); got != 3 {
		t.Fatalf("len(Factions()) = %d, want 3 (duplicates kept)", got)
	}

	c.LeaveFaction(Cleric)
	got := c.Factions()
	if len(got) != 2 || got[0] != Cleric || got[1] != Wizard {
		t.Errorf("Factions() = %v, want [cleric wizard]", got)
	}

	c.LeaveFaction(Rogue)
	if len(c.Factions()) != 2 {
		t.Error("leaving an absent faction should be a no-op")
	}

	other := NewCharacter(WithFactions(Cleric))
	if !c.IsAllyOf(other) {
		t.Error("one remaining cleric membership still makes them allies")
	}
	c.LeaveFaction(Cleric)
	if c.IsAllyOf(other) {
		t.Error("expected no alliance after leaving the last cleric membership")
	}
}

func TestFactionsReturnsCopy(t *testing.T) {
	c := NewCharacter(WithFactions(Ranger))
	fs := c.Factions()
	fs[0] = Rogue
	if c.Factions()[0] != Ranger {
		t.Error("mutating the returned slice changed the character")
	}
}

func TestCustomRules(t *testing.T) {
	rules := DefaultRules()
	rules.MaxHealth = 200
	rules.Modifier = func(defenderLevel, attackerLevel int) (decimal.Decimal, bool) {
		return decimal.NewFromInt(2), true
	}

	attacker := NewCharacter(WithRules(rules))
	victim := NewCharacter(WithRules(rules))
	if victim.Health() != 200 {
		t.Fatalf("Health() = %d, want 200", victim.Health())
	}

	victim.Attack(attacker, 30, 0)
	if victim.Health() != 140 {
		t.Errorf("Health() = %d, want 140", victim.Health())
	}

	victim.Heal(victim, 500)
	if victim.Health() != 200 {
		t.Errorf("Health() = %d, want 200", victim.Health())
	}
}

func TestHugeDamageDoesNotWrap(t *testing.T) {
	tests := []struct {
		name          string
		attackerLevel int
	}{
		{"neutral", 1},
		{"amplified", 6},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attacker := NewCharacterWith(1000, tt.attackerLevel, true)
			victim := NewCharacter()

			out := victim.Resolve(attacker, math.MaxInt64, 0)

			if victim.Health() != 0 || victim.Alive() {
				t.Errorf("health=%d alive=%v, want 0 and dead", victim.Health(), victim.Alive())
			}
			if out.Applied != 1000 || !out.Killed {
				t.Errorf("outcome = %+v, want 1000 applied and a kill", out)
			}
		})
	}
}

func TestAttackingTheDead(t *testing.T) {
	attacker := NewCharacter()
	corpse := NewCharacterWith(0, 1, false)

	out := corpse.Resolve(attacker, 100, 0)

	if !out.Landed() {
		t.Errorf("Reason = %v, want applied", out.Reason)
	}
	if out.Applied != 0 || out.Killed {
		t.Errorf("outcome = %+v, want nothing applied and no kill", out)
	}
	if corpse.Health() != 0 || corpse.Alive() {
		t.Errorf("health=%d alive=%v, want 0 and dead", corpse.Health(), corpse.Alive())
	}
}

func TestHealAboveCapReportsNoGain(t *testing.T) {
	giant := NewCharacterWith(1500, 1, true)

	out := giant.ResolveHeal(giant, 10)

	if giant.Health() != 1000 {
		t.Errorf("Health() = %d, want 1000", giant.Health())
	}
	if out.Reason != Healed || out.Healed != 0 {
		t.Errorf("outcome = %+v, want healed with 0 gained", out)
	}
}
