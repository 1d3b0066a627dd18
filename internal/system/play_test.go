package system

import (
	"strings"
	"testing"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/core/event"
	"github.com/combatkata/arena/internal/data"
)

func TestPlayScenario(t *testing.T) {
	a, _ := newTestArena(t)
	mustAddCharacter(t, a, combat.NewCharacterWith(1000, 6, true, combat.WithName("Veteran")))
	mustAddCharacter(t, a, combat.NewCharacter(combat.WithName("Rookie")))
	if _, err := a.State.AddProp(combat.NewProp("Barrel", 100, false)); err != nil {
		t.Fatal(err)
	}

	var kills, destroyed int
	event.Subscribe(a.Bus, func(event.EntityKilled) { kills++ })
	event.Subscribe(a.Bus, func(event.PropDestroyed) { destroyed++ })

	s := &data.Scenario{Turns: []data.Turn{
		{Actions: []data.Action{
			{Kind: data.ActionAttack, Actor: "Veteran", Target: "Rookie", Amount: 200},
			{Kind: data.ActionAttack, Actor: "Rookie", Target: "Barrel", Amount: 100},
		}},
		{Actions: []data.Action{
			{Kind: data.ActionHeal, Actor: "Rookie", Target: "Rookie", Amount: 100},
			{Kind: data.ActionJoin, Actor: "Rookie", Faction: "ranger"},
		}},
	}}

	if err := a.Play(s, 0, 10); err != nil {
		t.Fatalf("Play: %v", err)
	}

	id, _ := a.State.Lookup("Rookie")
	rookie, _ := a.State.Character(id)
	if rookie.Health() != 800 {
		t.Errorf("rookie health = %d, want 800", rookie.Health())
	}
	if len(rookie.Factions()) != 1 {
		t.Errorf("rookie factions = %v", rookie.Factions())
	}
	if kills != 0 || destroyed != 1 {
		t.Errorf("kills=%d destroyed=%d, want 0 and 1", kills, destroyed)
	}
	if a.Ticks() != 2 {
		t.Errorf("Ticks() = %d, want 2", a.Ticks())
	}
}

func TestPlayStopsOnUnknownName(t *testing.T) {
	a, _ := newTestArena(t)
	mustAddCharacter(t, a, combat.NewCharacter(combat.WithName("Solo")))

	s := &data.Scenario{Turns: []data.Turn{{Actions: []data.Action{
		{Kind: data.ActionAttack, Actor: "Solo", Target: "Nobody", Amount: 1},
	}}}}
	err := a.Play(s, 0, 10)
	if err == nil || !strings.Contains(err.Error(), "Nobody") {
		t.Errorf("Play error = %v, want unknown name", err)
	}
}

func TestPlayHonorsMaxTicks(t *testing.T) {
	a, _ := newTestArena(t)
	mustAddCharacter(t, a, combat.NewCharacter(combat.WithName("Solo")))
	turns := make([]data.Turn, 5)
	if err := a.Play(&data.Scenario{Turns: turns}, 0, 3); err != nil {
		t.Fatal(err)
	}
	if a.Ticks() != 3 {
		t.Errorf("Ticks() = %d, want 3", a.Ticks())
	}
}

func TestPlayFailedTurnQueuesNothing(t *testing.T) {
	a, _ := newTestArena(t)
	mustAddCharacter(t, a, combat.NewCharacter(combat.WithName("Striker")))
	victim := mustAddCharacter(t, a, combat.NewCharacter(combat.WithName("Victim")))

	s := &data.Scenario{Turns: []data.Turn{{Actions: []data.Action{
		{Kind: data.ActionAttack, Actor: "Striker", Target: "Victim", Amount: 100},
		{Kind: data.ActionJoin, Actor: "Striker", Faction: "bard"},
	}}}}
	if err := a.Play(s, 0, 10); err == nil {
		t.Fatal("Play accepted an unknown faction")
	}

	a.Tick(0)
	c, _ := a.State.Character(victim)
	if c.Health() != combat.DefaultRules().MaxHealth {
		t.Errorf("victim health = %d, want untouched", c.Health())
	}
}
