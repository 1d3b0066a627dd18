package world

import (
	"errors"
	"testing"

	"github.com/combatkata/arena/internal/combat"
)

func TestStateRegistersAndResolves(t *testing.T) {
	s := NewState()

	hero, err := s.AddCharacter(combat.NewCharacter(combat.WithName("Hero")))
	if err != nil {
		t.Fatalf("AddCharacter: %v", err)
	}
	door, err := s.AddProp(combat.NewProp("Door", 50, false))
	if err != nil {
		t.Fatalf("AddProp: %v", err)
	}

	if id, ok := s.Lookup("Hero"); !ok || id != hero {
		t.Errorf("Lookup(Hero) = %v, %v", id, ok)
	}
	if tgt, err := s.Target(door); err != nil || tgt.Name() != "Door" {
		t.Errorf("Target(door) = %v, %v", tgt, err)
	}
	if _, ok := s.Character(door); ok {
		t.Error("a prop resolved as a character")
	}
	if s.CharacterCount() != 1 || s.PropCount() != 1 {
		t.Errorf("counts = %d/%d, want 1/1", s.CharacterCount(), s.PropCount())
	}
}

func TestStateRejectsDuplicateNames(t *testing.T) {
	s := NewState()
	if _, err := s.AddCharacter(combat.NewCharacter(combat.WithName("Twin"))); err != nil {
		t.Fatal(err)
	}
	_, err := s.AddProp(combat.NewProp("Twin", 10, false))
	if !errors.Is(err, ErrDuplicateName) {
		t.Errorf("error = %v, want ErrDuplicateName", err)
	}

	// unnamed entities never collide
	for i := 0; i < 2; i++ {
		if _, err := s.AddCharacter(combat.NewCharacter()); err != nil {
			t.Errorf("unnamed AddCharacter: %v", err)
		}
	}
}

func TestStateRemoveIsDeferred(t *testing.T) {
	s := NewState()
	id, _ := s.AddProp(combat.NewProp("Crate", 10, false))

	s.Remove(id)
	if _, err := s.Target(id); err != nil {
		t.Fatal("entity vanished before cleanup")
	}

	s.Forget(s.ECS().FlushDestroyQueue())
	if _, err := s.Target(id); !errors.Is(err, ErrUnknownEntity) {
		t.Errorf("Target after cleanup error = %v, want ErrUnknownEntity", err)
	}
	if _, ok := s.Lookup("Crate"); ok {
		t.Error("name index still points at a destroyed entity")
	}
}
