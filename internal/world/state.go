package world

import (
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/core/ecs"
)

var (
	ErrUnknownEntity = errors.New("unknown entity")
	ErrDuplicateName = errors.New("duplicate entity name")
)

// State holds every entity taking part in one match.
// Accessed only from the game loop goroutine — no locks needed.
type State struct {
	Match uuid.UUID

	ecs        *ecs.World
	characters *ecs.Store[combat.Character]
	props      *ecs.Store[combat.Prop]
	byName     map[string]ecs.EntityID
	names      map[ecs.EntityID]string
}

func NewState() *State {
	s := &State{
		Match:      uuid.New(),
		ecs:        ecs.NewWorld(),
		characters: ecs.NewStore[combat.Character](),
		props:      ecs.NewStore[combat.Prop](),
		byName:     make(map[string]ecs.EntityID),
		names:      make(map[ecs.EntityID]string),
	}
	s.ecs.Register(s.characters)
	s.ecs.Register(s.props)
	return s
}

// ECS exposes the underlying entity world (for the cleanup system).
func (s *State) ECS() *ecs.World { return s.ecs }

// AddCharacter registers c. Named entities must have unique names;
// unnamed ones are reachable by ID only.
func (s *State) AddCharacter(c *combat.Character) (ecs.EntityID, error) {
	id, err := s.claim(c.Name())
	if err != nil {
		return 0, err
	}
	s.characters.Set(id, c)
	return id, nil
}

func (s *State) AddProp(p *combat.Prop) (ecs.EntityID, error) {
	id, err := s.claim(p.Name())
	if err != nil {
		return 0, err
	}
	s.props.Set(id, p)
	return id, nil
}

func (s *State) claim(name string) (ecs.EntityID, error) {
	if name != "" {
		if _, dup := s.byName[name]; dup {
			return 0, fmt.Errorf("%w: %q", ErrDuplicateName, name)
		}
	}
	id := s.ecs.CreateEntity()
	if name != "" {
		s.byName[name] = id
		s.names[id] = name
	}
	return id, nil
}

func (s *State) Character(id ecs.EntityID) (*combat.Character, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.characters.Get(id)
}

func (s *State) Prop(id ecs.EntityID) (*combat.Prop, bool) {
	if !s.ecs.Alive(id) {
		return nil, false
	}
	return s.props.Get(id)
}

// Target resolves id to anything that can be attacked.
func (s *State) Target(id ecs.EntityID) (combat.Target, error) {
	if c, ok := s.Character(id); ok {
		return c, nil
	}
	if p, ok := s.Prop(id); ok {
		return p, nil
	}
	return nil, fmt.Errorf("%w: %v", ErrUnknownEntity, id)
}

// Lookup returns the ID registered under name.
func (s *State) Lookup(name string) (ecs.EntityID, bool) {
	id, ok := s.byName[name]
	return id, ok
}

// NameOf returns the registered name of id, or its ID string if unnamed.
func (s *State) NameOf(id ecs.EntityID) string {
	if n, ok := s.names[id]; ok {
		return n
	}
	return id.String()
}

// Remove schedules id for destruction at the next cleanup.
func (s *State) Remove(id ecs.EntityID) {
	s.ecs.MarkForDestruction(id)
}

// Forget drops the name index entries of destroyed entities.
func (s *State) Forget(ids []ecs.EntityID) {
	for _, id := range ids {
		if n, ok := s.names[id]; ok {
			delete(s.byName, n)
			delete(s.names, id)
		}
	}
}

func (s *State) CharacterCount() int { return s.characters.Len() }
func (s *State) PropCount() int      { return s.props.Len() }

// EachCharacter visits characters in ID order.
func (s *State) EachCharacter(fn func(ecs.EntityID, *combat.Character)) {
	s.characters.Each(fn)
}

// EachProp visits props in ID order.
func (s *State) EachProp(fn func(ecs.EntityID, *combat.Prop)) {
	s.props.Each(fn)
}
