package system

import (
	"fmt"
	"time"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/core/ecs"
	"github.com/combatkata/arena/internal/data"
)

// Queue translates a scenario action into a request on the arena.
func (a *Arena) Queue(act data.Action) error {
	queue, err := a.prepare(act)
	if err != nil {
		return err
	}
	queue()
	return nil
}

// prepare resolves names and factions of act without touching the arena.
// The returned func queues the request.
func (a *Arena) prepare(act data.Action) (func(), error) {
	actor, err := a.lookup(act.Actor)
	if err != nil {
		return nil, err
	}
	switch act.Kind {
	case data.ActionAttack:
		target, err := a.lookup(act.Target)
		if err != nil {
			return nil, err
		}
		return func() { a.Attack(actor, target, act.Amount, act.Distance) }, nil
	case data.ActionHeal:
		target, err := a.lookup(act.Target)
		if err != nil {
			return nil, err
		}
		return func() { a.Heal(actor, target, act.Amount) }, nil
	case data.ActionJoin, data.ActionLeave:
		f, err := combat.ParseFaction(act.Faction)
		if err != nil {
			return nil, err
		}
		if act.Kind == data.ActionJoin {
			return func() { a.Join(actor, f) }, nil
		}
		return func() { a.Leave(actor, f) }, nil
	default:
		return nil, fmt.Errorf("unknown action kind %q", act.Kind)
	}
}

func (a *Arena) lookup(name string) (ecs.EntityID, error) {
	id, ok := a.State.Lookup(name)
	if !ok {
		return 0, fmt.Errorf("no entity named %q", name)
	}
	return id, nil
}

// Play runs one tick per scenario turn, at most maxTicks, then delivers the
// remaining events. Names are resolved when their turn starts, so a prop
// destroyed earlier can no longer be targeted.
//
// 一個回合內任一行動解析失敗時，整個回合都不會入列。
func (a *Arena) Play(s *data.Scenario, dt time.Duration, maxTicks int) error {
	for i, turn := range s.Turns {
		if i >= maxTicks {
			break
		}
		queued := make([]func(), 0, len(turn.Actions))
		for j, act := range turn.Actions {
			queue, err := a.prepare(act)
			if err != nil {
				return fmt.Errorf("turn %d action %d: %w", i+1, j+1, err)
			}
			queued = append(queued, queue)
		}
		for _, queue := range queued {
			queue()
		}
		a.Tick(dt)
	}
	a.Flush()
	return nil
}
