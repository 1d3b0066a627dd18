package system

import (
	"time"

	"go.uber.org/zap"

	"github.com/combatkata/arena/internal/combat"
	"github.com/combatkata/arena/internal/core/ecs"
	"github.com/combatkata/arena/internal/core/event"
	coresys "github.com/combatkata/arena/internal/core/system"
	"github.com/combatkata/arena/internal/world"
)

// Arena wires a world.State to the tick systems. One Arena per match.
type Arena struct {
	State  *world.State
	Bus    *event.Bus
	runner *coresys.Runner

	combat   *CombatSystem
	factions *FactionSystem
}

func NewArena(state *world.State, log *zap.Logger) *Arena {
	bus := event.NewBus()
	a := &Arena{
		State:    state,
		Bus:      bus,
		runner:   coresys.NewRunner(),
		combat:   NewCombatSystem(state, bus, log),
		factions: NewFactionSystem(state, bus, log),
	}
	a.runner.Register(a.factions)
	a.runner.Register(NewEventDispatchSystem(bus))
	a.runner.Register(a.combat)
	a.runner.Register(NewCleanupSystem(state, log))
	return a
}

func (a *Arena) Attack(attacker, target ecs.EntityID, damage, distance int) {
	a.combat.QueueAttack(AttackRequest{Attacker: attacker, Target: target, Damage: damage, Distance: distance})
}

func (a *Arena) Heal(healer, target ecs.EntityID, amount int) {
	a.combat.QueueHeal(HealRequest{Healer: healer, Target: target, Amount: amount})
}

func (a *Arena) Join(id ecs.EntityID, f combat.Faction)  { a.factions.QueueJoin(id, f) }
func (a *Arena) Leave(id ecs.EntityID, f combat.Faction) { a.factions.QueueLeave(id, f) }

// Tick runs one full tick. Events produced by it are delivered at the start
// of the next tick, or by Flush.
func (a *Arena) Tick(dt time.Duration) { a.runner.Tick(dt) }

// Flush delivers events still waiting in the bus without running a tick.
func (a *Arena) Flush() {
	a.Bus.SwapBuffers()
	a.Bus.DispatchAll()
}

func (a *Arena) Ticks() uint64 { return a.runner.Ticks() }
