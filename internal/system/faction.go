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

type factionChange struct {
	entity  ecs.EntityID
	faction combat.Faction
	join    bool
}

// FactionSystem 套用佇列中的加入/退出陣營（Phase 0），
// 確保同一 tick 的戰鬥結算前陣營關係已確定。
type FactionSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger

	changes []factionChange
}

func NewFactionSystem(state *world.State, bus *event.Bus, log *zap.Logger) *FactionSystem {
	return &FactionSystem{
		state: state,
		bus:   bus,
		log:   log.With(zap.String("component", "faction")),
	}
}

func (s *FactionSystem) Phase() coresys.Phase { return coresys.PhaseInput }

func (s *FactionSystem) QueueJoin(id ecs.EntityID, f combat.Faction) {
	s.changes = append(s.changes, factionChange{entity: id, faction: f, join: true})
}

func (s *FactionSystem) QueueLeave(id ecs.EntityID, f combat.Faction) {
	s.changes = append(s.changes, factionChange{entity: id, faction: f})
}

func (s *FactionSystem) Update(_ time.Duration) {
	for _, ch := range s.changes {
		c, ok := s.state.Character(ch.entity)
		if !ok {
			s.log.Warn("faction change for unknown character", zap.Stringer("entity", ch.entity))
			continue
		}
		if ch.join {
			c.JoinFaction(ch.faction)
		} else {
			c.LeaveFaction(ch.faction)
		}
		s.log.Debug("faction changed",
			zap.String("character", s.state.NameOf(ch.entity)),
			zap.Stringer("faction", ch.faction),
			zap.Bool("joined", ch.join),
		)
		event.Emit(s.bus, event.FactionChanged{
			Match:   s.state.Match,
			Entity:  ch.entity,
			Name:    s.state.NameOf(ch.entity),
			Faction: ch.faction.String(),
			Joined:  ch.join,
		})
	}
	s.changes = s.changes[:0]
}
