package system

import (
	"time"

	"go.uber.org/zap"

	coresys "github.com/combatkata/arena/internal/core/system"
	"github.com/combatkata/arena/internal/world"
)

// CleanupSystem flushes the deferred entity destruction queue at tick end.
// Phase 3 (Cleanup).
type CleanupSystem struct {
	state *world.State
	log   *zap.Logger
}

func NewCleanupSystem(state *world.State, log *zap.Logger) *CleanupSystem {
	return &CleanupSystem{state: state, log: log}
}

func (s *CleanupSystem) Phase() coresys.Phase { return coresys.PhaseCleanup }

func (s *CleanupSystem) Update(_ time.Duration) {
	removed := s.state.ECS().FlushDestroyQueue()
	if len(removed) == 0 {
		return
	}
	for _, id := range removed {
		s.log.Debug("entity removed", zap.String("name", s.state.NameOf(id)))
	}
	s.state.Forget(removed)
}
