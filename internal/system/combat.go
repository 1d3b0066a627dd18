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

// AttackRequest asks Target to take an attack from Attacker.
type AttackRequest struct {
	Attacker ecs.EntityID
	Target   ecs.EntityID
	Damage   int
	Distance int
}

// HealRequest asks Target to be healed by Healer.
type HealRequest struct {
	Healer ecs.EntityID
	Target ecs.EntityID
	Amount int
}

// CombatSystem 處理佇列中的攻擊與治療請求（Phase 2），依入列順序結算。
// 指向不存在實體的請求記錄警告後丟棄。
type CombatSystem struct {
	state *world.State
	bus   *event.Bus
	log   *zap.Logger

	pending []func()
}

func NewCombatSystem(state *world.State, bus *event.Bus, log *zap.Logger) *CombatSystem {
	return &CombatSystem{
		state: state,
		bus:   bus,
		log:   log.With(zap.String("component", "combat"), zap.Stringer("match", state.Match)),
	}
}

func (s *CombatSystem) Phase() coresys.Phase { return coresys.PhaseUpdate }

func (s *CombatSystem) QueueAttack(req AttackRequest) {
	s.pending = append(s.pending, func() { s.processAttack(req) })
}

func (s *CombatSystem) QueueHeal(req HealRequest) {
	s.pending = append(s.pending, func() { s.processHeal(req) })
}

func (s *CombatSystem) Update(_ time.Duration) {
	for _, run := range s.pending {
		run()
	}
	s.pending = s.pending[:0]
}

// ==================== 攻擊 ====================

func (s *CombatSystem) processAttack(req AttackRequest) {
	attacker, ok := s.state.Character(req.Attacker)
	if !ok {
		s.log.Warn("attack from unknown character", zap.Stringer("attacker", req.Attacker))
		return
	}
	target, err := s.state.Target(req.Target)
	if err != nil {
		s.log.Warn("attack on unknown target", zap.Stringer("target", req.Target), zap.Error(err))
		return
	}

	// 名稱必須在結算前取得：被摧毀的道具會在本 tick 的 Cleanup 階段移除
	attackerName := s.state.NameOf(req.Attacker)
	targetName := s.state.NameOf(req.Target)

	out := target.Resolve(attacker, req.Damage, req.Distance)

	fields := []zap.Field{
		zap.String("attacker", attackerName),
		zap.String("target", targetName),
		zap.Int("damage", req.Damage),
		zap.Int("distance", req.Distance),
		zap.Stringer("reason", out.Reason),
	}

	// 同陣營、超出射程、攻擊自己：合法結果，不扣血
	if !out.Landed() {
		s.log.Debug("attack rejected", fields...)
		event.Emit(s.bus, event.AttackRejected{
			Match:        s.state.Match,
			Attacker:     req.Attacker,
			AttackerName: attackerName,
			Target:       req.Target,
			TargetName:   targetName,
			Reason:       out.Reason.String(),
		})
		return
	}

	s.log.Debug("attack resolved", append(fields,
		zap.Int("applied", out.Applied),
		zap.Stringer("modifier", out.Modifier),
		zap.Int("hp_after", target.Health()),
	)...)
	event.Emit(s.bus, event.EntityDamaged{
		Match:        s.state.Match,
		Attacker:     req.Attacker,
		AttackerName: attackerName,
		Target:       req.Target,
		TargetName:   targetName,
		Damage:       req.Damage,
		Applied:      out.Applied,
		Remaining:    target.Health(),
	})

	if !out.Killed {
		return
	}
	switch target.(type) {
	case *combat.Prop:
		// 道具摧毀後排入清除佇列；角色死亡則保留屍體
		s.log.Info("prop destroyed", fields[:2]...)
		event.Emit(s.bus, event.PropDestroyed{
			Match:        s.state.Match,
			Attacker:     req.Attacker,
			AttackerName: attackerName,
			Prop:         req.Target,
			PropName:     targetName,
		})
		s.state.Remove(req.Target)
	default:
		s.log.Info("character killed", fields[:2]...)
		event.Emit(s.bus, event.EntityKilled{
			Match:      s.state.Match,
			Killer:     req.Attacker,
			KillerName: attackerName,
			Victim:     req.Target,
			VictimName: targetName,
		})
	}
}

// ==================== 治療 ====================

func (s *CombatSystem) processHeal(req HealRequest) {
	healer, ok := s.state.Character(req.Healer)
	if !ok {
		s.log.Warn("heal from unknown character", zap.Stringer("healer", req.Healer))
		return
	}
	target, ok := s.state.Character(req.Target)
	if !ok {
		s.log.Warn("heal on unknown character", zap.Stringer("target", req.Target))
		return
	}

	healerName := s.state.NameOf(req.Healer)
	targetName := s.state.NameOf(req.Target)

	out := target.ResolveHeal(healer, req.Amount)
	if out.Reason != combat.Healed {
		s.log.Debug("heal rejected",
			zap.String("healer", healerName),
			zap.String("target", targetName),
			zap.Stringer("reason", out.Reason),
		)
		event.Emit(s.bus, event.HealRejected{
			Match:      s.state.Match,
			Healer:     req.Healer,
			HealerName: healerName,
			Target:     req.Target,
			TargetName: targetName,
			Reason:     out.Reason.String(),
		})
		return
	}

	s.log.Debug("heal resolved",
		zap.String("healer", healerName),
		zap.String("target", targetName),
		zap.Int("healed", out.Healed),
		zap.Int("hp_after", target.Health()),
	)
	event.Emit(s.bus, event.EntityHealed{
		Match:      s.state.Match,
		Healer:     req.Healer,
		HealerName: healerName,
		Target:     req.Target,
		TargetName: targetName,
		Healed:     out.Healed,
	})
}
