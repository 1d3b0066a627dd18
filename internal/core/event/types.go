package event

import (
	"github.com/google/uuid"

	"github.com/combatkata/arena/internal/core/ecs"
)

// 戰鬥事件。Match 標示產生事件的場次。
// 事件延後一個 tick 才派送，屆時實體可能已被清除，
// 因此名稱在發射當下一併寫入事件，訂閱者不需回查 world.State。

type EntityDamaged struct {
	Match        uuid.UUID
	Attacker     ecs.EntityID
	AttackerName string
	Target       ecs.EntityID
	TargetName   string
	Damage       int // requested
	Applied      int // removed from health
	Remaining    int
}

type AttackRejected struct {
	Match        uuid.UUID
	Attacker     ecs.EntityID
	AttackerName string
	Target       ecs.EntityID
	TargetName   string
	Reason       string
}

type EntityKilled struct {
	Match      uuid.UUID
	Killer     ecs.EntityID
	KillerName string
	Victim     ecs.EntityID
	VictimName string
}

type PropDestroyed struct {
	Match        uuid.UUID
	Attacker     ecs.EntityID
	AttackerName string
	Prop         ecs.EntityID
	PropName     string
}

type EntityHealed struct {
	Match      uuid.UUID
	Healer     ecs.EntityID
	HealerName string
	Target     ecs.EntityID
	TargetName string
	Healed     int
}

type HealRejected struct {
	Match      uuid.UUID
	Healer     ecs.EntityID
	HealerName string
	Target     ecs.EntityID
	TargetName string
	Reason     string
}

type FactionChanged struct {
	Match   uuid.UUID
	Entity  ecs.EntityID
	Name    string
	Faction string
	Joined  bool
}
