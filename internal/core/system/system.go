package system

import "time"

// Phase orders systems within a single tick.
type Phase int

const (
	PhaseInput     Phase = iota // 陣營變更
	PhasePreUpdate              // 派送上一 tick 的事件
	PhaseUpdate                 // 戰鬥結算
	PhaseCleanup                // 銷毀排隊中的實體
)

// System is the interface every tick system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}
