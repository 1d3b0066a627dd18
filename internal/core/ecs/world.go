package ecs

// World owns the entity pool, the registered component stores and the
// deferred destruction queue. Entities marked during a tick are removed when
// the cleanup phase flushes the queue.
type World struct {
	pool         *EntityPool
	stores       []Removable
	destroyQueue []EntityID
	queued       map[EntityID]struct{}
}

func NewWorld() *World {
	return &World{
		pool:   NewEntityPool(),
		queued: make(map[EntityID]struct{}),
	}
}

// Register adds a store to be cleared on entity destruction.
func (w *World) Register(store Removable) {
	w.stores = append(w.stores, store)
}

func (w *World) CreateEntity() EntityID { return w.pool.Create() }
func (w *World) Alive(id EntityID) bool { return w.pool.Alive(id) }
func (w *World) Len() int               { return w.pool.Len() }

// MarkForDestruction queues id for removal at the next flush. Marking twice
// is harmless.
func (w *World) MarkForDestruction(id EntityID) {
	if _, dup := w.queued[id]; dup || !w.pool.Alive(id) {
		return
	}
	w.queued[id] = struct{}{}
	w.destroyQueue = append(w.destroyQueue, id)
}

// Pending returns the number of entities awaiting destruction.
func (w *World) Pending() int { return len(w.destroyQueue) }

// FlushDestroyQueue destroys every queued entity, removes its components and
// returns the IDs in queue order.
func (w *World) FlushDestroyQueue() []EntityID {
	if len(w.destroyQueue) == 0 {
		return nil
	}
	flushed := make([]EntityID, 0, len(w.destroyQueue))
	for _, id := range w.destroyQueue {
		for _, s := range w.stores {
			s.Remove(id)
		}
		if w.pool.Destroy(id) {
			flushed = append(flushed, id)
		}
		delete(w.queued, id)
	}
	w.destroyQueue = w.destroyQueue[:0]
	return flushed
}
