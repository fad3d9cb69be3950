package system

import (
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
)

// TTLSystem counts down TTL components and destroys entities whose TTL runs
// out.
type TTLSystem struct{}

func NewTTLSystem() *TTLSystem {
	return &TTLSystem{}
}

func (s *TTLSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach(w, component.TTLComponent.Kind(), func(e ecs.Entity, ttl *component.TTL) {
		ttl.Frames--
		if ttl.Frames > 0 {
			return
		}
		ecs.DestroyEntity(w, e)
	})
}
