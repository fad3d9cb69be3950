package system

import (
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/rs/zerolog"
)

// DeathSystem turns death events into Dead markers and removes the bodies of
// entities marked Despawn once their linger runs out.
type DeathSystem struct {
	frame int
	log   zerolog.Logger
}

func NewDeathSystem(logger zerolog.Logger) *DeathSystem {
	return &DeathSystem{log: logger}
}

func (s *DeathSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	s.frame++

	for _, evt := range w.Events().Take(ecs.EventDeath) {
		if !ecs.IsAlive(w, evt.Entity) || ecs.Has(w, evt.Entity, component.DeadComponent.Kind()) {
			continue
		}
		dead := &component.Dead{Frame: s.frame, Linger: -1}
		if d, ok := ecs.Get(w, evt.Entity, component.DespawnComponent.Kind()); ok {
			dead.Linger = d.AfterFrames
		}
		_ = ecs.Add(w, evt.Entity, component.DeadComponent.Kind(), dead)
		s.log.Info().Stringer("entity", evt.Entity).Int("frame", s.frame).Msg("entity died")
	}

	ecs.ForEach(w, component.DeadComponent.Kind(), func(e ecs.Entity, dead *component.Dead) {
		if dead.Linger < 0 {
			return
		}
		if dead.Linger > 0 {
			dead.Linger--
			return
		}
		s.log.Debug().Stringer("entity", e).Msg("despawning body")
		ecs.DestroyEntity(w, e)
	})
}
