package system

import (
	"github.com/milk9111/vitality/ecs"
	"github.com/rs/zerolog"
)

// CueSystem consumes named events emitted by death reactions and scripts,
// counts them, and forwards them to an optional handler such as an audio or
// banner layer. Spawned effects are counted by template.
type CueSystem struct {
	Counts  map[string]int
	Spawned map[string]int
	Handler func(ecs.Event)
	log     zerolog.Logger
}

func NewCueSystem(logger zerolog.Logger) *CueSystem {
	return &CueSystem{
		Counts:  make(map[string]int),
		Spawned: make(map[string]int),
		log:     logger,
	}
}

func (s *CueSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	for _, evt := range w.Events().Take(ecs.EventSpawned) {
		s.Spawned[evt.Name]++
		s.log.Debug().Str("template", evt.Name).Stringer("entity", evt.Entity).Interface("at", evt.Data).Msg("effect spawned")
	}
	for _, evt := range w.Events().Take(ecs.EventScripted) {
		s.Counts[evt.Name]++
		s.log.Debug().Str("cue", evt.Name).Stringer("entity", evt.Entity).Msg("cue")
		if s.Handler != nil {
			s.Handler(evt)
		}
	}
}
