package system

import (
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/rs/zerolog"
)

// VitalitySystem activates new vitality controllers and runs their
// regeneration once per update.
type VitalitySystem struct {
	// DT is the simulated seconds per update.
	DT  float64
	log zerolog.Logger
}

func NewVitalitySystem(dt float64, logger zerolog.Logger) *VitalitySystem {
	return &VitalitySystem{DT: dt, log: logger}
}

func (s *VitalitySystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.VitalityComponent.Kind(), func(e ecs.Entity, v *component.Vitality) {
		ctrl := v.Controller
		if ctrl == nil {
			return
		}
		if !ctrl.Activated() {
			s.log.Debug().
				Stringer("entity", e).
				Str("character_type", string(ctrl.CharacterType())).
				Float64("life", ctrl.Life()).
				Float64("armor", ctrl.Armor()).
				Msg("vitality activated")
			ctrl.Activate()
		}
		ctrl.Tick(s.DT)
	})
}
