package system

import (
	"path"
	"strings"

	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/milk9111/vitality/prefabs"
	"github.com/rs/zerolog"
)

// ChangeSource reports prefab files edited since the last poll.
type ChangeSource interface {
	Poll() []string
}

// ErrorSource is implemented by change sources that can fail, such as the
// prefab watcher.
type ErrorSource interface {
	PollErrors() []error
}

// ReloadSystem applies edited prefabs to the running world. Scripts and
// effect templates are dropped from their caches; vitality prefabs push new
// max life and regen into live controllers through their administrative
// setters so observers refresh.
type ReloadSystem struct {
	source  ChangeSource
	scripts *ScriptHooks
	spawner *Spawner
	load    func(name string) (*prefabs.VitalitySpec, error)
	log     zerolog.Logger
}

func NewReloadSystem(source ChangeSource, scripts *ScriptHooks, spawner *Spawner, logger zerolog.Logger) *ReloadSystem {
	return &ReloadSystem{
		source:  source,
		scripts: scripts,
		spawner: spawner,
		load:    prefabs.LoadVitalitySpec,
		log:     logger,
	}
}

func (s *ReloadSystem) Update(w *ecs.World) {
	if s == nil || s.source == nil || w == nil {
		return
	}
	if errs, ok := s.source.(ErrorSource); ok {
		for _, err := range errs.PollErrors() {
			s.log.Error().Err(err).Msg("prefab watcher failed, edits may be missed")
		}
	}
	for _, changed := range s.source.Poll() {
		s.apply(w, prefabs.RelPath(changed))
	}
}

func (s *ReloadSystem) apply(w *ecs.World, name string) {
	switch {
	case strings.HasSuffix(name, ".tengo"):
		s.scripts.Invalidate(name)
		s.log.Info().Str("script", name).Msg("script reloaded")
	case strings.HasPrefix(name, "effects/"):
		s.spawner.Forget(strings.TrimSuffix(path.Base(name), path.Ext(name)))
		s.log.Info().Str("template", name).Msg("effect reloaded")
	default:
		s.applyVitality(w, name)
	}
}

func (s *ReloadSystem) applyVitality(w *ecs.World, name string) {
	spec, err := s.load(name)
	if err != nil {
		s.log.Warn().Err(err).Str("prefab", name).Msg("prefab reload failed")
		return
	}

	ecs.ForEach(w, component.VitalityComponent.Kind(), func(e ecs.Entity, v *component.Vitality) {
		if v.Prefab != name || v.Controller == nil {
			return
		}
		ctrl := v.Controller
		if spec.MaxLife != ctrl.MaxLife() {
			ctrl.SetMaxLife(spec.MaxLife)
		}
		if delta := spec.LifeRegen - ctrl.LifeRegen(); delta != 0 {
			ctrl.AddLifeRegen(delta)
		}
		s.log.Info().Str("prefab", name).Stringer("entity", e).
			Float64("max_life", ctrl.MaxLife()).
			Float64("life_regen", ctrl.LifeRegen()).
			Msg("prefab reloaded")
	})
}
