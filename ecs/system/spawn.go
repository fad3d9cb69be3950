package system

import (
	"image/color"

	"github.com/jakecoffman/cp"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/milk9111/vitality/prefabs"
	"github.com/rs/zerolog"
)

// EffectLoader resolves a spawn template name to its effect prefab.
type EffectLoader func(name string) (*prefabs.EffectSpec, error)

// Spawner creates effect entities in a world when a vitality controller asks
// for them. Effect prefabs are loaded once and cached by name.
type Spawner struct {
	world *ecs.World
	load  EffectLoader
	cache map[string]*prefabs.EffectSpec
	log   zerolog.Logger
}

var _ vitality.Spawner = (*Spawner)(nil)

func NewSpawner(w *ecs.World, load EffectLoader, logger zerolog.Logger) *Spawner {
	if load == nil {
		load = prefabs.LoadEffectSpec
	}
	return &Spawner{
		world: w,
		load:  load,
		cache: make(map[string]*prefabs.EffectSpec),
		log:   logger,
	}
}

// Spawn creates one effect entity at pos with a zero rotation. Templates that
// fail to load are logged and skipped.
func (s *Spawner) Spawn(tmpl vitality.SpawnTemplate, pos cp.Vector) {
	if s == nil || s.world == nil {
		return
	}

	spec, err := s.spec(tmpl.Name)
	if err != nil {
		s.log.Warn().Err(err).Str("template", tmpl.Name).Msg("spawn template unavailable")
		return
	}

	e := ecs.CreateEntity(s.world)
	_ = ecs.Add(s.world, e, component.TransformComponent.Kind(), &component.Transform{Position: pos})
	_ = ecs.Add(s.world, e, component.EffectComponent.Kind(), &component.Effect{
		Template: tmpl.Name,
		Color:    effectColor(spec),
		Radius:   spec.Radius,
	})
	_ = ecs.Add(s.world, e, component.TTLComponent.Kind(), &component.TTL{Frames: spec.TTLFrames})

	s.world.Events().Push(ecs.Event{Type: ecs.EventSpawned, Entity: e, Name: tmpl.Name, Data: pos})
}

// Forget drops a cached template so the next spawn reloads it.
func (s *Spawner) Forget(name string) {
	if s == nil {
		return
	}
	delete(s.cache, name)
}

func (s *Spawner) spec(name string) (*prefabs.EffectSpec, error) {
	if spec, ok := s.cache[name]; ok {
		return spec, nil
	}
	spec, err := s.load(name)
	if err != nil {
		return nil, err
	}
	s.cache[name] = spec
	return spec, nil
}

func effectColor(spec *prefabs.EffectSpec) color.Color {
	if spec == nil || spec.Color == nil || spec.Color.Color == nil {
		return color.White
	}
	return spec.Color.Color
}
