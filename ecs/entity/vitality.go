package entity

import (
	"github.com/jakecoffman/cp"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/milk9111/vitality/ecs/system"
	"github.com/milk9111/vitality/prefabs"
	"github.com/rotisserie/eris"
)

// Deps are the collaborators every vitality entity is wired to.
type Deps struct {
	Bus     *ecs.Bus
	Spawner vitality.Spawner
	Scripts *system.ScriptHooks
}

// NewVitality loads the named vitality prefab and builds an entity from it.
func NewVitality(w *ecs.World, deps Deps, prefab string) (ecs.Entity, error) {
	spec, err := prefabs.LoadVitalitySpec(prefab)
	if err != nil {
		return 0, eris.Wrap(err, "vitality: load spec")
	}
	return BuildVitality(w, deps, prefab, spec)
}

// BuildVitality creates an entity with a Transform and a vitality controller
// configured from spec. Death reactions run in the order the prefab lists
// them; the world death event is raised after all of them.
func BuildVitality(w *ecs.World, deps Deps, prefab string, spec *prefabs.VitalitySpec) (ecs.Entity, error) {
	if spec == nil {
		return 0, eris.Wrap(prefabs.ErrInvalidSpec, "vitality: nil spec")
	}

	e := ecs.CreateEntity(w)

	if err := ecs.Add(w, e, component.TransformComponent.Kind(), &component.Transform{
		Position: cp.Vector{X: spec.Transform.X, Y: spec.Transform.Y},
		Rotation: spec.Transform.Rotation,
	}); err != nil {
		return 0, eris.Wrap(err, "vitality: add transform")
	}

	cfg := vitality.VitalityConfig{
		Type:       vitality.CharacterType(spec.CharacterType),
		Life:       spec.Life,
		MaxLife:    spec.MaxLife,
		LifeRegen:  spec.LifeRegen,
		Armor:      spec.Armor,
		MaxArmor:   spec.MaxArmor,
		ArmorRegen: spec.ArmorRegen,
	}
	for _, name := range spec.SpawnOnDamage {
		cfg.SpawnOnDamage = append(cfg.SpawnOnDamage, vitality.SpawnTemplate{Name: name})
	}

	var notifier vitality.Notifier
	if deps.Bus != nil {
		notifier = deps.Bus
	}
	ctrl := vitality.NewVitality(cfg, notifier, deps.Spawner)

	for i, d := range spec.OnDeath {
		switch {
		case d.Emit != "":
			ctrl.OnDeath(emitCue(w, e, d.Emit))
		case d.Script != "":
			if deps.Scripts == nil {
				ecs.DestroyEntity(w, e)
				return 0, eris.Errorf("vitality: on_death[%d] needs a script runtime", i)
			}
			fn, err := deps.Scripts.DeathFunc(d.Script, e, ctrl)
			if err != nil {
				ecs.DestroyEntity(w, e)
				return 0, eris.Wrapf(err, "vitality: on_death[%d]", i)
			}
			ctrl.OnDeath(fn)
		}
	}
	ctrl.OnDeath(func() {
		w.Events().Push(ecs.Event{Type: ecs.EventDeath, Entity: e, Name: spec.Name})
	})

	if err := ecs.Add(w, e, component.VitalityComponent.Kind(), &component.Vitality{
		Controller: ctrl,
		Prefab:     prefab,
	}); err != nil {
		return 0, eris.Wrap(err, "vitality: add vitality")
	}

	if spec.DespawnAfter > 0 {
		if err := ecs.Add(w, e, component.DespawnComponent.Kind(), &component.Despawn{AfterFrames: spec.DespawnAfter}); err != nil {
			return 0, eris.Wrap(err, "vitality: add despawn")
		}
	}

	return e, nil
}

func emitCue(w *ecs.World, e ecs.Entity, name string) vitality.DeathFunc {
	return func() {
		w.Events().Push(ecs.Event{Type: ecs.EventScripted, Entity: e, Name: name})
	}
}
