package demo

import (
	"github.com/jakecoffman/cp"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/config"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/milk9111/vitality/ecs/entity"
	"github.com/milk9111/vitality/ecs/system"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ChangeSource reports edited prefab files.
type ChangeSource = system.ChangeSource

// Session is one running training-dummy simulation: a world, the bus its
// controllers publish on, and the systems that advance it. It has no window
// and is driven either by the ebiten game or by RunHeadless.
type Session struct {
	cfg config.Game
	log zerolog.Logger

	World     *ecs.World
	Bus       *ecs.Bus
	Scheduler *ecs.Scheduler
	Bars      *system.HealthBarSystem
	Cues      *system.CueSystem

	spawner *system.Spawner
	scripts *system.ScriptHooks
	unsub   func()

	target  ecs.Entity
	mourned ecs.Entity
	frames  int
	deaths  int
}

// NewSession builds the world and spawns cfg.Prefab as the target. source may
// be nil when hot reload is off.
func NewSession(cfg config.Game, source ChangeSource, logger zerolog.Logger) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	w := ecs.NewWorld()
	bus := ecs.NewBus()
	s := &Session{
		cfg:   cfg,
		log:   logger,
		World: w,
		Bus:   bus,
	}

	s.spawner = system.NewSpawner(w, nil, logger)
	s.scripts = system.NewScriptHooks(w, nil, logger)
	s.Bars = system.NewHealthBarSystem(w, bus)
	s.Cues = system.NewCueSystem(logger)
	s.unsub = bus.SubscribeAll(s.logMessage)

	var reload ecs.System
	if source != nil {
		reload = system.NewReloadSystem(source, s.scripts, s.spawner, logger)
	}

	s.Scheduler = ecs.NewScheduler(
		reload,
		system.NewVitalityRequestSystem(),
		system.NewVitalitySystem(cfg.DT(), logger),
		s.Cues,
		system.NewDeathSystem(logger),
		system.NewTTLSystem(),
		s.Bars,
	)

	if err := s.Respawn(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close detaches the session's bus listeners.
func (s *Session) Close() {
	if s == nil {
		return
	}
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.Bars.Close()
}

// Step advances the simulation by one tick.
func (s *Session) Step() {
	s.Scheduler.Update(s.World)
	s.frames++
	if s.mourned != s.target && ecs.Has(s.World, s.target, component.DeadComponent.Kind()) {
		s.mourned = s.target
		s.deaths++
	}
}

// Respawn replaces the target with a fresh entity built from the configured
// prefab.
func (s *Session) Respawn() error {
	if s.target.Valid() && ecs.IsAlive(s.World, s.target) {
		ecs.DestroyEntity(s.World, s.target)
	}

	e, err := entity.NewVitality(s.World, entity.Deps{
		Bus:     s.Bus,
		Spawner: s.spawner,
		Scripts: s.scripts,
	}, s.cfg.Prefab)
	if err != nil {
		return eris.Wrapf(err, "demo: spawn %s", s.cfg.Prefab)
	}
	if err := ecs.Add(s.World, e, component.TargetTagComponent.Kind(), &component.TargetTag{}); err != nil {
		return eris.Wrap(err, "demo: tag target")
	}
	s.target = e
	s.log.Info().Str("prefab", s.cfg.Prefab).Stringer("entity", e).Msg("target spawned")
	return nil
}

// Target returns the current target entity. It may have been despawned.
func (s *Session) Target() ecs.Entity {
	return s.target
}

// Controller returns the target's vitality controller, or nil once the body
// has been despawned.
func (s *Session) Controller() *vitality.Vitality {
	v, ok := ecs.Get(s.World, s.target, component.VitalityComponent.Kind())
	if !ok {
		return nil
	}
	return v.Controller
}

// Position returns where the target stands.
func (s *Session) Position() (cp.Vector, bool) {
	t, ok := ecs.Get(s.World, s.target, component.TransformComponent.Kind())
	if !ok {
		return cp.Vector{}, false
	}
	return t.Position, true
}

// HitAt queues configured hit damage landing at pos.
func (s *Session) HitAt(pos cp.Vector) error {
	return s.queue(component.OpDamage, s.cfg.HitDamage, &pos)
}

// Kill queues damage large enough to empty armor and then life.
func (s *Session) Kill() error {
	ctrl := s.Controller()
	if ctrl == nil {
		return nil
	}
	if ctrl.Armor() > 0 {
		if err := s.queue(component.OpDamage, ctrl.Armor(), nil); err != nil {
			return err
		}
	}
	return s.queue(component.OpDamage, ctrl.Life()+1, nil)
}

// Heal queues the configured heal amount on life.
func (s *Session) Heal() error {
	return s.queue(component.OpHeal, s.cfg.HealAmount, nil)
}

// HealArmor queues the configured heal amount on armor.
func (s *Session) HealArmor() error {
	return s.queue(component.OpHealArmor, s.cfg.HealAmount, nil)
}

func (s *Session) queue(op component.VitalityOp, amount float64, at *cp.Vector) error {
	if !ecs.IsAlive(s.World, s.target) {
		return nil
	}
	return system.Hit(s.World, s.target, op, amount, at)
}

// Frames returns how many ticks have run.
func (s *Session) Frames() int {
	return s.frames
}

// Deaths returns how many targets have died in this session.
func (s *Session) Deaths() int {
	return s.deaths
}

func (s *Session) logMessage(msg vitality.Message) {
	switch m := msg.(type) {
	case vitality.LifeChanged:
		s.log.Debug().Str("character_type", string(m.Type)).
			Float64("prior", m.Prior).Float64("current", m.Current).Float64("max", m.Max).
			Msg(m.Topic())
	case vitality.ArmorChanged:
		s.log.Debug().Str("character_type", string(m.Type)).
			Float64("prior", m.Prior).Float64("current", m.Current).Float64("max", m.Max).
			Msg(m.Topic())
	}
}
