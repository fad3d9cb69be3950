package system

import (
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/prefabs"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

// ScriptLoader returns the source of a death script.
type ScriptLoader func(name string) ([]byte, error)

// ScriptHooks compiles tengo death scripts and turns them into death
// callbacks. A script sees the globals character_type, life and max_life and
// can call emit(name) and log(msg).
type ScriptHooks struct {
	world *ecs.World
	load  ScriptLoader
	cache map[string]*tengo.Compiled
	log   zerolog.Logger
}

func NewScriptHooks(w *ecs.World, load ScriptLoader, logger zerolog.Logger) *ScriptHooks {
	if load == nil {
		load = prefabs.LoadScript
	}
	return &ScriptHooks{
		world: w,
		load:  load,
		cache: make(map[string]*tengo.Compiled),
		log:   logger,
	}
}

// DeathFunc compiles path now so broken scripts fail at build time, and
// returns a callback that runs the script for e when v dies. Runtime errors
// are logged and do not stop later callbacks.
func (h *ScriptHooks) DeathFunc(path string, e ecs.Entity, v *vitality.Vitality) (vitality.DeathFunc, error) {
	if _, err := h.compiled(path); err != nil {
		return nil, err
	}
	return func() {
		if err := h.Run(path, e, v); err != nil {
			h.log.Error().Err(err).Str("script", path).Stringer("entity", e).Msg("death script failed")
		}
	}, nil
}

// Run executes path once for e.
func (h *ScriptHooks) Run(path string, e ecs.Entity, v *vitality.Vitality) error {
	base, err := h.compiled(path)
	if err != nil {
		return err
	}

	run := base.Clone()
	globals := map[string]any{
		"character_type": string(v.CharacterType()),
		"life":           v.Life(),
		"max_life":       v.MaxLife(),
		"emit":           h.emitFunc(e),
		"log":            h.logFunc(path, e),
	}
	for name, value := range globals {
		if err := run.Set(name, value); err != nil {
			return eris.Wrapf(err, "script %s: set %s", path, name)
		}
	}
	if err := run.Run(); err != nil {
		return eris.Wrapf(err, "script %s", path)
	}
	return nil
}

// Invalidate drops the compiled copy of path so the next death recompiles it.
func (h *ScriptHooks) Invalidate(path string) {
	if h == nil {
		return
	}
	delete(h.cache, strings.TrimPrefix(path, "scripts/"))
}

func (h *ScriptHooks) compiled(path string) (*tengo.Compiled, error) {
	key := strings.TrimPrefix(path, "scripts/")
	if c, ok := h.cache[key]; ok {
		return c, nil
	}

	src, err := h.load(path)
	if err != nil {
		return nil, eris.Wrapf(err, "load script %s", path)
	}

	script := tengo.NewScript(src)
	noop := &tengo.UserFunction{Name: "noop", Value: func(...tengo.Object) (tengo.Object, error) {
		return tengo.UndefinedValue, nil
	}}
	_ = script.Add("character_type", "")
	_ = script.Add("life", 0.0)
	_ = script.Add("max_life", 0.0)
	_ = script.Add("emit", noop)
	_ = script.Add("log", noop)
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, eris.Wrapf(err, "compile script %s", path)
	}
	h.cache[key] = compiled
	return compiled, nil
}

func (h *ScriptHooks) emitFunc(e ecs.Entity) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "emit", Value: func(args ...tengo.Object) (tengo.Object, error) {
		if len(args) < 1 {
			return tengo.FalseValue, nil
		}
		name := strings.TrimSpace(objectAsString(args[0]))
		if name == "" || h.world == nil {
			return tengo.FalseValue, nil
		}
		h.world.Events().Push(ecs.Event{Type: ecs.EventScripted, Entity: e, Name: name})
		return tengo.TrueValue, nil
	}}
}

func (h *ScriptHooks) logFunc(path string, e ecs.Entity) *tengo.UserFunction {
	return &tengo.UserFunction{Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, objectAsString(a))
		}
		h.log.Info().Str("script", path).Stringer("entity", e).Msg(strings.Join(parts, " "))
		return tengo.UndefinedValue, nil
	}}
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	default:
		return strings.Trim(v.String(), "\"")
	}
}
