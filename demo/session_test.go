package demo

import (
	"context"
	"math/rand"
	"testing"

	"github.com/jakecoffman/cp"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/config"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSession(t *testing.T) *Session {
	t.Helper()
	s, err := NewSession(config.Default(), nil, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestNewSessionSpawnsTarget(t *testing.T) {
	s := newSession(t)

	require.True(t, ecs.IsAlive(s.World, s.Target()))
	assert.True(t, ecs.Has(s.World, s.Target(), component.TargetTagComponent.Kind()))

	pos, ok := s.Position()
	require.True(t, ok)
	assert.Equal(t, cp.Vector{X: 640, Y: 360}, pos)

	s.Step()

	bar, ok := s.Bars.Bar(vitality.CharacterEnemy)
	require.True(t, ok)
	assert.Equal(t, 100.0, bar.MaxLife)
	assert.Equal(t, 40.0, bar.MaxArmor)
}

func TestNewSessionErrors(t *testing.T) {
	cfg := config.Default()
	cfg.TPS = 0
	_, err := NewSession(cfg, nil, zerolog.Nop())
	assert.ErrorIs(t, err, config.ErrInvalidConfig)

	cfg = config.Default()
	cfg.Prefab = "missing.yaml"
	_, err = NewSession(cfg, nil, zerolog.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.yaml")
}

func TestSessionHitGoesToArmorFirst(t *testing.T) {
	s := newSession(t)
	s.Step()

	require.NoError(t, s.HitAt(cp.Vector{X: 600, Y: 350}))
	s.Step()

	ctrl := s.Controller()
	require.NotNil(t, ctrl)
	assert.Equal(t, 100.0, ctrl.Life())
	assert.Equal(t, 25.0, ctrl.Armor())
	assert.Zero(t, ecs.Count(s.World, component.EffectComponent.Kind()))
}

func TestSessionHealArmor(t *testing.T) {
	s := newSession(t)
	require.NoError(t, s.HealArmor())
	s.Step()

	assert.Equal(t, 50.0, s.Controller().Armor())
}

func TestSessionKillAndDespawn(t *testing.T) {
	s := newSession(t)
	s.Step()

	require.NoError(t, s.Kill())
	s.Step()

	ctrl := s.Controller()
	require.NotNil(t, ctrl)
	assert.False(t, ctrl.IsAlive())
	assert.Equal(t, 1, s.Deaths())
	assert.Equal(t, 1, s.Cues.Counts["dummy_destroyed"])
	assert.Equal(t, 6, s.Cues.Counts["burst"])

	require.NoError(t, s.Heal())
	s.Step()
	assert.Less(t, s.Controller().Life(), 0.0)

	for i := 0; i < 100; i++ {
		s.Step()
	}
	assert.Nil(t, s.Controller())
	assert.False(t, ecs.IsAlive(s.World, s.Target()))
	assert.Equal(t, 1, s.Deaths())

	require.NoError(t, s.Kill())
	require.NoError(t, s.Respawn())
	s.Step()
	require.NotNil(t, s.Controller())
	assert.True(t, s.Controller().IsAlive())
}

func TestRunHeadless(t *testing.T) {
	s := newSession(t)

	sum, err := RunHeadless(context.Background(), s, 2000, 1, rand.New(rand.NewSource(7)))
	require.NoError(t, err)

	assert.Less(t, sum.Frames, 2000)
	assert.Equal(t, 1, sum.Deaths)
	assert.GreaterOrEqual(t, sum.Hits, 10)
	assert.Equal(t, 1, sum.Cues["dummy_destroyed"])
	assert.Equal(t, 6, sum.Cues["burst"])
	assert.Equal(t, 7, sum.Spawned["blood"])
	assert.Equal(t, 7, sum.Spawned["sparks"])
	assert.Nil(t, s.Controller())
}

func TestRunHeadlessCancelled(t *testing.T) {
	s := newSession(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	sum, err := RunHeadless(ctx, s, 10, 1, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, sum.Frames)
}
