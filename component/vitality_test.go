package component

import (
	"testing"

	"github.com/jakecoffman/cp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	msgs []Message
}

func (r *recorder) Publish(msg Message) {
	r.msgs = append(r.msgs, msg)
}

func (r *recorder) reset() {
	r.msgs = nil
}

type spawnCall struct {
	tmpl SpawnTemplate
	pos  cp.Vector
}

type spawnRecorder struct {
	calls []spawnCall
}

func (s *spawnRecorder) Spawn(tmpl SpawnTemplate, pos cp.Vector) {
	s.calls = append(s.calls, spawnCall{tmpl: tmpl, pos: pos})
}

func newTestVitality(cfg VitalityConfig) (*Vitality, *recorder, *spawnRecorder) {
	rec := &recorder{}
	sp := &spawnRecorder{}
	if cfg.Type == "" {
		cfg.Type = CharacterEnemy
	}
	return NewVitality(cfg, rec, sp), rec, sp
}

func TestActivatePublishesBaseline(t *testing.T) {
	v, rec, _ := newTestVitality(VitalityConfig{Life: 80, MaxLife: 100, Armor: 20, MaxArmor: 50})

	v.Activate()
	v.Activate()

	require.Len(t, rec.msgs, 2)
	assert.Equal(t, LifeChanged{Type: CharacterEnemy, Max: 100, Current: 80, Prior: 80}, rec.msgs[0])
	assert.Equal(t, ArmorChanged{Type: CharacterEnemy, Max: 50, Current: 20, Prior: 20}, rec.msgs[1])
	assert.True(t, v.Activated())
}

func TestDamageScenarios(t *testing.T) {
	cases := []struct {
		name      string
		cfg       VitalityConfig
		amount    float64
		wantLife  float64
		wantArmor float64
		wantMsg   Message
		wantDeath int
		bornDead  bool
	}{
		{
			name:      "life_only",
			cfg:       VitalityConfig{Life: 100, MaxLife: 100},
			amount:    30,
			wantLife:  70,
			wantMsg:   LifeChanged{Type: CharacterEnemy, Max: 100, Current: 70, Prior: 100},
			wantDeath: 0,
		},
		{
			name:      "armor_absorbs_whole_hit",
			cfg:       VitalityConfig{Life: 100, MaxLife: 100, Armor: 50, MaxArmor: 50},
			amount:    80,
			wantLife:  100,
			wantArmor: 0,
			wantMsg:   ArmorChanged{Type: CharacterEnemy, Max: 50, Current: 0, Prior: 50},
		},
		{
			name:      "lethal",
			cfg:       VitalityConfig{Life: 10, MaxLife: 100},
			amount:    15,
			wantLife:  -5,
			wantMsg:   LifeChanged{Type: CharacterEnemy, Max: 100, Current: -5, Prior: 10},
			wantDeath: 1,
		},
		{
			name:      "exactly_zero_is_alive",
			cfg:       VitalityConfig{Life: 10, MaxLife: 10},
			amount:    10,
			wantLife:  0,
			wantMsg:   LifeChanged{Type: CharacterEnemy, Max: 10, Current: 0, Prior: 10},
			wantDeath: 0,
		},
		{
			name:      "authored_negative_life_is_inert",
			cfg:       VitalityConfig{Life: -5, MaxLife: 100, Armor: 5, MaxArmor: 5},
			amount:    3,
			wantLife:  -5,
			wantArmor: 5,
			bornDead:  true,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			deaths := 0
			c.cfg.OnDeath = []DeathFunc{func() { deaths++ }}
			v, rec, _ := newTestVitality(c.cfg)

			v.Damage(c.amount)

			assert.Equal(t, c.wantLife, v.Life())
			assert.Equal(t, c.wantArmor, v.Armor())
			if c.wantMsg == nil {
				assert.Empty(t, rec.msgs)
			} else {
				require.Len(t, rec.msgs, 1)
				assert.Equal(t, c.wantMsg, rec.msgs[0])
			}
			assert.Equal(t, c.wantDeath, deaths)
			assert.Equal(t, c.wantDeath == 0 && !c.bornDead, v.IsAlive())
		})
	}
}

func TestDamageRouting(t *testing.T) {
	t.Run("armor_decreases_by_min_of_amount_and_armor", func(t *testing.T) {
		for _, amount := range []float64{1, 20, 50, 75} {
			v, _, _ := newTestVitality(VitalityConfig{Life: 40, MaxLife: 40, Armor: 50, MaxArmor: 50})
			v.Damage(amount)
			assert.Equal(t, 40.0, v.Life())
			assert.Equal(t, 50-min(amount, 50), v.Armor())
		}
	})

	t.Run("armor_depleted_then_life", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 40, MaxLife: 40, Armor: 5, MaxArmor: 5})
		v.Damage(30)
		v.Damage(30)

		assert.Equal(t, 0.0, v.Armor())
		assert.Equal(t, 10.0, v.Life())
		require.Len(t, rec.msgs, 2)
		assert.IsType(t, ArmorChanged{}, rec.msgs[0])
		assert.IsType(t, LifeChanged{}, rec.msgs[1])
	})

	t.Run("life_is_not_clamped", func(t *testing.T) {
		v, _, _ := newTestVitality(VitalityConfig{Life: 5, MaxLife: 10})
		v.Damage(1000)
		assert.Equal(t, -995.0, v.Life())
	})
}

func TestDeadIsInert(t *testing.T) {
	deaths := 0
	v, rec, sp := newTestVitality(VitalityConfig{
		Life: 1, MaxLife: 10, LifeRegen: 5,
		MaxArmor: 10, ArmorRegen: 5,
		SpawnOnDamage: []SpawnTemplate{{Name: "blood"}},
		OnDeath:       []DeathFunc{func() { deaths++ }},
	})

	v.DamageAt(6, cp.Vector{X: 1, Y: 2})
	require.Equal(t, 1, deaths)
	require.Len(t, sp.calls, 1)
	rec.reset()

	v.Heal(50)
	v.HealArmor(50)
	v.Damage(3)
	v.DamageAt(3, cp.Vector{})
	v.Tick(1)

	assert.Equal(t, -5.0, v.Life())
	assert.Equal(t, 0.0, v.Armor())
	assert.Empty(t, rec.msgs)
	assert.Len(t, sp.calls, 1)
	assert.Equal(t, 1, deaths)
	assert.False(t, v.IsAlive())
}

func TestHealAfterDeathScenario(t *testing.T) {
	v, rec, _ := newTestVitality(VitalityConfig{Life: 10, MaxLife: 100})
	v.Damage(15)
	rec.reset()

	v.Heal(50)

	assert.Equal(t, -5.0, v.Life())
	assert.Empty(t, rec.msgs)
}

func TestDeathFiresOnce(t *testing.T) {
	var order []string
	v, _, _ := newTestVitality(VitalityConfig{
		Life: 10, MaxLife: 10,
		OnDeath: []DeathFunc{
			func() { order = append(order, "first") },
			nil,
		},
	})
	v.OnDeath(func() { order = append(order, "second") })
	v.OnDeath(nil)

	v.Damage(5)
	assert.Empty(t, order)
	v.Damage(6)
	v.Damage(6)

	assert.Equal(t, []string{"first", "second"}, order)
}

func TestDamageSpawnsAtPosition(t *testing.T) {
	pos := cp.Vector{X: 12, Y: -3}

	t.Run("life_hit_spawns_in_order", func(t *testing.T) {
		v, rec, sp := newTestVitality(VitalityConfig{
			Life: 100, MaxLife: 100,
			SpawnOnDamage: []SpawnTemplate{{Name: "blood"}, {Name: "sparks"}},
		})
		v.DamageAt(10, pos)

		require.Len(t, sp.calls, 2)
		assert.Equal(t, spawnCall{tmpl: SpawnTemplate{Name: "blood"}, pos: pos}, sp.calls[0])
		assert.Equal(t, spawnCall{tmpl: SpawnTemplate{Name: "sparks"}, pos: pos}, sp.calls[1])
		require.Len(t, rec.msgs, 1)
	})

	t.Run("armor_hit_spawns_nothing", func(t *testing.T) {
		v, _, sp := newTestVitality(VitalityConfig{
			Life: 100, MaxLife: 100, Armor: 10, MaxArmor: 10,
			SpawnOnDamage: []SpawnTemplate{{Name: "blood"}},
		})
		v.DamageAt(10, pos)
		assert.Empty(t, sp.calls)
	})

	t.Run("no_position_spawns_nothing", func(t *testing.T) {
		v, _, sp := newTestVitality(VitalityConfig{
			Life: 100, MaxLife: 100,
			SpawnOnDamage: []SpawnTemplate{{Name: "blood"}},
		})
		v.Damage(10)
		assert.Empty(t, sp.calls)
	})

	t.Run("spawn_runs_before_death", func(t *testing.T) {
		var order []string
		v := NewVitality(VitalityConfig{
			Life: 1, MaxLife: 1,
			SpawnOnDamage: []SpawnTemplate{{Name: "blood"}},
			OnDeath:       []DeathFunc{func() { order = append(order, "death") }},
		},
			NotifierFunc(func(Message) { order = append(order, "notify") }),
			SpawnerFunc(func(SpawnTemplate, cp.Vector) { order = append(order, "spawn") }),
		)
		v.DamageAt(5, pos)
		assert.Equal(t, []string{"notify", "spawn", "death"}, order)
	})
}

func TestHeal(t *testing.T) {
	t.Run("overshoots_max", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 90, MaxLife: 100})
		v.Heal(25)
		assert.Equal(t, 115.0, v.Life())
		require.Len(t, rec.msgs, 1)
		assert.Equal(t, LifeChanged{Type: CharacterEnemy, Max: 100, Current: 115, Prior: 90}, rec.msgs[0])
	})

	t.Run("zero_life_cannot_heal", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 0, MaxLife: 100})
		v.Heal(25)
		v.HealArmor(25)
		assert.Equal(t, 0.0, v.Life())
		assert.Equal(t, 0.0, v.Armor())
		assert.Empty(t, rec.msgs)
		assert.True(t, v.IsAlive())
	})

	t.Run("heal_armor_publishes_armor_values", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 50, MaxLife: 100, Armor: 5, MaxArmor: 30})
		v.HealArmor(40)
		assert.Equal(t, 45.0, v.Armor())
		require.Len(t, rec.msgs, 1)
		assert.Equal(t, ArmorChanged{Type: CharacterEnemy, Max: 30, Current: 45, Prior: 5}, rec.msgs[0])
	})
}

func TestTickRegeneration(t *testing.T) {
	t.Run("life_and_armor_in_same_tick", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{
			Life: 50, MaxLife: 100, LifeRegen: 4,
			Armor: 0, MaxArmor: 10, ArmorRegen: 2,
		})
		v.Tick(0.5)
		assert.InDelta(t, 52.0, v.Life(), 1e-9)
		assert.InDelta(t, 1.0, v.Armor(), 1e-9)
		require.Len(t, rec.msgs, 2)
		assert.IsType(t, LifeChanged{}, rec.msgs[0])
		assert.IsType(t, ArmorChanged{}, rec.msgs[1])
	})

	t.Run("stops_at_max", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 100, MaxLife: 100, LifeRegen: 4, Armor: 10, MaxArmor: 10, ArmorRegen: 1})
		v.Tick(1)
		assert.Equal(t, 100.0, v.Life())
		assert.Empty(t, rec.msgs)
	})

	t.Run("zero_rate_does_nothing", func(t *testing.T) {
		v, rec, _ := newTestVitality(VitalityConfig{Life: 10, MaxLife: 100})
		v.Tick(1)
		assert.Equal(t, 10.0, v.Life())
		assert.Empty(t, rec.msgs)
	})

	t.Run("last_tick_may_overshoot", func(t *testing.T) {
		v, _, _ := newTestVitality(VitalityConfig{Life: 99, MaxLife: 100, LifeRegen: 10})
		v.Tick(1)
		assert.Equal(t, 109.0, v.Life())
		v.Tick(1)
		assert.Equal(t, 109.0, v.Life())
	})
}

func TestAdministrativeAdjustments(t *testing.T) {
	v, rec, _ := newTestVitality(VitalityConfig{Type: CharacterPlayer, Life: 60, MaxLife: 100, LifeRegen: 1})

	v.SetMaxLife(150)
	v.AddLifeRegen(2)

	assert.Equal(t, 150.0, v.MaxLife())
	assert.Equal(t, 3.0, v.LifeRegen())
	require.Len(t, rec.msgs, 2)
	assert.Equal(t, LifeChanged{Type: CharacterPlayer, Max: 150, Current: 60, Prior: 60}, rec.msgs[0])
	assert.Equal(t, LifeChanged{Type: CharacterPlayer, Max: 150, Current: 60, Prior: 60}, rec.msgs[1])
}

func TestNilVitality(t *testing.T) {
	var v *Vitality
	assert.NotPanics(t, func() {
		v.Activate()
		v.Tick(1)
		v.Damage(1)
		v.DamageAt(1, cp.Vector{})
		v.Heal(1)
		v.HealArmor(1)
		v.SetMaxLife(1)
		v.AddLifeRegen(1)
		v.OnDeath(func() {})
	})
	assert.False(t, v.IsAlive())
	assert.Equal(t, CharacterType(""), v.CharacterType())
	assert.Zero(t, v.Life())
}

func TestNilCollaborators(t *testing.T) {
	v := NewVitality(VitalityConfig{Life: 1, MaxLife: 1, SpawnOnDamage: []SpawnTemplate{{Name: "x"}}}, nil, nil)
	assert.NotPanics(t, func() {
		v.Activate()
		v.DamageAt(5, cp.Vector{})
	})
	assert.False(t, v.IsAlive())
}

func TestFraction(t *testing.T) {
	cases := []struct {
		name         string
		current, max float64
		want         float64
	}{
		{"half", 5, 10, 0.5},
		{"negative", -5, 10, 0},
		{"overshoot", 15, 10, 1},
		{"zero_max", 5, 0, 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, Fraction(c.current, c.max))
		})
	}

	v, _, _ := newTestVitality(VitalityConfig{Life: 25, MaxLife: 100, Armor: 3, MaxArmor: 4})
	assert.Equal(t, 0.25, v.LifeFraction())
	assert.Equal(t, 0.75, v.ArmorFraction())
	assert.Equal(t, CharacterEnemy, v.CharacterType())
}
