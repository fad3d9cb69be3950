package component

import "github.com/jakecoffman/cp"

// CharacterType classifies an entity for observers of its notifications.
type CharacterType string

const (
	CharacterPlayer       CharacterType = "player"
	CharacterEnemy        CharacterType = "enemy"
	CharacterBoss         CharacterType = "boss"
	CharacterDestructible CharacterType = "destructible"
)

// DeathFunc is invoked once when a Vitality transitions to dead.
type DeathFunc func()

// SpawnTemplate names something to create where life damage lands.
type SpawnTemplate struct {
	Name string
}

// VitalityConfig holds the authored values a Vitality starts with.
type VitalityConfig struct {
	Type CharacterType

	Life      float64
	MaxLife   float64
	LifeRegen float64

	Armor      float64
	MaxArmor   float64
	ArmorRegen float64

	SpawnOnDamage []SpawnTemplate
	OnDeath       []DeathFunc
}

// Vitality owns an entity's life and armor. Armor absorbs whole hits until it
// is gone, life takes the rest, and once life drops below zero the entity is
// dead for good.
type Vitality struct {
	typ CharacterType

	life, maxLife, lifeRegen    float64
	armor, maxArmor, armorRegen float64

	dead      bool
	activated bool

	spawnOnDamage []SpawnTemplate
	onDeath       []DeathFunc

	notifier Notifier
	spawner  Spawner
}

// NewVitality creates a Vitality from cfg. Nil collaborators are replaced with
// no-ops. A negative starting life creates an already dead Vitality whose
// death callbacks never run.
func NewVitality(cfg VitalityConfig, notifier Notifier, spawner Spawner) *Vitality {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if spawner == nil {
		spawner = NopSpawner{}
	}
	return &Vitality{
		typ:           cfg.Type,
		life:          cfg.Life,
		maxLife:       cfg.MaxLife,
		lifeRegen:     cfg.LifeRegen,
		armor:         cfg.Armor,
		maxArmor:      cfg.MaxArmor,
		armorRegen:    cfg.ArmorRegen,
		dead:          cfg.Life < 0,
		spawnOnDamage: append([]SpawnTemplate(nil), cfg.SpawnOnDamage...),
		onDeath:       append([]DeathFunc(nil), cfg.OnDeath...),
		notifier:      notifier,
		spawner:       spawner,
	}
}

// Activate publishes the starting life and armor so observers have a baseline.
// Only the first call publishes.
func (v *Vitality) Activate() {
	if v == nil || v.activated {
		return
	}
	v.activated = true
	v.publishLife(v.life)
	v.publishArmor(v.armor)
}

// Activated reports whether Activate has run.
func (v *Vitality) Activated() bool {
	return v != nil && v.activated
}

// Tick applies passive regeneration for dt seconds.
func (v *Vitality) Tick(dt float64) {
	if v == nil {
		return
	}
	if v.lifeRegen > 0 && v.life < v.maxLife {
		v.Heal(v.lifeRegen * dt)
	}
	if v.armorRegen > 0 && v.armor < v.maxArmor {
		v.HealArmor(v.armorRegen * dt)
	}
}

// Damage applies amount with no world position, so nothing is spawned.
func (v *Vitality) Damage(amount float64) {
	v.damage(amount, nil)
}

// DamageAt applies amount that landed at pos. Spawn templates are created at
// pos when the hit reaches life.
func (v *Vitality) DamageAt(amount float64, pos cp.Vector) {
	v.damage(amount, &pos)
}

func (v *Vitality) damage(amount float64, pos *cp.Vector) {
	if v == nil || v.dead {
		return
	}

	if v.armor > 0 {
		old := v.armor
		v.armor -= amount
		if v.armor < 0 {
			v.armor = 0
		}
		v.publishArmor(old)
		return
	}

	old := v.life
	v.life -= amount
	v.publishLife(old)

	if pos != nil {
		for _, tmpl := range v.spawnOnDamage {
			v.spawner.Spawn(tmpl, *pos)
		}
	}

	if v.life < 0 {
		v.die()
	}
}

// Heal adds amount to life. It does not clamp to the maximum; regeneration
// stops on its own once life reaches it.
func (v *Vitality) Heal(amount float64) {
	if !v.canHeal() {
		return
	}
	old := v.life
	v.life += amount
	v.publishLife(old)
}

// HealArmor adds amount to armor without clamping to the maximum.
func (v *Vitality) HealArmor(amount float64) {
	if !v.canHeal() {
		return
	}
	old := v.armor
	v.armor += amount
	v.publishArmor(old)
}

// SetMaxLife replaces the life maximum and republishes life.
func (v *Vitality) SetMaxLife(amount float64) {
	if v == nil {
		return
	}
	v.maxLife = amount
	v.publishLife(v.life)
}

// AddLifeRegen raises the life regeneration rate and republishes life.
func (v *Vitality) AddLifeRegen(amount float64) {
	if v == nil {
		return
	}
	v.lifeRegen += amount
	v.publishLife(v.life)
}

// OnDeath registers fn after any callbacks given at construction.
func (v *Vitality) OnDeath(fn DeathFunc) {
	if v == nil || fn == nil {
		return
	}
	v.onDeath = append(v.onDeath, fn)
}

// life <= 0 blocks healing even though death needs life < 0.
func (v *Vitality) canHeal() bool {
	return v != nil && !v.dead && v.life > 0
}

func (v *Vitality) die() {
	if v.dead {
		return
	}
	v.dead = true
	for _, fn := range v.onDeath {
		if fn != nil {
			fn()
		}
	}
}

func (v *Vitality) publishLife(prior float64) {
	v.notifier.Publish(LifeChanged{Type: v.typ, Max: v.maxLife, Current: v.life, Prior: prior})
}

func (v *Vitality) publishArmor(prior float64) {
	v.notifier.Publish(ArmorChanged{Type: v.typ, Max: v.maxArmor, Current: v.armor, Prior: prior})
}

// IsAlive reports whether the entity has not died.
func (v *Vitality) IsAlive() bool {
	return v != nil && !v.dead
}

// CharacterType returns the classification tag.
func (v *Vitality) CharacterType() CharacterType {
	if v == nil {
		return ""
	}
	return v.typ
}

// Life returns the current life value.
func (v *Vitality) Life() float64 {
	if v == nil {
		return 0
	}
	return v.life
}

// MaxLife returns the life maximum.
func (v *Vitality) MaxLife() float64 {
	if v == nil {
		return 0
	}
	return v.maxLife
}

// LifeRegen returns life regenerated per second.
func (v *Vitality) LifeRegen() float64 {
	if v == nil {
		return 0
	}
	return v.lifeRegen
}

// Armor returns the current armor value.
func (v *Vitality) Armor() float64 {
	if v == nil {
		return 0
	}
	return v.armor
}

// MaxArmor returns the armor maximum.
func (v *Vitality) MaxArmor() float64 {
	if v == nil {
		return 0
	}
	return v.maxArmor
}

// ArmorRegen returns armor regenerated per second.
func (v *Vitality) ArmorRegen() float64 {
	if v == nil {
		return 0
	}
	return v.armorRegen
}

// LifeFraction returns life/maxLife clamped to [0, 1].
func (v *Vitality) LifeFraction() float64 {
	if v == nil {
		return 0
	}
	return Fraction(v.life, v.maxLife)
}

// ArmorFraction returns armor/maxArmor clamped to [0, 1].
func (v *Vitality) ArmorFraction() float64 {
	if v == nil {
		return 0
	}
	return Fraction(v.armor, v.maxArmor)
}

// Fraction returns current/max clamped to [0, 1], or 0 when max is not positive.
func Fraction(current, max float64) float64 {
	if max <= 0 {
		return 0
	}
	f := current / max
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
