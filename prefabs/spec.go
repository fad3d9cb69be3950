package prefabs

import (
	"image/color"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"
)

var ErrInvalidSpec = eris.New("prefabs: invalid spec")

// VitalitySpec is the authored survivability data for one entity.
type VitalitySpec struct {
	Name          string        `yaml:"name"`
	CharacterType string        `yaml:"character_type"`
	Life          float64       `yaml:"life"`
	MaxLife       float64       `yaml:"max_life"`
	LifeRegen     float64       `yaml:"life_regen"`
	Armor         float64       `yaml:"armor"`
	MaxArmor      float64       `yaml:"max_armor"`
	ArmorRegen    float64       `yaml:"armor_regen"`
	Transform     TransformSpec `yaml:"transform"`
	SpawnOnDamage []string      `yaml:"spawn_on_damage"`
	OnDeath       []OnDeathSpec `yaml:"on_death"`
	DespawnAfter  int           `yaml:"despawn_after"`

	// keys present in the yaml, so an authored zero is not mistaken for a
	// missing value
	lifeSet, maxLifeSet, maxArmorSet bool
}

func (s *VitalitySpec) UnmarshalYAML(value *yaml.Node) error {
	type plain VitalitySpec
	if err := value.Decode((*plain)(s)); err != nil {
		return err
	}
	if value.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(value.Content); i += 2 {
		switch value.Content[i].Value {
		case "life":
			s.lifeSet = true
		case "max_life":
			s.maxLifeSet = true
		case "max_armor":
			s.maxArmorSet = true
		}
	}
	return nil
}

// OnDeathSpec is one death reaction. Exactly one of Script or Emit is set.
type OnDeathSpec struct {
	Script string `yaml:"script"`
	Emit   string `yaml:"emit"`
}

// EffectSpec describes something spawned where damage lands.
type EffectSpec struct {
	Name      string     `yaml:"name"`
	TTLFrames int        `yaml:"ttl_frames"`
	Radius    float64    `yaml:"radius"`
	Color     *YAMLColor `yaml:"color"`
}

type TransformSpec struct {
	X        float64 `yaml:"x"`
	Y        float64 `yaml:"y"`
	Rotation float64 `yaml:"rotation"`
}

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, eris.Wrapf(err, "prefabs: load %s", filename)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, eris.Wrapf(err, "prefabs: unmarshal %s", filename)
	}

	return spec, nil
}

// LoadVitalitySpec loads and validates a vitality prefab. A missing max_life
// defaults to life, and a missing life to max_life. An authored life of 0 is
// kept.
func LoadVitalitySpec(filename string) (*VitalitySpec, error) {
	spec, err := LoadSpec[VitalitySpec](filename)
	if err != nil {
		return nil, err
	}
	if err := spec.normalize(); err != nil {
		return nil, eris.Wrapf(err, "prefabs: %s", filename)
	}
	return &spec, nil
}

func (s *VitalitySpec) normalize() error {
	if strings.TrimSpace(s.CharacterType) == "" {
		return eris.Wrap(ErrInvalidSpec, "character_type is required")
	}
	lifeSet := s.lifeSet || s.Life != 0
	maxLifeSet := s.maxLifeSet || s.MaxLife != 0
	if !maxLifeSet {
		s.MaxLife = s.Life
	}
	if !lifeSet {
		s.Life = s.MaxLife
	}
	if !s.maxArmorSet && s.MaxArmor == 0 {
		s.MaxArmor = s.Armor
	}
	if s.Life < 0 || s.Armor < 0 {
		return eris.Wrap(ErrInvalidSpec, "life and armor must not be negative")
	}
	if s.LifeRegen < 0 || s.ArmorRegen < 0 {
		return eris.Wrap(ErrInvalidSpec, "regen rates must not be negative")
	}
	for i, d := range s.OnDeath {
		if (d.Script == "") == (d.Emit == "") {
			return eris.Wrapf(ErrInvalidSpec, "on_death[%d] needs exactly one of script or emit", i)
		}
	}
	return nil
}

// LoadEffectSpec loads the effect prefab named name, e.g. "sparks" loads
// effects/sparks.yaml.
func LoadEffectSpec(name string) (*EffectSpec, error) {
	spec, err := LoadSpec[EffectSpec](EffectFile(name))
	if err != nil {
		return nil, err
	}
	if spec.TTLFrames <= 0 {
		spec.TTLFrames = 30
	}
	if spec.Color == nil {
		spec.Color = &YAMLColor{Color: color.White}
	}
	return &spec, nil
}

// EffectFile maps an effect template name to its prefab path.
func EffectFile(name string) string {
	name = strings.TrimSuffix(strings.TrimSpace(name), ".yaml")
	return "effects/" + name + ".yaml"
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return eris.New("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return eris.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
