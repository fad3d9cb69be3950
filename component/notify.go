package component

import "github.com/jakecoffman/cp"

const (
	TopicLifeChanged  = "life_changed"
	TopicArmorChanged = "armor_changed"
)

// Message is anything published on a Notifier.
type Message interface {
	Topic() string
}

// LifeChanged is published whenever life, or the values displayed next to it,
// change.
type LifeChanged struct {
	Type    CharacterType
	Max     float64
	Current float64
	Prior   float64
}

func (LifeChanged) Topic() string { return TopicLifeChanged }

// ArmorChanged is published whenever armor changes.
type ArmorChanged struct {
	Type    CharacterType
	Max     float64
	Current float64
	Prior   float64
}

func (ArmorChanged) Topic() string { return TopicArmorChanged }

// Notifier delivers messages to observers. Publish never fails and never
// reports back.
type Notifier interface {
	Publish(msg Message)
}

// Spawner creates a world object from a template at a position.
type Spawner interface {
	Spawn(tmpl SpawnTemplate, pos cp.Vector)
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg Message)

func (f NotifierFunc) Publish(msg Message) {
	if f != nil {
		f(msg)
	}
}

// SpawnerFunc adapts a function to Spawner.
type SpawnerFunc func(tmpl SpawnTemplate, pos cp.Vector)

func (f SpawnerFunc) Spawn(tmpl SpawnTemplate, pos cp.Vector) {
	if f != nil {
		f(tmpl, pos)
	}
}

type NopNotifier struct{}

func (NopNotifier) Publish(Message) {}

type NopSpawner struct{}

func (NopSpawner) Spawn(SpawnTemplate, cp.Vector) {}
