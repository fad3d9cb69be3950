package ecs

import (
	"testing"

	vitality "github.com/milk9111/vitality/component"
	"github.com/stretchr/testify/assert"
)

func TestBusFanOut(t *testing.T) {
	b := NewBus()
	var got []string

	b.Subscribe(vitality.TopicLifeChanged, func(msg vitality.Message) { got = append(got, "life:"+msg.Topic()) })
	b.SubscribeAll(func(msg vitality.Message) { got = append(got, "all:"+msg.Topic()) })
	b.Subscribe(vitality.TopicArmorChanged, func(msg vitality.Message) { got = append(got, "armor:"+msg.Topic()) })

	b.Publish(vitality.LifeChanged{Current: 1})
	b.Publish(vitality.ArmorChanged{Current: 1})
	b.Publish(nil)

	assert.Equal(t, []string{
		"life:life_changed",
		"all:life_changed",
		"all:armor_changed",
		"armor:armor_changed",
	}, got)
}

func TestBusUnsubscribe(t *testing.T) {
	b := NewBus()
	calls := 0
	unsub := b.SubscribeAll(func(vitality.Message) { calls++ })

	b.Publish(vitality.LifeChanged{})
	unsub()
	unsub()
	b.Publish(vitality.LifeChanged{})

	assert.Equal(t, 1, calls)
	assert.Equal(t, 0, b.Len())
}

func TestBusSubscriptionChangesDuringPublish(t *testing.T) {
	b := NewBus()
	var got []string

	var unsubSecond func()
	b.SubscribeAll(func(vitality.Message) {
		got = append(got, "first")
		unsubSecond()
		b.SubscribeAll(func(vitality.Message) { got = append(got, "late") })
	})
	unsubSecond = b.SubscribeAll(func(vitality.Message) { got = append(got, "second") })

	b.Publish(vitality.LifeChanged{})
	assert.Equal(t, []string{"first"}, got)
}

func TestBusDrivesVitality(t *testing.T) {
	b := NewBus()
	var msgs []vitality.Message
	b.SubscribeAll(func(msg vitality.Message) { msgs = append(msgs, msg) })

	v := vitality.NewVitality(vitality.VitalityConfig{Type: vitality.CharacterPlayer, Life: 100, MaxLife: 100}, b, nil)
	v.Damage(30)

	assert.Equal(t, []vitality.Message{
		vitality.LifeChanged{Type: vitality.CharacterPlayer, Max: 100, Current: 70, Prior: 100},
	}, msgs)
}

func TestNilBus(t *testing.T) {
	var b *Bus
	assert.NotPanics(t, func() {
		b.Publish(vitality.LifeChanged{})
		b.Subscribe("x", func(vitality.Message) {})()
	})
}
