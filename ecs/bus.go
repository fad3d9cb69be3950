package ecs

import vitality "github.com/milk9111/vitality/component"

// Handler receives messages published on a Bus.
type Handler func(msg vitality.Message)

type subscription struct {
	id      uint64
	topic   string
	handler Handler
}

// Bus is a synchronous, in-process fan-out of component messages. Handlers run
// inline with Publish in the order they subscribed.
type Bus struct {
	subs   []subscription
	nextID uint64
}

var _ vitality.Notifier = (*Bus)(nil)

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers h for messages whose Topic is topic. The returned func
// removes the subscription.
func (b *Bus) Subscribe(topic string, h Handler) (unsubscribe func()) {
	if b == nil || h == nil {
		return func() {}
	}
	b.nextID++
	id := b.nextID
	b.subs = append(b.subs, subscription{id: id, topic: topic, handler: h})
	return func() { b.unsubscribe(id) }
}

// SubscribeAll registers h for every message.
func (b *Bus) SubscribeAll(h Handler) (unsubscribe func()) {
	return b.Subscribe("", h)
}

// Publish delivers msg to every matching handler. A handler subscribed during
// Publish first sees the next message; one unsubscribed during Publish is
// skipped immediately.
func (b *Bus) Publish(msg vitality.Message) {
	if b == nil || msg == nil || len(b.subs) == 0 {
		return
	}
	topic := msg.Topic()
	subs := append([]subscription(nil), b.subs...)
	for _, s := range subs {
		if s.topic != "" && s.topic != topic {
			continue
		}
		if !b.subscribed(s.id) {
			continue
		}
		s.handler(msg)
	}
}

// Len returns the number of live subscriptions.
func (b *Bus) Len() int {
	if b == nil {
		return 0
	}
	return len(b.subs)
}

func (b *Bus) subscribed(id uint64) bool {
	for _, s := range b.subs {
		if s.id == id {
			return true
		}
	}
	return false
}

func (b *Bus) unsubscribe(id uint64) {
	for i, s := range b.subs {
		if s.id == id {
			b.subs = append(b.subs[:i:i], b.subs[i+1:]...)
			return
		}
	}
}
