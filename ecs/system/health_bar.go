package system

import (
	"github.com/milk9111/vitality/common"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
)

const (
	ghostEase   = 0.08
	flashFrames = 8
)

// HealthBarSystem keeps one HealthBar entity per character type in sync with
// the notifications on a bus, the way a HUD would, without querying any
// controller directly. Notifications carry no entity, so entities sharing a
// character type share a bar and the latest notification wins.
type HealthBarSystem struct {
	world  *ecs.World
	bars   map[vitality.CharacterType]ecs.Entity
	unsubs []func()
}

func NewHealthBarSystem(w *ecs.World, bus *ecs.Bus) *HealthBarSystem {
	s := &HealthBarSystem{
		world: w,
		bars:  make(map[vitality.CharacterType]ecs.Entity),
	}
	s.unsubs = append(s.unsubs,
		bus.Subscribe(vitality.TopicLifeChanged, s.onMessage),
		bus.Subscribe(vitality.TopicArmorChanged, s.onMessage),
	)
	return s
}

// Close stops listening to the bus.
func (s *HealthBarSystem) Close() {
	for _, unsub := range s.unsubs {
		unsub()
	}
	s.unsubs = nil
}

// Bar returns the display state for typ, if any notification for it arrived.
func (s *HealthBarSystem) Bar(typ vitality.CharacterType) (*component.HealthBar, bool) {
	e, ok := s.bars[typ]
	if !ok {
		return nil, false
	}
	return ecs.Get(s.world, e, component.HealthBarComponent.Kind())
}

func (s *HealthBarSystem) onMessage(msg vitality.Message) {
	switch m := msg.(type) {
	case vitality.LifeChanged:
		bar := s.bar(m.Type)
		bar.Life, bar.LifePrior, bar.MaxLife = m.Current, m.Prior, m.Max
		if m.Current < m.Prior {
			bar.FlashFrames = flashFrames
		} else {
			bar.LifeGhost = max(bar.LifeGhost, m.Current)
		}
	case vitality.ArmorChanged:
		bar := s.bar(m.Type)
		bar.Armor, bar.ArmorPrior, bar.MaxArmor = m.Current, m.Prior, m.Max
		if m.Current >= m.Prior {
			bar.ArmorGhost = max(bar.ArmorGhost, m.Current)
		}
	}
}

func (s *HealthBarSystem) bar(typ vitality.CharacterType) *component.HealthBar {
	if e, ok := s.bars[typ]; ok {
		if bar, ok := ecs.Get(s.world, e, component.HealthBarComponent.Kind()); ok {
			return bar
		}
	}
	e := ecs.CreateEntity(s.world)
	bar := &component.HealthBar{Type: typ}
	_ = ecs.Add(s.world, e, component.HealthBarComponent.Kind(), bar)
	s.bars[typ] = e
	return bar
}

// Update eases the ghost values toward the real ones.
func (s *HealthBarSystem) Update(w *ecs.World) {
	ecs.ForEach(w, component.HealthBarComponent.Kind(), func(_ ecs.Entity, bar *component.HealthBar) {
		bar.LifeGhost = ease(bar.LifeGhost, bar.Life)
		bar.ArmorGhost = ease(bar.ArmorGhost, bar.Armor)
		if bar.FlashFrames > 0 {
			bar.FlashFrames--
		}
	})
}

func ease(ghost, target float64) float64 {
	if ghost <= target {
		return target
	}
	next := common.Lerp(ghost, target, ghostEase)
	if next-target < 0.01 {
		return target
	}
	return next
}
