package system

import (
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
)

// Hit queues op against target. Hits queued in one frame are applied in order
// by VitalityRequestSystem.
func Hit(w *ecs.World, target ecs.Entity, op component.VitalityOp, amount float64, at *cp.Vector) error {
	req, ok := ecs.Get(w, target, component.VitalityRequestComponent.Kind())
	if !ok {
		req = &component.VitalityRequest{}
	}
	req.Hits = append(req.Hits, component.VitalityHit{Op: op, Amount: amount, At: at})
	return ecs.Add(w, target, component.VitalityRequestComponent.Kind(), req)
}

// VitalityRequestSystem applies queued VitalityRequest hits to the target's
// controller.
type VitalityRequestSystem struct{}

func NewVitalityRequestSystem() *VitalityRequestSystem {
	return &VitalityRequestSystem{}
}

func (s *VitalityRequestSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach2(w, component.VitalityRequestComponent.Kind(), component.VitalityComponent.Kind(), func(e ecs.Entity, req *component.VitalityRequest, v *component.Vitality) {
		for _, hit := range req.Hits {
			switch hit.Op {
			case component.OpDamage:
				if hit.At != nil {
					v.Controller.DamageAt(hit.Amount, *hit.At)
				} else {
					v.Controller.Damage(hit.Amount)
				}
			case component.OpHeal:
				v.Controller.Heal(hit.Amount)
			case component.OpHealArmor:
				v.Controller.HealArmor(hit.Amount)
			}
		}
		ecs.Remove(w, e, component.VitalityRequestComponent.Kind())
	})

	// Requests against entities without vitality are dropped.
	ecs.ForEach(w, component.VitalityRequestComponent.Kind(), func(e ecs.Entity, _ *component.VitalityRequest) {
		ecs.Remove(w, e, component.VitalityRequestComponent.Kind())
	})
}
