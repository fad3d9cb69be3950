package component

import vitality "github.com/milk9111/vitality/component"

// Vitality attaches a vitality controller to an entity.
type Vitality struct {
	Controller *vitality.Vitality
	Prefab     string
}

var VitalityComponent = NewComponent[Vitality]()

// Dead is added once an entity's controller reports death.
type Dead struct {
	Frame  int
	Linger int
}

var DeadComponent = NewComponent[Dead]()
