package component

import "github.com/jakecoffman/cp"

type VitalityOp int

const (
	OpDamage VitalityOp = iota
	OpHeal
	OpHealArmor
)

// VitalityHit is one queued operation against an entity's vitality. At is
// only used by OpDamage.
type VitalityHit struct {
	Op     VitalityOp
	Amount float64
	At     *cp.Vector
}

// VitalityRequest is a transient component collecting hits for the
// VitalityRequestSystem, which applies them in order and removes the
// component.
type VitalityRequest struct {
	Hits []VitalityHit
}

var VitalityRequestComponent = NewComponent[VitalityRequest]()
