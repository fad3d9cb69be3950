package component

// TargetTag marks the entity the demo lets the player hit.
type TargetTag struct{}

var TargetTagComponent = NewComponent[TargetTag]()

// Despawn marks an entity whose body should be removed once its death linger
// runs out.
type Despawn struct {
	AfterFrames int
}

var DespawnComponent = NewComponent[Despawn]()
