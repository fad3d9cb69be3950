package component

import "github.com/jakecoffman/cp"

// Transform places an entity in world space. Spawned objects use a zero
// rotation.
type Transform struct {
	Position cp.Vector
	Rotation float64
}

var TransformComponent = NewComponent[Transform]()
