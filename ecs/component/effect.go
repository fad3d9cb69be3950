package component

import "image/color"

// Effect is a short-lived visual created from a spawn template.
type Effect struct {
	Template string
	Color    color.Color
	Radius   float64
}

var EffectComponent = NewComponent[Effect]()
