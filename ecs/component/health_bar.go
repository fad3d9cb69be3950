package component

import vitality "github.com/milk9111/vitality/component"

// HealthBar is the display state an observer keeps for one character type.
// Ghost values trail the real ones so recent damage stays visible briefly.
type HealthBar struct {
	Type vitality.CharacterType

	Life, LifePrior, MaxLife    float64
	Armor, ArmorPrior, MaxArmor float64

	LifeGhost  float64
	ArmorGhost float64

	FlashFrames int
}

var HealthBarComponent = NewComponent[HealthBar]()
