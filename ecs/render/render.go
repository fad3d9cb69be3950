package render

import (
	"fmt"
	"image/color"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	vitality "github.com/milk9111/vitality/component"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"golang.org/x/image/colornames"
)

const (
	barX        = 24
	barY        = 24
	barWidth    = 320
	lifeHeight  = 14
	armorGap    = 4
	armorHeight = 6
	barSpacing  = 48

	targetSize = 64
)

var (
	lifeColor  = colornames.Crimson
	armorColor = colornames.Steelblue
	ghostColor = colornames.Wheat
	flashColor = colornames.White
	frameColor = colornames.Lightgrey
	deadColor  = colornames.Dimgray
	bodyColor  = colornames.Sandybrown
)

// Renderer draws vitality state onto the screen. It keeps no world state and
// can be shared between frames.
type Renderer struct {
	Debug bool
}

func NewRenderer(debug bool) *Renderer {
	return &Renderer{Debug: debug}
}

func (r *Renderer) Draw(w *ecs.World, screen *ebiten.Image) {
	if r == nil || w == nil || screen == nil {
		return
	}

	r.drawBodies(w, screen)
	r.drawEffects(w, screen)
	r.drawBars(w, screen)
}

func (r *Renderer) drawBodies(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.VitalityComponent.Kind(), func(e ecs.Entity, t *component.Transform, v *component.Vitality) {
		x := float32(t.Position.X - targetSize/2)
		y := float32(t.Position.Y - targetSize/2)

		var fill color.Color = bodyColor
		if !v.Controller.IsAlive() {
			fill = deadColor
		}
		vector.DrawFilledRect(screen, x, y, targetSize, targetSize, fill, false)
		if ecs.Has(w, e, component.TargetTagComponent.Kind()) {
			vector.StrokeRect(screen, x, y, targetSize, targetSize, 2, frameColor, false)
		}

		if r.Debug {
			ebitenutil.DebugPrintAt(screen, fmt.Sprintf("%s %.1f/%.1f", e, v.Controller.Life(), v.Controller.Armor()), int(x), int(y)+targetSize+4)
		}
	})
}

func (r *Renderer) drawEffects(w *ecs.World, screen *ebiten.Image) {
	ecs.ForEach2(w, component.TransformComponent.Kind(), component.EffectComponent.Kind(), func(_ ecs.Entity, t *component.Transform, fx *component.Effect) {
		radius := fx.Radius
		if radius <= 0 {
			radius = 2
		}
		var c color.Color = fx.Color
		if c == nil {
			c = colornames.White
		}
		vector.DrawFilledCircle(screen, float32(t.Position.X), float32(t.Position.Y), float32(radius), c, true)
	})
}

func (r *Renderer) drawBars(w *ecs.World, screen *ebiten.Image) {
	var bars []*component.HealthBar
	ecs.ForEach(w, component.HealthBarComponent.Kind(), func(_ ecs.Entity, bar *component.HealthBar) {
		bars = append(bars, bar)
	})
	sort.SliceStable(bars, func(i, j int) bool {
		return bars[i].Type < bars[j].Type
	})

	for i, bar := range bars {
		DrawHealthBar(screen, bar, barX, float32(barY+i*barSpacing))
	}
}

// DrawHealthBar draws one life bar with an armor strip under it at x, y.
func DrawHealthBar(screen *ebiten.Image, bar *component.HealthBar, x, y float32) {
	if bar == nil {
		return
	}

	ebitenutil.DebugPrintAt(screen, string(bar.Type), int(x), int(y)-16)

	drawMeter(screen, x, y, lifeHeight, bar.LifeGhost, bar.Life, bar.MaxLife, lifeColor)
	if bar.MaxArmor > 0 {
		drawMeter(screen, x, y+lifeHeight+armorGap, armorHeight, bar.ArmorGhost, bar.Armor, bar.MaxArmor, armorColor)
	}

	if bar.FlashFrames > 0 {
		vector.StrokeRect(screen, x-1, y-1, barWidth+2, lifeHeight+2, 2, flashColor, false)
	}
}

func drawMeter(screen *ebiten.Image, x, y, h float32, ghost, current, max float64, fill color.Color) {
	vector.DrawFilledRect(screen, x, y, barWidth, h, colornames.Black, false)
	if g := float32(vitality.Fraction(ghost, max)); g > 0 {
		vector.DrawFilledRect(screen, x, y, barWidth*g, h, ghostColor, false)
	}
	if f := float32(vitality.Fraction(current, max)); f > 0 {
		vector.DrawFilledRect(screen, x, y, barWidth*f, h, fill, false)
	}
	vector.StrokeRect(screen, x, y, barWidth, h, 1, frameColor, false)
}
