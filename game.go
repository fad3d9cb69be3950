package main

import (
	"fmt"

	"github.com/ebitenui/ebitenui"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/jakecoffman/cp"
	"github.com/milk9111/vitality/common"
	"github.com/milk9111/vitality/config"
	"github.com/milk9111/vitality/demo"
	"github.com/milk9111/vitality/ecs"
	"github.com/milk9111/vitality/ecs/component"
	"github.com/milk9111/vitality/ecs/render"
	"github.com/rs/zerolog"
)

const (
	helpText    = "click: hit   H: heal   A: heal armor   K: kill   R: respawn   Esc: pause"
	bannerTicks = 90
)

type Game struct {
	session  *demo.Session
	renderer *render.Renderer
	log      zerolog.Logger

	paused  bool
	quit    bool
	pauseUI *ebitenui.UI

	banner       string
	bannerFrames int
}

func NewGame(cfg config.Game, session *demo.Session, logger zerolog.Logger) *Game {
	g := &Game{
		session:  session,
		renderer: render.NewRenderer(cfg.Debug),
		log:      logger,
	}
	g.pauseUI = NewPauseUI(g)

	session.Cues.Handler = func(evt ecs.Event) {
		g.banner = evt.Name
		g.bannerFrames = bannerTicks
	}
	return g
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.Update()
		return nil
	}

	if err := g.handleInput(); err != nil {
		g.log.Warn().Err(err).Msg("input dropped")
	}

	g.session.Step()

	if g.bannerFrames > 0 {
		g.bannerFrames--
	}
	return nil
}

func (g *Game) handleInput() error {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		if err := g.session.HitAt(cp.Vector{X: float64(x), Y: float64(y)}); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		if err := g.session.Heal(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyA) {
		if err := g.session.HealArmor(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyK) {
		if err := g.session.Kill(); err != nil {
			return err
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		return g.restart()
	}
	return nil
}

func (g *Game) restart() error {
	g.banner = ""
	g.bannerFrames = 0
	return g.session.Respawn()
}

func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(g.session.World, screen)

	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Frames: %d    FPS: %.2f    Deaths: %d    Effects: %d", g.session.Frames(), ebiten.ActualFPS(), g.session.Deaths(), ecs.Count(g.session.World, component.EffectComponent.Kind())), 8, common.BaseHeight-40)
	ebitenutil.DebugPrintAt(screen, helpText, 8, common.BaseHeight-24)

	if g.bannerFrames > 0 && g.banner != "" {
		ebitenutil.DebugPrintAt(screen, g.banner, common.BaseWidth/2-len(g.banner)*3, 96)
	}

	if g.paused {
		g.pauseUI.Draw(screen)
	}
}

func (g *Game) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	return common.BaseWidth, common.BaseHeight
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("shouldn't use Layout")
}
