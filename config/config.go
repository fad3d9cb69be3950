package config

import (
	jlconfig "github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
)

var ErrInvalidConfig = eris.New("config: invalid")

// Game holds process settings for the demo. Environment variables override the
// defaults; command line flags override both.
type Game struct {
	Prefab     string  `config:"VITALITY_PREFAB"`
	PrefabDir  string  `config:"VITALITY_PREFAB_DIR"`
	Debug      bool    `config:"VITALITY_DEBUG"`
	LogLevel   string  `config:"VITALITY_LOG_LEVEL"`
	TPS        int     `config:"VITALITY_TPS"`
	HitDamage  float64 `config:"VITALITY_HIT_DAMAGE"`
	HealAmount float64 `config:"VITALITY_HEAL_AMOUNT"`
}

func Default() Game {
	return Game{
		Prefab:     "dummy.yaml",
		PrefabDir:  "prefabs",
		LogLevel:   "info",
		TPS:        60,
		HitDamage:  15,
		HealAmount: 10,
	}
}

// Load reads the environment on top of Default.
func Load() (Game, error) {
	cfg := Default()
	if err := jlconfig.FromEnv().To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "config: read env")
	}
	return cfg, cfg.Validate()
}

func (g Game) Validate() error {
	if g.Prefab == "" {
		return eris.Wrap(ErrInvalidConfig, "prefab is empty")
	}
	if g.TPS <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "tps must be positive, got %d", g.TPS)
	}
	if g.HitDamage < 0 || g.HealAmount < 0 {
		return eris.Wrap(ErrInvalidConfig, "hit damage and heal amount must not be negative")
	}
	if _, err := g.Level(); err != nil {
		return err
	}
	return nil
}

// DT is the fixed step in seconds for one tick.
func (g Game) DT() float64 {
	if g.TPS <= 0 {
		return 0
	}
	return 1 / float64(g.TPS)
}

// Level parses LogLevel. Debug forces at least debug output.
func (g Game) Level() (zerolog.Level, error) {
	if g.Debug {
		return zerolog.DebugLevel, nil
	}
	if g.LogLevel == "" {
		return zerolog.InfoLevel, nil
	}
	lvl, err := zerolog.ParseLevel(g.LogLevel)
	if err != nil {
		return zerolog.InfoLevel, eris.Wrapf(ErrInvalidConfig, "log level %q", g.LogLevel)
	}
	return lvl, nil
}
