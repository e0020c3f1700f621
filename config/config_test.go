package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/matryer/is"

	"goosebot/bots"
)

func TestDefaults(t *testing.T) {
	is := is.New(t)
	cfg := DefaultConfig()
	is.Equal(cfg.Weights(), bots.DefaultWeights())
	is.Equal(cfg.GetString(ConfigLogLevel), "info")
	is.True(!cfg.GetBool(ConfigStrictSelection))
}

func TestLoadFlags(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	err := cfg.Load([]string{"--strict-selection", "--king-cover", "--decay-ceiling", "4"})
	is.NoErr(err)
	opts := cfg.GooseOptions()
	is.True(opts.Strict)
	is.True(opts.KingCover)
	is.Equal(opts.Weights.DecayCeiling, 4)
	is.Equal(opts.Weights.Capture, 5)
}

func TestLoadFile(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "goosebot.yaml")
	err := os.WriteFile(path, []byte("weights:\n  capture: 7\n  centre: 2\nselfplay:\n  games: 3\n"), 0o644)
	is.NoErr(err)

	cfg := &Config{}
	is.NoErr(cfg.Load([]string{"--config", path}))
	w := cfg.Weights()
	is.Equal(w.Capture, 7)
	is.Equal(w.Centre, 2)
	is.Equal(w.KingRestrict, 5)
	is.Equal(cfg.GetInt(ConfigSelfplayGames), 3)
}

func TestLoadEnv(t *testing.T) {
	is := is.New(t)
	t.Setenv("GOOSEBOT_WEIGHTS_KEY_SQUARE", "6")
	cfg := &Config{}
	is.NoErr(cfg.Load(nil))
	is.Equal(cfg.Weights().KeySquare, 6)
}

func TestLoadBadFlag(t *testing.T) {
	is := is.New(t)
	cfg := &Config{}
	is.True(cfg.Load([]string{"--no-such-flag"}) != nil)
}
