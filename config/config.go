package config

import (
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"goosebot/bots"
)

const (
	ConfigLogLevel        = "log-level"
	ConfigFile            = "config"
	ConfigStrictSelection = "strict-selection"
	ConfigKingCover       = "king-cover"
	ConfigDecayCeiling    = "decay-ceiling"
	ConfigBot             = "bot"

	ConfigWeightsCapture      = "weights.capture"
	ConfigWeightsCentre       = "weights.centre"
	ConfigWeightsKingRestrict = "weights.king-restrict"
	ConfigWeightsKeySquare    = "weights.key-square"
	ConfigWeightsKingCover    = "weights.king-cover"

	ConfigSelfplayGames    = "selfplay.games"
	ConfigSelfplayMaxPlies = "selfplay.max-plies"
	ConfigSelfplayOpponent = "selfplay.opponent"
	ConfigSelfplayStart    = "selfplay.start"
)

const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

type Config struct {
	*viper.Viper
}

// DefaultConfig returns a config holding only the defaults.
func DefaultConfig() Config {
	c := Config{Viper: viper.New()}
	c.setDefaults()
	return c
}

func (c *Config) setDefaults() {
	w := bots.DefaultWeights()
	c.SetDefault(ConfigLogLevel, "info")
	c.SetDefault(ConfigStrictSelection, false)
	c.SetDefault(ConfigKingCover, false)
	c.SetDefault(ConfigDecayCeiling, w.DecayCeiling)
	c.SetDefault(ConfigBot, "goose")
	c.SetDefault(ConfigWeightsCapture, w.Capture)
	c.SetDefault(ConfigWeightsCentre, w.Centre)
	c.SetDefault(ConfigWeightsKingRestrict, w.KingRestrict)
	c.SetDefault(ConfigWeightsKeySquare, w.KeySquare)
	c.SetDefault(ConfigWeightsKingCover, w.KingCover)
	c.SetDefault(ConfigSelfplayGames, 8)
	c.SetDefault(ConfigSelfplayMaxPlies, 200)
	c.SetDefault(ConfigSelfplayOpponent, "random")
	c.SetDefault(ConfigSelfplayStart, StartFEN)
}

// Load reads flags, then GOOSEBOT_* environment variables, then the optional config file.
func (c *Config) Load(args []string) error {
	c.Viper = viper.New()
	c.setDefaults()

	fs := pflag.NewFlagSet("goosebot", pflag.ContinueOnError)
	fs.String(ConfigFile, "", "path to a YAML config file")
	fs.String(ConfigLogLevel, "info", "log level: debug, info, warn, disabled")
	fs.Bool(ConfigStrictSelection, false, "fail instead of playing a random move when nothing scores")
	fs.Bool(ConfigKingCover, false, "enable the king-cover rule")
	fs.Int(ConfigDecayCeiling, bots.DefaultDecayCeiling, "decay bonus before a move's first use")
	fs.String(ConfigBot, "goose", "bot to play: goose or random")
	fs.Int(ConfigSelfplayGames, 8, "number of self-play games")
	fs.Int(ConfigSelfplayMaxPlies, 200, "ply limit per self-play game")
	fs.String(ConfigSelfplayOpponent, "random", "self-play opponent: goose or random")
	fs.String(ConfigSelfplayStart, StartFEN, "self-play starting position")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if err := c.BindPFlags(fs); err != nil {
		return err
	}

	c.SetEnvPrefix("goosebot")
	c.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	c.AutomaticEnv()

	if path := c.GetString(ConfigFile); path != "" {
		c.SetConfigFile(path)
		if err := c.ReadInConfig(); err != nil {
			return err
		}
	}
	return nil
}

// Weights builds the scorer tuning from the loaded settings.
func (c *Config) Weights() bots.Weights {
	return bots.Weights{
		Capture:      c.GetInt(ConfigWeightsCapture),
		Centre:       c.GetInt(ConfigWeightsCentre),
		KingRestrict: c.GetInt(ConfigWeightsKingRestrict),
		KeySquare:    c.GetInt(ConfigWeightsKeySquare),
		KingCover:    c.GetInt(ConfigWeightsKingCover),
		DecayCeiling: c.GetInt(ConfigDecayCeiling),
	}
}

// GooseOptions builds the GooseBot options from the loaded settings.
func (c *Config) GooseOptions() bots.GooseOptions {
	return bots.GooseOptions{
		Weights:   c.Weights(),
		Strict:    c.GetBool(ConfigStrictSelection),
		KingCover: c.GetBool(ConfigKingCover),
	}
}
