package harness

import (
	"errors"
	"fmt"
	"io"

	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"
	"golang.org/x/sync/errgroup"
	"gopkg.in/yaml.v3"

	"goosebot/bots"
)

var errNoMove = errors.New("bot returned no move")

// GameResult summarises one finished game.
type GameResult struct {
	Game    int      `yaml:"game"`
	White   string   `yaml:"white"`
	Black   string   `yaml:"black"`
	Outcome string   `yaml:"outcome"`
	Method  string   `yaml:"method"`
	Plies   int      `yaml:"plies"`
	Moves   []string `yaml:"moves,omitempty"`
}

// Report is the YAML document cmd/selfplay prints.
type Report struct {
	Games      []GameResult `yaml:"games"`
	WhiteWins  int          `yaml:"white_wins"`
	BlackWins  int          `yaml:"black_wins"`
	Draws      int          `yaml:"draws"`
	Unfinished int          `yaml:"unfinished"`
}

// PlayGame plays white against black from fen until the game ends or maxPlies is hit.
func PlayGame(white, black bots.ChessBot, fen string, maxPlies int) (GameResult, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return GameResult{}, fmt.Errorf("start position: %w", err)
	}
	game := chess.NewGame(opt)
	res := GameResult{White: white.Name(), Black: black.Name()}

	for res.Plies < maxPlies && game.Outcome() == chess.NoOutcome {
		pos := game.Position()
		bot := white
		if pos.Turn() == chess.Black {
			bot = black
		}
		m := bot.BestMove(game)
		if m == nil {
			return res, fmt.Errorf("%s at ply %d: %w", bot.Name(), res.Plies, errNoMove)
		}
		res.Moves = append(res.Moves, chess.UCINotation{}.Encode(pos, m))
		if err := game.Move(m); err != nil {
			return res, fmt.Errorf("%s played %s: %w", bot.Name(), m, err)
		}
		res.Plies++
	}
	res.Outcome = game.Outcome().String()
	res.Method = game.Method().String()
	return res, nil
}

// Selfplay runs n independent games concurrently. Each game builds fresh bots from
// the factories; colours alternate between games.
func Selfplay(n int, goose, opponent bots.Factory, fen string, maxPlies int) (*Report, error) {
	results := make([]GameResult, n)
	g := errgroup.Group{}
	for i := 0; i < n; i++ {
		i := i
		g.Go(func() error {
			white, black := goose(), opponent()
			if i%2 == 1 {
				white, black = black, white
			}
			res, err := PlayGame(white, black, fen, maxPlies)
			if err != nil {
				return fmt.Errorf("game %d: %w", i, err)
			}
			res.Game = i
			results[i] = res
			log.Debug().Int("game", i).Str("outcome", res.Outcome).Int("plies", res.Plies).Msg("game finished")
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	rep := &Report{Games: results}
	counts := lo.CountValuesBy(results, func(r GameResult) string { return r.Outcome })
	rep.WhiteWins = counts[chess.WhiteWon.String()]
	rep.BlackWins = counts[chess.BlackWon.String()]
	rep.Draws = counts[chess.Draw.String()]
	rep.Unfinished = counts[chess.NoOutcome.String()]
	return rep, nil
}

// WriteYAML dumps the report.
func (r *Report) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(r); err != nil {
		return err
	}
	return enc.Close()
}
