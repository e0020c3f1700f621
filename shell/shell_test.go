package shell

import (
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/matryer/is"
	"github.com/rs/zerolog"

	"goosebot/config"
)

func TestMain(m *testing.M) {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	os.Exit(m.Run())
}

func newTestController() *ShellController {
	cfg := config.DefaultConfig()
	return newController(&cfg)
}

func TestRankStartPosition(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	out, err := sc.Execute("rank")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "phase: opening\n"))
	is.Equal(strings.Count(out, "\n"), 22) // phase, header, 20 moves
}

func TestQuotedPositionAndBest(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	_, err := sc.Execute(`position "6k1/5ppp/8/8/8/8/8/R5K1 w - - 0 1"`)
	is.NoErr(err)
	out, err := sc.Execute("best")
	is.NoErr(err)
	is.Equal(out, "a1a8")

	out, err = sc.Execute("go")
	is.NoErr(err)
	is.Equal(out, "played a1a8 (checkmate)")

	out, err = sc.Execute("best")
	is.NoErr(err)
	is.Equal(out, "no legal moves")
}

func TestUnquotedPosition(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	_, err := sc.Execute("position 8/8/8/4k3/8/8/8/3QK3 w - - 0 1")
	is.NoErr(err)
	out, err := sc.Execute("rank")
	is.NoErr(err)
	is.True(strings.HasPrefix(out, "phase: endgame\n"))
	is.True(strings.Contains(out, "king-hunt"))
}

func TestPlayAndHistory(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	out, err := sc.Execute("play e2e4")
	is.NoErr(err)
	is.Equal(out, "played e2e4 (in-progress)")

	_, err = sc.Execute("play e2e4")
	is.True(err != nil)

	_, err = sc.Execute("rank")
	is.NoErr(err)
	out, err = sc.Execute("history g8f6")
	is.NoErr(err)
	is.Equal(out, "g8f6: 1")

	_, err = sc.Execute("new")
	is.NoErr(err)
	out, err = sc.Execute("history g8f6")
	is.NoErr(err)
	is.Equal(out, "g8f6: 0")
}

func TestBoardAndErrors(t *testing.T) {
	is := is.New(t)
	sc := newTestController()
	out, err := sc.Execute("board")
	is.NoErr(err)
	is.True(strings.HasSuffix(out, config.StartFEN))

	_, err = sc.Execute("frobnicate")
	is.True(err != nil)
	_, err = sc.Execute(`position "unterminated`)
	is.True(err != nil)
	_, err = sc.Execute("exit")
	is.True(errors.Is(err, errExit))
	out, err = sc.Execute("help")
	is.NoErr(err)
	is.True(strings.Contains(out, "rank"))
}
