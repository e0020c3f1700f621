package shell

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/notnil/chess"
	"github.com/rs/zerolog/log"

	"goosebot/bots"
	"goosebot/config"
)

var errExit = errors.New("exit")

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func usage(w io.Writer) {
	io.WriteString(w, "commands:\n")
	io.WriteString(w, "new - start a new game from the initial position\n")
	io.WriteString(w, "position <fen> - load a position (quote it or pass the fields)\n")
	io.WriteString(w, "rank - score every legal move, best first\n")
	io.WriteString(w, "best - show the move the bot would play\n")
	io.WriteString(w, "play <move> - play a move token, e.g. e2e4\n")
	io.WriteString(w, "go - let the bot play its move\n")
	io.WriteString(w, "board - draw the board\n")
	io.WriteString(w, "history <move> - show how often a move went through decay\n")
	io.WriteString(w, "exit - quit\n")
}

type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	bot *bots.GooseBot
	gen bots.MoveGenerator
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[33mgoose>\033[0m ",
		HistoryFile:     "/tmp/goosebot_readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc := newController(cfg)
	sc.l = l
	return sc
}

func newController(cfg *config.Config) *ShellController {
	sc := &ShellController{cfg: cfg, bot: bots.NewGooseBot(cfg.GooseOptions())}
	gen, err := bots.NewGenerator(config.StartFEN)
	if err != nil {
		panic(err)
	}
	sc.gen = gen
	return sc
}

// Execute runs one command line and returns what should be shown.
func (sc *ShellController) Execute(line string) (string, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", err
	}
	if len(fields) == 0 {
		return "", nil
	}
	cmd, args := fields[0], fields[1:]
	switch cmd {
	case "help":
		var sb strings.Builder
		usage(&sb)
		return sb.String(), nil
	case "exit", "quit":
		return "", errExit
	case "new":
		return "", sc.load(config.StartFEN, true)
	case "position":
		if len(args) == 0 {
			return "", errors.New("position needs a FEN")
		}
		return "", sc.load(strings.Join(args, " "), false)
	case "board":
		return sc.drawBoard()
	case "rank":
		return sc.rank()
	case "best":
		mv, err := sc.bot.Choose(sc.gen)
		if err != nil {
			return "", err
		}
		if mv == "" {
			return "no legal moves", nil
		}
		return mv, nil
	case "play":
		if len(args) != 1 {
			return "", errors.New("play takes exactly one move")
		}
		return sc.play(args[0])
	case "go":
		mv, err := sc.bot.Choose(sc.gen)
		if err != nil {
			return "", err
		}
		if mv == "" {
			return "no legal moves", nil
		}
		return sc.play(mv)
	case "history":
		if len(args) != 1 {
			return "", errors.New("history takes exactly one move")
		}
		return fmt.Sprintf("%s: %d", args[0], sc.bot.History().Count(args[0])), nil
	}
	return "", fmt.Errorf("command %q not recognized, try help", cmd)
}

func (sc *ShellController) load(fen string, newGame bool) error {
	gen, err := bots.NewGenerator(fen)
	if err != nil {
		return err
	}
	sc.gen = gen
	if newGame {
		sc.bot.NewGame()
	}
	return nil
}

func (sc *ShellController) play(mv string) (string, error) {
	next, err := sc.gen.Apply(mv)
	if err != nil {
		return "", err
	}
	sc.gen = next
	return fmt.Sprintf("played %s (%s)", mv, next.Status()), nil
}

func (sc *ShellController) rank() (string, error) {
	scored, phase, err := sc.bot.Rank(sc.gen)
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "phase: %s\n", phase)
	fmt.Fprintf(&sb, "%-4s%-8s%-7s%s\n", "#", "Move", "Score", "Rule")
	for i, sm := range scored {
		fmt.Fprintf(&sb, "%-4d%-8s%-7d%s\n", i+1, sm.Move, sm.Score, sm.Rule)
	}
	return sb.String(), nil
}

func (sc *ShellController) drawBoard() (string, error) {
	opt, err := chess.FEN(sc.gen.FEN())
	if err != nil {
		return "", err
	}
	return chess.NewGame(opt).Position().Board().Draw() + sc.gen.FEN(), nil
}

func (sc *ShellController) showMessage(msg string) {
	io.WriteString(sc.l.Stderr(), msg)
	io.WriteString(sc.l.Stderr(), "\n")
}

// Loop reads commands until exit or EOF.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}

		out, err := sc.Execute(strings.TrimSpace(line))
		if errors.Is(err, errExit) {
			sig <- syscall.SIGINT
			break
		}
		if err != nil {
			sc.showMessage("Error: " + err.Error())
			continue
		}
		if out != "" {
			sc.showMessage(out)
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}
