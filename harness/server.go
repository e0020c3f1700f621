// Package harness feeds observations to GooseBot sessions and plays bots
// against each other.
package harness

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/rs/zerolog/log"

	"goosebot/bots"
)

// Server answers one observation per input line with one move per output line.
// Each game id gets its own GooseBot, so repetition counts never leak between games.
type Server struct {
	opts     bots.GooseOptions
	mu       sync.Mutex
	sessions map[string]*bots.GooseBot
}

func NewServer(opts bots.GooseOptions) *Server {
	return &Server{opts: opts, sessions: make(map[string]*bots.GooseBot)}
}

func (s *Server) session(game string) *bots.GooseBot {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.sessions[game]
	if !ok {
		b = bots.NewGooseBot(s.opts)
		s.sessions[game] = b
	}
	return b
}

// EndGame drops the session for a game id.
func (s *Server) EndGame(game string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, game)
}

// Games returns the number of live sessions.
func (s *Server) Games() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

// Decide routes an observation to its game's session. The session is dropped once
// the game is over: no legal move is left or the chosen move ends it.
func (s *Server) Decide(obs bots.Observation) (string, error) {
	bot := s.session(obs.Game)
	mv, err := bot.Decide(obs)
	if err != nil {
		if bot.History().Len() == 0 {
			s.EndGame(obs.Game)
		}
		return "", err
	}
	if mv == "" || endsGame(obs.Board, mv) {
		log.Debug().Str("game", obs.Game).Msg("game over, dropping session")
		s.EndGame(obs.Game)
	}
	return mv, nil
}

func endsGame(fen, mv string) bool {
	gen, err := bots.NewGenerator(fen)
	if err != nil {
		return false
	}
	next, err := gen.Apply(mv)
	if err != nil {
		return false
	}
	return next.Status() != bots.InProgress
}

type reply struct {
	Move  *string `json:"move"`
	Error string  `json:"error,omitempty"`
}

// Serve reads observations until EOF. A line is either a JSON observation or a bare
// FEN string. A failed decision is reported and the loop carries on.
func (s *Server) Serve(r io.Reader, w io.Writer) error {
	sc := bufio.NewScanner(r)
	enc := json.NewEncoder(w)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		obs, err := parseObservation(line)
		var rep reply
		if err == nil {
			var mv string
			mv, err = s.Decide(obs)
			if err == nil && mv != "" {
				rep.Move = &mv
			}
		}
		if err != nil {
			log.Error().Err(err).Str("line", line).Msg("decision failed")
			rep.Error = err.Error()
		}
		if err := enc.Encode(rep); err != nil {
			return err
		}
	}
	return sc.Err()
}

func parseObservation(line string) (bots.Observation, error) {
	if !strings.HasPrefix(line, "{") {
		return bots.Observation{Board: line}, nil
	}
	var obs bots.Observation
	if err := json.Unmarshal([]byte(line), &obs); err != nil {
		return obs, fmt.Errorf("bad observation: %w", err)
	}
	return obs, nil
}
