package game

import (
	"io"

	"github.com/charmbracelet/log"
)

const (
	openingDraws = 6
)

// Match plays player 1 against player 2 over a shared Source. A Match is
// built once per pairing of magnitudes and Reset between trials; the Source
// is never reset, so successive trials see fresh draws.
type Match struct {
	src    Source
	p1     *Player
	p2     *Player
	turns  int
	logger *log.Logger
	trace  bool
}

// MatchOption configures a Match.
type MatchOption func(*Match)

// WithLogger traces setup, turns and results at debug level.
func WithLogger(logger *log.Logger) MatchOption {
	return func(m *Match) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// NewMatch creates a match between players with the given magnitudes.
func NewMatch(src Source, p1Magnitude, p2Magnitude int, opts ...MatchOption) *Match {
	m := &Match{
		src:    src,
		p1:     NewPlayer(p1Magnitude),
		p2:     NewPlayer(p2Magnitude),
		logger: log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.trace = m.logger.GetLevel() <= log.DebugLevel
	return m
}

// Reset clears the turn counter and both players.
func (m *Match) Reset() {
	m.p1.Reset()
	m.p2.Reset()
	m.turns = 0
}

// Run plays the match to completion and reports whether player 1 won.
func (m *Match) Run() bool {
	for i := 0; i < openingDraws; i++ {
		m.p1.Draw(m.src)
		m.p2.Draw(m.src)
	}
	// Player 2 draws an extra opening card.
	m.p2.Draw(m.src)

	if m.trace {
		m.logger.Debug("opening hands", "p1", m.p1, "p2", m.p2)
	}

	for {
		m.turns++
		if out := m.p1.Turn(m.p2, m.src); out.Terminal() {
			return m.finish(First, out)
		}
		if out := m.p2.Turn(m.p1, m.src); out.Terminal() {
			return m.finish(Second, out)
		}
		if m.trace {
			m.logger.Debug("turn complete", "turn", m.turns, "p1", m.p1, "p2", m.p2)
		}
	}
}

func (m *Match) finish(seat Seat, out TurnOutcome) bool {
	won := FirstPlayerWon(seat, out)
	if m.trace {
		m.logger.Debug("match over",
			"turn", m.turns,
			"seat", seat,
			"outcome", out,
			"player1_won", won,
		)
	}
	return won
}

// Turns returns the number of turn rounds started in the current match.
func (m *Match) Turns() int {
	return m.turns
}

// Players returns both players, player 1 first.
func (m *Match) Players() (*Player, *Player) {
	return m.p1, m.p2
}
