package game

// DrawResult reports what a single draw produced.
type DrawResult int

const (
	DeckEmpty DrawResult = iota
	DrewLand
	DrewCreature
)

func (d DrawResult) String() string {
	switch d {
	case DeckEmpty:
		return "deck-empty"
	case DrewLand:
		return "land"
	case DrewCreature:
		return "creature"
	default:
		return "unknown"
	}
}

// TurnOutcome is the result of one turn from the acting player's point of view.
type TurnOutcome int

const (
	Continue TurnOutcome = iota
	Won                  // opponent's health reached 0
	Decked               // acting player had to draw from an empty deck
)

func (o TurnOutcome) String() string {
	switch o {
	case Continue:
		return "continue"
	case Won:
		return "won"
	case Decked:
		return "decked"
	default:
		return "unknown"
	}
}

// Terminal reports whether the outcome ends the match.
func (o TurnOutcome) Terminal() bool {
	return o == Won || o == Decked
}

// Seat identifies which player is acting.
type Seat int

const (
	First Seat = iota + 1
	Second
)

func (s Seat) String() string {
	switch s {
	case First:
		return "player1"
	case Second:
		return "player2"
	default:
		return "unknown"
	}
}

// FirstPlayerWon maps a terminal outcome of the player in seat to the match
// result, which is always expressed from player 1's side. Player 1's outcome
// carries over as is: Won means true, Decked means false. Player 2's outcome
// is negated: player 2 winning means false, player 2 decking means true.
// Continue is not terminal and reports false.
func FirstPlayerWon(seat Seat, outcome TurnOutcome) bool {
	if !outcome.Terminal() {
		return false
	}
	won := outcome == Won
	if seat == Second {
		return !won
	}
	return won
}
