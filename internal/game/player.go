package game

import "fmt"

const (
	StartingHealth = 20
	DeckCreatures  = 20
	DeckLands      = 20
)

// Source supplies uniform samples in (0,1). *lehmer.Generator satisfies it.
type Source interface {
	Next() float64
}

// Cards counts creature and land cards in one zone.
type Cards struct {
	Creatures int
	Lands     int
}

// Total returns the number of cards in the zone.
func (c Cards) Total() int {
	return c.Creatures + c.Lands
}

// Player is one side of a match.
type Player struct {
	magnitude int
	sick      int // creatures cast this turn, cannot attack yet
	active    int
	health    int
	lands     int
	hand      Cards
	deck      Cards
}

// NewPlayer returns a player at the start of a match. The magnitude is both
// the power and the mana cost of each creature and must be positive.
func NewPlayer(magnitude int) *Player {
	if magnitude <= 0 {
		panic(fmt.Sprintf("game: magnitude must be positive, got %d", magnitude))
	}
	p := &Player{magnitude: magnitude}
	p.Reset()
	return p
}

// Reset returns the player to a fresh 40-card deck, empty hand and board.
func (p *Player) Reset() {
	p.sick = 0
	p.active = 0
	p.health = StartingHealth
	p.lands = 0
	p.hand = Cards{}
	p.deck = Cards{Creatures: DeckCreatures, Lands: DeckLands}
}

// Draw moves one card from deck to hand. The card is a land when the sample
// falls below the fraction of lands left in the deck. An empty deck
// consumes no sample and changes nothing.
func (p *Player) Draw(src Source) DrawResult {
	total := p.deck.Total()
	if total == 0 {
		return DeckEmpty
	}
	if src.Next() < float64(p.deck.Lands)/float64(total) {
		p.deck.Lands--
		p.hand.Lands++
		return DrewLand
	}
	p.deck.Creatures--
	p.hand.Creatures++
	return DrewCreature
}

// Turn plays one full turn against opponent: untap, draw, land drop, combat,
// then cast as many creatures as mana allows.
func (p *Player) Turn(opponent *Player, src Source) TurnOutcome {
	p.active += p.sick
	p.sick = 0

	if p.Draw(src) == DeckEmpty {
		return Decked
	}

	if p.hand.Lands > 0 {
		p.hand.Lands--
		p.lands++
	}

	if opponent.TakeDamage(p.magnitude*p.active) == 0 {
		return Won
	}

	mana := p.lands
	for p.hand.Creatures > 0 && mana >= p.magnitude {
		p.hand.Creatures--
		p.sick++
		mana -= p.magnitude
	}

	return Continue
}

// TakeDamage lowers health by d, stopping at 0, and returns what is left.
func (p *Player) TakeDamage(d int) int {
	if d > p.health {
		p.health = 0
		return 0
	}
	p.health -= d
	return p.health
}

// Magnitude returns the player's creature power and cost.
func (p *Player) Magnitude() int { return p.magnitude }

// Health returns remaining health.
func (p *Player) Health() int { return p.health }

// Lands returns the number of lands on the battlefield.
func (p *Player) Lands() int { return p.lands }

// Creatures returns the summoning-sick and active creature counts.
func (p *Player) Creatures() (sick, active int) { return p.sick, p.active }

// Hand returns the cards in hand.
func (p *Player) Hand() Cards { return p.hand }

// Deck returns the cards left in the deck.
func (p *Player) Deck() Cards { return p.deck }

// HandSize returns the number of cards in hand.
func (p *Player) HandSize() int { return p.hand.Total() }

// DeckSize returns the number of cards left in the deck.
func (p *Player) DeckSize() int { return p.deck.Total() }

func (p *Player) String() string {
	return fmt.Sprintf("magnitude=%d health=%d lands=%d creatures=%d/%d hand=%d/%d deck=%d/%d",
		p.magnitude, p.health, p.lands, p.sick, p.active,
		p.hand.Creatures, p.hand.Lands, p.deck.Creatures, p.deck.Lands)
}
