// Package game implements the simplified creature/land duel that the
// estimator replays.
//
// Each side owns a 40-card deck of 20 creatures and 20 lands. A creature
// costs its owner's magnitude in mana and, once it has survived an untap
// step, deals magnitude damage every combat. Health starts at 20.
//
// # Basic Usage
//
//	src := lehmer.MustNew(1)
//	m := game.NewMatch(src, 5, 7)
//	if m.Run() {
//	    // player 1 won
//	}
//	m.Reset() // ready for the next trial; src keeps advancing
//
// # Determinism
//
// All randomness flows through a single Source. Draw order is part of the
// contract: during setup players alternate draws six times and player 2
// draws once more, then turns alternate with player 1 first. Two matches
// over sources with the same seed play identically.
package game
