// path: internal/game/rule_meteor.go
package game

// meteorShowerRule burns one random empty square on the main board every
// fifth completed full move. The draw is keyed on the game seed and the
// full-move count, so replaying the same move list reproduces the same
// craters.
type meteorShowerRule struct{ baseModifier }

func (meteorShowerRule) Variant() Variant { return VariantMeteorShower }

const meteorInterval = 5

func (meteorShowerRule) PostTurn(s *State, res moveResult) {
	if !res.completedFullMove {
		return
	}
	completed := s.FullmoveNumber - 1
	if completed <= 0 || completed%meteorInterval != 0 {
		return
	}

	board := s.board(BoardMain)
	var empty []Square
	for i := 0; i < 64; i++ {
		sq := Square(i)
		if board.At(sq).Empty() && !s.Burned.Has(sq) {
			empty = append(empty, sq)
		}
	}
	if len(empty) == 0 {
		return
	}

	rng := meteorRand(s.Seed, completed)
	s.Burned = s.Burned.Add(empty[rng.Intn(len(empty))])
}
