// path: internal/game/rule_blink.go
package game

// blinkRule gives each king one teleport per game: any square on its own
// board that is empty or enemy-occupied, except the enemy king's square.
// Blink destinations never project attacks, so they live in ExtendMoves
// rather than the geometry view. Castling does not spend the charge.
type blinkRule struct{ baseModifier }

func (blinkRule) Variant() Variant { return VariantBlink }

func (blinkRule) ExtendMoves(s *State, b BoardID, from Square, moves Bitboard) Bitboard {
	board := s.board(b)
	pc := board.At(from)
	if pc.Type != King || s.BlinkUsed[pc.Color.Index()] {
		return moves
	}

	for i := 0; i < 64; i++ {
		sq := Square(i)
		if sq == from || s.Burned.Has(sq) {
			continue
		}
		occupant := board.At(sq)
		if occupant.Empty() || (occupant.Color != pc.Color && occupant.Type != King) {
			moves = moves.Add(sq)
		}
	}
	return moves
}

func (blinkRule) PostMove(s *State, res *moveResult) {
	if res.piece.Type != King || res.castle || res.transfer {
		return
	}
	if Chebyshev(res.from, res.to) > 1 {
		s.BlinkUsed[res.piece.Color.Index()] = true
	}
}
