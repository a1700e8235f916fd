// path: internal/game/attack.go
package game

// attackMoves is the geometry-only move view: piece geometry, blocking and
// the geometry-modifying variants (x-ray, pawn rotation). It deliberately
// excludes castling, blink and the legality filter, which keeps attack
// detection recursion-free.
func (s *State) attackMoves(b BoardID, from Square) Bitboard {
	moves := s.geometryMoves(b, from)
	for _, mod := range modifiersFor(s.Rules) {
		moves = mod.ModifyGeometry(s, b, from, moves)
	}
	return moves
}

// isSquareAttacked reports whether any of byColor's pieces on board b has
// target in its geometry-only move set.
func (s *State) isSquareAttacked(b BoardID, target Square, byColor Color) bool {
	attacked := false
	s.board(b).OccupiedBy(byColor).Iter(func(from Square) {
		if attacked {
			return
		}
		if s.attackMoves(b, from).Has(target) {
			attacked = true
		}
	})
	return attacked
}

// kingInCheck locates color's king and asks whether the opposing color
// attacks it. Boards are independent: only attackers sharing the king's
// board count.
func (s *State) kingInCheck(color Color) bool {
	for id := range s.Boards {
		if sq, ok := s.Boards[id].KingSquare(color); ok {
			return s.isSquareAttacked(BoardID(id), sq, color.Opposite())
		}
	}
	return false
}
