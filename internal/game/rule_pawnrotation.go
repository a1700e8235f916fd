// path: internal/game/rule_pawnrotation.go
package game

// pawnRotationRule rotates pawn movement: the two-square advance stays
// available from any rank, pawns slide one or two squares sideways onto
// empty squares, and they capture on the backward diagonals as well as the
// forward ones.
type pawnRotationRule struct{ baseModifier }

func (pawnRotationRule) Variant() Variant { return VariantPawnRotation }

func (pawnRotationRule) ModifyGeometry(s *State, b BoardID, from Square, moves Bitboard) Bitboard {
	board := s.board(b)
	pc := board.At(from)
	if pc.Type != Pawn {
		return moves
	}

	rank := from.Rank()
	file := from.File()
	dir := pawnDirection(pc.Color)

	// Two-square advance from any rank; the crossed square still blocks.
	if mid, ok := SquareFromCoords(rank+dir, file); ok && s.landableEmpty(board, mid) {
		if double, ok := SquareFromCoords(rank+2*dir, file); ok && s.landableEmpty(board, double) {
			moves = moves.Add(double)
		}
	}

	for _, df := range []int{-1, 1} {
		// Lateral slides, one or two squares, both empty.
		if one, ok := SquareFromCoords(rank, file+df); ok && s.landableEmpty(board, one) {
			moves = moves.Add(one)
			if two, ok := SquareFromCoords(rank, file+2*df); ok && s.landableEmpty(board, two) {
				moves = moves.Add(two)
			}
		}

		// Backward-diagonal captures.
		target, ok := SquareFromCoords(rank-dir, file+df)
		if !ok || s.Burned.Has(target) {
			continue
		}
		if victim := board.At(target); !victim.Empty() && victim.Color != pc.Color {
			moves = moves.Add(target)
		}
	}

	return moves
}
