// path: internal/game/rule_xray.go
package game

// xrayBishopRule lets a bishop see exactly one piece deeper along each
// diagonal: past the first occupant, the ray continues until it meets a
// second one, which is capturable when hostile. Queens keep their plain
// diagonals. Burned squares terminate the extended ray like any other.
type xrayBishopRule struct{ baseModifier }

func (xrayBishopRule) Variant() Variant { return VariantXRayBishop }

func (xrayBishopRule) ModifyGeometry(s *State, b BoardID, from Square, moves Bitboard) Bitboard {
	board := s.board(b)
	pc := board.At(from)
	if pc.Type != Bishop {
		return moves
	}

	for _, delta := range bishopDirections {
		rank := from.Rank() + delta.dr
		file := from.File() + delta.df
		blockerSeen := false
		for {
			target, ok := SquareFromCoords(rank, file)
			if !ok || s.Burned.Has(target) {
				break
			}
			occupant := board.At(target)
			if occupant.Empty() {
				rank += delta.dr
				file += delta.df
				continue
			}
			if !blockerSeen {
				blockerSeen = true
				rank += delta.dr
				file += delta.df
				continue
			}
			if occupant.Color != pc.Color {
				moves = moves.Add(target)
			}
			break
		}
	}

	return moves
}
