// path: internal/game/rule_doubleknight.go
package game

// doubleKnightRule: a knight move defers the turn switch and pins the moved
// knight; only that knight may move next, and completing its second move
// restores alternation. The pinned knight may never capture the enemy king.
type doubleKnightRule struct{ baseModifier }

func (doubleKnightRule) Variant() Variant { return VariantDoubleKnight }

func (doubleKnightRule) FilterMoves(s *State, b BoardID, from Square, moves Bitboard) Bitboard {
	if !s.Pending.Active || s.Pending.Color != s.Turn {
		return moves
	}
	if b != s.Pending.Board || from != s.Pending.Square {
		return 0
	}
	board := s.board(b)
	var out Bitboard
	moves.Iter(func(to Square) {
		if board.At(to).Type != King {
			out = out.Add(to)
		}
	})
	return out
}

func (doubleKnightRule) PostMove(s *State, res *moveResult) {
	if s.Pending.Active && s.Pending.Color == res.piece.Color {
		// Second half of the pair just resolved.
		s.Pending = PendingKnight{}
		return
	}
	if res.piece.Type == Knight && !res.transfer {
		s.Pending = PendingKnight{
			Active: true,
			Board:  res.board,
			Square: res.to,
			Color:  res.piece.Color,
		}
		res.deferTurn = true
	}
}
