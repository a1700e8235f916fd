// path: internal/game/castling.go
package game

// Castling destinations are fixed files (g/c for the king, f/d for the
// rook) regardless of where the rook started, which is what makes the same
// code serve both the standard and the randomized back rank.
const (
	kingsideKingFile  = 6
	kingsideRookFile  = 5
	queensideKingFile = 2
	queensideRookFile = 3
)

func homeRank(color Color) int {
	if color == White {
		return 0
	}
	return 7
}

// castleDestination reports the king's landing square for a castle on side,
// if that castle is currently available: rights intact, king and origin
// rook on the home rank, the crossed squares free and unburned, and no
// square on the king's path attacked.
func (s *State) castleDestination(b BoardID, color Color, side CastlingSide) (Square, bool) {
	if !s.Castling.HasSide(color, side) {
		return 0, false
	}

	board := s.board(b)
	rank := homeRank(color)
	kingSq, ok := board.KingSquare(color)
	if !ok || kingSq.Rank() != rank {
		return 0, false
	}

	rookFile := int(s.RookFiles[color.Index()][side])
	rookSq, ok := SquareFromCoords(rank, rookFile)
	if !ok {
		return 0, false
	}
	rook := board.At(rookSq)
	if rook.Type != Rook || rook.Color != color {
		return 0, false
	}

	kingToFile, rookToFile := kingsideKingFile, kingsideRookFile
	if side == CastleQueenside {
		kingToFile, rookToFile = queensideKingFile, queensideRookFile
	}
	if kingSq.File() == kingToFile {
		// Degenerate randomized layout; a zero-distance castle is not
		// representable as a from/to move.
		return 0, false
	}

	// Every square either piece crosses or lands on must be free apart from
	// the king and rook themselves, and never burned.
	spans := [2][2]int{
		{min(kingSq.File(), kingToFile), max(kingSq.File(), kingToFile)},
		{min(rookFile, rookToFile), max(rookFile, rookToFile)},
	}
	for _, span := range spans {
		for f := span[0]; f <= span[1]; f++ {
			sq, ok := SquareFromCoords(rank, f)
			if !ok {
				return 0, false
			}
			if s.Burned.Has(sq) {
				return 0, false
			}
			if occ := board.At(sq); !occ.Empty() && sq != kingSq && sq != rookSq {
				return 0, false
			}
		}
	}

	// The king may not castle out of, through, or into check.
	enemy := color.Opposite()
	step := 1
	if kingToFile < kingSq.File() {
		step = -1
	}
	for f := kingSq.File(); ; f += step {
		sq, ok := SquareFromCoords(rank, f)
		if !ok {
			return 0, false
		}
		if s.isSquareAttacked(b, sq, enemy) {
			return 0, false
		}
		if f == kingToFile {
			break
		}
	}

	dest, _ := SquareFromCoords(rank, kingToFile)
	return dest, true
}

// relocateCastleRook moves the paired rook from its origin file to its
// castling file. The king relocation itself is the caller's business.
func (s *State) relocateCastleRook(b BoardID, color Color, side CastlingSide) {
	board := s.board(b)
	rank := homeRank(color)
	rookFile := int(s.RookFiles[color.Index()][side])
	rookToFile := kingsideRookFile
	if side == CastleQueenside {
		rookToFile = queensideRookFile
	}
	rookFrom, ok := SquareFromCoords(rank, rookFile)
	if !ok {
		return
	}
	rookTo, ok := SquareFromCoords(rank, rookToFile)
	if !ok {
		return
	}
	rook := board.At(rookFrom)
	if rook.Type != Rook || rook.Color != color {
		return
	}
	board.Clear(rookFrom)
	board.Put(rookTo, rook)
}

// castleSideFor matches a king move against the available castle
// destinations, so the applier can tell castling apart from a blink.
func (s *State) castleSideFor(b BoardID, color Color, from, to Square) (CastlingSide, bool) {
	board := s.board(b)
	if board.At(from).Type != King {
		return 0, false
	}
	for _, side := range []CastlingSide{CastleQueenside, CastleKingside} {
		if dest, ok := s.castleDestination(b, color, side); ok && dest == to {
			return side, true
		}
	}
	return 0, false
}
