// path: internal/game/movegen.go
package game

type moveDelta struct {
	dr int
	df int
}

var (
	rookDirections = [...]moveDelta{
		{dr: 1, df: 0},
		{dr: -1, df: 0},
		{dr: 0, df: 1},
		{dr: 0, df: -1},
	}
	bishopDirections = [...]moveDelta{
		{dr: 1, df: 1},
		{dr: 1, df: -1},
		{dr: -1, df: 1},
		{dr: -1, df: -1},
	}
	knightOffsets = [...]moveDelta{
		{dr: 2, df: 1},
		{dr: 1, df: 2},
		{dr: -1, df: 2},
		{dr: -2, df: 1},
		{dr: -2, df: -1},
		{dr: -1, df: -2},
		{dr: 1, df: -2},
		{dr: 2, df: -1},
	}
	kingOffsets = [...]moveDelta{
		{dr: 1, df: 0}, {dr: 1, df: 1}, {dr: 0, df: 1}, {dr: -1, df: 1},
		{dr: -1, df: 0}, {dr: -1, df: -1}, {dr: 0, df: -1}, {dr: 1, df: -1},
	}
)

// geometryMoves produces pseudo-legal destinations from piece geometry and
// blocking only: no castling, no self-check filter, no variant extensions.
// Burned squares block both landing and pass-through.
func (s *State) geometryMoves(b BoardID, from Square) Bitboard {
	pc := s.board(b).At(from)
	switch pc.Type {
	case Pawn:
		return s.pawnMoves(b, from, pc)
	case Knight:
		return s.leaperMoves(b, from, pc, knightOffsets[:])
	case Bishop:
		return s.slidingMoves(b, from, pc, bishopDirections[:])
	case Rook:
		return s.slidingMoves(b, from, pc, rookDirections[:])
	case Queen:
		return s.slidingMoves(b, from, pc, rookDirections[:]) |
			s.slidingMoves(b, from, pc, bishopDirections[:])
	case King:
		return s.leaperMoves(b, from, pc, kingOffsets[:])
	default:
		return 0
	}
}

func (s *State) pawnMoves(b BoardID, from Square, pc Piece) Bitboard {
	var moves Bitboard
	board := s.board(b)
	rank := from.Rank()
	file := from.File()
	dir := pawnDirection(pc.Color)

	if target, ok := SquareFromCoords(rank+dir, file); ok && s.landableEmpty(board, target) {
		moves = moves.Add(target)
		if rank == pawnStartRank(pc.Color) {
			if double, ok := SquareFromCoords(rank+2*dir, file); ok && s.landableEmpty(board, double) {
				moves = moves.Add(double)
			}
		}
	}

	for _, df := range []int{-1, 1} {
		target, ok := SquareFromCoords(rank+dir, file+df)
		if !ok || s.Burned.Has(target) {
			continue
		}
		if victim := board.At(target); !victim.Empty() && victim.Color != pc.Color {
			moves = moves.Add(target)
		} else if epSq, ok := s.EnPassant.Square(); ok && epSq == target && b == BoardMain {
			moves = moves.Add(target)
		}
	}

	return moves
}

func (s *State) leaperMoves(b BoardID, from Square, pc Piece, offsets []moveDelta) Bitboard {
	var moves Bitboard
	board := s.board(b)
	rank := from.Rank()
	file := from.File()

	for _, delta := range offsets {
		target, ok := SquareFromCoords(rank+delta.dr, file+delta.df)
		if !ok || s.Burned.Has(target) {
			continue
		}
		occupant := board.At(target)
		if occupant.Empty() || occupant.Color != pc.Color {
			moves = moves.Add(target)
		}
	}
	return moves
}

func (s *State) slidingMoves(b BoardID, from Square, pc Piece, directions []moveDelta) Bitboard {
	var moves Bitboard
	board := s.board(b)
	startRank := from.Rank()
	startFile := from.File()

	for _, delta := range directions {
		rank := startRank + delta.dr
		file := startFile + delta.df
		for {
			target, ok := SquareFromCoords(rank, file)
			if !ok || s.Burned.Has(target) {
				break
			}
			occupant := board.At(target)
			if occupant.Empty() {
				moves = moves.Add(target)
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

// landableEmpty reports whether a square is empty and not burned.
func (s *State) landableEmpty(board *Board, sq Square) bool {
	return board.At(sq).Empty() && !s.Burned.Has(sq)
}
