// path: internal/game/rule_fischer.go
package game

// fischerRandomRule replaces both home ranks with the same seeded shuffle.
// Castling keeps working because rook origin files are recorded on the
// state rather than assumed to be a and h.
type fischerRandomRule struct{ baseModifier }

func (fischerRandomRule) Variant() Variant { return VariantFischerRandom }

func (fischerRandomRule) Setup(s *State) {
	rank := BackRank(s.Seed)
	board := s.board(BoardMain)
	for file := 0; file < 8; file++ {
		if sq, ok := SquareFromCoords(0, file); ok {
			board.Put(sq, Piece{Type: rank[file], Color: White})
		}
		if sq, ok := SquareFromCoords(7, file); ok {
			board.Put(sq, Piece{Type: rank[file], Color: Black})
		}
	}

	files := rookFilesOf(rank)
	s.RookFiles[White.Index()] = files
	s.RookFiles[Black.Index()] = files
}
