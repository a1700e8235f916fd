// path: internal/game/rule_pawnwall.go
package game

// pawnWallRule adds a second full row of pawns per side, one rank ahead of
// the normal pawn row.
type pawnWallRule struct{ baseModifier }

func (pawnWallRule) Variant() Variant { return VariantPawnWall }

func (pawnWallRule) Setup(s *State) {
	board := s.board(BoardMain)
	for file := 0; file < 8; file++ {
		if sq, ok := SquareFromCoords(2, file); ok && board.At(sq).Empty() {
			board.Put(sq, Piece{Type: Pawn, Color: White})
		}
		if sq, ok := SquareFromCoords(5, file); ok && board.At(sq).Empty() {
			board.Put(sq, Piece{Type: Pawn, Color: Black})
		}
	}
}
