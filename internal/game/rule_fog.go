// path: internal/game/rule_fog.go
package game

// fogOfWarRule is presentation-only: legality is computed on the full
// position, and the fog mask is applied when rendering a player's view.
// The fog lifts for good once fogLiftPlies plies have been played.
type fogOfWarRule struct{ baseModifier }

func (fogOfWarRule) Variant() Variant { return VariantFogOfWar }

const fogLiftPlies = 10

// whiteHalf covers ranks 1-4; blackHalf the rest.
const whiteHalf = Bitboard(0x00000000FFFFFFFF)

// Visible returns the squares of board b the viewer may see under fog of
// war: their own half of the board, plus the squares their own pieces
// stand on. Without the fog variant, or once ten completed turns have
// lifted it, every square is visible.
func Visible(s State, b BoardID, viewer Color) Bitboard {
	if !s.Rules.Contains(VariantFogOfWar) || s.Plies >= fogLiftPlies {
		return ^Bitboard(0)
	}
	if !s.validBoard(b) {
		return 0
	}

	visible := whiteHalf
	if viewer == Black {
		visible = ^whiteHalf
	}
	return visible | s.board(b).OccupiedBy(viewer)
}
