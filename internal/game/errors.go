// path: internal/game/errors.go
package game

import "errors"

// Rule violation taxonomy. Every rejection is local, synchronous and leaves
// the prior state untouched; callers classify with errors.Is.
var (
	ErrInvalidSquare      = errors.New("invalid square")
	ErrNoPieceAtSource    = errors.New("no piece at source square")
	ErrWrongSideToMove    = errors.New("wrong side to move")
	ErrIllegalDestination = errors.New("illegal destination")
	ErrPromotionRequired  = errors.New("promotion required")
	ErrVariantConflict    = errors.New("variant conflict")
	ErrGameOver           = errors.New("game over")
)
