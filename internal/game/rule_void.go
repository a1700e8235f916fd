// path: internal/game/rule_void.go
package game

// voidRule opens a second, initially empty board and grants each side a
// budget of cross-board transfers. A transfer consumes the whole turn and
// one token; the legality of transfers themselves lives in TransferTargets
// and the applier.
type voidRule struct{ baseModifier }

func (voidRule) Variant() Variant { return VariantVoid }

const voidTransferTokens = 3

func (voidRule) Setup(s *State) {
	s.Boards = append(s.Boards, Board{})
	s.TransferTokens = [2]int{voidTransferTokens, voidTransferTokens}
}

func (voidRule) PostMove(s *State, res *moveResult) {
	if res.transfer {
		s.TransferTokens[res.piece.Color.Index()]--
	}
}
