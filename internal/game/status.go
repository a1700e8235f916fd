// path: internal/game/status.go
package game

// updateStatus refreshes the check and terminal flags for the side to move.
// Checkmate and stalemate both mean "no legal move"; the difference is
// whether the king stands in check. Cross-board transfers count as moves.
func (s *State) updateStatus() {
	s.InCheck = s.kingInCheck(s.Turn)
	if s.hasAnyLegalMove(s.Turn) {
		s.Checkmate = false
		s.Stalemate = false
		return
	}
	s.Checkmate = s.InCheck
	s.Stalemate = !s.InCheck
}
