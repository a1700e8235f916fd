// path: internal/game/legality.go
package game

// LegalMoves returns the fully-legal destination set for the piece on
// square from of board b. It is empty when the square holds no piece of the
// side to move, or when the game is over. Fog of war never affects the
// result; visibility is the UI's concern.
func LegalMoves(s State, b BoardID, from Square) (Bitboard, error) {
	if !s.validBoard(b) || !from.Valid() {
		return 0, ErrInvalidSquare
	}
	pc := s.board(b).At(from)
	if pc.Empty() || pc.Color != s.Turn || s.GameOver() {
		return 0, nil
	}
	return s.legalMoves(b, from), nil
}

// TransferTargets returns the legal cross-board transfer destinations for
// the piece on square from under the void variant: empty squares on the
// other board, provided a token remains and leaving the source board does
// not expose the mover's king.
func TransferTargets(s State, b BoardID, from Square) (Bitboard, error) {
	if !s.validBoard(b) || !from.Valid() {
		return 0, ErrInvalidSquare
	}
	if !s.Rules.Contains(VariantVoid) || len(s.Boards) < 2 {
		return 0, nil
	}
	pc := s.board(b).At(from)
	if pc.Empty() || pc.Color != s.Turn || s.GameOver() {
		return 0, nil
	}
	if s.TransferTokens[s.Turn.Index()] <= 0 || s.Pending.Active {
		return 0, nil
	}

	dest := otherBoard(b)
	var out Bitboard
	for i := 0; i < 64; i++ {
		to := Square(i)
		if !s.board(dest).At(to).Empty() {
			continue
		}
		if !s.transferWouldSelfCheck(b, from, to) {
			out = out.Add(to)
		}
	}
	return out, nil
}

// legalMoves builds candidates (geometry view + castling + legality-only
// extensions), applies modifier filters, then rejects every candidate that
// would leave the mover's own king in check.
func (s *State) legalMoves(b BoardID, from Square) Bitboard {
	pc := s.board(b).At(from)
	moves := s.attackMoves(b, from)

	if pc.Type == King {
		for _, side := range []CastlingSide{CastleQueenside, CastleKingside} {
			if dest, ok := s.castleDestination(b, pc.Color, side); ok {
				moves = moves.Add(dest)
			}
		}
	}

	mods := modifiersFor(s.Rules)
	for _, mod := range mods {
		moves = mod.ExtendMoves(s, b, from, moves)
	}
	for _, mod := range mods {
		moves = mod.FilterMoves(s, b, from, moves)
	}

	var out Bitboard
	moves.Iter(func(to Square) {
		if !s.wouldSelfCheck(b, from, to) {
			out = out.Add(to)
		}
	})
	return out
}

// wouldSelfCheck simulates the candidate on a cloned state and reports
// whether the mover's king ends up attacked. It mirrors the applier's
// relocation rules (en-passant victim square, castling rook pairing) without
// any of its bookkeeping.
func (s *State) wouldSelfCheck(b BoardID, from, to Square) bool {
	sim := s.Clone()
	board := sim.board(b)
	pc := board.At(from)
	if pc.Empty() {
		return true
	}

	if pc.Type == Pawn && from.File() != to.File() && board.At(to).Empty() {
		if epSq, ok := sim.EnPassant.Square(); ok && epSq == to {
			if victimSq, ok := SquareFromCoords(to.Rank()-pawnDirection(pc.Color), to.File()); ok {
				board.Clear(victimSq)
			}
		}
	}

	// Same origin-before-destination ordering as the applier: the castling
	// rook may land on the king's origin square under a randomized back rank.
	castle := false
	var castleSide CastlingSide
	if pc.Type == King {
		for _, side := range []CastlingSide{CastleQueenside, CastleKingside} {
			if dest, ok := s.castleDestination(b, pc.Color, side); ok && dest == to {
				castleSide, castle = side, true
				break
			}
		}
	}

	board.Clear(from)
	if castle {
		sim.relocateCastleRook(b, pc.Color, castleSide)
	}
	board.Put(to, pc)
	return sim.kingInCheck(pc.Color)
}

// transferWouldSelfCheck simulates removing the piece from its board and
// placing it on the other one.
func (s *State) transferWouldSelfCheck(b BoardID, from, to Square) bool {
	sim := s.Clone()
	pc := sim.board(b).At(from)
	if pc.Empty() {
		return true
	}
	sim.board(b).Clear(from)
	sim.board(otherBoard(b)).Put(to, pc)
	return sim.kingInCheck(pc.Color)
}

// hasAnyLegalMove reports whether color has at least one legal move,
// counting cross-board transfers. When a double-knight continuation is
// pending for color, only the pinned knight's own continuations count.
func (s *State) hasAnyLegalMove(color Color) bool {
	if s.Pending.Active && s.Pending.Color == color {
		return !s.legalMoves(s.Pending.Board, s.Pending.Square).Empty()
	}

	for id := range s.Boards {
		b := BoardID(id)
		found := false
		s.Boards[id].OccupiedBy(color).Iter(func(from Square) {
			if found {
				return
			}
			if !s.legalMoves(b, from).Empty() {
				found = true
				return
			}
			if targets, err := TransferTargets(*s, b, from); err == nil && !targets.Empty() {
				found = true
			}
		})
		if found {
			return true
		}
	}
	return false
}
