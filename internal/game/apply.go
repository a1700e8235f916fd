// path: internal/game/apply.go
package game

import "fmt"

// NewState builds the initial position for a rule set and seed: standard
// placement first, then each active modifier's Setup in pipeline order.
func NewState(rules RuleSet, seed string) (State, error) {
	rules = rules.Normalize()
	if err := rules.Validate(); err != nil {
		return State{}, err
	}

	s := State{
		Rules:          rules,
		Seed:           seed,
		Boards:         []Board{{}},
		Turn:           White,
		Castling:       CastlingAll,
		RookFiles:      [2][2]int8{{0, 7}, {0, 7}},
		EnPassant:      NoEnPassantTarget(),
		FullmoveNumber: 1,
	}

	board := s.board(BoardMain)
	back := standardBackRank()
	for file := 0; file < 8; file++ {
		if sq, ok := SquareFromCoords(0, file); ok {
			board.Put(sq, Piece{Type: back[file], Color: White})
		}
		if sq, ok := SquareFromCoords(1, file); ok {
			board.Put(sq, Piece{Type: Pawn, Color: White})
		}
		if sq, ok := SquareFromCoords(6, file); ok {
			board.Put(sq, Piece{Type: Pawn, Color: Black})
		}
		if sq, ok := SquareFromCoords(7, file); ok {
			board.Put(sq, Piece{Type: back[file], Color: Black})
		}
	}

	for _, mod := range modifiersFor(rules) {
		mod.Setup(&s)
	}

	s.updateStatus()
	return s, nil
}

// Apply validates and executes one move against s, returning the successor
// state. The argument is never mutated; every rejection returns it unchanged
// alongside a sentinel from the error taxonomy.
func Apply(s State, mv Move) (State, error) {
	if s.GameOver() {
		return s, ErrGameOver
	}

	next := s.Clone()
	if !next.validBoard(mv.Board) || !mv.From.Valid() || !mv.To.Valid() {
		return s, ErrInvalidSquare
	}

	board := next.board(mv.Board)
	pc := board.At(mv.From)
	if pc.Empty() {
		return s, ErrNoPieceAtSource
	}
	if pc.Color != next.Turn {
		return s, ErrWrongSideToMove
	}
	if next.Pending.Active && next.Pending.Color == next.Turn {
		if mv.Transfer || mv.Board != next.Pending.Board || mv.From != next.Pending.Square {
			return s, fmt.Errorf("%w: pending knight must complete its turn", ErrVariantConflict)
		}
	}

	res := moveResult{board: mv.Board, from: mv.From, to: mv.To, piece: pc}

	if mv.Transfer {
		if err := next.applyTransfer(mv, pc); err != nil {
			return s, err
		}
		res.transfer = true
	} else if err := next.applyRelocation(mv, pc, &res); err != nil {
		return s, err
	}

	next.updateCastlingRights(mv, pc, res)

	for _, mod := range modifiersFor(next.Rules) {
		mod.PostMove(&next, &res)
	}

	if pc.Type == Pawn || res.didCapture {
		next.HalfmoveClock = 0
	} else {
		next.HalfmoveClock++
	}

	if !res.deferTurn {
		if next.Turn == Black {
			next.FullmoveNumber++
			res.completedFullMove = true
		}
		next.Plies++
		next.Turn = next.Turn.Opposite()
		for _, mod := range modifiersFor(next.Rules) {
			mod.PostTurn(&next, res)
		}
	}

	next.updateStatus()
	return next, nil
}

// applyTransfer validates and executes a cross-board transfer under void.
func (s *State) applyTransfer(mv Move, pc Piece) error {
	if !s.Rules.Contains(VariantVoid) || len(s.Boards) < 2 {
		return fmt.Errorf("%w: transfers need the void variant", ErrVariantConflict)
	}
	if s.TransferTokens[pc.Color.Index()] <= 0 {
		return fmt.Errorf("%w: no transfer tokens left", ErrVariantConflict)
	}

	targets, err := TransferTargets(*s, mv.Board, mv.From)
	if err != nil {
		return err
	}
	if !targets.Has(mv.To) {
		return ErrIllegalDestination
	}

	placed, err := s.resolvePromotion(mv, pc)
	if err != nil {
		return err
	}

	s.board(mv.Board).Clear(mv.From)
	s.board(otherBoard(mv.Board)).Put(mv.To, placed)
	s.EnPassant = NoEnPassantTarget()
	return nil
}

// applyRelocation validates and executes an ordinary single-board move,
// including en-passant capture and castling rook relocation.
func (s *State) applyRelocation(mv Move, pc Piece, res *moveResult) error {
	if !s.legalMoves(mv.Board, mv.From).Has(mv.To) {
		return ErrIllegalDestination
	}

	placed, err := s.resolvePromotion(mv, pc)
	if err != nil {
		return err
	}

	board := s.board(mv.Board)

	// Castling is detected before any mutation: under a randomized back rank
	// the king's destination can be the rook's origin square and the rook's
	// destination can be the king's, so neither piece may land before both
	// origins are vacated, and the rook on the king's destination must not
	// read as a capture.
	var castleSide CastlingSide
	if pc.Type == King {
		castleSide, res.castle = s.castleSideFor(mv.Board, pc.Color, mv.From, mv.To)
	}

	if captured := board.At(mv.To); !res.castle && !captured.Empty() {
		res.captured = captured
		res.didCapture = true
	}

	// A diagonal pawn move onto the empty en-passant target removes the
	// passed pawn from the square it skipped to.
	if pc.Type == Pawn && mv.From.File() != mv.To.File() && !res.didCapture {
		if epSq, ok := s.EnPassant.Square(); ok && epSq == mv.To {
			if victimSq, ok := SquareFromCoords(mv.To.Rank()-pawnDirection(pc.Color), mv.To.File()); ok {
				res.captured = board.At(victimSq)
				res.didCapture = !res.captured.Empty()
				board.Clear(victimSq)
			}
		}
	}

	board.Clear(mv.From)
	if res.castle {
		s.relocateCastleRook(mv.Board, pc.Color, castleSide)
	}
	board.Put(mv.To, placed)

	rankDelta := mv.To.Rank() - mv.From.Rank()
	if rankDelta < 0 {
		rankDelta = -rankDelta
	}
	if pc.Type == Pawn && mv.Board == BoardMain && mv.From.File() == mv.To.File() && rankDelta == 2 {
		mid, _ := SquareFromCoords((mv.From.Rank()+mv.To.Rank())/2, mv.From.File())
		s.EnPassant = NewEnPassantTarget(mid)
	} else {
		s.EnPassant = NoEnPassantTarget()
	}
	return nil
}

// resolvePromotion checks the promotion preconditions and returns the piece
// to place on the destination square.
func (s *State) resolvePromotion(mv Move, pc Piece) (Piece, error) {
	isPromotion := pc.Type == Pawn && mv.To.Rank() == terminalRank(pc.Color)
	if isPromotion && !mv.HasPromotion {
		return Piece{}, ErrPromotionRequired
	}
	if mv.HasPromotion {
		if !isPromotion || !promotablePiece(mv.Promotion) {
			return Piece{}, fmt.Errorf("%w: promotion not applicable", ErrPromotionRequired)
		}
		pc.Type = mv.Promotion
	}
	return pc, nil
}

func promotablePiece(pt PieceType) bool {
	switch pt {
	case Queen, Rook, Bishop, Knight:
		return true
	default:
		return false
	}
}

// updateCastlingRights drops rights when a king moves (or transfers away),
// when a rook leaves its origin square, and when a rook is captured on it.
// Rook origins exist only on the main board; a rook moving on the void
// board at coinciding coordinates leaves the rights alone.
func (s *State) updateCastlingRights(mv Move, pc Piece, res moveResult) {
	sides := [2]CastlingSide{CastleQueenside, CastleKingside}

	if pc.Type == King {
		s.Castling = s.Castling.WithoutColor(pc.Color)
	}
	if pc.Type == Rook && mv.Board == BoardMain && mv.From.Rank() == homeRank(pc.Color) {
		for _, side := range sides {
			if int(s.RookFiles[pc.Color.Index()][side]) == mv.From.File() {
				s.Castling = s.Castling.Without(CastlingRight(pc.Color, side))
			}
		}
	}

	enemy := pc.Color.Opposite()
	if res.didCapture && res.captured.Type == Rook && mv.Board == BoardMain && mv.To.Rank() == homeRank(enemy) {
		for _, side := range sides {
			if int(s.RookFiles[enemy.Index()][side]) == mv.To.File() {
				s.Castling = s.Castling.Without(CastlingRight(enemy, side))
			}
		}
	}
}

// Replay rebuilds the state reached by applying moves in order to a fresh
// game. Storage keeps the move list; undo is replay minus the tail.
func Replay(rules RuleSet, seed string, moves []Move) (State, error) {
	s, err := NewState(rules, seed)
	if err != nil {
		return State{}, err
	}
	for i, mv := range moves {
		s, err = Apply(s, mv)
		if err != nil {
			return State{}, fmt.Errorf("replaying move %d (%s): %w", i+1, mv, err)
		}
	}
	return s, nil
}
