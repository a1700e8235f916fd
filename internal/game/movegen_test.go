// path: internal/game/movegen_test.go
package game

import "testing"

func TestOpeningMoves(t *testing.T) {
	tests := []struct {
		name string
		from string
		want []string
	}{
		{name: "pawn", from: "e2", want: []string{"e3", "e4"}},
		{name: "knight", from: "g1", want: []string{"f3", "h3"}},
		{name: "blocked bishop", from: "c1", want: nil},
		{name: "blocked rook", from: "a1", want: nil},
		{name: "blocked queen", from: "d1", want: nil},
		{name: "boxed king", from: "e1", want: nil},
	}

	s := mustState(t, nil, "opening")
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, err := LegalMoves(s, BoardMain, sq(t, tt.from))
			if err != nil {
				t.Fatalf("legal moves: %v", err)
			}
			var want Bitboard
			for _, coord := range tt.want {
				want = want.Add(sq(t, coord))
			}
			if got != want {
				t.Fatalf("moves from %s: got %v, want %v", tt.from, got.Squares(), want.Squares())
			}
		})
	}
}

func TestEnPassantCapture(t *testing.T) {
	s := mustState(t, nil, "ep")
	s = playMoves(t, s, "e2e4", "a7a6", "e4e5", "d7d5")

	epSq, ok := s.EnPassant.Square()
	if !ok || epSq != sq(t, "d6") {
		t.Fatalf("en-passant target: got %v, want d6", s.EnPassant)
	}

	legal, err := LegalMoves(s, BoardMain, sq(t, "e5"))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if !legal.Has(sq(t, "d6")) {
		t.Fatalf("e5 pawn cannot capture en passant; moves %v", legal.Squares())
	}

	s = playMoves(t, s, "e5d6")
	if pc := s.board(BoardMain).At(sq(t, "d5")); !pc.Empty() {
		t.Fatalf("passed pawn survived on d5: %v", pc)
	}
	if pc := s.board(BoardMain).At(sq(t, "d6")); pc.Type != Pawn || pc.Color != White {
		t.Fatalf("capturing pawn not on d6: %v", pc)
	}
	if s.HalfmoveClock != 0 {
		t.Fatalf("halfmove clock after capture: got %d, want 0", s.HalfmoveClock)
	}
}

func TestEnPassantTargetExpires(t *testing.T) {
	s := mustState(t, nil, "ep-expiry")
	s = playMoves(t, s, "e2e4", "d7d5", "b1c3", "d5d4")

	// The d6 target from d7d5 lasted exactly one ply, and a single-step
	// advance sets no new one.
	if s.EnPassant.Valid() {
		t.Fatalf("stale en-passant target: %v", s.EnPassant)
	}
}

func TestBurnedSquaresBlockMovement(t *testing.T) {
	s := bareState(t, nil, "burn")
	put(t, &s, BoardMain, "e1", King, White)
	put(t, &s, BoardMain, "e8", King, Black)
	put(t, &s, BoardMain, "a1", Rook, White)
	s.Burned = s.Burned.Add(sq(t, "a4"))

	legal, err := LegalMoves(s, BoardMain, sq(t, "a1"))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	for _, coord := range []string{"a2", "a3"} {
		if !legal.Has(sq(t, coord)) {
			t.Errorf("rook should reach %s; moves %v", coord, legal.Squares())
		}
	}
	for _, coord := range []string{"a4", "a5", "a6", "a7", "a8"} {
		if legal.Has(sq(t, coord)) {
			t.Errorf("rook passed through burned a4 to %s", coord)
		}
	}
}

func TestOpeningMovesNeverSelfCheck(t *testing.T) {
	s := mustState(t, nil, "sweep")
	s.board(BoardMain).OccupiedBy(White).Iter(func(from Square) {
		legal, err := LegalMoves(s, BoardMain, from)
		if err != nil {
			t.Fatalf("legal moves from %s: %v", from, err)
		}
		legal.Iter(func(to Square) {
			next, err := Apply(s, Move{Board: BoardMain, From: from, To: to})
			if err != nil {
				t.Fatalf("apply %s-%s: %v", from, to, err)
			}
			if next.kingInCheck(White) {
				t.Errorf("%s-%s leaves the white king in check", from, to)
			}
		})
	})
}

func TestPinnedPieceMayNotExposeKing(t *testing.T) {
	s := bareState(t, nil, "pin")
	put(t, &s, BoardMain, "e1", King, White)
	put(t, &s, BoardMain, "e4", Rook, White)
	put(t, &s, BoardMain, "e8", Rook, Black)
	put(t, &s, BoardMain, "a8", King, Black)

	legal, err := LegalMoves(s, BoardMain, sq(t, "e4"))
	if err != nil {
		t.Fatalf("legal moves: %v", err)
	}
	if legal.Has(sq(t, "a4")) {
		t.Fatalf("pinned rook may not leave the e-file; moves %v", legal.Squares())
	}
	if !legal.Has(sq(t, "e8")) {
		t.Fatalf("pinned rook should still capture the pinner; moves %v", legal.Squares())
	}
}
