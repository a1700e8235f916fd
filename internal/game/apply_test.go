// path: internal/game/apply_test.go
package game

import (
	"encoding/json"
	"errors"
	"testing"
)

func TestApplyRejections(t *testing.T) {
	opening := mustState(t, nil, "rejections")

	tests := []struct {
		name string
		mv   Move
		want error
	}{
		{
			name: "unknown board",
			mv:   Move{Board: BoardVoid, From: 8, To: 16},
			want: ErrInvalidSquare,
		},
		{
			name: "empty source",
			mv:   Move{From: 32, To: 40},
			want: ErrNoPieceAtSource,
		},
		{
			name: "opponent piece",
			mv:   Move{From: 52, To: 44},
			want: ErrWrongSideToMove,
		},
		{
			name: "pawn triple step",
			mv:   Move{From: 12, To: 36},
			want: ErrIllegalDestination,
		},
		{
			name: "transfer without void",
			mv:   Move{From: 1, To: 18, Transfer: true},
			want: ErrVariantConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Apply(opening, tt.mv); !errors.Is(err, tt.want) {
				t.Fatalf("got error %v, want %v", err, tt.want)
			}
		})
	}
}

func TestApplyRejectsAfterGameOver(t *testing.T) {
	s := mustState(t, nil, "over")
	s = playMoves(t, s, "f2f3", "e7e5", "g2g4", "d8h4")
	if !s.Checkmate {
		t.Fatal("expected checkmate position")
	}
	if _, err := Apply(s, Move{From: sq(t, "a2"), To: sq(t, "a3")}); !errors.Is(err, ErrGameOver) {
		t.Fatalf("got error %v, want %v", err, ErrGameOver)
	}
}

func TestPromotion(t *testing.T) {
	base := bareState(t, nil, "promo")
	put(t, &base, BoardMain, "e1", King, White)
	put(t, &base, BoardMain, "h8", King, Black)
	put(t, &base, BoardMain, "a7", Pawn, White)

	if _, err := Apply(base, Move{From: sq(t, "a7"), To: sq(t, "a8")}); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("missing promotion: got %v, want %v", err, ErrPromotionRequired)
	}

	next, err := Apply(base, Move{From: sq(t, "a7"), To: sq(t, "a8"), Promotion: Queen, HasPromotion: true})
	if err != nil {
		t.Fatalf("promote: %v", err)
	}
	if pc := next.board(BoardMain).At(sq(t, "a8")); pc.Type != Queen || pc.Color != White {
		t.Fatalf("promoted piece: got %v, want white queen", pc)
	}

	// Promotion flags on a non-promoting move are rejected.
	if _, err := Apply(base, Move{From: sq(t, "a7"), To: sq(t, "a6"), Promotion: Queen, HasPromotion: true}); !errors.Is(err, ErrPromotionRequired) {
		t.Fatalf("spurious promotion: got %v, want %v", err, ErrPromotionRequired)
	}
}

func TestCastlingKingside(t *testing.T) {
	s := bareState(t, nil, "castle")
	put(t, &s, BoardMain, "e1", King, White)
	put(t, &s, BoardMain, "h1", Rook, White)
	put(t, &s, BoardMain, "e8", King, Black)
	s.Castling = CastlingAll

	next, err := Apply(s, Move{From: sq(t, "e1"), To: sq(t, "g1")})
	if err != nil {
		t.Fatalf("castle: %v", err)
	}
	if pc := next.board(BoardMain).At(sq(t, "g1")); pc.Type != King {
		t.Fatalf("king not on g1: %v", pc)
	}
	if pc := next.board(BoardMain).At(sq(t, "f1")); pc.Type != Rook {
		t.Fatalf("rook not on f1: %v", pc)
	}
	if next.Castling.HasSide(White, CastleKingside) || next.Castling.HasSide(White, CastleQueenside) {
		t.Fatalf("white retains castling rights: %v", next.Castling)
	}
	if next.HalfmoveClock != 1 {
		t.Fatalf("halfmove clock after castle: got %d, want 1", next.HalfmoveClock)
	}
}

func TestCastlingWithOverlappingOrigins(t *testing.T) {
	// Randomized back ranks can put the castling rook's destination on the
	// king's origin square, or the king's destination on the rook's origin.
	// Both pieces must survive the swap.
	t.Run("rook lands on king origin", func(t *testing.T) {
		s := bareState(t, nil, "overlap-a")
		put(t, &s, BoardMain, "e1", Rook, White)
		put(t, &s, BoardMain, "f1", King, White)
		put(t, &s, BoardMain, "h1", Rook, White)
		put(t, &s, BoardMain, "e8", King, Black)
		s.Castling = CastlingAll
		s.RookFiles[White.Index()] = [2]int8{4, 7}

		next, err := Apply(s, Move{From: sq(t, "f1"), To: sq(t, "g1")})
		if err != nil {
			t.Fatalf("castle: %v", err)
		}
		if pc := next.board(BoardMain).At(sq(t, "g1")); pc.Type != King {
			t.Fatalf("king not on g1: %v", pc)
		}
		if pc := next.board(BoardMain).At(sq(t, "f1")); pc.Type != Rook {
			t.Fatalf("castling rook not on f1: %v", pc)
		}
		if pc := next.board(BoardMain).At(sq(t, "e1")); pc.Type != Rook {
			t.Fatalf("queenside rook disturbed on e1: %v", pc)
		}
		if got := next.board(BoardMain).OccupiedBy(White).Count(); got != 3 {
			t.Fatalf("white pieces after castle: got %d, want 3", got)
		}
	})

	t.Run("king lands on rook origin", func(t *testing.T) {
		s := bareState(t, nil, "overlap-b")
		put(t, &s, BoardMain, "a1", Rook, White)
		put(t, &s, BoardMain, "e1", King, White)
		put(t, &s, BoardMain, "g1", Rook, White)
		put(t, &s, BoardMain, "e8", King, Black)
		s.Castling = CastlingAll
		s.RookFiles[White.Index()] = [2]int8{0, 6}

		next, err := Apply(s, Move{From: sq(t, "e1"), To: sq(t, "g1")})
		if err != nil {
			t.Fatalf("castle: %v", err)
		}
		if pc := next.board(BoardMain).At(sq(t, "g1")); pc.Type != King {
			t.Fatalf("king not on g1: %v", pc)
		}
		if pc := next.board(BoardMain).At(sq(t, "f1")); pc.Type != Rook {
			t.Fatalf("castling rook not on f1: %v", pc)
		}
		if pc := next.board(BoardMain).At(sq(t, "a1")); pc.Type != Rook {
			t.Fatalf("queenside rook disturbed on a1: %v", pc)
		}
		if got := next.board(BoardMain).OccupiedBy(White).Count(); got != 3 {
			t.Fatalf("white pieces after castle: got %d, want 3", got)
		}
	})
}

func TestCastlingThroughAttackedSquareRejected(t *testing.T) {
	s := bareState(t, nil, "castle-attacked")
	put(t, &s, BoardMain, "e1", King, White)
	put(t, &s, BoardMain, "h1", Rook, White)
	put(t, &s, BoardMain, "e8", King, Black)
	put(t, &s, BoardMain, "f8", Rook, Black)
	s.Castling = CastlingAll

	if _, err := Apply(s, Move{From: sq(t, "e1"), To: sq(t, "g1")}); !errors.Is(err, ErrIllegalDestination) {
		t.Fatalf("castle through attacked f1: got %v, want %v", err, ErrIllegalDestination)
	}
}

func TestRookMoveDropsCastlingRight(t *testing.T) {
	s := mustState(t, nil, "rights")
	s = playMoves(t, s, "h2h4", "a7a6", "h1h3")
	if s.Castling.HasSide(White, CastleKingside) {
		t.Fatal("white kingside right should be gone after the rook leaves h1")
	}
	if !s.Castling.HasSide(White, CastleQueenside) {
		t.Fatal("white queenside right should survive")
	}
}

func TestClockBookkeeping(t *testing.T) {
	s := mustState(t, nil, "clocks")
	s = playMoves(t, s, "e2e4")
	if s.HalfmoveClock != 0 || s.FullmoveNumber != 1 || s.Plies != 1 {
		t.Fatalf("after e2e4: half=%d full=%d plies=%d", s.HalfmoveClock, s.FullmoveNumber, s.Plies)
	}
	s = playMoves(t, s, "b8c6")
	if s.HalfmoveClock != 1 || s.FullmoveNumber != 2 || s.Plies != 2 {
		t.Fatalf("after b8c6: half=%d full=%d plies=%d", s.HalfmoveClock, s.FullmoveNumber, s.Plies)
	}
}

func TestReplayMatchesLivePlay(t *testing.T) {
	moves := []Move{}
	s := mustState(t, nil, "replay")
	for _, m := range []string{"e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "g8f6"} {
		mv := Move{Board: BoardMain, From: sq(t, m[:2]), To: sq(t, m[2:])}
		next, err := Apply(s, mv)
		if err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
		s = next
		moves = append(moves, mv)
	}

	replayed, err := Replay(nil, "replay", moves)
	if err != nil {
		t.Fatalf("replay: %v", err)
	}

	liveJSON, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal live: %v", err)
	}
	replayJSON, err := json.Marshal(replayed)
	if err != nil {
		t.Fatalf("marshal replay: %v", err)
	}
	if string(liveJSON) != string(replayJSON) {
		t.Fatalf("replayed state diverged:\nlive:   %s\nreplay: %s", liveJSON, replayJSON)
	}
}

func TestApplyLeavesInputUntouched(t *testing.T) {
	s := mustState(t, nil, "immutable")
	before, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if _, err := Apply(s, Move{From: sq(t, "e2"), To: sq(t, "e4")}); err != nil {
		t.Fatalf("apply: %v", err)
	}
	after, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(before) != string(after) {
		t.Fatal("Apply mutated its input state")
	}
}
