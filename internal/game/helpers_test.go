// path: internal/game/helpers_test.go
package game

import "testing"

func sq(t *testing.T, coord string) Square {
	t.Helper()
	s, ok := CoordToSquare(coord)
	if !ok {
		t.Fatalf("invalid coordinate %q", coord)
	}
	return s
}

func mustState(t *testing.T, rules RuleSet, seed string) State {
	t.Helper()
	s, err := NewState(rules, seed)
	if err != nil {
		t.Fatalf("new state: %v", err)
	}
	return s
}

// playMoves applies "e2e4"-style main-board moves in order.
func playMoves(t *testing.T, s State, moves ...string) State {
	t.Helper()
	for _, m := range moves {
		if len(m) != 4 {
			t.Fatalf("bad move notation %q", m)
		}
		next, err := Apply(s, Move{Board: BoardMain, From: sq(t, m[:2]), To: sq(t, m[2:])})
		if err != nil {
			t.Fatalf("apply %s: %v", m, err)
		}
		s = next
	}
	return s
}

// bareState builds an empty-board state with the modifiers' Setup applied.
// Tests place pieces directly and refresh flags via updateStatus.
func bareState(t *testing.T, rules RuleSet, seed string) State {
	t.Helper()
	rules = rules.Normalize()
	if err := rules.Validate(); err != nil {
		t.Fatalf("rules: %v", err)
	}
	s := State{
		Rules:          rules,
		Seed:           seed,
		Boards:         []Board{{}},
		Turn:           White,
		RookFiles:      [2][2]int8{{0, 7}, {0, 7}},
		EnPassant:      NoEnPassantTarget(),
		FullmoveNumber: 1,
	}
	for _, mod := range modifiersFor(rules) {
		mod.Setup(&s)
	}
	return s
}

func put(t *testing.T, s *State, b BoardID, coord string, pt PieceType, color Color) {
	t.Helper()
	s.board(b).Put(sq(t, coord), Piece{Type: pt, Color: color})
}
