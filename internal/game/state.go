// path: internal/game/state.go
package game

import "encoding/json"

// Board is a sparse square-to-piece mapping over the 64 squares.
type Board struct {
	cells [64]Piece
}

func (b *Board) At(sq Square) Piece { return b.cells[sq] }

func (b *Board) Put(sq Square, p Piece) { b.cells[sq] = p }

func (b *Board) Clear(sq Square) { b.cells[sq] = Piece{} }

// Occupied returns the set of non-empty squares.
func (b *Board) Occupied() Bitboard {
	var occ Bitboard
	for i := range b.cells {
		if !b.cells[i].Empty() {
			occ = occ.Add(Square(i))
		}
	}
	return occ
}

// OccupiedBy returns the squares holding color's pieces.
func (b *Board) OccupiedBy(color Color) Bitboard {
	var occ Bitboard
	for i := range b.cells {
		if pc := b.cells[i]; !pc.Empty() && pc.Color == color {
			occ = occ.Add(Square(i))
		}
	}
	return occ
}

// KingSquare locates color's king, if it is on this board.
func (b *Board) KingSquare(color Color) (Square, bool) {
	for i := range b.cells {
		if pc := b.cells[i]; pc.Type == King && pc.Color == color {
			return Square(i), true
		}
	}
	return 0, false
}

type boardCell struct {
	Square Square `json:"square"`
	Piece  Piece  `json:"piece"`
}

// MarshalJSON serializes the board sparsely, occupied squares only.
func (b Board) MarshalJSON() ([]byte, error) {
	cells := make([]boardCell, 0, 32)
	for i := range b.cells {
		if !b.cells[i].Empty() {
			cells = append(cells, boardCell{Square: Square(i), Piece: b.cells[i]})
		}
	}
	return json.Marshal(cells)
}

func (b *Board) UnmarshalJSON(data []byte) error {
	var cells []boardCell
	if err := json.Unmarshal(data, &cells); err != nil {
		return err
	}
	*b = Board{}
	for _, cell := range cells {
		b.cells[cell.Square] = cell.Piece
	}
	return nil
}

// PendingKnight marks an unfinished double-knight turn: only the designated
// knight may move next, and the side to move is unchanged until it does.
type PendingKnight struct {
	Active bool    `json:"active"`
	Board  BoardID `json:"board"`
	Square Square  `json:"square"`
	Color  Color   `json:"color"`
}

// State is the complete game state. It is treated as an immutable value:
// Apply returns a new State and never mutates its receiver argument.
type State struct {
	Rules RuleSet `json:"rules"`
	Seed  string  `json:"seed"`

	Boards []Board `json:"boards"`

	Turn           Color           `json:"turn"`
	Castling       CastlingRights  `json:"castling"`
	RookFiles      [2][2]int8      `json:"rookFiles"` // [color][side] rook origin file
	EnPassant      EnPassantTarget `json:"enPassant"`
	HalfmoveClock  int             `json:"halfmoveClock"`
	FullmoveNumber int             `json:"fullmoveNumber"`
	Plies          int             `json:"plies"` // completed turns; a double-knight pair counts once

	InCheck   bool `json:"inCheck"`
	Checkmate bool `json:"checkmate"`
	Stalemate bool `json:"stalemate"`

	// Variant auxiliary state. All of it must survive a storage round-trip
	// exactly, so replay and live play stay bit-identical.
	Pending        PendingKnight `json:"pendingKnight"`
	BlinkUsed      [2]bool       `json:"blinkUsed"`
	Burned         Bitboard      `json:"burned"`
	TransferTokens [2]int        `json:"transferTokens"`
}

// Clone deep-copies the state. Boards is the only reference-holding field
// besides the rule list; both get fresh backing.
func (s State) Clone() State {
	out := s
	out.Boards = make([]Board, len(s.Boards))
	copy(out.Boards, s.Boards)
	out.Rules = s.Rules.Clone()
	return out
}

// GameOver reports whether any terminal flag is set.
func (s *State) GameOver() bool { return s.Checkmate || s.Stalemate }

func (s *State) board(id BoardID) *Board { return &s.Boards[id] }

func (s *State) validBoard(id BoardID) bool { return int(id) < len(s.Boards) }

// otherBoard is the transfer destination board under void.
func otherBoard(id BoardID) BoardID {
	if id == BoardMain {
		return BoardVoid
	}
	return BoardMain
}

// terminalRank is the promotion rank for color.
func terminalRank(color Color) int {
	if color == White {
		return 7
	}
	return 0
}

// pawnDirection is the forward rank delta for color's pawns.
func pawnDirection(color Color) int {
	if color == White {
		return 1
	}
	return -1
}

// pawnStartRank is the rank granting the classic two-square advance.
func pawnStartRank(color Color) int {
	if color == White {
		return 1
	}
	return 6
}
