// path: internal/shared/types.go
// Package shared holds the board primitives used across the engine and its
// collaborators: squares, colors, piece kinds, castling rights and the
// en-passant target. All of them round-trip through encoding.TextMarshaler
// so game documents serialize to readable JSON.
package shared

import (
	"fmt"
	"strings"
)

type Color uint8

const (
	White Color = iota
	Black
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) Index() int { return int(c) }

func (c Color) String() string {
	if c == White {
		return "white"
	}
	return "black"
}

func ParseColor(s string) (Color, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "white", "w":
		return White, true
	case "black", "b":
		return Black, true
	default:
		return 0, false
	}
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.String()), nil }

func (c *Color) UnmarshalText(text []byte) error {
	parsed, ok := ParseColor(string(text))
	if !ok {
		return fmt.Errorf("invalid color %q", string(text))
	}
	*c = parsed
	return nil
}

type PieceType uint8

const (
	NoPiece PieceType = iota
	Pawn
	Knight
	Bishop
	Rook
	Queen
	King
)

func (p PieceType) String() string {
	switch p {
	case NoPiece:
		return "-"
	case Pawn:
		return "P"
	case Knight:
		return "N"
	case Bishop:
		return "B"
	case Rook:
		return "R"
	case Queen:
		return "Q"
	case King:
		return "K"
	default:
		return fmt.Sprintf("piece(%d)", uint8(p))
	}
}

func ParsePieceType(s string) (PieceType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "-":
		return NoPiece, true
	case "p", "pawn":
		return Pawn, true
	case "n", "knight":
		return Knight, true
	case "b", "bishop":
		return Bishop, true
	case "r", "rook":
		return Rook, true
	case "q", "queen":
		return Queen, true
	case "k", "king":
		return King, true
	default:
		return NoPiece, false
	}
}

// ParsePromotionPiece accepts the subset of piece names a pawn may promote to.
func ParsePromotionPiece(s string) (PieceType, bool) {
	pt, ok := ParsePieceType(s)
	if !ok {
		return NoPiece, false
	}
	switch pt {
	case Queen, Rook, Bishop, Knight:
		return pt, true
	default:
		return NoPiece, false
	}
}

func (p PieceType) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *PieceType) UnmarshalText(text []byte) error {
	parsed, ok := ParsePieceType(string(text))
	if !ok {
		return fmt.Errorf("invalid piece type %q", string(text))
	}
	*p = parsed
	return nil
}

// Piece is an immutable kind+color value. The zero value is an empty square.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

func (p Piece) Empty() bool { return p.Type == NoPiece }

func (p Piece) String() string {
	if p.Empty() {
		return "-"
	}
	return fmt.Sprintf("%s %s", p.Color, p.Type)
}

type Square uint8

func (s Square) Rank() int { return int(s) >> 3 }
func (s Square) File() int { return int(s) & 7 }

func (s Square) Valid() bool { return s < 64 }

func (s Square) String() string {
	file := byte('a' + s.File())
	rank := byte('1' + s.Rank())
	return string([]byte{file, rank})
}

func CoordToSquare(coord string) (Square, bool) {
	if len(coord) != 2 {
		return 0, false
	}
	file := coord[0]
	rank := coord[1]
	if file < 'a' || file > 'h' || rank < '1' || rank > '8' {
		return 0, false
	}
	r := int(rank - '1')
	c := int(file - 'a')
	return Square(r*8 + c), true
}

func SquareFromCoords(rank, file int) (Square, bool) {
	if rank < 0 || rank > 7 || file < 0 || file > 7 {
		return 0, false
	}
	return Square(rank*8 + file), true
}

func (s Square) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Square) UnmarshalText(text []byte) error {
	sq, ok := CoordToSquare(strings.ToLower(strings.TrimSpace(string(text))))
	if !ok {
		return fmt.Errorf("invalid square %q", string(text))
	}
	*s = sq
	return nil
}

// Chebyshev is the king-move distance between two squares.
func Chebyshev(a, b Square) int {
	dr := abs(a.Rank() - b.Rank())
	df := abs(a.File() - b.File())
	if dr > df {
		return dr
	}
	return df
}

// Line returns the strictly-between squares when from and to share a rank,
// file or diagonal, and nil otherwise.
func Line(from, to Square) []Square {
	dr := to.Rank() - from.Rank()
	df := to.File() - from.File()
	stepR := normalize(dr)
	stepF := normalize(df)

	aligned := false
	switch {
	case dr == 0 && df != 0:
		stepR = 0
		aligned = true
	case df == 0 && dr != 0:
		stepF = 0
		aligned = true
	case abs(dr) == abs(df) && dr != 0:
		aligned = true
	}

	if !aligned {
		return nil
	}

	distance := max(abs(dr), abs(df)) - 1
	if distance <= 0 {
		return nil
	}

	squares := make([]Square, 0, distance)
	rank := from.Rank()
	file := from.File()
	for i := 0; i < distance; i++ {
		rank += stepR
		file += stepF
		sq, ok := SquareFromCoords(rank, file)
		if !ok {
			return nil
		}
		squares = append(squares, sq)
	}
	return squares
}

func normalize(v int) int {
	if v > 0 {
		return 1
	}
	if v < 0 {
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

type CastlingRights uint8

const (
	CastlingNone          CastlingRights = 0
	CastlingWhiteKingside CastlingRights = 1 << iota
	CastlingWhiteQueenside
	CastlingBlackKingside
	CastlingBlackQueenside
	CastlingAll = CastlingWhiteKingside | CastlingWhiteQueenside | CastlingBlackKingside | CastlingBlackQueenside
)

type CastlingSide uint8

const (
	CastleQueenside CastlingSide = iota
	CastleKingside
)

func (cs CastlingSide) String() string {
	if cs == CastleQueenside {
		return "queenside"
	}
	return "kingside"
}

func CastlingRight(color Color, side CastlingSide) CastlingRights {
	switch color {
	case White:
		if side == CastleQueenside {
			return CastlingWhiteQueenside
		}
		return CastlingWhiteKingside
	case Black:
		if side == CastleQueenside {
			return CastlingBlackQueenside
		}
		return CastlingBlackKingside
	default:
		return CastlingNone
	}
}

func CastlingRightsForColor(color Color) CastlingRights {
	switch color {
	case White:
		return CastlingWhiteKingside | CastlingWhiteQueenside
	case Black:
		return CastlingBlackKingside | CastlingBlackQueenside
	default:
		return CastlingNone
	}
}

func (cr CastlingRights) Has(right CastlingRights) bool { return cr&right != 0 }

func (cr CastlingRights) HasSide(color Color, side CastlingSide) bool {
	return cr.Has(CastlingRight(color, side))
}

func (cr CastlingRights) Without(right CastlingRights) CastlingRights { return cr &^ right }

func (cr CastlingRights) WithoutColor(color Color) CastlingRights {
	return cr.Without(CastlingRightsForColor(color))
}

func (cr CastlingRights) String() string {
	if cr == CastlingNone {
		return "-"
	}
	var b strings.Builder
	if cr.Has(CastlingWhiteKingside) {
		b.WriteByte('K')
	}
	if cr.Has(CastlingWhiteQueenside) {
		b.WriteByte('Q')
	}
	if cr.Has(CastlingBlackKingside) {
		b.WriteByte('k')
	}
	if cr.Has(CastlingBlackQueenside) {
		b.WriteByte('q')
	}
	return b.String()
}

func ParseCastlingRights(s string) (CastlingRights, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return CastlingNone, nil
	}
	var rights CastlingRights
	for _, r := range trimmed {
		switch r {
		case 'K':
			rights |= CastlingWhiteKingside
		case 'Q':
			rights |= CastlingWhiteQueenside
		case 'k':
			rights |= CastlingBlackKingside
		case 'q':
			rights |= CastlingBlackQueenside
		default:
			return CastlingNone, fmt.Errorf("invalid castling flag %q", string(r))
		}
	}
	return rights, nil
}

func (cr CastlingRights) MarshalText() ([]byte, error) { return []byte(cr.String()), nil }

func (cr *CastlingRights) UnmarshalText(text []byte) error {
	parsed, err := ParseCastlingRights(string(text))
	if err != nil {
		return err
	}
	*cr = parsed
	return nil
}

type EnPassantTarget struct {
	square Square
	valid  bool
}

func NewEnPassantTarget(sq Square) EnPassantTarget { return EnPassantTarget{square: sq, valid: true} }

func NoEnPassantTarget() EnPassantTarget { return EnPassantTarget{} }

func (e EnPassantTarget) Valid() bool { return e.valid }

func (e EnPassantTarget) Square() (Square, bool) {
	if !e.valid {
		return 0, false
	}
	return e.square, true
}

func (e EnPassantTarget) String() string {
	if !e.valid {
		return "-"
	}
	return e.square.String()
}

func ParseEnPassantTarget(s string) (EnPassantTarget, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" || trimmed == "-" {
		return EnPassantTarget{}, nil
	}
	sq, ok := CoordToSquare(strings.ToLower(trimmed))
	if !ok {
		return EnPassantTarget{}, fmt.Errorf("invalid en-passant square %q", s)
	}
	return NewEnPassantTarget(sq), nil
}

func (e EnPassantTarget) MarshalText() ([]byte, error) { return []byte(e.String()), nil }

func (e *EnPassantTarget) UnmarshalText(text []byte) error {
	parsed, err := ParseEnPassantTarget(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
