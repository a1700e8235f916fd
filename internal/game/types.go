// path: internal/game/types.go
// Package game implements the variant chess rule engine: move generation,
// legality filtering, the rule modifier pipeline, status evaluation and the
// move applier. A GameState is an immutable value; every accepted move
// produces a fresh one.
package game

import (
	"fmt"
	"strings"

	"varchess/internal/shared"
)

// Board primitives live in internal/shared; aliases keep the engine API flat.
type (
	Color           = shared.Color
	PieceType       = shared.PieceType
	Piece           = shared.Piece
	Square          = shared.Square
	CastlingRights  = shared.CastlingRights
	CastlingSide    = shared.CastlingSide
	EnPassantTarget = shared.EnPassantTarget
)

const (
	White = shared.White
	Black = shared.Black

	NoPiece = shared.NoPiece
	Pawn    = shared.Pawn
	Knight  = shared.Knight
	Bishop  = shared.Bishop
	Rook    = shared.Rook
	Queen   = shared.Queen
	King    = shared.King

	CastleQueenside = shared.CastleQueenside
	CastleKingside  = shared.CastleKingside

	CastlingNone = shared.CastlingNone
	CastlingAll  = shared.CastlingAll
)

var (
	CoordToSquare       = shared.CoordToSquare
	ParseColor          = shared.ParseColor
	SquareFromCoords    = shared.SquareFromCoords
	ParsePromotionPiece = shared.ParsePromotionPiece
	Chebyshev           = shared.Chebyshev
	CastlingRight       = shared.CastlingRight
	NewEnPassantTarget  = shared.NewEnPassantTarget
	NoEnPassantTarget   = shared.NoEnPassantTarget
)

// BoardID selects one of the coexisting boards. Only the void variant has
// more than BoardMain.
type BoardID uint8

const (
	BoardMain BoardID = 0
	BoardVoid BoardID = 1
)

// Variant names one optional rule modifier.
type Variant uint8

const (
	VariantDoubleKnight Variant = iota
	VariantPawnRotation
	VariantXRayBishop
	VariantPawnWall
	VariantBlink
	VariantFogOfWar
	VariantMeteorShower
	VariantFischerRandom
	VariantVoid
)

// pipelineOrder is the fixed, deterministic application order of modifiers.
var pipelineOrder = []Variant{
	VariantDoubleKnight,
	VariantPawnRotation,
	VariantXRayBishop,
	VariantPawnWall,
	VariantBlink,
	VariantFogOfWar,
	VariantMeteorShower,
	VariantFischerRandom,
	VariantVoid,
}

func (v Variant) String() string {
	switch v {
	case VariantDoubleKnight:
		return "double-knight"
	case VariantPawnRotation:
		return "pawn-rotation"
	case VariantXRayBishop:
		return "x-ray-bishop"
	case VariantPawnWall:
		return "pawn-wall"
	case VariantBlink:
		return "blink"
	case VariantFogOfWar:
		return "fog-of-war"
	case VariantMeteorShower:
		return "meteor-shower"
	case VariantFischerRandom:
		return "fischer-random"
	case VariantVoid:
		return "void"
	default:
		return fmt.Sprintf("variant(%d)", uint8(v))
	}
}

func ParseVariant(s string) (Variant, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "double-knight", "doubleknight":
		return VariantDoubleKnight, true
	case "pawn-rotation", "pawnrotation":
		return VariantPawnRotation, true
	case "x-ray-bishop", "xray-bishop", "xraybishop":
		return VariantXRayBishop, true
	case "pawn-wall", "pawnwall":
		return VariantPawnWall, true
	case "blink":
		return VariantBlink, true
	case "fog-of-war", "fogofwar", "fog":
		return VariantFogOfWar, true
	case "meteor-shower", "meteorshower", "meteor":
		return VariantMeteorShower, true
	case "fischer-random", "fischerrandom", "fischer":
		return VariantFischerRandom, true
	case "void":
		return VariantVoid, true
	default:
		return 0, false
	}
}

func (v Variant) MarshalText() ([]byte, error) { return []byte(v.String()), nil }

func (v *Variant) UnmarshalText(text []byte) error {
	parsed, ok := ParseVariant(string(text))
	if !ok {
		return fmt.Errorf("invalid variant %q", string(text))
	}
	*v = parsed
	return nil
}

// RuleSet is an ordered set of modifiers. An empty RuleSet is standard chess.
type RuleSet []Variant

func (rs RuleSet) Contains(target Variant) bool {
	for _, v := range rs {
		if v == target {
			return true
		}
	}
	return false
}

func (rs RuleSet) Clone() RuleSet {
	if len(rs) == 0 {
		return nil
	}
	out := make(RuleSet, len(rs))
	copy(out, rs)
	return out
}

// Normalize returns the rule set de-duplicated and re-ordered into the fixed
// pipeline order, so two logically equal rule sets compare equal.
func (rs RuleSet) Normalize() RuleSet {
	var out RuleSet
	for _, v := range pipelineOrder {
		if rs.Contains(v) {
			out = append(out, v)
		}
	}
	return out
}

// Validate rejects rule sets the engine cannot compose: the dual-board void
// variant is exclusive with every single-board variant.
func (rs RuleSet) Validate() error {
	if rs.Contains(VariantVoid) && len(rs.Normalize()) > 1 {
		return fmt.Errorf("%w: void cannot be combined with single-board variants", ErrVariantConflict)
	}
	return nil
}

func (rs RuleSet) Strings() []string {
	out := make([]string, len(rs))
	for i, v := range rs {
		out[i] = v.String()
	}
	return out
}

// ParseRuleSet parses variant names, normalizing order and duplicates.
func ParseRuleSet(names []string) (RuleSet, error) {
	rs := make(RuleSet, 0, len(names))
	for _, name := range names {
		v, ok := ParseVariant(name)
		if !ok {
			return nil, fmt.Errorf("invalid variant %q", name)
		}
		rs = append(rs, v)
	}
	rs = rs.Normalize()
	if err := rs.Validate(); err != nil {
		return nil, err
	}
	return rs, nil
}

// Move is a single submitted action: an ordinary relocation on one board, or
// a cross-board transfer under the void variant.
type Move struct {
	Board        BoardID   `json:"board"`
	From         Square    `json:"from"`
	To           Square    `json:"to"`
	Promotion    PieceType `json:"promotion,omitempty"`
	HasPromotion bool      `json:"hasPromotion,omitempty"`
	Transfer     bool      `json:"transfer,omitempty"`
}

func (m Move) String() string {
	if m.Transfer {
		return fmt.Sprintf("%s>%s", m.From, m.To)
	}
	return fmt.Sprintf("%s-%s", m.From, m.To)
}
