// path: internal/game/rules.go
package game

// moveResult carries facts about the applied move into the pipeline hooks.
type moveResult struct {
	board      BoardID
	from       Square
	to         Square
	piece      Piece // as it stood before any promotion
	captured   Piece
	didCapture bool
	castle     bool
	transfer   bool

	// deferTurn keeps the side to move unchanged (double-knight first half).
	deferTurn bool
	// completedFullMove is set by the applier once black finishes a turn.
	completedFullMove bool
}

// Modifier is one optional rule in the pipeline. Modifiers are stateless;
// everything they track lives on State so persistence and replay see it.
type Modifier interface {
	Variant() Variant

	// Setup runs once at game creation, after the standard placement.
	Setup(s *State)

	// ModifyGeometry adjusts the geometry-only move view. Attack detection
	// and legality both consume it, so implementations must never reach
	// back into the legality filter.
	ModifyGeometry(s *State, b BoardID, from Square, moves Bitboard) Bitboard

	// ExtendMoves adds legality-facing candidates that do not project
	// attacks (blink destinations).
	ExtendMoves(s *State, b BoardID, from Square, moves Bitboard) Bitboard

	// FilterMoves removes candidates (double-knight restriction).
	FilterMoves(s *State, b BoardID, from Square, moves Bitboard) Bitboard

	// PostMove runs after the board mutation, before turn resolution. It
	// may set res.deferTurn.
	PostMove(s *State, res *moveResult)

	// PostTurn runs after turn and clock bookkeeping, only when the turn
	// actually completed.
	PostTurn(s *State, res moveResult)
}

// baseModifier provides no-op hooks so each variant implements only what it
// needs.
type baseModifier struct{}

func (baseModifier) Setup(*State) {}

func (baseModifier) ModifyGeometry(_ *State, _ BoardID, _ Square, moves Bitboard) Bitboard {
	return moves
}

func (baseModifier) ExtendMoves(_ *State, _ BoardID, _ Square, moves Bitboard) Bitboard {
	return moves
}

func (baseModifier) FilterMoves(_ *State, _ BoardID, _ Square, moves Bitboard) Bitboard {
	return moves
}

func (baseModifier) PostMove(*State, *moveResult) {}

func (baseModifier) PostTurn(*State, moveResult) {}

var modifierRegistry = map[Variant]Modifier{
	VariantDoubleKnight:  doubleKnightRule{},
	VariantPawnRotation:  pawnRotationRule{},
	VariantXRayBishop:    xrayBishopRule{},
	VariantPawnWall:      pawnWallRule{},
	VariantBlink:         blinkRule{},
	VariantFogOfWar:      fogOfWarRule{},
	VariantMeteorShower:  meteorShowerRule{},
	VariantFischerRandom: fischerRandomRule{},
	VariantVoid:          voidRule{},
}

// modifiersFor resolves the active modifiers in fixed pipeline order.
func modifiersFor(rules RuleSet) []Modifier {
	out := make([]Modifier, 0, len(rules))
	for _, v := range pipelineOrder {
		if rules.Contains(v) {
			out = append(out, modifierRegistry[v])
		}
	}
	return out
}
