// path: internal/game/shuffle.go
package game

import (
	"fmt"
	"math/rand"

	"github.com/cespare/xxhash/v2"
)

// seededRand builds a PRNG from a string seed via a fixed bit-mixing hash.
// The layout derived from it is never persisted verbatim; undo and replay
// regenerate it from the game's stable seed, so the mapping must stay fixed.
func seededRand(seed string) *rand.Rand {
	return rand.New(rand.NewSource(int64(xxhash.Sum64String(seed))))
}

// meteorRand derives an independent stream per completed-full-move counter,
// so each meteor draw is deterministic given seed plus move number.
func meteorRand(seed string, fullmove int) *rand.Rand {
	return seededRand(fmt.Sprintf("%s#meteor-%d", seed, fullmove))
}

// BackRank generates the randomized back-rank permutation for a seed:
// bishops on opposite-colored squares, the king strictly between its rooks,
// queen and knights on the remaining files. Pure function of the seed.
func BackRank(seed string) [8]PieceType {
	rng := seededRand(seed)

	var rank [8]PieceType
	free := make([]int, 0, 8)
	for f := 0; f < 8; f++ {
		free = append(free, f)
	}

	take := func(file int) {
		for i, f := range free {
			if f == file {
				free = append(free[:i], free[i+1:]...)
				return
			}
		}
	}

	// Bishops first, one per square color.
	darkFile := rng.Intn(4)*2 + 1
	lightFile := rng.Intn(4) * 2
	rank[darkFile] = Bishop
	rank[lightFile] = Bishop
	take(darkFile)
	take(lightFile)

	// Queen and knights on random remaining files.
	for _, pt := range []PieceType{Queen, Knight, Knight} {
		idx := rng.Intn(len(free))
		rank[free[idx]] = pt
		free = append(free[:idx], free[idx+1:]...)
	}

	// The last three files, in ascending order, are rook-king-rook, which
	// places the king strictly between the rooks.
	rank[free[0]] = Rook
	rank[free[1]] = King
	rank[free[2]] = Rook

	return rank
}

// standardBackRank is the classic piece order, a1 through h1.
func standardBackRank() [8]PieceType {
	return [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}
}

// rookFilesOf extracts the queenside and kingside rook origin files from a
// generated back rank.
func rookFilesOf(rank [8]PieceType) [2]int8 {
	var files [2]int8
	first := true
	for f := 0; f < 8; f++ {
		if rank[f] != Rook {
			continue
		}
		if first {
			files[CastleQueenside] = int8(f)
			first = false
		} else {
			files[CastleKingside] = int8(f)
		}
	}
	return files
}
