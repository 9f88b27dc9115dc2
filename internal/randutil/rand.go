package randutil

import rand "math/rand/v2"

const (
	goldenRatio64 = 0x9e3779b97f4a7c15
)

// New returns a *rand.Rand seeded deterministically from the provided int64.
// Every dice roll, seat draw and bot choice in a game goes through one of these
// so a game can be replayed from its seed.
func New(seed int64) *rand.Rand {
	u := uint64(seed)
	return rand.New(rand.NewPCG(mix(u), mix(u+goldenRatio64)))
}

// GameSeed derives the seed for the index-th game of a batch. Neighbouring
// indexes produce unrelated streams, so batches can be split across workers
// without changing any individual game.
func GameSeed(base int64, index int) int64 {
	return int64(mix(uint64(base) + uint64(index)*goldenRatio64))
}

func mix(x uint64) uint64 {
	x ^= x >> 30
	x *= 0xbf58476d1ce4e5b9
	x ^= x >> 27
	x *= 0x94d049bb133111eb
	x ^= x >> 31
	return x
}

// Split returns a new generator seeded from rng. The child is independent of
// rng afterwards, so it can be handed to another goroutine.
func Split(rng *rand.Rand) *rand.Rand {
	return rand.New(rand.NewPCG(rng.Uint64(), rng.Uint64()))
}
