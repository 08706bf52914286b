package search

import "math/rand"

// defaultSeed stands in for a zero seed, so the zero Options value still
// yields a reproducible engine.
const defaultSeed int64 = 1

// rngFromSeed returns the engine's base RNG for seed.
func rngFromSeed(seed int64) *rand.Rand {
	if seed == 0 {
		seed = defaultSeed
	}
	return rand.New(rand.NewSource(seed))
}

// splitmix64 is the SplitMix64 output finalizer.
func splitmix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// deriveRNG seeds the private RNG of one Generate call from one draw of base
// and the call's stream number. base must be guarded by the caller.
func deriveRNG(base *rand.Rand, stream uint64) *rand.Rand {
	x := splitmix64(uint64(base.Int63()) ^ stream*0x9e3779b97f4a7c15)
	return rand.New(rand.NewSource(int64(x)))
}
