package universe

import (
	"math/rand"
	"time"
)

//seedProbability is the chance of a cell to be alive in a fresh seed
const seedProbability = 0.5

//NewRand creates the random source for seeding
//zero seed means the wall clock is used
func NewRand(seed int64) *rand.Rand {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}

//GenerateSeed creates the new random generation
//each cell is alive independently with probability 0.5
//nil r uses the process-wide source
func GenerateSeed(r *rand.Rand) (g Grid) {
	float := rand.Float64
	if r != nil {
		float = r.Float64
	}
	for i := range g {
		g[i] = Cell(float() < seedProbability)
	}
	return
}
