package domain

// Seed is one reward-token group. Farms created under a seed receive the
// next sequential index; the counter never decrements and indices are never
// reused.
type Seed struct {
	SeedID    string `json:"seed_id"`
	NextIndex uint32 `json:"next_index"`
}

// NewSeed creates a seed with its counter at zero.
func NewSeed(seedID string) *Seed {
	return &Seed{SeedID: seedID}
}
