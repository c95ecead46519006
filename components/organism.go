package components

// Vitals holds the two resources an agent lives on.
// Energy is never negative: reproduction only spends it when it is at least
// the species threshold. Strength has no floor; the death check culls agents
// that fall below the survival threshold.
type Vitals struct {
	Energy   float64
	Strength float64
}

// Organism bundles identity and lineage. Species never changes after creation.
type Organism struct {
	ID         uint32
	Species    Species
	ParentID   uint32 // 0 for seeded agents
	Generation uint32 // 0 for seeded agents
	BirthTick  int32
	ActedTick  int32 // last tick the agent took its turn, -1 if never
}
