package systems

import "github.com/pthm-cable/torus/components"

// InteractionKind identifies which conflict rule applies to a pair of agents.
type InteractionKind uint8

const (
	KindContest InteractionKind = iota // Strength comparison, winner takes a fraction
	KindHunt                           // Predator against prey, asymmetric transfer
)

func (k InteractionKind) String() string {
	switch k {
	case KindContest:
		return "contest"
	case KindHunt:
		return "hunt"
	}
	return "unknown"
}

// Side names an argument position of a resolver call.
type Side uint8

const (
	SideFirst Side = iota
	SideSecond
)

// Other returns the opposite side.
func (s Side) Other() Side {
	if s == SideFirst {
		return SideSecond
	}
	return SideFirst
}

// Rules holds the strength transfer fractions.
type Rules struct {
	ContestBonus     float64 // Contest winner gains this fraction of the loser
	PreyDefenseBonus float64 // Prey that kills its hunter gains this fraction of it
}

// Outcome describes how a conflict ends. Exactly one side dies.
type Outcome struct {
	Kind  InteractionKind
	Loser Side
	Gain  float64 // Strength added to the survivor
}

// Survivor returns the side that lives.
func (o Outcome) Survivor() Side {
	return o.Loser.Other()
}

// Contest resolves a fight between two agents that are not a predator-prey
// pair. The stronger one survives and gains bonus times the loser's strength.
// Ties go to the first agent, which is the one whose turn it is.
func Contest(first, second, bonus float64) Outcome {
	if first >= second {
		return Outcome{Kind: KindContest, Loser: SideSecond, Gain: bonus * second}
	}
	return Outcome{Kind: KindContest, Loser: SideFirst, Gain: bonus * first}
}

// Hunt resolves a predator attacking a prey. A predator at least as strong as
// the prey eats it and absorbs its full strength. Otherwise the predator dies
// and the prey gains preyBonus times the predator's strength.
// First is the predator, second the prey.
func Hunt(predator, prey, preyBonus float64) Outcome {
	if predator >= prey {
		return Outcome{Kind: KindHunt, Loser: SideSecond, Gain: prey}
	}
	return Outcome{Kind: KindHunt, Loser: SideFirst, Gain: preyBonus * predator}
}

// Classify picks the rule for a pair of species. The order does not matter:
// a prey walking into a predator is still hunted.
func Classify(a, b components.Species) InteractionKind {
	switch {
	case a == components.SpeciesPredator && b == components.SpeciesPrey:
		return KindHunt
	case a == components.SpeciesPrey && b == components.SpeciesPredator:
		return KindHunt
	default:
		return KindContest
	}
}

// Resolve applies the rule selected by both species. a is the initiating
// agent, b the defender; the returned Loser is always in (a, b) order.
func Resolve(a, b components.Species, sa, sb float64, rules Rules) Outcome {
	if Classify(a, b) == KindContest {
		return Contest(sa, sb, rules.ContestBonus)
	}
	if a == components.SpeciesPredator {
		return Hunt(sa, sb, rules.PreyDefenseBonus)
	}
	// b hunts a: swap into predator-first order and back
	o := Hunt(sb, sa, rules.PreyDefenseBonus)
	o.Loser = o.Loser.Other()
	return o
}
