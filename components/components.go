// Package components defines ECS components for the simulation.
package components

import "fmt"

// Species is the closed set of agent roles.
// Every switch over Species must handle both values.
type Species uint8

const (
	SpeciesPredator Species = iota // Strong, slow to reproduce, hunts prey
	SpeciesPrey                    // Weak, fast to reproduce
)

// NumSpecies is the number of Species values, for tables indexed by Species.
const NumSpecies = 2

// String returns the lower-case species name.
func (s Species) String() string {
	switch s {
	case SpeciesPredator:
		return "predator"
	case SpeciesPrey:
		return "prey"
	}
	return fmt.Sprintf("species(%d)", uint8(s))
}

// Valid reports whether s is one of the defined species.
func (s Species) Valid() bool {
	return s == SpeciesPredator || s == SpeciesPrey
}

// MarshalText implements encoding.TextMarshaler.
func (s Species) MarshalText() ([]byte, error) {
	if !s.Valid() {
		return nil, fmt.Errorf("components: invalid species %d", uint8(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Species) UnmarshalText(b []byte) error {
	v, err := ParseSpecies(string(b))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// ParseSpecies converts a species name back to its value.
func ParseSpecies(name string) (Species, error) {
	switch name {
	case "predator":
		return SpeciesPredator, nil
	case "prey":
		return SpeciesPrey, nil
	}
	return 0, fmt.Errorf("components: unknown species %q", name)
}
