package config

// StateID identifies an enemy behaviour state.
type StateID int

const (
	StateNone StateID = iota - 1

	// Chaser
	StateChasing

	// Kiter
	StateRetreating
	StateHolding
	StateApproaching

	// Detonator
	StatePursuing
	StatePriming
	StateDetonating
)

// stateNames is used for logs and reports.
var stateNames = map[StateID]string{
	StateNone:        "none",
	StateChasing:     "chasing",
	StateRetreating:  "retreating",
	StateHolding:     "holding",
	StateApproaching: "approaching",
	StatePursuing:    "pursuing",
	StatePriming:     "priming",
	StateDetonating:  "detonating",
}

func (s StateID) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// ArchetypeID names the behaviour profile an enemy type is built on.
type ArchetypeID string

const (
	ArchetypeChaser    ArchetypeID = "chaser"
	ArchetypeKiter     ArchetypeID = "kiter"
	ArchetypeDetonator ArchetypeID = "detonator"
	ArchetypeSummoner  ArchetypeID = "summoner"
	ArchetypeAura      ArchetypeID = "aura"
)

// InitialState returns the state a freshly spawned enemy of this archetype starts in.
func (a ArchetypeID) InitialState() StateID {
	switch a {
	case ArchetypeKiter:
		return StateApproaching
	case ArchetypeDetonator:
		return StatePursuing
	default:
		return StateChasing
	}
}

// Valid reports whether a is one of the known archetypes.
func (a ArchetypeID) Valid() bool {
	switch a {
	case ArchetypeChaser, ArchetypeKiter, ArchetypeDetonator, ArchetypeSummoner, ArchetypeAura:
		return true
	}
	return false
}
