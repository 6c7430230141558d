package components

import (
	"github.com/automoto/horde/config"
	"github.com/yohamta/donburi"
)

type StateData struct {
	CurrentState  config.StateID
	PreviousState config.StateID
	StateTime     float64 // Seconds spent in CurrentState
}

// Transition moves to next, resetting the state clock. Staying in the same
// state only advances the clock.
func (s *StateData) Transition(next config.StateID, delta float64) {
	if next == s.CurrentState {
		s.StateTime += delta
		return
	}
	s.PreviousState = s.CurrentState
	s.CurrentState = next
	s.StateTime = 0
}

var State = donburi.NewComponentType[StateData]()
