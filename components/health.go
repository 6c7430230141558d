package components

import "github.com/yohamta/donburi"

type HealthData struct {
	Current float64
	Max     float64
}

// Dead reports whether the entity has run out of health.
func (h *HealthData) Dead() bool {
	return h.Current <= 0
}

// Damage subtracts amount and clamps at zero. It returns the damage actually dealt.
func (h *HealthData) Damage(amount float64) float64 {
	if amount <= 0 || h.Current <= 0 {
		return 0
	}
	if amount > h.Current {
		amount = h.Current
	}
	h.Current -= amount
	return amount
}

var Health = donburi.NewComponentType[HealthData]()
