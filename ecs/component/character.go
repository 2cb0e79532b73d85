package component

// FloatingCharacter holds the spring-damper tuning of a hovering capsule.
// All three coefficients are expected to be non-negative; nothing checks.
type FloatingCharacter struct {
	RideHeight     float64
	SpringStrength float64
	SpringDamper   float64
}

var FloatingCharacterComponent = NewComponent[FloatingCharacter]()
