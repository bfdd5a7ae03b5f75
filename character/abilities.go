package character

// Mode is the avatar's suit state.
type Mode int

const (
	ModeHuman Mode = iota
	ModeArmoured
)

func (m Mode) String() string {
	if m == ModeArmoured {
		return "armoured"
	}
	return "human"
}

// ArmouredAbility is the equipment slot active while wearing the suit.
type ArmouredAbility int

const (
	ArmouredLaser ArmouredAbility = iota
	ArmouredEmergencyCube
	ArmouredMissile
	ArmouredTankRifle
	ArmouredInvisibility
	ArmouredBiopad
	armouredAbilityCount
)

var armouredLabels = [armouredAbilityCount]string{"Laser", "Cube", "Missile", "Nuke", "Invisibility", "BioPad"}

func (a ArmouredAbility) String() string {
	if a < 0 || a >= armouredAbilityCount {
		return ""
	}
	return armouredLabels[a]
}

// HumanAbility is the equipment slot active out of the suit.
type HumanAbility int

const (
	HumanHands HumanAbility = iota
	HumanGun
	HumanEmergencyCube
	humanAbilityCount
)

var humanLabels = [humanAbilityCount]string{"Fist", "Gun", "Cube"}

// String returns the HUD label. Indices past EmergencyCube have no human
// equivalent and map to "".
func (a HumanAbility) String() string {
	if a < 0 || a >= humanAbilityCount {
		return ""
	}
	return humanLabels[a]
}

// Direction is the scroll direction of an ability cycle.
type Direction int

const (
	Backward Direction = -1
	Forward  Direction = 1
)

// wrapIndex steps i by dir within [0, count).
func wrapIndex(i, count int, dir Direction) int {
	if count <= 0 {
		return 0
	}
	i += int(dir)
	if i >= count {
		return 0
	}
	if i < 0 {
		return count - 1
	}
	return i
}
