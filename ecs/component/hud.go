package component

// HUD is the presentation state published by gameplay. Nothing draws it;
// the runner logs it and tests read it.
type HUD struct {
	Equipment     string
	Invisibility  bool
	FuelPercent   float64
	ChargePercent float64
	RadarVisible  bool
	FuelVisible   bool
	GunVisible    bool
	Blips         []Blip
}

var HUDComponent = NewComponent[HUD]()
