package component

// Targetable is the capability side of target filtering; actors carry it
// instead of, or as well as, the HomingTarget tag.
type Targetable struct{}

var TargetableComponent = NewComponent[Targetable]()
