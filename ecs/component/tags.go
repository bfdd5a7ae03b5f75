package component

type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// HomingTargetTag marks an actor missiles may lock onto.
type HomingTargetTag struct{}

var HomingTargetTagComponent = NewComponent[HomingTargetTag]()

// WallRunTag marks a surface the human avatar can run along.
type WallRunTag struct{}

var WallRunTagComponent = NewComponent[WallRunTag]()

// IndestructibleTag protects an actor from destructive projectiles.
type IndestructibleTag struct{}

var IndestructibleTagComponent = NewComponent[IndestructibleTag]()

// StaticMeshTag marks plain level geometry.
type StaticMeshTag struct{}

var StaticMeshTagComponent = NewComponent[StaticMeshTag]()
