package component

// PlaceComponent marks a stationary destination entity
// Places never move or despawn after startup
type PlaceComponent struct{}
