package model

// ObjectPhysics holds the placement properties of an object type. Lengths are
// unscaled; callers multiply by the object's scale.
type ObjectPhysics struct {
	// Weight is a relative mass; heavier objects are harder to fling.
	Weight float32
	// Stability in [0,1] is how well the object stays upright.
	Stability float32
	// Height is the top of the object above its base, used when stacking.
	Height float32
	// BaseOffset lifts the object's origin above the surface it rests on.
	BaseOffset float32
	// Friction in [0,1] against the surface below.
	Friction float32
	// NoStackingOnTop refuses other objects landing on this one.
	NoStackingOnTop bool
}

var objectPhysics = map[ObjectType]ObjectPhysics{
	ObjectClock:       {Weight: 0.5, Stability: 0.5, Height: 0.6, BaseOffset: 0.35, Friction: 0.4, NoStackingOnTop: true},
	ObjectLamp:        {Weight: 1.2, Stability: 0.85, Height: 0.9, Friction: 0.5},
	ObjectPlant:       {Weight: 1.4, Stability: 0.9, Height: 0.5, Friction: 0.6},
	ObjectCoffee:      {Weight: 0.4, Stability: 0.6, Height: 0.3, Friction: 0.5},
	ObjectLaptop:      {Weight: 1.5, Stability: 0.95, Height: 0.3, Friction: 0.6},
	ObjectNotebook:    {Weight: 0.3, Stability: 0.95, Height: 0.1, Friction: 0.7},
	ObjectPenHolder:   {Weight: 0.6, Stability: 0.6, Height: 0.4, Friction: 0.5},
	ObjectBooks:       {Weight: 0.8, Stability: 0.9, Height: 0.15, Friction: 0.75},
	ObjectPhotoFrame:  {Weight: 0.3, Stability: 0.35, Height: 0.5, BaseOffset: 0.25, Friction: 0.4, NoStackingOnTop: true},
	ObjectGlobe:       {Weight: 1.0, Stability: 0.7, Height: 0.5, BaseOffset: 0.025, Friction: 0.45},
	ObjectTrophy:      {Weight: 0.9, Stability: 0.6, Height: 0.4, Friction: 0.5},
	ObjectHourglass:   {Weight: 0.5, Stability: 0.45, Height: 0.35, BaseOffset: 0.015, Friction: 0.4},
	ObjectMetronome:   {Weight: 0.7, Stability: 0.7, Height: 0.45, Friction: 0.55},
	ObjectPaper:       {Weight: 0.05, Stability: 0.98, Height: 0.01, Friction: 0.8},
	ObjectMagazine:    {Weight: 0.3, Stability: 0.95, Height: 0.02, Friction: 0.65},
	ObjectMusicPlayer: {Weight: 0.8, Stability: 0.85, Height: 0.15, Friction: 0.55},
	ObjectPen:         {Weight: 0.05, Stability: 0.3, Height: 0.02, Friction: 0.4},
}

// Physics returns the placement properties of the object type. Unknown types
// get a unit-weight, stackable default.
func (t ObjectType) Physics() ObjectPhysics {
	if p, ok := objectPhysics[t]; ok {
		return p
	}
	return ObjectPhysics{Weight: 1, Stability: 0.5, Height: 0.2, Friction: 0.5}
}
