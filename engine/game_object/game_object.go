package game_object

import (
	"fmt"
	"math"
	"sync"
	"sync/atomic"

	"github.com/Carmen-Shannon/oxy-desk/engine/light"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// MinScale and MaxScale bound the uniform scale of a desk object.
	MinScale = 0.3
	MaxScale = 3.0

	// LampLightHeight is the height of a lamp's light above its base, in
	// unscaled object units.
	LampLightHeight = 0.75

	// GlobeSpinSpeed is the globe's rotation rate about Y in radians per second.
	GlobeSpinSpeed = 0.5
)

type gameObject struct {
	mu            *sync.Mutex
	id            uint64
	enabled       atomic.Bool
	objectType    model.ObjectType
	color, accent uint32
	mdl           model.Model
	transform     model.Transform
	lampOn        bool
	globeRotating bool
	globeAngle    float32
	attachedLight light.Light
}

// GameObject defines the interface for an object standing on the desk.
// It owns its generated Model, its world Transform and the small amount of
// interactive state its type supports (a lamp's switch, a globe's spin).
// Lamps carry a point light that follows the object.
type GameObject interface {
	// ID returns the object's unique identifier.
	//
	// Returns:
	//   - uint64: the object ID
	ID() uint64

	// Type returns the kind of desk object.
	//
	// Returns:
	//   - model.ObjectType: the object type
	Type() model.ObjectType

	// Enabled returns whether this object is enabled for rendering.
	//
	// Returns:
	//   - bool: true if enabled
	Enabled() bool

	// SetEnabled sets whether the object is enabled for rendering.
	//
	// Parameters:
	//   - enabled: true to enable
	SetEnabled(enabled bool)

	// Model returns the Model holding the object's geometry.
	//
	// Returns:
	//   - model.Model: the associated model
	Model() model.Model

	// Colors returns the packed main and accent colors.
	//
	// Returns:
	//   - color, accent: 0xRRGGBB values
	Colors() (color, accent uint32)

	// SetColors changes the object's colors and regenerates its mesh.
	//
	// Parameters:
	//   - color: packed main color
	//   - accent: packed accent color
	//
	// Returns:
	//   - error: if the mesh could not be generated
	SetColors(color, accent uint32) error

	// Transform returns the object's current world transform.
	//
	// Returns:
	//   - model.Transform: position, rotation and scale
	Transform() model.Transform

	// ModelState returns the object's transform as a shading snapshot.
	//
	// Returns:
	//   - shading.ModelState: the local-to-world matrix
	ModelState() shading.ModelState

	// SetPosition moves the object.
	//
	// Parameters:
	//   - position: world-space position of the object's base
	SetPosition(position mgl32.Vec3)

	// SetRotation sets the object's orientation.
	//
	// Parameters:
	//   - rotation: the orientation quaternion
	SetRotation(rotation mgl32.Quat)

	// SetScale sets the uniform scale, clamped to [MinScale, MaxScale].
	//
	// Parameters:
	//   - scale: the requested scale
	SetScale(scale float32)

	// CollisionRadius returns the scaled radius of the object's footprint on the desk.
	//
	// Returns:
	//   - float32: the footprint radius in world units
	CollisionRadius() float32

	// CollisionHeight returns the scaled height at which other objects rest on top of this one.
	//
	// Returns:
	//   - float32: the stacking height in world units
	CollisionHeight() float32

	// LampOn reports whether a lamp is switched on. Always false for other types.
	//
	// Returns:
	//   - bool: true if lit
	LampOn() bool

	// SetLampOn switches a lamp on or off, updating its glow and its light.
	// It is a no-op for other object types.
	//
	// Parameters:
	//   - on: the requested state
	//
	// Returns:
	//   - error: if the mesh could not be regenerated
	SetLampOn(on bool) error

	// GlobeRotating reports whether a globe is spinning.
	//
	// Returns:
	//   - bool: true if spinning
	GlobeRotating() bool

	// SetGlobeRotating starts or stops a globe's spin. It is a no-op for
	// other object types.
	//
	// Parameters:
	//   - rotating: the requested state
	SetGlobeRotating(rotating bool)

	// Update advances per-object animation by dt seconds and re-syncs the
	// attached light.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Light returns the attached point light, or nil for objects that emit none.
	//
	// Returns:
	//   - light.Light: the attached light or nil
	Light() light.Light
}

var _ GameObject = &gameObject{}

// NewGameObject creates a desk object of the given type, generating its mesh
// and, for lamps, its point light.
//
// Parameters:
//   - objectType: the kind of object to create
//   - options: functional options to configure the object
//
// Returns:
//   - GameObject: the newly created object
//   - error: if objectType has no mesh generator
func NewGameObject(objectType model.ObjectType, options ...GameObjectBuilderOption) (GameObject, error) {
	obj := &gameObject{
		mu:         &sync.Mutex{},
		objectType: objectType,
		color:      objectType.DefaultColor(),
		accent:     objectType.DefaultAccentColor(),
		transform:  model.IdentityTransform(),
	}
	obj.enabled.Store(true)
	for _, option := range options {
		option(obj)
	}
	obj.transform.Scale = mgl32.Clamp(obj.transform.Scale, MinScale, MaxScale)
	obj.lampOn = obj.lampOn && objectType == model.ObjectLamp
	obj.globeRotating = obj.globeRotating && objectType == model.ObjectGlobe

	mesh, err := model.NewObjectMesh(objectType, obj.color, obj.accent, obj.lampOn)
	if err != nil {
		return nil, fmt.Errorf("failed to create game object: %w", err)
	}
	obj.mdl = model.NewModel(model.WithName(objectType.String()), model.WithMesh(mesh))

	if objectType == model.ObjectLamp {
		obj.attachedLight = light.NewLight(light.WithEnabled(obj.lampOn))
	}
	obj.syncLight()
	return obj, nil
}

func (g *gameObject) ID() uint64 {
	return g.id
}

func (g *gameObject) Type() model.ObjectType {
	return g.objectType
}

func (g *gameObject) Enabled() bool {
	return g.enabled.Load()
}

func (g *gameObject) SetEnabled(enabled bool) {
	g.enabled.Store(enabled)
}

func (g *gameObject) Model() model.Model {
	return g.mdl
}

func (g *gameObject) Colors() (color, accent uint32) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.color, g.accent
}

func (g *gameObject) SetColors(color, accent uint32) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.color, g.accent = color, accent
	return g.rebuildMesh()
}

func (g *gameObject) Transform() model.Transform {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.transform
}

func (g *gameObject) ModelState() shading.ModelState {
	return g.Transform().ModelState()
}

func (g *gameObject) SetPosition(position mgl32.Vec3) {
	g.mu.Lock()
	g.transform.Position = position
	g.mu.Unlock()
	g.syncLight()
}

func (g *gameObject) SetRotation(rotation mgl32.Quat) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.transform.Rotation = rotation
}

func (g *gameObject) SetScale(scale float32) {
	g.mu.Lock()
	g.transform.Scale = mgl32.Clamp(scale, MinScale, MaxScale)
	g.mu.Unlock()
	g.syncLight()
}

func (g *gameObject) CollisionRadius() float32 {
	return g.objectType.BaseRadius() * g.Transform().Scale
}

func (g *gameObject) CollisionHeight() float32 {
	return g.objectType.Physics().Height * g.Transform().Scale
}

func (g *gameObject) LampOn() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.lampOn
}

func (g *gameObject) SetLampOn(on bool) error {
	if g.objectType != model.ObjectLamp {
		return nil
	}
	g.mu.Lock()
	if g.lampOn == on {
		g.mu.Unlock()
		return nil
	}
	g.lampOn = on
	err := g.rebuildMesh()
	g.mu.Unlock()
	g.syncLight()
	return err
}

func (g *gameObject) GlobeRotating() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.globeRotating
}

func (g *gameObject) SetGlobeRotating(rotating bool) {
	if g.objectType != model.ObjectGlobe {
		return
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	g.globeRotating = rotating
}

func (g *gameObject) Update(dt float32) {
	g.mu.Lock()
	if g.globeRotating {
		g.globeAngle += dt * GlobeSpinSpeed
		if g.globeAngle > 2*math.Pi {
			g.globeAngle -= 2 * math.Pi
		}
		g.transform.Rotation = mgl32.QuatRotate(g.globeAngle, mgl32.Vec3{0, 1, 0})
	}
	g.mu.Unlock()
	g.syncLight()
}

func (g *gameObject) Light() light.Light {
	return g.attachedLight
}

// rebuildMesh regenerates the object's geometry from its current colors and
// state. Caller holds mu.
func (g *gameObject) rebuildMesh() error {
	mesh, err := model.NewObjectMesh(g.objectType, g.color, g.accent, g.lampOn)
	if err != nil {
		return fmt.Errorf("failed to rebuild %s mesh: %w", g.objectType, err)
	}
	g.mdl.SetMesh(mesh)
	return nil
}

// syncLight moves the attached light to the lamp head and mirrors the switch state.
func (g *gameObject) syncLight() {
	if g.attachedLight == nil {
		return
	}
	g.mu.Lock()
	pos := g.transform.Position.Add(mgl32.Vec3{0, LampLightHeight * g.transform.Scale, 0})
	on := g.lampOn
	g.mu.Unlock()
	g.attachedLight.SetPosition(pos)
	g.attachedLight.SetEnabled(on)
}
