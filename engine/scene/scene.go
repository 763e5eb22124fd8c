package scene

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"sync"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/camera"
	"github.com/Carmen-Shannon/oxy-desk/engine/game_object"
	"github.com/Carmen-Shannon/oxy-desk/engine/light"
	"github.com/Carmen-Shannon/oxy-desk/engine/model"
	"github.com/Carmen-Shannon/oxy-desk/engine/raster"
	"github.com/Carmen-Shannon/oxy-desk/engine/renderer/bind_group_provider"
	"github.com/Carmen-Shannon/oxy-desk/engine/renderer/shader"
	"github.com/Carmen-Shannon/oxy-desk/engine/shading"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// DefaultName identifies a scene created without WithName.
	DefaultName = "desk"

	// pickRadiusScale widens object footprints so small objects stay easy to pick.
	pickRadiusScale = 1.5

	// spawnRangeX and spawnRangeZ bound where AddObject places objects without a position.
	spawnRangeX = 2.0
	spawnRangeZ = 1.5
)

// Scene manages the desk, the floor and a registry of GameObjects, with a Camera for
// viewing and a Rasterizer for drawing. Each frame the scene derives a lighting snapshot
// from its lamps and room darkness and renders every enabled object into a Framebuffer.
// Thread-safe for concurrent access.
type Scene interface {
	// Name returns the scene's identifier.
	Name() string

	// SetName sets the scene's identifier. An empty name restores DefaultName.
	SetName(name string)

	// Active returns whether this scene is currently active for rendering.
	Active() bool

	// SetActive sets whether this scene is active for rendering.
	SetActive(active bool)

	// Config returns the scene layout.
	Config() Config

	// Camera returns the scene's camera.
	Camera() camera.Camera

	// Rasterizer returns the rasterizer used by Render.
	Rasterizer() raster.Rasterizer

	// Count returns the number of objects in the registry.
	//
	// Returns:
	//   - int: the object count
	Count() int

	// Add registers a prebuilt object.
	//
	// Parameters:
	//   - obj: the object, which must carry a non-zero ID unused in this scene
	//
	// Returns:
	//   - error: if the ID is zero or already taken
	Add(obj game_object.GameObject) error

	// AddObject creates an object with the next free ID and registers it. Objects created
	// without a position are placed at a random spot near the middle of the desk, pushed
	// clear of the objects already there.
	//
	// Parameters:
	//   - objectType: the kind of object to create
	//   - options: additional object options; any WithID option is overridden
	//
	// Returns:
	//   - game_object.GameObject: the new object
	//   - error: if the object could not be created
	AddObject(objectType model.ObjectType, options ...game_object.GameObjectBuilderOption) (game_object.GameObject, error)

	// Get retrieves an object by ID, or nil if not found.
	//
	// Parameters:
	//   - id: the object's unique ID
	//
	// Returns:
	//   - game_object.GameObject: the object or nil
	Get(id uint64) game_object.GameObject

	// Objects returns every registered object ordered by ID.
	//
	// Returns:
	//   - []game_object.GameObject: the objects
	Objects() []game_object.GameObject

	// Remove deletes an object by ID. Unknown IDs are ignored.
	//
	// Parameters:
	//   - id: the object's unique ID
	Remove(id uint64)

	// Clear removes every object from the registry.
	Clear()

	// RoomDarkness returns the current darkness level.
	//
	// Returns:
	//   - float32: darkness in [0, 1]
	RoomDarkness() float32

	// SetRoomDarkness sets the darkness level, clamped to [0, 1].
	//
	// Parameters:
	//   - roomDarkness: 0 for a bright room, 1 for a dark room
	SetRoomDarkness(roomDarkness float32)

	// ToggleLamp flips a lamp's switch.
	//
	// Parameters:
	//   - id: the lamp's ID
	//
	// Returns:
	//   - bool: the lamp's new state
	//   - error: if id is not a lamp in this scene or its mesh could not be rebuilt
	ToggleLamp(id uint64) (bool, error)

	// Lighting builds the lighting snapshot for the current frame from every enabled
	// object's light and the room darkness.
	//
	// Returns:
	//   - shading.LightingState: the snapshot
	Lighting() shading.LightingState

	// Pick returns the nearest object under a point on screen.
	//
	// Parameters:
	//   - ndcX, ndcY: the point in normalized device coordinates, y up
	//
	// Returns:
	//   - uint64: the picked object's ID
	//   - bool: false if nothing is under the point
	Pick(ndcX, ndcY float32) (uint64, bool)

	// DragTo lifts an object onto the drag plane above the desk, where a screen point's
	// ray meets it, keeping it within the drag limits. Any drop in progress is cancelled.
	//
	// Parameters:
	//   - id: the dragged object's ID
	//   - ndcX, ndcY: the point in normalized device coordinates, y up
	//
	// Returns:
	//   - bool: false if the object is unknown or the ray misses the plane
	DragTo(id uint64, ndcX, ndcY float32) bool

	// EndDrag releases a dragged object. It is pushed clear of the objects it overlaps,
	// or lands on top of a stackable object it mostly covers, and then drops to its
	// resting height over the following Updates.
	//
	// Parameters:
	//   - id: the released object's ID
	//
	// Returns:
	//   - bool: false if the object is unknown
	EndDrag(id uint64) bool

	// Dropping reports whether an object is still falling to its resting height.
	Dropping(id uint64) bool

	// Update advances the camera, every drop and every object's animation by dt seconds.
	//
	// Parameters:
	//   - dt: elapsed time in seconds
	Update(dt float32)

	// Render clears fb to the fog color and draws the floor, the desk and every enabled
	// object. The camera's aspect follows the framebuffer.
	//
	// Parameters:
	//   - fb: the render target
	Render(fb *raster.Framebuffer)

	// StageUniforms writes the scene's camera, lighting and per-object model uniforms into
	// bind group providers laid out from sh, and returns the writes that changed a buffer since
	// the previous call for the same shader. A GPU backend uploads them in order; the desk and
	// floor share the identity model provider at key 0.
	//
	// Parameters:
	//   - sh: a shader declaring camera, lighting and model providers
	//
	// Returns:
	//   - []bind_group_provider.BufferWrite: changed uniform bytes, frame groups first
	//   - error: if sh is nil or a uniform does not fit its binding
	StageUniforms(sh shader.Shader) ([]bind_group_provider.BufferWrite, error)

	// ObjectBindGroup returns the provider staging an object's model uniform for a shader key,
	// or nil before StageUniforms has seen the object.
	ObjectBindGroup(shaderKey string, id uint64) bind_group_provider.BindGroupProvider

	// Close releases the rasterizer when the scene created it, and any staged uniforms.
	Close()
}

// scene is the implementation of the Scene interface.
type scene struct {
	mu     *sync.Mutex
	name   string
	active bool
	config Config

	cam      camera.Camera
	rast     raster.Rasterizer
	ownsRast bool
	rastOpts []raster.RasterizerBuilderOption

	registry map[uint64]game_object.GameObject
	nextID   uint64
	initial  []game_object.GameObject
	defaults bool

	darkness    float32
	darknessSet bool

	dragging map[uint64]bool
	drops    map[uint64]float32

	desk  *model.Mesh
	floor *model.Mesh

	stages map[string]*uniformStage
}

var _ Scene = &scene{}

// NewScene creates a desk scene. Unless overridden by options it uses DefaultConfig, a
// camera built from the config, a fresh Rasterizer and the default set of desk objects.
//
// Parameters:
//   - options: variadic list of SceneBuilderOption functions
//
// Returns:
//   - Scene: the new scene
//   - error: if an object could not be created or registered
func NewScene(options ...SceneBuilderOption) (Scene, error) {
	s := &scene{
		mu:       &sync.Mutex{},
		name:     DefaultName,
		active:   true,
		config:   DefaultConfig(),
		registry: make(map[uint64]game_object.GameObject),
		nextID:   1,
		defaults: true,
		stages:   make(map[string]*uniformStage),
		dragging: make(map[uint64]bool),
		drops:    make(map[uint64]float32),
	}
	for _, option := range options {
		option(s)
	}
	if !s.darknessSet {
		s.darkness = s.config.RoomDarkness
	}
	s.darkness = mgl32.Clamp(s.darkness, 0, 1)

	if s.cam == nil {
		s.cam = camera.NewCamera(
			camera.WithFov(s.config.Fov),
			camera.WithNear(s.config.Near),
			camera.WithFar(s.config.Far),
			camera.WithController(camera.NewCameraController(
				camera.WithPosition(s.config.CameraPosition),
				camera.WithLookAt(s.config.CameraTarget),
			)),
		)
	}
	if s.rast == nil {
		s.rast = raster.NewRasterizer(s.rastOpts...)
		s.ownsRast = true
	}

	s.desk = model.NewDesk(s.config.DeskWidth, s.config.DeskDepth, s.config.DeskHeight, s.config.DeskColor)
	s.floor = model.NewFloor(s.config.FloorHalfSize, s.config.FloorColor)

	for _, obj := range s.initial {
		if err := s.Add(obj); err != nil {
			s.Close()
			return nil, err
		}
	}
	s.initial = nil
	if s.defaults {
		if err := s.addDefaultObjects(); err != nil {
			s.Close()
			return nil, err
		}
	}

	common.Logger().Info("scene: created", "name", s.name, "objects", len(s.registry), "room_darkness", s.darkness)
	return s, nil
}

// addDefaultObjects places a lit lamp, a mug, a spinning globe and a stack of books.
func (s *scene) addDefaultObjects() error {
	y := s.config.DeskHeight
	globeY := y + model.ObjectGlobe.Physics().BaseOffset
	defaults := []struct {
		objectType model.ObjectType
		options    []game_object.GameObjectBuilderOption
	}{
		{model.ObjectLamp, []game_object.GameObjectBuilderOption{
			game_object.WithPosition(mgl32.Vec3{-3, y, -1.5}),
			game_object.WithLampOn(true),
		}},
		{model.ObjectCoffee, []game_object.GameObjectBuilderOption{
			game_object.WithPosition(mgl32.Vec3{1.5, y, 1}),
		}},
		{model.ObjectGlobe, []game_object.GameObjectBuilderOption{
			game_object.WithPosition(mgl32.Vec3{3, globeY, -1.2}),
			game_object.WithGlobeRotating(true),
		}},
		{model.ObjectBooks, []game_object.GameObjectBuilderOption{
			game_object.WithPosition(mgl32.Vec3{-0.8, y, -1.8}),
			game_object.WithRotation(mgl32.QuatRotate(0.3, mgl32.Vec3{0, 1, 0})),
		}},
	}
	for _, d := range defaults {
		if _, err := s.AddObject(d.objectType, d.options...); err != nil {
			return fmt.Errorf("failed to add default %s: %w", d.objectType, err)
		}
	}
	return nil
}

func (s *scene) Name() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.name
}

func (s *scene) SetName(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.name = common.Coalesce(name, DefaultName)
}

func (s *scene) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.active
}

func (s *scene) SetActive(active bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active = active
}

func (s *scene) Config() Config {
	return s.config
}

func (s *scene) Camera() camera.Camera {
	return s.cam
}

func (s *scene) Rasterizer() raster.Rasterizer {
	return s.rast
}

func (s *scene) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.registry)
}

func (s *scene) Add(obj game_object.GameObject) error {
	if obj == nil {
		return fmt.Errorf("scene: nil object")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id := obj.ID()
	if id == 0 {
		return fmt.Errorf("scene: object of type %s has no ID", obj.Type())
	}
	if _, ok := s.registry[id]; ok {
		return fmt.Errorf("scene: object ID %d already registered", id)
	}
	s.registry[id] = obj
	if id >= s.nextID {
		s.nextID = id + 1
	}
	common.Logger().Debug("scene: object added", "id", id, "type", obj.Type().String())
	return nil
}

func (s *scene) AddObject(objectType model.ObjectType, options ...game_object.GameObjectBuilderOption) (game_object.GameObject, error) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.mu.Unlock()

	opts := append(slices.Clone(options), game_object.WithID(id))
	obj, err := game_object.NewGameObject(objectType, opts...)
	if err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if obj.Transform().Position == (mgl32.Vec3{}) {
		s.settle(obj, rand.Float32()*2*spawnRangeX-spawnRangeX, rand.Float32()*2*spawnRangeZ-spawnRangeZ)
	}
	if err := s.Add(obj); err != nil {
		return nil, err
	}
	return obj, nil
}

func (s *scene) Get(id uint64) game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.registry[id]
}

func (s *scene) Objects() []game_object.GameObject {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.objectsLocked()
}

// objectsLocked returns the registry ordered by ID. Caller must hold the mutex.
func (s *scene) objectsLocked() []game_object.GameObject {
	objs := make([]game_object.GameObject, 0, len(s.registry))
	for _, obj := range s.registry {
		objs = append(objs, obj)
	}
	slices.SortFunc(objs, func(a, b game_object.GameObject) int {
		switch {
		case a.ID() < b.ID():
			return -1
		case a.ID() > b.ID():
			return 1
		default:
			return 0
		}
	})
	return objs
}

func (s *scene) Remove(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.registry[id]; !ok {
		return
	}
	delete(s.registry, id)
	delete(s.dragging, id)
	delete(s.drops, id)
	common.Logger().Debug("scene: object removed", "id", id)
}

func (s *scene) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.registry)
	clear(s.dragging)
	clear(s.drops)
}

func (s *scene) RoomDarkness() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.darkness
}

func (s *scene) SetRoomDarkness(roomDarkness float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.darkness = mgl32.Clamp(roomDarkness, 0, 1)
}

func (s *scene) ToggleLamp(id uint64) (bool, error) {
	obj := s.Get(id)
	if obj == nil || obj.Type() != model.ObjectLamp {
		return false, fmt.Errorf("scene: object %d is not a lamp", id)
	}
	on := !obj.LampOn()
	if err := obj.SetLampOn(on); err != nil {
		return obj.LampOn(), fmt.Errorf("scene: %w", err)
	}
	common.Logger().Debug("scene: lamp toggled", "id", id, "on", on)
	return on, nil
}

func (s *scene) Lighting() shading.LightingState {
	s.mu.Lock()
	objs := s.objectsLocked()
	darkness := s.darkness
	s.mu.Unlock()

	b := light.NewLightingBuilder(light.WithRoomDarkness(darkness))
	for _, obj := range objs {
		if !obj.Enabled() {
			continue
		}
		if l := obj.Light(); l != nil {
			b.AddLight(l)
		}
	}
	return b.Build()
}

// ray returns the world-space ray through a point in normalized device coordinates.
func (s *scene) ray(ndcX, ndcY float32) (origin, dir mgl32.Vec3, ok bool) {
	inv := s.cam.ViewProjectionMatrix().Inv()
	near := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 0, 1})
	far := inv.Mul4x1(mgl32.Vec4{ndcX, ndcY, 1, 1})
	if near[3] == 0 || far[3] == 0 {
		return origin, dir, false
	}
	dir = common.SafeNormalize(far.Vec3().Mul(1 / far[3]).Sub(near.Vec3().Mul(1 / near[3])))
	return s.cam.State().Position, dir, dir != (mgl32.Vec3{})
}

func (s *scene) Pick(ndcX, ndcY float32) (uint64, bool) {
	origin, dir, ok := s.ray(ndcX, ndcY)
	if !ok {
		return 0, false
	}
	var (
		bestID   uint64
		bestDist float32 = -1
	)
	for _, obj := range s.Objects() {
		if !obj.Enabled() {
			continue
		}
		tr := obj.Transform()
		t := tr.Position.Sub(origin).Dot(dir)
		if t < 0 {
			continue
		}
		closest := origin.Add(dir.Mul(t))
		radius := obj.Type().BaseRadius() * tr.Scale * pickRadiusScale
		if closest.Sub(tr.Position).Len() < radius && (bestDist < 0 || t < bestDist) {
			bestID, bestDist = obj.ID(), t
		}
	}
	return bestID, bestDist >= 0
}

func (s *scene) DragTo(id uint64, ndcX, ndcY float32) bool {
	obj := s.Get(id)
	if obj == nil {
		return false
	}
	origin, dir, ok := s.ray(ndcX, ndcY)
	if !ok || mgl32.Abs(dir[1]) < 1e-6 {
		return false
	}
	planeY := s.config.DeskHeight + s.config.DragPlaneOffset
	t := (planeY - origin[1]) / dir[1]
	if t < 0 {
		return false
	}
	hit := origin.Add(dir.Mul(t))
	obj.SetPosition(mgl32.Vec3{
		mgl32.Clamp(hit[0], -s.config.DragLimitX, s.config.DragLimitX),
		planeY,
		mgl32.Clamp(hit[2], -s.config.DragLimitZ, s.config.DragLimitZ),
	})

	s.mu.Lock()
	s.dragging[id] = true
	delete(s.drops, id)
	s.mu.Unlock()
	return true
}

func (s *scene) Update(dt float32) {
	s.cam.Update()
	s.updateDrops(dt)
	for _, obj := range s.Objects() {
		obj.Update(dt)
	}
}

func (s *scene) Render(fb *raster.Framebuffer) {
	if fb == nil {
		return
	}
	if aspect := fb.Aspect(); s.cam.Aspect() != aspect {
		s.cam.SetAspect(aspect)
	}
	cam := s.cam.State()
	ls := s.Lighting()
	fb.Clear(shading.FogColor(ls.RoomDarkness).Vec4(1))

	ident := shading.IdentityModel()
	s.rast.DrawMesh(fb, s.floor, ident, cam, ls)
	s.rast.DrawMesh(fb, s.desk, ident, cam, ls)
	for _, obj := range s.Objects() {
		if !obj.Enabled() {
			continue
		}
		s.rast.DrawMesh(fb, obj.Model().Mesh(), obj.ModelState(), cam, ls)
	}
}

func (s *scene) Close() {
	if s.ownsRast && s.rast != nil {
		s.rast.Close()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for key, st := range s.stages {
		st.release()
		delete(s.stages, key)
	}
}
