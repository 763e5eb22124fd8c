package engine

import (
	"errors"
	"fmt"
	"image"
	"maps"
	"slices"
	"time"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/profiler"
	"github.com/Carmen-Shannon/oxy-desk/engine/raster"
	"github.com/Carmen-Shannon/oxy-desk/engine/scene"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/hajimehoshi/ebiten/v2"
)

const (
	DefaultWidth    = 320
	DefaultHeight   = 200
	DefaultScale    = 3
	DefaultTickRate = 60
	DefaultTitle    = "oxy-desk"
)

// clearColor fills the framebuffer when no scene is active.
var clearColor = mgl32.Vec4{0, 0, 0, 1}

// engine implements the Engine interface.
// ebiten drives Update and Draw from a single goroutine, so the engine holds no lock.
type engine struct {
	title    string
	width    int
	height   int
	scale    int
	tickRate int

	fb *raster.Framebuffer

	profiler         *profiler.Profiler
	profilingEnabled bool

	tickCallback   func(deltaTime float32)
	renderCallback func(deltaTime float32)

	keyDownCallback   func(key common.Key)
	keyUpCallback     func(key common.Key)
	mouseMoveCallback func(ndcX, ndcY float32)
	mouseDownCallback func(ndcX, ndcY float32)
	mouseUpCallback   func(ndcX, ndcY float32)

	input      inputSource
	lastCursor [2]int
	lastDraw   time.Time

	scenes map[int]scene.Scene
	quit   bool
}

// Engine is the main entry point for the engine.
// It drives the scenes through ebiten's game loop and presents the software framebuffer.
type Engine interface {
	ebiten.Game

	// EnableProfiler enables performance profiling output to the log.
	EnableProfiler()

	// DisableProfiler disables performance profiling output.
	DisableProfiler()

	// Profiler returns the engine's profiler.
	Profiler() *profiler.Profiler

	// SetTickRate sets the engine tick rate in ticks per second.
	// The tick callback will be called at this rate for game logic updates.
	//
	// Parameters:
	//   - tps: target ticks per second (defaults to 60 if <= 0)
	SetTickRate(tps int)

	// TickRate returns the configured ticks per second.
	TickRate() int

	// SetTickCallback registers the function called each engine tick, after the active
	// scenes have been updated.
	//
	// Parameters:
	//   - callback: function to call at the configured tick rate, receiving the delta time in seconds
	SetTickCallback(callback func(deltaTime float32))

	// SetRenderCallback registers the function called after each frame is rendered.
	//
	// Parameters:
	//   - callback: function to call each render frame, receiving the delta time in seconds
	SetRenderCallback(callback func(deltaTime float32))

	// SetKeyDownCallback registers the function called when a mapped key goes down.
	SetKeyDownCallback(callback func(key common.Key))

	// SetKeyUpCallback registers the function called when a mapped key goes up.
	SetKeyUpCallback(callback func(key common.Key))

	// KeyPressed reports whether a key is currently held.
	//
	// Parameters:
	//   - key: the key to query
	//
	// Returns:
	//   - bool: true while the key is down
	KeyPressed(key common.Key) bool

	// SetMouseMoveCallback registers the function called when the cursor moves.
	// Coordinates are normalized device coordinates of the framebuffer, +Y up.
	SetMouseMoveCallback(callback func(ndcX, ndcY float32))

	// SetMouseDownCallback registers the function called when the left mouse button goes down.
	SetMouseDownCallback(callback func(ndcX, ndcY float32))

	// SetMouseUpCallback registers the function called when the left mouse button goes up.
	SetMouseUpCallback(callback func(ndcX, ndcY float32))

	// AddScene registers a scene at the given z-index key.
	// Only the highest-keyed active scene is presented each frame.
	//
	// Parameters:
	//   - key: the z-index of the scene
	//   - s: the Scene to register
	AddScene(key int, s scene.Scene)

	// RemoveScene removes the scene at the given z-index key.
	//
	// Parameters:
	//   - key: the z-index of the scene to remove
	RemoveScene(key int)

	// Scene retrieves the scene registered at the given z-index key.
	// Returns nil if no scene exists at that key.
	//
	// Parameters:
	//   - key: the z-index of the scene to retrieve
	//
	// Returns:
	//   - scene.Scene: the scene at the key, or nil if not found
	Scene(key int) scene.Scene

	// Scenes returns a copy of all registered scenes keyed by z-index.
	//
	// Returns:
	//   - map[int]scene.Scene: a copy of the scenes map
	Scenes() map[int]scene.Scene

	// Framebuffer returns the software framebuffer the scenes render into.
	Framebuffer() *raster.Framebuffer

	// Run opens the window and blocks until it closes or Quit is called.
	//
	// Returns:
	//   - error: an error from ebiten other than a requested shutdown
	Run() error

	// Quit asks the game loop to stop at the end of the current tick.
	// Safe to call multiple times.
	Quit()
}

var _ Engine = &engine{}

// NewEngine creates a new Engine instance with the provided options.
// The framebuffer is allocated at the configured logical resolution.
//
// Parameters:
//   - options: functional options for engine configuration (profiling, tick rate, size, etc.)
//
// Returns:
//   - Engine: the newly created engine
//   - error: if the framebuffer size is invalid
func NewEngine(options ...EngineBuilderOption) (Engine, error) {
	e := &engine{
		title:    DefaultTitle,
		width:    DefaultWidth,
		height:   DefaultHeight,
		scale:    DefaultScale,
		tickRate: DefaultTickRate,
		profiler: profiler.NewProfiler(),
		input:    ebitenInput{},
		scenes:   make(map[int]scene.Scene),
		lastDraw: time.Now(),
	}

	for _, opt := range options {
		opt(e)
	}

	fb, err := raster.NewFramebuffer(e.width, e.height)
	if err != nil {
		return nil, fmt.Errorf("engine: %w", err)
	}
	e.fb = fb
	return e, nil
}

func (e *engine) Run() error {
	ebiten.SetWindowSize(e.width*e.scale, e.height*e.scale)
	ebiten.SetWindowTitle(e.title)
	ebiten.SetTPS(e.tickRate)

	common.Logger().Info("engine: starting", "width", e.width, "height", e.height, "tps", e.tickRate)
	err := ebiten.RunGame(e)
	if errors.Is(err, ebiten.Termination) {
		return nil
	}
	return err
}

func (e *engine) Quit() {
	e.quit = true
}

// Update polls input, advances every active scene and fires the tick callback.
// Returns ebiten.Termination once Quit has been called.
func (e *engine) Update() error {
	if e.quit {
		return ebiten.Termination
	}

	e.pollInput()

	dt := 1 / float32(e.tickRate)
	for _, k := range e.sortedKeys() {
		if s := e.scenes[k]; s.Active() {
			s.Update(dt)
		}
	}

	if e.tickCallback != nil {
		e.tickCallback(dt)
	}

	if e.quit {
		return ebiten.Termination
	}
	return nil
}

// Draw renders the frame and copies it onto the ebiten screen.
func (e *engine) Draw(screen *ebiten.Image) {
	img := e.renderFrame()
	screen.WritePixels(img.Pix)
}

// Layout keeps the logical screen at the framebuffer resolution; ebiten scales it to the window.
func (e *engine) Layout(outsideWidth, outsideHeight int) (int, int) {
	return e.fb.Width(), e.fb.Height()
}

// renderFrame draws the highest-keyed active scene into the framebuffer, feeds the
// profiler and returns the quantized image.
func (e *engine) renderFrame() *image.RGBA {
	now := time.Now()
	dt := float32(now.Sub(e.lastDraw).Seconds())
	e.lastDraw = now

	if s := e.frontScene(); s != nil {
		s.Render(e.fb)
		if r := s.Rasterizer(); r != nil {
			if e.profilingEnabled {
				e.profiler.AddFragments(r.Stats().FragmentsShaded)
			}
			r.ResetStats()
		}
	} else {
		e.fb.Clear(clearColor)
	}

	if e.renderCallback != nil {
		e.renderCallback(dt)
	}

	if e.profilingEnabled {
		e.profiler.Tick()
	}
	return e.fb.Image()
}

func (e *engine) frontScene() scene.Scene {
	keys := e.sortedKeys()
	for i := len(keys) - 1; i >= 0; i-- {
		if s := e.scenes[keys[i]]; s.Active() {
			return s
		}
	}
	return nil
}

func (e *engine) sortedKeys() []int {
	return slices.Sorted(maps.Keys(e.scenes))
}

// pollInput fires key and mouse callbacks for this tick's input changes.
func (e *engine) pollInput() {
	for _, k := range common.Keys() {
		if e.keyDownCallback != nil && e.input.keyJustPressed(k) {
			e.keyDownCallback(k)
		}
		if e.keyUpCallback != nil && e.input.keyJustReleased(k) {
			e.keyUpCallback(k)
		}
	}

	x, y := e.input.cursor()
	ndcX, ndcY := e.toNDC(x, y)
	if [2]int{x, y} != e.lastCursor {
		e.lastCursor = [2]int{x, y}
		if e.mouseMoveCallback != nil {
			e.mouseMoveCallback(ndcX, ndcY)
		}
	}
	if e.mouseDownCallback != nil && e.input.mouseJustPressed() {
		e.mouseDownCallback(ndcX, ndcY)
	}
	if e.mouseUpCallback != nil && e.input.mouseJustReleased() {
		e.mouseUpCallback(ndcX, ndcY)
	}
}

// toNDC maps a framebuffer pixel to normalized device coordinates at the pixel center.
func (e *engine) toNDC(x, y int) (float32, float32) {
	w, h := float32(e.fb.Width()), float32(e.fb.Height())
	return (float32(x)+0.5)/w*2 - 1, 1 - (float32(y)+0.5)/h*2
}

func (e *engine) KeyPressed(key common.Key) bool {
	return e.input.keyPressed(key)
}

// EnableProfiler enables performance profiling output to the log.
func (e *engine) EnableProfiler() {
	e.profilingEnabled = true
}

// DisableProfiler disables performance profiling output.
func (e *engine) DisableProfiler() {
	e.profilingEnabled = false
}

func (e *engine) Profiler() *profiler.Profiler {
	return e.profiler
}

// SetTickRate sets the engine tick rate in ticks per second.
// ebiten applies the change on its next tick.
func (e *engine) SetTickRate(tps int) {
	if tps <= 0 {
		tps = DefaultTickRate
	}
	e.tickRate = tps
	ebiten.SetTPS(tps)
}

func (e *engine) TickRate() int {
	return e.tickRate
}

// SetTickCallback registers the function called each engine tick.
func (e *engine) SetTickCallback(callback func(deltaTime float32)) {
	e.tickCallback = callback
}

// SetRenderCallback registers the function called each render frame.
func (e *engine) SetRenderCallback(callback func(deltaTime float32)) {
	e.renderCallback = callback
}

func (e *engine) SetKeyDownCallback(callback func(key common.Key)) {
	e.keyDownCallback = callback
}

func (e *engine) SetKeyUpCallback(callback func(key common.Key)) {
	e.keyUpCallback = callback
}

func (e *engine) SetMouseMoveCallback(callback func(ndcX, ndcY float32)) {
	e.mouseMoveCallback = callback
}

func (e *engine) SetMouseDownCallback(callback func(ndcX, ndcY float32)) {
	e.mouseDownCallback = callback
}

func (e *engine) SetMouseUpCallback(callback func(ndcX, ndcY float32)) {
	e.mouseUpCallback = callback
}

func (e *engine) AddScene(key int, s scene.Scene) {
	e.scenes[key] = s
}

func (e *engine) RemoveScene(key int) {
	delete(e.scenes, key)
}

func (e *engine) Scene(key int) scene.Scene {
	return e.scenes[key]
}

func (e *engine) Scenes() map[int]scene.Scene {
	return maps.Clone(e.scenes)
}

func (e *engine) Framebuffer() *raster.Framebuffer {
	return e.fb
}
