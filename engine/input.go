package engine

import (
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// inputSource is the per-frame input state polled by the engine.
type inputSource interface {
	// keyJustPressed reports whether k went down this tick.
	keyJustPressed(k common.Key) bool
	// keyJustReleased reports whether k went up this tick.
	keyJustReleased(k common.Key) bool
	// keyPressed reports whether k is currently held.
	keyPressed(k common.Key) bool
	// cursor returns the cursor position in framebuffer pixels.
	cursor() (x, y int)
	// mouseJustPressed reports whether the left button went down this tick.
	mouseJustPressed() bool
	// mouseJustReleased reports whether the left button went up this tick.
	mouseJustReleased() bool
}

var ebitenKeys = map[common.Key]ebiten.Key{
	common.KeyW:          ebiten.KeyW,
	common.KeyA:          ebiten.KeyA,
	common.KeyS:          ebiten.KeyS,
	common.KeyD:          ebiten.KeyD,
	common.KeyQ:          ebiten.KeyQ,
	common.KeyE:          ebiten.KeyE,
	common.KeyF:          ebiten.KeyF,
	common.KeyG:          ebiten.KeyG,
	common.KeyL:          ebiten.KeyL,
	common.KeyP:          ebiten.KeyP,
	common.KeyR:          ebiten.KeyR,
	common.KeySpace:      ebiten.KeySpace,
	common.KeyEsc:        ebiten.KeyEscape,
	common.KeyLeft:       ebiten.KeyArrowLeft,
	common.KeyRight:      ebiten.KeyArrowRight,
	common.KeyUp:         ebiten.KeyArrowUp,
	common.KeyDown:       ebiten.KeyArrowDown,
	common.KeyMinus:      ebiten.KeyMinus,
	common.KeyEqual:      ebiten.KeyEqual,
	common.Key0:          ebiten.KeyDigit0,
	common.Key1:          ebiten.KeyDigit1,
	common.Key2:          ebiten.KeyDigit2,
	common.Key3:          ebiten.KeyDigit3,
	common.Key4:          ebiten.KeyDigit4,
	common.Key5:          ebiten.KeyDigit5,
	common.Key6:          ebiten.KeyDigit6,
	common.Key7:          ebiten.KeyDigit7,
	common.Key8:          ebiten.KeyDigit8,
	common.Key9:          ebiten.KeyDigit9,
	common.KeyLeftShift:  ebiten.KeyShiftLeft,
	common.KeyRightShift: ebiten.KeyShiftRight,
}

// ebitenKey returns the ebiten key bound to k, or false if k is unknown.
func ebitenKey(k common.Key) (ebiten.Key, bool) {
	ek, ok := ebitenKeys[k]
	return ek, ok
}

// ebitenInput reads input from ebiten's global input state.
type ebitenInput struct{}

var _ inputSource = ebitenInput{}

func (ebitenInput) keyJustPressed(k common.Key) bool {
	ek, ok := ebitenKey(k)
	return ok && inpututil.IsKeyJustPressed(ek)
}

func (ebitenInput) keyJustReleased(k common.Key) bool {
	ek, ok := ebitenKey(k)
	return ok && inpututil.IsKeyJustReleased(ek)
}

func (ebitenInput) keyPressed(k common.Key) bool {
	ek, ok := ebitenKey(k)
	return ok && ebiten.IsKeyPressed(ek)
}

func (ebitenInput) cursor() (int, int) {
	return ebiten.CursorPosition()
}

func (ebitenInput) mouseJustPressed() bool {
	return inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
}

func (ebitenInput) mouseJustReleased() bool {
	return inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
}
