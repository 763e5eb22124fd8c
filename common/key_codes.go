package common

// Key identifies a keyboard key independently of the windowing backend.
// The engine binds each one to a concrete window key when polling input.
type Key int

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyQ
	KeyE
	KeyF
	KeyG
	KeyL
	KeyP
	KeyR
	KeySpace
	KeyEsc
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyMinus
	KeyEqual

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyLeftShift
	KeyRightShift
)

// Keys lists every Key in declaration order.
func Keys() []Key {
	keys := make([]Key, 0, KeyRightShift+1)
	for k := KeyW; k <= KeyRightShift; k++ {
		keys = append(keys, k)
	}
	return keys
}
