package model

import (
	"fmt"
	"math"

	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/go-gl/mathgl/mgl32"
)

// ObjectType identifies a kind of desk object.
type ObjectType int

const (
	ObjectLamp ObjectType = iota
	ObjectCoffee
	ObjectGlobe
	ObjectBooks
	ObjectPlant
	ObjectClock
	ObjectLaptop
	ObjectNotebook
	ObjectPenHolder
	ObjectPhotoFrame
	ObjectTrophy
	ObjectHourglass
	ObjectMetronome
	ObjectPaper
	ObjectMagazine
	ObjectMusicPlayer
	ObjectPen
)

// LampGlowDim scales the lamp's glow disc color while the lamp is switched off.
const LampGlowDim = 0.35

var objectTypeNames = map[ObjectType]string{
	ObjectLamp:   "lamp",
	ObjectCoffee: "coffee",
	ObjectGlobe:  "globe",
	ObjectBooks:  "books",
	ObjectPlant:  "plant",
	ObjectClock:  "clock",

	ObjectLaptop:      "laptop",
	ObjectNotebook:    "notebook",
	ObjectPenHolder:   "pen-holder",
	ObjectPhotoFrame:  "photo-frame",
	ObjectTrophy:      "trophy",
	ObjectHourglass:   "hourglass",
	ObjectMetronome:   "metronome",
	ObjectPaper:       "paper",
	ObjectMagazine:    "magazine",
	ObjectMusicPlayer: "music-player",
	ObjectPen:         "pen",
}

// ObjectTypes lists every known ObjectType in declaration order.
func ObjectTypes() []ObjectType {
	types := make([]ObjectType, 0, ObjectPen+1)
	for t := ObjectLamp; t <= ObjectPen; t++ {
		types = append(types, t)
	}
	return types
}

func (t ObjectType) String() string {
	if name, ok := objectTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("ObjectType(%d)", int(t))
}

// DefaultColor returns the packed 0xRRGGBB main color of the object type.
func (t ObjectType) DefaultColor() uint32 {
	switch t {
	case ObjectLamp:
		return 0x4f46e5
	case ObjectCoffee:
		return 0xfbbf24
	case ObjectGlobe:
		return 0x3b82f6
	case ObjectBooks:
		return 0x0ea5e9
	case ObjectPlant:
		return 0x22c55e
	case ObjectClock:
		return 0x2d3748
	case ObjectLaptop:
		return 0x64748b
	case ObjectNotebook, ObjectMagazine:
		return 0xef4444
	case ObjectPenHolder:
		return 0x8b5cf6
	case ObjectPhotoFrame:
		return 0x78716c
	case ObjectTrophy, ObjectHourglass:
		return 0xfbbf24
	case ObjectMetronome:
		return 0x78350f
	case ObjectPaper:
		return 0xffffff
	case ObjectMusicPlayer:
		return 0x1e293b
	case ObjectPen:
		return 0x3b82f6
	default:
		return 0xffffff
	}
}

// DefaultAccentColor returns the packed 0xRRGGBB accent color of the object type.
func (t ObjectType) DefaultAccentColor() uint32 {
	switch t {
	case ObjectLamp:
		return 0xfef3c7
	case ObjectCoffee:
		return 0x78350f
	case ObjectGlobe:
		return 0x22c55e
	case ObjectBooks:
		return 0xfbbf24
	case ObjectPlant:
		return 0x78350f
	case ObjectClock, ObjectMagazine:
		return 0xffffff
	case ObjectLaptop, ObjectPen:
		return 0x1e293b
	case ObjectNotebook, ObjectPenHolder, ObjectPaper:
		return 0x000000
	case ObjectPhotoFrame, ObjectMetronome:
		return 0xfbbf24
	case ObjectTrophy, ObjectHourglass:
		return 0x78350f
	case ObjectMusicPlayer:
		return 0x22c55e
	default:
		return 0xffffff
	}
}

// BaseRadius returns the unscaled footprint radius of the object type, used for
// picking and for keeping objects apart on the desk.
func (t ObjectType) BaseRadius() float32 {
	switch t {
	case ObjectLaptop:
		return 0.5
	case ObjectNotebook:
		return 0.35
	case ObjectLamp, ObjectBooks:
		return 0.3
	case ObjectPlant, ObjectGlobe, ObjectMusicPlayer:
		return 0.25
	case ObjectCoffee:
		return 0.15
	default:
		return 0.2
	}
}

// NewObjectMesh builds the local-space mesh for an object type.
//
// Parameters:
//   - t: the object type
//   - color: packed 0xRRGGBB main color
//   - accent: packed 0xRRGGBB accent color
//   - lit: lamp state; ignored by other object types
//
// Returns:
//   - *Mesh: the generated mesh
//   - error: if t is not a known object type
func NewObjectMesh(t ObjectType, color, accent uint32, lit bool) (*Mesh, error) {
	switch t {
	case ObjectLamp:
		return NewLamp(color, accent, lit), nil
	case ObjectCoffee:
		return NewMug(color, accent), nil
	case ObjectGlobe:
		return NewGlobe(color, accent), nil
	case ObjectBooks:
		return NewBooks(color, accent), nil
	case ObjectPlant:
		return NewPlant(color, accent), nil
	case ObjectClock:
		return NewClock(color, accent), nil
	case ObjectLaptop:
		return NewLaptop(color, accent), nil
	case ObjectNotebook:
		return NewNotebook(color), nil
	case ObjectPenHolder:
		return NewPenHolder(color, accent), nil
	case ObjectPhotoFrame:
		return NewPhotoFrame(color, accent), nil
	case ObjectTrophy:
		return NewTrophy(color, accent), nil
	case ObjectHourglass:
		return NewHourglass(color, accent), nil
	case ObjectMetronome:
		return NewMetronome(color, accent), nil
	case ObjectPaper:
		return NewPaper(color), nil
	case ObjectMagazine:
		return NewMagazine(color, accent), nil
	case ObjectMusicPlayer:
		return NewMusicPlayer(color, accent), nil
	case ObjectPen:
		return NewPen(color, accent), nil
	default:
		return nil, fmt.Errorf("unknown object type %d", int(t))
	}
}

// NewLamp builds a desk lamp: base, stem, an arm tilted 45 degrees, an
// open-topped head and a glow disc inside the head.
//
// Parameters:
//   - color: packed body color
//   - accent: packed glow color
//   - lit: whether the glow disc is shown at full brightness
//
// Returns:
//   - *Mesh: the lamp mesh, roughly 0.8 units tall
func NewLamp(color, accent uint32, lit bool) *Mesh {
	body := common.HexToRGBA(color, 1)
	glow := common.HexToRGBA(accent, 1)
	if !lit {
		glow = shade(glow, LampGlowDim)
	}

	m := NewMesh()
	m.Merge(NewCylinder(0.15, 0.04, 16, body, 0, true, true))
	m.Merge(NewCylinder(0.02, 0.5, 8, body, 0.04, true, true))

	arm := NewBox(0.02, 0.3, 0.02, body, 0)
	arm.Transform(mgl32.Translate3D(0, 0.54, 0).Mul4(mgl32.HomogRotate3DX(math.Pi / 4)))
	m.Merge(arm)

	const headY = 0.72
	m.Merge(NewCylinder(0.12, 0.08, 12, body, headY, true, false))
	m.Merge(NewCylinder(0.08, 0.02, 12, glow, headY+0.02, true, true))
	return m
}

// NewMug builds a coffee mug: an open body, a liquid disc and a box handle.
func NewMug(color, accent uint32) *Mesh {
	body := common.HexToRGBA(color, 1)
	liquid := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewCylinder(0.08, 0.15, 16, body, 0, true, false))
	m.Merge(NewCylinder(0.065, 0.01, 16, liquid, 0.12, true, true))

	handle := NewBox(0.03, 0.08, 0.02, body, 0.04)
	handle.Translate(mgl32.Vec3{0.10, 0, 0})
	m.Merge(handle)
	return m
}

// NewGlobe builds a globe on a stand. The sphere is centred on the Y axis so
// the object can spin about Y without wobbling.
func NewGlobe(color, accent uint32) *Mesh {
	globe := common.HexToRGBA(color, 1)
	stand := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewCylinder(0.1, 0.02, 12, stand, 0, true, true))
	m.Merge(NewCylinder(0.015, 0.15, 8, stand, 0.02, true, true))
	m.Merge(NewSphere(0.12, 16, 12, globe, 0.25))
	return m
}

// NewBooks builds a stack of three books alternating main and accent colors.
func NewBooks(color, accent uint32) *Mesh {
	a := common.HexToRGBA(color, 1)
	b := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.22, 0.035, 0.3, a, 0))
	m.Merge(NewBox(0.24, 0.04, 0.28, b, 0.035))
	m.Merge(NewBox(0.2, 0.03, 0.32, a, 0.075))
	return m
}

var plantLeafOffsets = []mgl32.Vec3{
	{0, 0.28, 0},
	{0.06, 0.24, 0.04},
	{-0.05, 0.25, 0.05},
	{0.04, 0.22, -0.05},
	{-0.04, 0.23, -0.04},
}

// NewPlant builds a potted plant: pot, rim, soil disc and a cluster of leaves.
// color is the leaf color, accent the pot color.
func NewPlant(color, accent uint32) *Mesh {
	leaf := common.HexToRGBA(color, 1)
	pot := common.HexToRGBA(accent, 1)
	soil := mgl32.Vec4{0.25, 0.15, 0.1, 1}

	m := NewMesh()
	m.Merge(NewCylinder(0.12, 0.15, 12, pot, 0, true, false))
	m.Merge(NewCylinder(0.10, 0.02, 12, pot, 0.15, false, false))
	m.Merge(NewCylinder(0.095, 0.02, 12, soil, 0.15, true, true))
	for _, offset := range plantLeafOffsets {
		l := NewSphere(0.06, 8, 6, leaf, 0)
		l.Translate(offset)
		m.Merge(l)
	}
	return m
}

// NewClock builds a wall-style clock lying on the desk: frame, face and twelve
// hour markers.
func NewClock(color, accent uint32) *Mesh {
	frame := common.HexToRGBA(color, 1)
	face := common.HexToRGBA(accent, 1)
	marker := shade(frame, 0.3)

	m := NewMesh()
	m.Merge(NewCylinder(0.25, 0.08, 24, frame, 0.32, true, true))
	m.Merge(NewCylinder(0.22, 0.01, 24, face, 0.40, true, true))
	for i := range 12 {
		angle := float32(i)/12*2*math.Pi - math.Pi/2
		cx := float32(math.Cos(float64(angle))) * 0.18
		cz := float32(math.Sin(float64(angle))) * 0.18

		mk := NewBox(0.02, 0.005, 0.04, marker, 0.41)
		mk.Transform(mgl32.Translate3D(cx, 0, cz).Mul4(mgl32.HomogRotate3DY(-angle)))
		m.Merge(mk)
	}
	return m
}

// laptopScreenTilt opens the lid about 70 degrees back from the keyboard.
const laptopScreenTilt = -1.2226

// NewLaptop builds an open laptop: keyboard base, a tilted lid and the display
// panel on the lid's inner face. accent is the display color.
func NewLaptop(color, accent uint32) *Mesh {
	body := common.HexToRGBA(color, 1)
	display := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.4, 0.02, 0.28, body, 0))

	lid := NewBox(0.38, 0.25, 0.01, body, 0)
	lid.Transform(mgl32.Translate3D(0, 0.02, -0.14).Mul4(mgl32.HomogRotate3DX(laptopScreenTilt)))
	m.Merge(lid)

	panel := NewBox(0.34, 0.20, 0.005, display, 0)
	panel.Transform(mgl32.Translate3D(0, 0.045, -0.13).Mul4(mgl32.HomogRotate3DX(laptopScreenTilt)))
	m.Merge(panel)
	return m
}

// NewNotebook builds a closed notebook.
func NewNotebook(color uint32) *Mesh {
	return NewBox(0.25, 0.03, 0.35, common.HexToRGBA(color, 1), 0)
}

// NewPenHolder builds an open cup holding three pens.
func NewPenHolder(color, accent uint32) *Mesh {
	cup := common.HexToRGBA(color, 1)
	pen := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewCylinder(0.08, 0.15, 12, cup, 0, true, false))
	for i := range 3 {
		angle := float64(i)/3*2*math.Pi + 0.3
		p := NewCylinder(0.008, 0.2, 6, pen, 0.1, true, true)
		p.Translate(mgl32.Vec3{float32(math.Cos(angle)) * 0.03, 0, float32(math.Sin(angle)) * 0.03})
		m.Merge(p)
	}
	return m
}

// NewPhotoFrame builds a standing frame with the photo inset on its front and a
// prop behind it.
func NewPhotoFrame(color, accent uint32) *Mesh {
	frame := common.HexToRGBA(color, 1)
	photo := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.2, 0.25, 0.02, frame, 0))

	inset := NewBox(0.16, 0.21, 0.005, photo, 0.02)
	inset.Translate(mgl32.Vec3{0, 0, 0.01})
	m.Merge(inset)

	prop := NewBox(0.02, 0.15, 0.08, frame, 0)
	prop.Translate(mgl32.Vec3{0, 0, -0.05})
	m.Merge(prop)
	return m
}

// NewTrophy builds a cup on a stem with two side handles. accent is the base color.
func NewTrophy(color, accent uint32) *Mesh {
	cup := common.HexToRGBA(color, 1)
	base := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.12, 0.04, 0.12, base, 0))
	m.Merge(NewCylinder(0.02, 0.1, 8, cup, 0.04, true, true))
	m.Merge(NewCylinder(0.08, 0.12, 12, cup, 0.14, true, false))
	for _, x := range []float32{0.1, -0.1} {
		h := NewBox(0.04, 0.06, 0.015, cup, 0.16)
		h.Translate(mgl32.Vec3{x, 0, 0})
		m.Merge(h)
	}
	return m
}

var hourglassSand = mgl32.Vec4{0.9, 0.8, 0.5, 1}

// NewHourglass builds two translucent bulbs between square end plates, with a
// pile of sand in the lower bulb. accent is the plate color.
func NewHourglass(color, accent uint32) *Mesh {
	glass := common.HexToRGBA(color, 0.8)
	plate := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.1, 0.02, 0.1, plate, 0))
	m.Merge(NewBox(0.1, 0.02, 0.1, plate, 0.28))
	m.Merge(NewCylinder(0.06, 0.12, 12, glass, 0.02, true, false))
	m.Merge(NewCylinder(0.06, 0.12, 12, glass, 0.16, false, true))
	m.Merge(NewCylinder(0.015, 0.04, 8, glass, 0.12, true, true))
	m.Merge(NewSphere(0.04, 8, 6, hourglassSand, 0.06))
	return m
}

// NewMetronome builds a metronome body with its arm in front. accent is the arm color.
func NewMetronome(color, accent uint32) *Mesh {
	m := NewMesh()
	m.Merge(NewBox(0.12, 0.25, 0.1, common.HexToRGBA(color, 1), 0))
	m.Merge(NewBox(0.01, 0.2, 0.01, common.HexToRGBA(accent, 1), 0.05))
	return m
}

// NewPaper builds a single sheet in A4 proportions.
func NewPaper(color uint32) *Mesh {
	return NewBox(0.21, 0.002, 0.297, common.HexToRGBA(color, 1), 0)
}

// NewMagazine builds a magazine with a title stripe across the top of its cover.
func NewMagazine(color, accent uint32) *Mesh {
	m := NewMesh()
	m.Merge(NewBox(0.22, 0.01, 0.3, common.HexToRGBA(color, 1), 0))

	title := NewBox(0.18, 0.002, 0.04, common.HexToRGBA(accent, 1), 0.01)
	title.Translate(mgl32.Vec3{0, 0, -0.08})
	m.Merge(title)
	return m
}

// NewMusicPlayer builds a small speaker box with two accent dials on top.
func NewMusicPlayer(color, accent uint32) *Mesh {
	body := common.HexToRGBA(color, 1)
	dial := common.HexToRGBA(accent, 1)

	m := NewMesh()
	m.Merge(NewBox(0.3, 0.12, 0.18, body, 0))
	for _, x := range []float32{-0.08, 0.08} {
		d := NewCylinder(0.03, 0.02, 12, dial, 0.12, false, true)
		d.Translate(mgl32.Vec3{x, 0, 0})
		m.Merge(d)
	}
	return m
}

// NewPen builds a pen lying along X with a clip in the accent color.
func NewPen(color, accent uint32) *Mesh {
	const radius = 0.008

	m := NewCylinder(radius, 0.16, 6, common.HexToRGBA(color, 1), -0.08, true, true)
	m.Transform(mgl32.Translate3D(0, radius, 0).Mul4(mgl32.HomogRotate3DZ(math.Pi / 2)))

	clip := NewBox(0.05, 0.004, 0.004, common.HexToRGBA(accent, 1), 2*radius)
	clip.Translate(mgl32.Vec3{-0.04, 0, 0})
	m.Merge(clip)
	return m
}

// NewDesk builds the visible desk slab: an upward-facing top at the given
// height and a darker front face down to the floor.
//
// Parameters:
//   - width: extent along X
//   - depth: extent along Z
//   - height: height of the desk surface
//   - color: packed 0xRRGGBB desk color
//
// Returns:
//   - *Mesh: an 8-vertex, 4-triangle mesh
func NewDesk(width, depth, height float32, color uint32) *Mesh {
	top := common.HexToRGBA(color, 1)
	front := shade(top, 0.8)
	hw, hd := width/2, depth/2

	m := NewMesh()
	m.Vertices = append(m.Vertices,
		vertex(mgl32.Vec3{-hw, height, -hd}, axisY, top),
		vertex(mgl32.Vec3{hw, height, -hd}, axisY, top),
		vertex(mgl32.Vec3{hw, height, hd}, axisY, top),
		vertex(mgl32.Vec3{-hw, height, hd}, axisY, top),
		vertex(mgl32.Vec3{-hw, 0, hd}, axisZ, front),
		vertex(mgl32.Vec3{hw, 0, hd}, axisZ, front),
		vertex(mgl32.Vec3{hw, height, hd}, axisZ, front),
		vertex(mgl32.Vec3{-hw, height, hd}, axisZ, front),
	)
	m.Indices = append(m.Indices, 0, 3, 2, 0, 2, 1, 4, 5, 6, 4, 6, 7)
	return m
}

// NewFloor builds the ground plane at y = 0.
//
// Parameters:
//   - halfSize: half the edge length
//   - color: packed 0xRRGGBB ground color
//
// Returns:
//   - *Mesh: a two-triangle mesh
func NewFloor(halfSize float32, color uint32) *Mesh {
	return NewPlane(halfSize, 0, common.HexToRGBA(color, 1))
}
