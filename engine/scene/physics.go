package scene

import (
	"math"

	"github.com/ByteArena/box2d"
	"github.com/Carmen-Shannon/oxy-desk/common"
	"github.com/Carmen-Shannon/oxy-desk/engine/game_object"
	"github.com/go-gl/mathgl/mgl32"
)

const (
	// pushMargin leaves a gap between objects after one is pushed off another.
	pushMargin = 0.05

	// settlePasses bounds how often placement re-checks every neighbour after a push.
	settlePasses = 8

	// coincidentDist is the footprint distance below which two centres count as the same point.
	coincidentDist = 0.001

	// stackOverlap is the fraction of the squared combined radius under which a dropped
	// object lands on top of a stackable neighbour instead of being pushed aside.
	stackOverlap = 0.5

	// dropSnap ends a drop once the object is this close to its resting height.
	dropSnap = 0.01
)

// footprint is an object's circular outline on the desk plane, with desk z mapped to box2d y.
type footprint struct {
	shape box2d.B2CircleShape
	xf    box2d.B2Transform
}

func newFootprint(x, z, radius float32) footprint {
	f := footprint{shape: box2d.MakeB2CircleShape(), xf: box2d.MakeB2Transform()}
	f.shape.M_radius = float64(radius)
	f.xf.Set(box2d.MakeB2Vec2(float64(x), float64(z)), 0)
	return f
}

// overlaps reports whether two footprints touch or intersect.
func (f *footprint) overlaps(other *footprint) bool {
	var m box2d.B2Manifold
	box2d.B2CollideCircles(&m, &f.shape, f.xf, &other.shape, other.xf)
	return m.PointCount > 0
}

// clampToDesk keeps a footprint of the given radius inside the desk top.
func (s *scene) clampToDesk(x, z, radius float32) (float32, float32) {
	hx := max(s.config.DeskWidth/2-radius, 0)
	hz := max(s.config.DeskDepth/2-radius, 0)
	return mgl32.Clamp(x, -hx, hx), mgl32.Clamp(z, -hz, hz)
}

// stacksOn reports whether obj placed at (x, z) lands on top of other rather than beside it.
func stacksOn(obj, other game_object.GameObject, x, z float32) bool {
	if other.Type().Physics().NoStackingOnTop {
		return false
	}
	p := other.Transform().Position
	dx, dz := x-p[0], z-p[2]
	combined := obj.CollisionRadius() + other.CollisionRadius()
	return dx*dx+dz*dz < combined*combined*stackOverlap
}

// findValidPosition moves a desk position for obj until its footprint clears every enabled
// neighbour, pushing it straight away from each one it overlaps. With allowStack set, a
// neighbour that obj mostly covers and that accepts stacking is left to carry it instead.
// The result always lies on the desk.
func (s *scene) findValidPosition(obj game_object.GameObject, x, z float32, others []game_object.GameObject, allowStack bool) (float32, float32) {
	radius := obj.CollisionRadius()
	x, z = s.clampToDesk(x, z, radius)

	for range settlePasses {
		moved := false
		for _, other := range others {
			if other.ID() == obj.ID() || !other.Enabled() {
				continue
			}
			if allowStack && stacksOn(obj, other, x, z) {
				continue
			}
			p := other.Transform().Position
			a, b := newFootprint(x, z, radius), newFootprint(p[0], p[2], other.CollisionRadius())
			if !a.overlaps(&b) {
				continue
			}

			dx, dz := x-p[0], z-p[2]
			dist := float32(math.Sqrt(float64(dx*dx + dz*dz)))
			if dist <= coincidentDist {
				dx, dz, dist = 1, 0, 1
			}
			push := radius + other.CollisionRadius() - dist + pushMargin
			x += dx / dist * push
			z += dz / dist * push
			moved = true
		}
		x, z = s.clampToDesk(x, z, radius)
		if !moved {
			break
		}
	}
	return x, z
}

// restingY returns the height obj settles at when placed at (x, z): on the desk, or on top of
// the tallest stackable neighbour it covers.
func (s *scene) restingY(obj game_object.GameObject, x, z float32, others []game_object.GameObject) float32 {
	offset := obj.Type().Physics().BaseOffset * obj.Transform().Scale
	y := s.config.DeskHeight + offset
	for _, other := range others {
		if other.ID() == obj.ID() || !other.Enabled() || !stacksOn(obj, other, x, z) {
			continue
		}
		y = max(y, other.Transform().Position[1]+other.CollisionHeight()+offset)
	}
	return y
}

// settle places obj at rest near (x, z) without stacking it, as for a freshly spawned object.
// Caller must not hold the mutex.
func (s *scene) settle(obj game_object.GameObject, x, z float32) {
	others := s.Objects()
	x, z = s.findValidPosition(obj, x, z, others, false)
	obj.SetPosition(mgl32.Vec3{x, s.restingY(obj, x, z, others), z})
}

func (s *scene) EndDrag(id uint64) bool {
	obj := s.Get(id)
	if obj == nil {
		return false
	}

	s.mu.Lock()
	delete(s.dragging, id)
	others := make([]game_object.GameObject, 0, len(s.registry))
	for oid, other := range s.registry {
		if oid != id && !s.dragging[oid] {
			others = append(others, other)
		}
	}
	s.mu.Unlock()

	p := obj.Transform().Position
	x, z := s.findValidPosition(obj, p[0], p[2], others, true)
	target := s.restingY(obj, x, z, others)
	obj.SetPosition(mgl32.Vec3{x, p[1], z})

	s.mu.Lock()
	if mgl32.Abs(p[1]-target) > dropSnap {
		s.drops[id] = target
	} else {
		obj.SetPosition(mgl32.Vec3{x, target, z})
	}
	s.mu.Unlock()

	common.Logger().Debug("scene: drag ended", "id", id, "x", x, "z", z, "rest_y", target)
	return true
}

func (s *scene) Dropping(id uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.drops[id]
	return ok
}

// updateDrops eases every dropping object toward its resting height.
func (s *scene) updateDrops(dt float32) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step := float32(1)
	if s.config.DropRate > 0 {
		step = min(s.config.DropRate*dt, 1)
	}
	for id, target := range s.drops {
		obj, ok := s.registry[id]
		if !ok {
			delete(s.drops, id)
			continue
		}
		p := obj.Transform().Position
		p[1] += (target - p[1]) * step
		if mgl32.Abs(target-p[1]) < dropSnap {
			p[1] = target
			delete(s.drops, id)
		}
		obj.SetPosition(p)
	}
}
