package physics

import (
	"math"

	"github.com/jakecoffman/cp"
)

const (
	// stepDT is the fixed simulation timestep. The game loop runs at 60
	// ticks per second and steps the world exactly once per tick.
	stepDT = 1.0 / 60.0

	// shrinkEpsilon trims each box half-extent so colliders of adjacent
	// tiles don't snag on exactly touching corners.
	shrinkEpsilon = 0.01

	// All dynamic bodies share the same physical parameters; only their
	// tag distinguishes them.
	dynamicBodyMass    = 10.0
	dynamicBodyDamping = 1.0

	spaceIterations = 20
)

// World owns the simulation space and the body/collider records behind it.
// Bodies are created and destroyed only through its typed operations and are
// referenced from the outside exclusively by handle. Not safe for concurrent
// use; the whole component family runs on the single game loop goroutine.
type World struct {
	space *cp.Space
	store bodyStore
}

// NewWorld creates an empty world under constant downward gravity. Gravity
// is the only configuration point.
func NewWorld(gravity float64) *World {
	space := cp.NewSpace()
	space.Iterations = spaceIterations
	space.SetGravity(cp.Vector{X: 0, Y: gravity})
	return &World{space: space}
}

// Step advances every dynamic body by one fixed timestep, applies damping,
// resolves overlaps and refreshes the contact graph. Call exactly once per
// tick, before any Collisions query for that tick.
func (w *World) Step() {
	w.space.Step(stepDT)
}

// CreateTile creates an immovable Ground body with a box collider centered
// at pos. Static bodies have zero mass and ignore gravity and forces.
func (w *World) CreateTile(pos cp.Vector, width, height float64) BodyHandle {
	body := cp.NewStaticBody()
	body.SetPosition(pos)
	w.space.AddBody(body)
	return w.attachBox(body, width, height, TagGround)
}

// CreatePlayer creates a dynamic Player body with a box collider at pos.
func (w *World) CreatePlayer(pos cp.Vector, width, height float64) BodyHandle {
	return w.createDynamic(pos, width, height, TagPlayer)
}

// CreateEnemy creates a dynamic Enemy body with a box collider at pos.
func (w *World) CreateEnemy(pos cp.Vector, width, height float64) BodyHandle {
	return w.createDynamic(pos, width, height, TagEnemy)
}

// CreateBarrel creates a dynamic Barrel body with a box collider at pos.
func (w *World) CreateBarrel(pos cp.Vector, width, height float64) BodyHandle {
	return w.createDynamic(pos, width, height, TagBarrel)
}

// CreateBullet creates a dynamic Bullet body with a box collider at pos.
func (w *World) CreateBullet(pos cp.Vector, width, height float64) BodyHandle {
	return w.createDynamic(pos, width, height, TagBullet)
}

func (w *World) createDynamic(pos cp.Vector, width, height float64, tag ObjectTag) BodyHandle {
	// Infinite moment keeps orientation fixed; only translation is
	// simulated.
	body := cp.NewBody(dynamicBodyMass, math.Inf(1))
	body.SetPosition(pos)
	// Per-body linear damping on top of the space gravity:
	// v *= 1/(1+dt*d) each step.
	body.SetVelocityUpdateFunc(func(b *cp.Body, gravity cp.Vector, _, dt float64) {
		cp.BodyUpdateVelocity(b, gravity, 1.0/(1.0+dt*dynamicBodyDamping), dt)
	})
	w.space.AddBody(body)
	return w.attachBox(body, width, height, tag)
}

func (w *World) attachBox(body *cp.Body, width, height float64, tag ObjectTag) BodyHandle {
	shape := cp.NewBox(body, width-2*shrinkEpsilon, height-2*shrinkEpsilon, 0)
	// Frictionless, non-bouncy material.
	shape.SetFriction(0)
	shape.SetElasticity(0)
	h := w.store.insert(bodyRecord{body: body, shape: shape, tag: tag})
	shape.UserData = h
	w.space.AddShape(shape)
	return h
}

// Body resolves a handle to its live body for inspection or mutation, e.g.
// applying movement velocity between ticks. The returned pointer must not be
// retained across ticks; Step and DestroyBody may invalidate it. Panics if
// the handle was destroyed.
func (w *World) Body(h BodyHandle) *cp.Body {
	return w.store.resolve(h).body
}

// Tag returns the object tag fixed at creation. Panics if the handle was
// destroyed.
func (w *World) Tag(h BodyHandle) ObjectTag {
	return w.store.resolve(h).tag
}

// Alive reports whether a handle still resolves. Unlike Body and Tag it
// never panics; game rules use it to skip entities already destroyed earlier
// in the same tick.
func (w *World) Alive(h BodyHandle) bool {
	return w.store.alive(h)
}

// DestroyBody removes the body and its collider from the space. The handle
// is dead afterwards; any later resolution panics.
func (w *World) DestroyBody(h BodyHandle) {
	rec := w.store.remove(h)
	w.space.RemoveShape(rec.shape)
	w.space.RemoveBody(rec.body)
}

// Collisions returns one entry per body currently in contact with h, with
// both participants' tags resolved. Order is unspecified, the slice is
// rebuilt on every call, and the contacts reflect the last completed Step.
func (w *World) Collisions(h BodyHandle) []Contact {
	rec := w.store.resolve(h)
	var contacts []Contact
	rec.body.EachArbiter(func(arb *cp.Arbiter) {
		set := arb.ContactPointSet()
		if set.Count == 0 {
			return
		}
		a, b := arb.Shapes()
		other := a
		if other == rec.shape {
			other = b
		}
		oh := handleOf(other)
		contacts = append(contacts, Contact{
			Tags:     TagPair{First: rec.tag, Second: w.store.resolve(oh).tag},
			Other:    oh,
			Manifold: set,
		})
	})
	return contacts
}

// handleOf recovers the registry handle stamped on a shape at creation. A
// shape without one was not created through this registry, which breaks the
// every-collider-has-a-tag invariant.
func handleOf(shape *cp.Shape) BodyHandle {
	h, ok := shape.UserData.(BodyHandle)
	if !ok {
		panic("physics: collider without object tag in contact graph")
	}
	return h
}
