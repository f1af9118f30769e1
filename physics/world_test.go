package physics

import (
	"testing"

	"github.com/jakecoffman/cp"
)

const testGravity = 50.8

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s should panic", name)
		}
	}()
	fn()
}

func TestHandleUniqueness(t *testing.T) {
	cases := []struct {
		name   string
		create int
	}{
		{"single", 1},
		{"few", 8},
		{"many", 200},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w := NewWorld(testGravity)
			seen := make(map[BodyHandle]struct{}, c.create)
			for i := 0; i < c.create; i++ {
				h := w.CreateEnemy(cp.Vector{X: float64(i * 100)}, 40, 40)
				if _, dup := seen[h]; dup {
					t.Fatalf("handle %v returned twice", h)
				}
				seen[h] = struct{}{}
			}
		})
	}
}

func TestHandleUniqueAcrossKinds(t *testing.T) {
	w := NewWorld(testGravity)
	handles := []BodyHandle{
		w.CreateTile(cp.Vector{}, 64, 64),
		w.CreatePlayer(cp.Vector{X: 100}, 40, 40),
		w.CreateEnemy(cp.Vector{X: 200}, 40, 40),
		w.CreateBarrel(cp.Vector{X: 300}, 40, 40),
		w.CreateBullet(cp.Vector{X: 400}, 8, 8),
	}
	seen := make(map[BodyHandle]struct{}, len(handles))
	for _, h := range handles {
		if _, dup := seen[h]; dup {
			t.Fatalf("duplicate handle %v", h)
		}
		seen[h] = struct{}{}
	}
}

func TestDestroyThenResolvePanics(t *testing.T) {
	w := NewWorld(testGravity)
	h := w.CreateBarrel(cp.Vector{X: 50, Y: 50}, 40, 40)

	if !w.Alive(h) {
		t.Fatalf("freshly created handle should be alive")
	}
	w.DestroyBody(h)
	if w.Alive(h) {
		t.Fatalf("destroyed handle should not be alive")
	}

	mustPanic(t, "Body after destroy", func() { w.Body(h) })
	mustPanic(t, "Tag after destroy", func() { w.Tag(h) })
	mustPanic(t, "Collisions after destroy", func() { w.Collisions(h) })
	mustPanic(t, "double destroy", func() { w.DestroyBody(h) })
}

func TestSlotReuseBumpsGeneration(t *testing.T) {
	w := NewWorld(testGravity)
	old := w.CreateBullet(cp.Vector{X: 10}, 8, 8)
	w.DestroyBody(old)

	// The freed slot is reused, but the stale handle must keep failing.
	reused := w.CreateEnemy(cp.Vector{X: 20}, 40, 40)
	if reused == old {
		t.Fatalf("reused slot produced an identical handle")
	}
	if got := w.Tag(reused); got != TagEnemy {
		t.Fatalf("expected %v, got %v", TagEnemy, got)
	}
	mustPanic(t, "stale handle after slot reuse", func() { w.Body(old) })
}

func TestTagImmutability(t *testing.T) {
	w := NewWorld(testGravity)
	cases := []struct {
		name string
		h    BodyHandle
		want ObjectTag
	}{
		{"tile", w.CreateTile(cp.Vector{Y: 500}, 64, 64), TagGround},
		{"player", w.CreatePlayer(cp.Vector{X: 100}, 40, 40), TagPlayer},
		{"enemy", w.CreateEnemy(cp.Vector{X: 200}, 40, 40), TagEnemy},
		{"barrel", w.CreateBarrel(cp.Vector{X: 300}, 40, 40), TagBarrel},
		{"bullet", w.CreateBullet(cp.Vector{X: 400}, 8, 8), TagBullet},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			for i := 0; i < 3; i++ {
				if got := w.Tag(c.h); got != c.want {
					t.Fatalf("call %d: expected tag %v, got %v", i, c.want, got)
				}
				w.Step()
			}
		})
	}
}

func TestStaticTileIgnoresGravity(t *testing.T) {
	w := NewWorld(testGravity)
	h := w.CreateTile(cp.Vector{X: 100, Y: 100}, 64, 64)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	pos := w.Body(h).Position()
	if pos.X != 100 || pos.Y != 100 {
		t.Fatalf("static tile moved to %v", pos)
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	w := NewWorld(testGravity)
	h := w.CreateEnemy(cp.Vector{X: 0, Y: 0}, 40, 40)
	for i := 0; i < 10; i++ {
		w.Step()
	}
	if pos := w.Body(h).Position(); pos.Y <= 0 {
		t.Fatalf("dynamic body did not fall under gravity, at %v", pos)
	}
}

func TestVelocityMovesBody(t *testing.T) {
	w := NewWorld(testGravity)
	h := w.CreateBullet(cp.Vector{X: 0, Y: 0}, 8, 8)
	w.Body(h).SetVelocity(600, 0)
	w.Step()
	if pos := w.Body(h).Position(); pos.X <= 0 {
		t.Fatalf("bullet did not advance, at %v", pos)
	}
}

func TestCollisionSymmetry(t *testing.T) {
	w := NewWorld(testGravity)
	player := w.CreatePlayer(cp.Vector{X: 0, Y: 0}, 40, 40)
	enemy := w.CreateEnemy(cp.Vector{X: 10, Y: 0}, 40, 40)
	w.Step()

	pc := findContact(t, w.Collisions(player), enemy)
	if pc.Tags != (TagPair{First: TagPlayer, Second: TagEnemy}) {
		t.Fatalf("player side tags %v", pc.Tags)
	}
	ec := findContact(t, w.Collisions(enemy), player)
	if ec.Tags != (TagPair{First: TagEnemy, Second: TagPlayer}) {
		t.Fatalf("enemy side tags %v", ec.Tags)
	}
	if pc.Manifold.Count == 0 || ec.Manifold.Count == 0 {
		t.Fatalf("expected contact points on both sides")
	}
}

func TestCollisionWithGroundTile(t *testing.T) {
	w := NewWorld(testGravity)
	tile := w.CreateTile(cp.Vector{X: 0, Y: 100}, 200, 40)
	player := w.CreatePlayer(cp.Vector{X: 0, Y: 70}, 40, 40)
	w.Step()

	c := findContact(t, w.Collisions(player), tile)
	if c.Tags != (TagPair{First: TagPlayer, Second: TagGround}) {
		t.Fatalf("unexpected tags %v", c.Tags)
	}
}

func TestCollisionsFreshAfterDestroy(t *testing.T) {
	w := NewWorld(testGravity)
	bullet := w.CreateBullet(cp.Vector{X: 0, Y: 0}, 40, 40)
	enemy := w.CreateEnemy(cp.Vector{X: 5, Y: 0}, 40, 40)
	w.Step()

	findContact(t, w.Collisions(bullet), enemy)
	w.DestroyBody(enemy)
	w.Step()

	for _, c := range w.Collisions(bullet) {
		if c.Other == enemy {
			t.Fatalf("contact with destroyed body still reported")
		}
	}
}

func TestNoContactWhenApart(t *testing.T) {
	w := NewWorld(0)
	a := w.CreateEnemy(cp.Vector{X: 0, Y: 0}, 40, 40)
	w.CreateEnemy(cp.Vector{X: 500, Y: 0}, 40, 40)
	w.Step()
	if contacts := w.Collisions(a); len(contacts) != 0 {
		t.Fatalf("expected no contacts, got %d", len(contacts))
	}
}

func findContact(t *testing.T, contacts []Contact, other BodyHandle) Contact {
	t.Helper()
	for _, c := range contacts {
		if c.Other == other {
			return c
		}
	}
	t.Fatalf("no contact with %v in %d contacts", other, len(contacts))
	return Contact{}
}
