package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"golang.org/x/image/colornames"

	"github.com/gophergun/scorch/physics"
)

const (
	// Launch arc constants. The vertical arc is a purely numerical effect
	// layered on top of the simulated body; it never feeds back into the
	// physics world.
	boomGravity = 0.1
	boomImpulse = 2.5

	playerStartAmmo = 10
)

// Player couples the simulated body (horizontal movement, collisions) with a
// scripted vertical launch arc used for knockback effects.
type Player struct {
	Handle physics.BodyHandle
	Width  float64
	Height float64
	Ammo   int

	// BoomY is the vertical offset above the rest height. Rendering applies
	// it on top of the body position; it is zero while resting.
	BoomY float64

	boomVelocity float64
	launched     bool
}

func NewPlayer(h physics.BodyHandle, width, height float64) *Player {
	return &Player{
		Handle: h,
		Width:  width,
		Height: height,
		Ammo:   playerStartAmmo,
	}
}

// GoBoom applies the launch impulse. Repeated calls stack additively onto
// the current vertical velocity.
func (p *Player) GoBoom() {
	p.boomVelocity -= boomImpulse
	p.launched = true
}

// Launched reports whether a launch impulse is still resolving.
func (p *Player) Launched() bool {
	return p.launched
}

// UpdateBoom advances the launch arc by one tick. stillAirborne keeps
// gravity acting even at rest height, e.g. while the player overlaps a
// hazard.
//
// Two-phase Euler update: displacement from the current velocity first,
// then, while above rest height (or held airborne), gravity followed by a
// second displacement. The offset clamps at the rest height in both phases
// so it never goes negative; the launch ends when phase one lands.
func (p *Player) UpdateBoom(stillAirborne bool) {
	if p.launched {
		p.BoomY -= p.boomVelocity
		if p.BoomY < 0 {
			p.BoomY = 0
			p.launched = false
		}
	}
	if p.BoomY > 0 || stillAirborne {
		p.boomVelocity += boomGravity
		p.BoomY -= p.boomVelocity
		if p.BoomY < 0 {
			p.BoomY = 0
		}
	}
}

// Draw renders the player at its body position, lifted by the launch arc
// offset. Rendering reads motion state but never mutates it.
func (p *Player) Draw(screen *ebiten.Image, world *physics.World) {
	pos := world.Body(p.Handle).Position()
	ebitenutil.DrawRect(
		screen,
		pos.X-p.Width/2,
		pos.Y-p.Height/2-p.BoomY,
		p.Width,
		p.Height,
		colornames.Mediumseagreen,
	)
}
