package main

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/gophergun/scorch/levels"
	"github.com/gophergun/scorch/physics"
)

// Entity is one spawned game object: the handle owned by this entity plus
// the display size recorded at spawn time.
type Entity struct {
	Handle physics.BodyHandle
	Kind   physics.ObjectTag
	Width  float64
	Height float64
}

type spawnFunc func(w *physics.World, pos cp.Vector, width, height float64) physics.BodyHandle

// spawnRegistry maps level spawn kinds to their create operation. The player
// is handled separately because the level must contain exactly one.
var spawnRegistry = map[string]spawnFunc{
	"enemy":  (*physics.World).CreateEnemy,
	"barrel": (*physics.World).CreateBarrel,
	"bullet": (*physics.World).CreateBullet,
}

// Level is a level spec instantiated into a physics world.
type Level struct {
	Name   string
	Tiles  []*Entity
	Player *Entity

	// Bounds is the AABB around all tiles; bodies that stray far outside it
	// are despawned.
	Bounds cp.BB
}

// BuildLevel creates a body for every tile and spawn in the spec. Entities
// other than the tiles and the player are returned separately since the game
// destroys and culls them at runtime.
func BuildLevel(w *physics.World, spec *levels.Spec) (*Level, []*Entity, error) {
	lvl := &Level{Name: spec.Name}

	for _, t := range spec.Tiles {
		h := w.CreateTile(cp.Vector{X: t.X, Y: t.Y}, t.Width, t.Height)
		lvl.Tiles = append(lvl.Tiles, &Entity{Handle: h, Kind: physics.TagGround, Width: t.Width, Height: t.Height})
		bb := cp.BB{L: t.X - t.Width/2, B: t.Y - t.Height/2, R: t.X + t.Width/2, T: t.Y + t.Height/2}
		if len(lvl.Tiles) == 1 {
			lvl.Bounds = bb
		} else {
			lvl.Bounds = lvl.Bounds.Merge(bb)
		}
	}

	var spawned []*Entity
	for i, s := range spec.Spawns {
		pos := cp.Vector{X: s.X, Y: s.Y}
		if s.Kind == "player" {
			if lvl.Player != nil {
				return nil, nil, fmt.Errorf("level %s: more than one player spawn", spec.Name)
			}
			h := w.CreatePlayer(pos, s.Width, s.Height)
			lvl.Player = &Entity{Handle: h, Kind: physics.TagPlayer, Width: s.Width, Height: s.Height}
			continue
		}
		create, ok := spawnRegistry[s.Kind]
		if !ok {
			return nil, nil, fmt.Errorf("level %s: spawn %d: unknown kind %q", spec.Name, i, s.Kind)
		}
		h := create(w, pos, s.Width, s.Height)
		spawned = append(spawned, &Entity{Handle: h, Kind: w.Tag(h), Width: s.Width, Height: s.Height})
	}

	if lvl.Player == nil {
		return nil, nil, fmt.Errorf("level %s: no player spawn", spec.Name)
	}
	return lvl, spawned, nil
}

// Draw renders the static tiles.
func (l *Level) Draw(screen *ebiten.Image, w *physics.World) {
	for _, t := range l.Tiles {
		drawEntity(screen, w, t)
	}
}

func drawEntity(screen *ebiten.Image, w *physics.World, e *Entity) {
	pos := w.Body(e.Handle).Position()
	ebitenutil.DrawRect(
		screen,
		pos.X-e.Width/2,
		pos.Y-e.Height/2,
		e.Width,
		e.Height,
		entityColor(e.Kind),
	)
}

func entityColor(tag physics.ObjectTag) color.Color {
	switch tag {
	case physics.TagGround:
		return colornames.Slategray
	case physics.TagEnemy:
		return colornames.Indianred
	case physics.TagBullet:
		return colornames.Gold
	case physics.TagBarrel:
		return colornames.Peru
	}
	return colornames.White
}
