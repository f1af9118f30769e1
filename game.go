package main

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/jakecoffman/cp"
	"golang.org/x/image/colornames"

	"github.com/gophergun/scorch/common"
	"github.com/gophergun/scorch/levels"
	"github.com/gophergun/scorch/physics"
	"github.com/gophergun/scorch/rules"
)

const (
	moveSpeed    = 220.0
	jumpSpeed    = 340.0
	bulletSpeed  = 600.0
	bulletWidth  = 10.0
	bulletHeight = 6.0

	// Bodies this far outside the level bounds are despawned.
	despawnMargin = 400.0
)

type Game struct {
	debug  bool
	paused bool
	quit   bool
	frames int

	levelName string

	input    *Input
	world    *physics.World
	level    *Level
	player   *Player
	entities []*Entity

	rules   *rules.Engine
	pauseUI *pauseUI
	watcher *levels.Watcher

	// facing is the player's last horizontal direction, used to aim shots.
	facing float64
}

func NewGame(levelName string, debug bool) *Game {
	if levelName == "" {
		levelName = "arena"
	}

	engine, err := rules.NewEngine()
	if err != nil {
		log.Fatalf("collision rules: %v", err)
	}

	g := &Game{
		debug:     debug,
		levelName: levelName,
		input:     NewInput(),
		rules:     engine,
		facing:    1,
	}
	if err := g.loadLevel(); err != nil {
		log.Fatalf("load level %s: %v", levelName, err)
	}
	g.pauseUI = newPauseUI(g)

	watcher, err := levels.NewWatcher("levels")
	if err != nil {
		log.Printf("level watcher disabled: %v", err)
	} else {
		g.watcher = watcher
	}
	return g
}

// loadLevel builds a fresh physics world from the level spec. Handles from
// the previous world die with it.
func (g *Game) loadLevel() error {
	spec, err := levels.LoadSpec(g.levelName)
	if err != nil {
		return err
	}
	world := physics.NewWorld(common.Gravity)
	lvl, spawned, err := BuildLevel(world, spec)
	if err != nil {
		return err
	}
	g.world = world
	g.level = lvl
	g.entities = spawned
	g.player = NewPlayer(lvl.Player.Handle, lvl.Player.Width, lvl.Player.Height)
	return nil
}

func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	g.frames++

	g.pollLevelReload()

	g.input.Update()
	if g.input.PausePressed {
		g.paused = !g.paused
	}
	if g.paused {
		g.pauseUI.ui.Update()
		return nil
	}

	g.applyMovement()
	g.fireBullet()

	// Step before any collision query; contacts must reflect a completed
	// step, never a partial one.
	g.world.Step()
	stillAirborne := g.dispatchCollisions()
	g.player.UpdateBoom(stillAirborne)

	g.despawnStray()
	g.cullDead()
	return nil
}

func (g *Game) pollLevelReload() {
	if g.watcher == nil {
		return
	}
	reload := false
	for {
		select {
		case name, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("level file changed: %s", name)
			reload = true
		case err := <-g.watcher.Errors:
			log.Printf("level watcher: %v", err)
		default:
			if reload {
				if err := g.loadLevel(); err != nil {
					log.Printf("reload level %s: %v", g.levelName, err)
				}
			}
			return
		}
	}
}

func (g *Game) applyMovement() {
	body := g.world.Body(g.player.Handle)
	v := body.Velocity()
	body.SetVelocity(g.input.MoveX*moveSpeed, v.Y)
	if g.input.MoveX != 0 {
		g.facing = g.input.MoveX
	}
	if g.input.JumpPressed {
		body.SetVelocity(g.input.MoveX*moveSpeed, -jumpSpeed)
	}
}

func (g *Game) fireBullet() {
	if !g.input.FirePressed || g.player.Ammo <= 0 {
		return
	}
	g.player.Ammo--

	pos := g.world.Body(g.player.Handle).Position()
	muzzle := cp.Vector{
		X: pos.X + g.facing*(g.player.Width/2+bulletWidth),
		Y: pos.Y - g.player.BoomY,
	}
	h := g.world.CreateBullet(muzzle, bulletWidth, bulletHeight)
	g.world.Body(h).SetVelocity(g.facing*bulletSpeed, 0)
	g.entities = append(g.entities, &Entity{Handle: h, Kind: physics.TagBullet, Width: bulletWidth, Height: bulletHeight})
}

// dispatchCollisions reacts to this tick's contacts through the rules
// engine. It returns whether the player is overlapping a hazard, which keeps
// launch gravity acting even at rest height.
func (g *Game) dispatchCollisions() bool {
	stillAirborne := false
	for _, c := range g.world.Collisions(g.player.Handle) {
		if c.Tags.Second == physics.TagEnemy {
			stillAirborne = true
		}
		g.applyAction(g.react(c.Tags), g.player.Handle, c.Other)
	}

	for _, e := range g.entities {
		if e.Kind != physics.TagBullet || !g.world.Alive(e.Handle) {
			continue
		}
		for _, c := range g.world.Collisions(e.Handle) {
			if !g.world.Alive(e.Handle) {
				break
			}
			g.applyAction(g.react(c.Tags), e.Handle, c.Other)
		}
	}
	return stillAirborne
}

func (g *Game) react(pair physics.TagPair) rules.Action {
	action, err := g.rules.React(pair)
	if err != nil {
		log.Printf("collision rules: %v", err)
		return rules.ActionNone
	}
	return action
}

func (g *Game) applyAction(action rules.Action, self, other physics.BodyHandle) {
	switch action {
	case rules.ActionNone:
	case rules.ActionDestroySelf:
		g.destroy(self)
	case rules.ActionDestroyOther:
		g.destroy(other)
	case rules.ActionDestroyBoth:
		g.destroy(self)
		g.destroy(other)
	case rules.ActionBoom:
		g.player.GoBoom()
		g.destroy(other)
	default:
		log.Printf("collision rules: unknown action %q", action)
	}
}

// destroy removes a body unless it is the player or already gone this tick.
func (g *Game) destroy(h physics.BodyHandle) {
	if h == g.player.Handle || !g.world.Alive(h) {
		return
	}
	g.world.DestroyBody(h)
}

// despawnStray destroys dynamic bodies that fell or flew far outside the
// level.
func (g *Game) despawnStray() {
	bounds := g.level.Bounds
	bounds.L -= despawnMargin
	bounds.B -= despawnMargin
	bounds.R += despawnMargin
	bounds.T += despawnMargin
	for _, e := range g.entities {
		if !g.world.Alive(e.Handle) {
			continue
		}
		if !bounds.ContainsVect(g.world.Body(e.Handle).Position()) {
			g.world.DestroyBody(e.Handle)
		}
	}
}

func (g *Game) cullDead() {
	live := g.entities[:0]
	for _, e := range g.entities {
		if g.world.Alive(e.Handle) {
			live = append(live, e)
		}
	}
	g.entities = live
}

func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(colornames.Midnightblue)

	g.level.Draw(screen, g.world)
	for _, e := range g.entities {
		drawEntity(screen, g.world, e)
	}
	g.player.Draw(screen, g.world)

	if g.debug {
		g.world.DrawColliders(screen)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf(
			"FPS: %.1f\nEntities: %d\nBoomY: %.2f\nLaunched: %v",
			ebiten.ActualFPS(), len(g.entities), g.player.BoomY, g.player.Launched(),
		), 10, 30)
	}
	ebitenutil.DebugPrint(screen, fmt.Sprintf("Ammo: %d", g.player.Ammo))

	if g.paused {
		g.pauseUI.ui.Draw(screen)
	}
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.BaseWidth, common.BaseHeight
}
