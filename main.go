package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gophergun/scorch/common"
)

func main() {
	debug := flag.Bool("debug", false, "draw collider outlines and physics stats")
	levelName := flag.String("level", "", "level name in levels/ (basename, .yaml optional)")
	flag.Parse()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(common.BaseWidth, common.BaseHeight)
	ebiten.SetWindowTitle("scorch")

	game := NewGame(*levelName, *debug)

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
