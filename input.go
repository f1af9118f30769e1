package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Input holds the polled input state for one tick.
type Input struct {
	// MoveX is -1 for left, 0 for none, +1 for right.
	MoveX float64
	// JumpPressed is true on the frame the jump key is pressed.
	JumpPressed bool
	// FirePressed is true on the frame the fire key is pressed.
	FirePressed bool
	// PausePressed is true on the frame the pause key is pressed.
	PausePressed bool
}

func NewInput() *Input {
	return &Input{}
}

// Update polls the keyboard.
func (i *Input) Update() {
	i.MoveX = 0
	if ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		i.MoveX -= 1
	}
	if ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		i.MoveX += 1
	}

	i.JumpPressed = inpututil.IsKeyJustPressed(ebiten.KeySpace)
	i.FirePressed = inpututil.IsKeyJustPressed(ebiten.KeyJ) ||
		inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft)
	i.PausePressed = inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}
