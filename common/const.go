package common

// Screen and world constants shared by the game shell.
const (
	BaseWidth  = 1280
	BaseHeight = 720

	TileSize = 64

	// Gravity is the constant downward acceleration of the physics world in
	// pixels per second squared. Process-wide; never mutated at runtime.
	Gravity = 50.8
)
