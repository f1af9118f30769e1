package physics

import "strconv"

// ObjectTag is the semantic category of a collider. Every collider created
// through a World carries exactly one tag, fixed at creation; gameplay rules,
// not physical properties, distinguish entity kinds.
type ObjectTag int

const (
	TagGround ObjectTag = iota
	TagPlayer
	TagEnemy
	TagBullet
	TagBarrel
)

func (t ObjectTag) String() string {
	switch t {
	case TagGround:
		return "Ground"
	case TagPlayer:
		return "Player"
	case TagEnemy:
		return "Enemy"
	case TagBullet:
		return "Bullet"
	case TagBarrel:
		return "Barrel"
	}
	return "ObjectTag(" + strconv.Itoa(int(t)) + ")"
}
