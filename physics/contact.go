package physics

import "github.com/jakecoffman/cp"

// TagPair identifies the two participants of a contact. First is the tag of
// the queried body, Second the tag of the other body.
type TagPair struct {
	First  ObjectTag
	Second ObjectTag
}

// Contact is one active overlap involving the queried body. The manifold is
// a snapshot of the last completed step and stays meaningful until the next
// Step call.
type Contact struct {
	Tags     TagPair
	Other    BodyHandle
	Manifold cp.ContactPointSet
}
