package physics

import (
	"strconv"

	"github.com/jakecoffman/cp"
)

// BodyHandle is an opaque, stable identifier for a simulated body. It is
// valid from creation until DestroyBody and is safe to hold as a non-owning
// reference; resolving it after destruction is a programming error and
// panics.
type BodyHandle uint64

type slotID uint32
type generation uint32

const slotIDBits = 32

func makeHandle(id slotID, gen generation) BodyHandle {
	return BodyHandle(uint64(gen)<<slotIDBits | uint64(id))
}

func (h BodyHandle) slot() slotID {
	return slotID(uint32(h))
}

func (h BodyHandle) generation() generation {
	return generation(uint32(uint64(h) >> slotIDBits))
}

func (h BodyHandle) String() string {
	return strconv.FormatUint(uint64(h), 10)
}

// bodyRecord ties a body to its collider and tag. The shape is tracked here
// on purpose: the space issues separate identities for bodies and shapes,
// and destroy must remove both, so the collider's identity is never assumed
// to be derivable from the body handle.
type bodyRecord struct {
	body  *cp.Body
	shape *cp.Shape
	tag   ObjectTag
}

// bodyStore is a generation-checked slot map. Freed slots are reused, but
// each reuse bumps the slot's generation, so a stale handle can never alias
// the slot's new occupant.
type bodyStore struct {
	records []bodyRecord
	gen     []generation
	free    []slotID
}

func (s *bodyStore) insert(rec bodyRecord) BodyHandle {
	var id slotID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
		s.records[id-1] = rec
	} else {
		s.records = append(s.records, rec)
		s.gen = append(s.gen, 0)
		id = slotID(len(s.records))
	}
	return makeHandle(id, s.gen[id-1])
}

// resolve returns the live record for h or panics. A handle that fails to
// resolve is always a caller bug (use after destroy), never a recoverable
// condition.
func (s *bodyStore) resolve(h BodyHandle) *bodyRecord {
	id := h.slot()
	if id == 0 || int(id) > len(s.gen) || s.gen[id-1] != h.generation() {
		panic("physics: body not found: " + h.String())
	}
	return &s.records[id-1]
}

func (s *bodyStore) alive(h BodyHandle) bool {
	id := h.slot()
	return id != 0 && int(id) <= len(s.gen) && s.gen[id-1] == h.generation()
}

func (s *bodyStore) remove(h BodyHandle) bodyRecord {
	rec := s.resolve(h)
	out := *rec
	*rec = bodyRecord{}
	s.gen[h.slot()-1]++
	s.free = append(s.free, h.slot())
	return out
}
