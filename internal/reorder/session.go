package reorder

// SessionSnapshot is an immutable view of a drag session.
type SessionSnapshot[K comparable] struct {
	Active bool
	Key    K
	Index  int
	Offset float64
	ID     uint64
}

// Session tracks which item (if any) is being dragged.
//
// Key and index are set together on start and cleared together on end. The
// offset is the cumulative vertical displacement of the dragged item from its
// laid-out position, including swap and scroll compensation. ID increments once
// per finished (ended or cancelled) drag so hosts can rebind gesture state
// without relying on item identity.
//
// Session never touches the ordered sequence.
type Session[K comparable] struct {
	active bool
	key    K
	index  int
	offset float64
	id     uint64
}

// StartDragIfIdle begins a drag on (index, key). A start while another drag is
// active is ignored; the return value reports whether this call started one.
func (s *Session[K]) StartDragIfIdle(index int, key K) bool {
	if s.active {
		return false
	}
	s.active = true
	s.key = key
	s.index = index
	s.offset = 0
	return true
}

func (s *Session[K]) IsDragging(key K) bool {
	return s.active && s.key == key
}

func (s *Session[K]) Active() bool { return s.active }

// EndDrag returns to idle. Safe to call while idle; the session id still advances.
func (s *Session[K]) EndDrag() {
	var zero K
	s.active = false
	s.key = zero
	s.index = 0
	s.offset = 0
	s.id++
}

func (s *Session[K]) Snapshot() SessionSnapshot[K] {
	return SessionSnapshot[K]{
		Active: s.active,
		Key:    s.key,
		Index:  s.index,
		Offset: s.offset,
		ID:     s.id,
	}
}
