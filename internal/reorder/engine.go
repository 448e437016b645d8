package reorder

import "errors"

// ErrDragActive is returned when the working sequence is replaced mid-drag.
var ErrDragActive = errors.New("reorder: drag in progress")

// Swap records one adjacent exchange applied to the ordered sequence.
type Swap struct {
	From int
	To   int
}

// ScrollRequest is a fire-and-forget scroll the host should apply on its own
// scheduler. Session ties the eventual consumption back to the drag that asked.
type ScrollRequest struct {
	Session uint64
	Delta   float64
}

// MoveResult describes what one move event did.
type MoveResult struct {
	Swaps []Swap
	// Visible is false when the dragged item had no layout record in the
	// snapshot; no swap or scroll evaluation happened.
	Visible bool
	Center  float64
	Scroll  *ScrollRequest
}

// Snapshot is what observers receive after every mutation.
type Snapshot[K comparable] struct {
	Session SessionSnapshot[K]
	Order   []K
}

// Options configures an Engine. The zero value disables auto-scroll.
type Options[T any] struct {
	// AutoScrollEnabled turns the edge-zone policy on. When off, Move never
	// returns a scroll request.
	AutoScrollEnabled bool
	// AutoScroll defaults to DefaultAutoScroll when zero.
	AutoScroll AutoScroll
	// OnCommit receives a copy of the final order when a drag ends.
	OnCommit func([]T)
}

// Engine owns a working copy of an ordered sequence and reorders it in place
// while a single drag session is active.
//
// All methods must be called from one goroutine (the host's event loop). The
// only asynchronous piece is the scroll request returned by Move; the host
// applies it whenever it likes and reports back through ApplyScroll.
//
// Engine never inspects T beyond the key function.
type Engine[T any, K comparable] struct {
	items []T
	key   func(T) K

	session    Session[K]
	auto       AutoScroll
	autoScroll bool
	commit     func([]T)

	subs    map[int]func(Snapshot[K])
	nextSub int
}

func New[T any, K comparable](items []T, key func(T) K, opts Options[T]) *Engine[T, K] {
	auto := opts.AutoScroll
	if auto == (AutoScroll{}) {
		auto = DefaultAutoScroll()
	}
	return &Engine[T, K]{
		items:      append([]T(nil), items...),
		key:        key,
		auto:       auto,
		autoScroll: opts.AutoScrollEnabled,
		commit:     opts.OnCommit,
		subs:       map[int]func(Snapshot[K]){},
	}
}

// SetItems replaces the working sequence. Hosts call it when the underlying
// data changes; it is refused while a drag is active.
func (e *Engine[T, K]) SetItems(items []T) error {
	if e.session.Active() {
		return ErrDragActive
	}
	e.items = append([]T(nil), items...)
	e.notify()
	return nil
}

// Items returns a copy of the current order.
func (e *Engine[T, K]) Items() []T {
	return append([]T(nil), e.items...)
}

func (e *Engine[T, K]) Len() int { return len(e.items) }

func (e *Engine[T, K]) IsDragging(key K) bool { return e.session.IsDragging(key) }

func (e *Engine[T, K]) Dragging() bool { return e.session.Active() }

func (e *Engine[T, K]) AutoScrollEnabled() bool { return e.autoScroll }

func (e *Engine[T, K]) SetAutoScrollEnabled(on bool) { e.autoScroll = on }

func (e *Engine[T, K]) Snapshot() Snapshot[K] {
	order := make([]K, len(e.items))
	for i, it := range e.items {
		order[i] = e.key(it)
	}
	return Snapshot[K]{Session: e.session.Snapshot(), Order: order}
}

// Subscribe registers an observer and returns a function that removes it.
func (e *Engine[T, K]) Subscribe(fn func(Snapshot[K])) func() {
	id := e.nextSub
	e.nextSub++
	e.subs[id] = fn
	return func() { delete(e.subs, id) }
}

// Start begins dragging the item at index. It is a no-op (returning false)
// while another drag is active.
func (e *Engine[T, K]) Start(index int, key K) bool {
	if !e.session.StartDragIfIdle(index, key) {
		return false
	}
	e.notify()
	return true
}

// Move applies a raw vertical delta against a fresh viewport snapshot: it swaps
// the dragged item past any neighbor whose center it has crossed, then asks for
// an auto-scroll when the dragged center sits in an edge zone.
func (e *Engine[T, K]) Move(delta float64, vp Viewport) MoveResult {
	if !e.session.Active() {
		return MoveResult{}
	}
	e.session.offset += delta
	defer e.notify()

	cur, ok := vp.Find(e.session.index)
	if !ok {
		return MoveResult{}
	}
	center := cur.Offset + e.session.offset + cur.Size/2
	res := MoveResult{Visible: true, Center: center}

	// The dragged center stays fixed on screen across swaps, so it is computed
	// once and compared against successive neighbors from the same snapshot.
	for range e.items {
		ci := e.session.index
		if below, ok := vp.Find(ci + 1); ok && ci+1 < len(e.items) && center > below.Center() {
			e.swap(ci, ci+1)
			e.session.index = ci + 1
			e.session.offset -= below.Size
			res.Swaps = append(res.Swaps, Swap{From: ci, To: ci + 1})
			continue
		}
		if above, ok := vp.Find(ci - 1); ok && ci > 0 && center < above.Center() {
			e.swap(ci, ci-1)
			e.session.index = ci - 1
			e.session.offset += above.Size
			res.Swaps = append(res.Swaps, Swap{From: ci, To: ci - 1})
			continue
		}
		break
	}

	if e.autoScroll {
		if v := e.auto.Velocity(center, vp.Start, vp.End); v != 0 {
			res.Scroll = &ScrollRequest{Session: e.session.id, Delta: v}
		}
	}
	return res
}

// ApplyScroll feeds back the amount a scroll request actually consumed. Late
// results for a drag that has since ended are dropped.
func (e *Engine[T, K]) ApplyScroll(req ScrollRequest, consumed float64) bool {
	if !e.session.Active() || req.Session != e.session.id {
		return false
	}
	if consumed != 0 {
		e.session.offset += consumed
		e.notify()
	}
	return true
}

// Scroll runs a request synchronously against ctrl.
func (e *Engine[T, K]) Scroll(ctrl ScrollController, req ScrollRequest) bool {
	return e.ApplyScroll(req, ctrl.ScrollBy(req.Delta))
}

// End finishes the drag and hands the final order to the commit callback.
// Ending while idle does not commit.
func (e *Engine[T, K]) End() bool {
	wasActive := e.session.Active()
	e.session.EndDrag()
	e.notify()
	if !wasActive {
		return false
	}
	if e.commit != nil {
		e.commit(e.Items())
	}
	return true
}

// Cancel finishes the drag without committing. Swaps already applied stay.
func (e *Engine[T, K]) Cancel() bool {
	wasActive := e.session.Active()
	e.session.EndDrag()
	e.notify()
	return wasActive
}

func (e *Engine[T, K]) swap(i, j int) {
	if i == j || i < 0 || j < 0 || i >= len(e.items) || j >= len(e.items) {
		return
	}
	e.items[i], e.items[j] = e.items[j], e.items[i]
}

func (e *Engine[T, K]) notify() {
	if len(e.subs) == 0 {
		return
	}
	snap := e.Snapshot()
	for _, fn := range e.subs {
		fn(snap)
	}
}
