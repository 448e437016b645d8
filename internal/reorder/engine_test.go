package reorder

import (
	"errors"
	"math"
	"strings"
	"testing"
)

type row struct {
	key  string
	size float64
}

func rowKey(r row) string { return r.key }

func rows(keys string, size float64) []row {
	out := make([]row, 0, len(keys))
	for _, k := range keys {
		out = append(out, row{key: string(k), size: size})
	}
	return out
}

// layoutOf lays items out top to bottom and returns the rows intersecting
// [scroll, scroll+height), with offsets relative to the viewport top.
func layoutOf(items []row, scroll, height float64) Viewport {
	vp := Viewport{Start: 0, End: height}
	y := 0.0
	for i, it := range items {
		top := y - scroll
		if top+it.size > 0 && top < height {
			vp.Items = append(vp.Items, VisibleItem{Index: i, Offset: top, Size: it.size})
		}
		y += it.size
	}
	return vp
}

func order(items []row) string {
	var b strings.Builder
	for _, it := range items {
		b.WriteString(it.key)
	}
	return b.String()
}

func visualCenter(t *testing.T, e *Engine[row, string], height float64) float64 {
	t.Helper()
	snap := e.Snapshot().Session
	vp := layoutOf(e.Items(), 0, height)
	cur, ok := vp.Find(snap.Index)
	if !ok {
		t.Fatalf("dragged index %d not visible", snap.Index)
	}
	return cur.Offset + snap.Offset + cur.Size/2
}

func TestEngine_SwapsWithNeighborBelowAfterCrossingItsCenter(t *testing.T) {
	items := []row{{"a", 100}, {"b", 80}, {"c", 120}, {"d", 60}, {"e", 100}}
	e := New(items, rowKey, Options[row]{})

	if !e.Start(2, "c") {
		t.Fatalf("expected start")
	}
	before := visualCenter(t, e, 1000) + 91

	res := e.Move(91, layoutOf(e.Items(), 0, 1000))
	if len(res.Swaps) != 1 || res.Swaps[0] != (Swap{From: 2, To: 3}) {
		t.Fatalf("expected one swap 2->3; got %+v", res.Swaps)
	}
	if got := order(e.Items()); got != "abdce" {
		t.Fatalf("expected abdce; got %s", got)
	}
	snap := e.Snapshot().Session
	if snap.Index != 3 {
		t.Fatalf("expected dragged index 3; got %d", snap.Index)
	}
	if snap.Offset != 91-60 {
		t.Fatalf("expected offset reduced by neighbor size; got %v", snap.Offset)
	}
	if after := visualCenter(t, e, 1000); math.Abs(after-before) > 1e-9 {
		t.Fatalf("visual center jumped across swap: %v -> %v", before, after)
	}
}

func TestEngine_SwapsUpwardAndAddsNeighborSize(t *testing.T) {
	e := New(rows("abcd", 100), rowKey, Options[row]{})
	e.Start(2, "c")

	res := e.Move(-101, layoutOf(e.Items(), 0, 1000))
	if len(res.Swaps) != 1 || res.Swaps[0] != (Swap{From: 2, To: 1}) {
		t.Fatalf("expected one swap 2->1; got %+v", res.Swaps)
	}
	if got := order(e.Items()); got != "acbd" {
		t.Fatalf("expected acbd; got %s", got)
	}
	if snap := e.Snapshot().Session; snap.Index != 1 || snap.Offset != -1 {
		t.Fatalf("unexpected session after upward swap: %+v", snap)
	}
}

func TestEngine_LargeDeltaCrossesTwoNeighborsInOneMove(t *testing.T) {
	e := New(rows("abcde", 100), rowKey, Options[row]{})
	e.Start(1, "b")
	before := visualCenter(t, e, 1000) + 230

	res := e.Move(230, layoutOf(e.Items(), 0, 1000))
	if len(res.Swaps) != 2 {
		t.Fatalf("expected two swaps; got %+v", res.Swaps)
	}
	if res.Swaps[0] != (Swap{From: 1, To: 2}) || res.Swaps[1] != (Swap{From: 2, To: 3}) {
		t.Fatalf("unexpected swap sequence: %+v", res.Swaps)
	}
	if got := order(e.Items()); got != "acdbe" {
		t.Fatalf("expected acdbe; got %s", got)
	}
	if snap := e.Snapshot().Session; snap.Index != 3 || snap.Offset != 30 {
		t.Fatalf("unexpected session: %+v", snap)
	}
	if after := visualCenter(t, e, 1000); math.Abs(after-before) > 1e-9 {
		t.Fatalf("visual center jumped: %v -> %v", before, after)
	}
}

func TestEngine_ExactTieDoesNotSwap(t *testing.T) {
	e := New(rows("abc", 100), rowKey, Options[row]{})
	e.Start(1, "b")

	// Center 150 + 100 == c's center 250.
	res := e.Move(100, layoutOf(e.Items(), 0, 1000))
	if len(res.Swaps) != 0 {
		t.Fatalf("expected no swap on exact tie; got %+v", res.Swaps)
	}
	if res.Center != 250 {
		t.Fatalf("expected center 250; got %v", res.Center)
	}

	res = e.Move(0.5, layoutOf(e.Items(), 0, 1000))
	if len(res.Swaps) != 1 {
		t.Fatalf("expected swap once past the tie; got %+v", res.Swaps)
	}

	// Upward tie.
	e2 := New(rows("abc", 100), rowKey, Options[row]{})
	e2.Start(1, "b")
	if res := e2.Move(-100, layoutOf(e2.Items(), 0, 1000)); len(res.Swaps) != 0 {
		t.Fatalf("expected no upward swap on exact tie; got %+v", res.Swaps)
	}
}

func TestEngine_DraggedItemNotVisible_SkipsEvaluationButKeepsOffset(t *testing.T) {
	items := rows("abcdef", 100)
	e := New(items, rowKey, Options[row]{AutoScrollEnabled: true})
	e.Start(5, "f")

	// Only a..c are on screen.
	res := e.Move(-400, layoutOf(e.Items(), 0, 300))
	if res.Visible || len(res.Swaps) != 0 || res.Scroll != nil {
		t.Fatalf("expected no evaluation while off screen; got %+v", res)
	}
	if snap := e.Snapshot().Session; !snap.Active || snap.Offset != -400 {
		t.Fatalf("expected active drag with accumulated offset; got %+v", snap)
	}
}

func TestEngine_OffscreenNeighborIsNotASwapTarget(t *testing.T) {
	e := New(rows("abcdef", 100), rowKey, Options[row]{})
	e.Start(2, "c")

	// Viewport shows a..c only; d is not laid out.
	res := e.Move(500, layoutOf(e.Items(), 0, 300))
	if len(res.Swaps) != 0 {
		t.Fatalf("expected no swap without a visible neighbor; got %+v", res.Swaps)
	}
	if got := order(e.Items()); got != "abcdef" {
		t.Fatalf("order changed: %s", got)
	}
}

func TestEngine_MoveWhileIdleIsNoop(t *testing.T) {
	e := New(rows("ab", 100), rowKey, Options[row]{})
	if res := e.Move(500, layoutOf(e.Items(), 0, 1000)); res.Visible || len(res.Swaps) != 0 {
		t.Fatalf("expected idle move to do nothing; got %+v", res)
	}
	if got := order(e.Items()); got != "ab" {
		t.Fatalf("order changed: %s", got)
	}
}

func TestEngine_SingleActiveDrag(t *testing.T) {
	e := New(rows("abcd", 100), rowKey, Options[row]{})
	if !e.Start(0, "a") {
		t.Fatalf("expected first start")
	}
	if e.Start(1, "b") {
		t.Fatalf("expected second start to be ignored")
	}
	if !e.IsDragging("a") || e.IsDragging("b") {
		t.Fatalf("expected a dragging, b not")
	}
}

func TestEngine_EndToEnd_CommitsFinalOrderOnce(t *testing.T) {
	var commits [][]row
	e := New(rows("ABCD", 100), rowKey, Options[row]{
		OnCommit: func(final []row) { commits = append(commits, final) },
	})

	e.Start(2, "C")
	// C center 250 -> 351 crosses D (350).
	e.Move(101, layoutOf(e.Items(), 0, 1000))
	if got := order(e.Items()); got != "ABDC" {
		t.Fatalf("expected ABDC; got %s", got)
	}
	if idx := e.Snapshot().Session.Index; idx != 3 {
		t.Fatalf("expected index 3; got %d", idx)
	}

	// C now laid out at 300 with offset 1 => center 351; move to 149 crosses D (250) and B (150).
	e.Move(-202, layoutOf(e.Items(), 0, 1000))
	if got := order(e.Items()); got != "ACBD" {
		t.Fatalf("expected ACBD; got %s", got)
	}
	want := order(e.Items())

	if len(commits) != 0 {
		t.Fatalf("expected no commit before end")
	}
	if !e.End() {
		t.Fatalf("expected End to report an active drag")
	}
	if len(commits) != 1 {
		t.Fatalf("expected exactly one commit; got %d", len(commits))
	}
	if got := order(commits[0]); got != want {
		t.Fatalf("committed %s; want %s", got, want)
	}

	// A second end is idempotent and does not commit again.
	if e.End() {
		t.Fatalf("expected idle End to report false")
	}
	if len(commits) != 1 {
		t.Fatalf("expected idle end not to commit; got %d commits", len(commits))
	}
}

func TestEngine_CancelKeepsSwapsWithoutCommit(t *testing.T) {
	committed := false
	e := New(rows("abcde", 100), rowKey, Options[row]{
		OnCommit: func([]row) { committed = true },
	})
	e.Start(0, "a")
	e.Move(260, layoutOf(e.Items(), 0, 1000))
	if got := order(e.Items()); got != "bcade" {
		t.Fatalf("expected two swaps before cancel; got %s", got)
	}

	if !e.Cancel() {
		t.Fatalf("expected Cancel to report an active drag")
	}
	if committed {
		t.Fatalf("expected no commit on cancel")
	}
	if got := order(e.Items()); got != "bcade" {
		t.Fatalf("expected swaps kept after cancel; got %s", got)
	}
	if e.Dragging() {
		t.Fatalf("expected idle after cancel")
	}
}

func TestEngine_AutoScrollRequestNearBottomEdge(t *testing.T) {
	e := New(rows("abcdefgh", 100), rowKey, Options[row]{
		AutoScrollEnabled: true,
		AutoScroll:        AutoScroll{EdgeWidth: 100, MaxVelocity: 60},
	})
	e.Start(3, "d")

	// Viewport 0..400; d's center 350 sits half-way into the bottom zone.
	res := e.Move(0, layoutOf(e.Items(), 0, 400))
	if res.Scroll == nil {
		t.Fatalf("expected a scroll request")
	}
	if res.Scroll.Delta != 15 {
		t.Fatalf("expected delta 15; got %v", res.Scroll.Delta)
	}
	if res.Scroll.Session != e.Snapshot().Session.ID {
		t.Fatalf("scroll request not tied to the active session")
	}

	// Safe zone: no request.
	e.Cancel()
	e.Start(1, "b")
	if res := e.Move(0, layoutOf(e.Items(), 0, 400)); res.Scroll != nil {
		t.Fatalf("expected no request in safe zone; got %+v", res.Scroll)
	}
}

func TestEngine_AutoScrollDisabledNeverRequests(t *testing.T) {
	e := New(rows("abcd", 100), rowKey, Options[row]{})
	e.Start(3, "d")
	if res := e.Move(0, layoutOf(e.Items(), 0, 400)); res.Scroll != nil {
		t.Fatalf("expected no scroll when disabled; got %+v", res.Scroll)
	}
	e.SetAutoScrollEnabled(true)
	if res := e.Move(0, layoutOf(e.Items(), 0, 400)); res.Scroll == nil {
		t.Fatalf("expected scroll once enabled")
	}
}

func TestEngine_ScrollConsumptionCompensatesOffset(t *testing.T) {
	e := New(rows("abcdefgh", 100), rowKey, Options[row]{AutoScrollEnabled: true})
	e.Start(3, "d")
	res := e.Move(0, layoutOf(e.Items(), 0, 400))
	if res.Scroll == nil {
		t.Fatalf("expected a scroll request")
	}

	// Controller at the end of content only consumes part of the request.
	ctrl := ScrollFunc(func(delta float64) float64 { return delta / 2 })
	if !e.Scroll(ctrl, *res.Scroll) {
		t.Fatalf("expected scroll applied to active session")
	}
	if got, want := e.Snapshot().Session.Offset, res.Scroll.Delta/2; got != want {
		t.Fatalf("expected offset %v; got %v", want, got)
	}
}

func TestEngine_ScrollResolvedAfterLaterMovesStillCounts(t *testing.T) {
	e := New(rows("abcdefgh", 100), rowKey, Options[row]{AutoScrollEnabled: true})
	e.Start(3, "d")
	res := e.Move(0, layoutOf(e.Items(), 0, 400))
	if res.Scroll == nil {
		t.Fatalf("expected a scroll request")
	}
	req := *res.Scroll

	// The pointer keeps moving before the host gets round to scrolling.
	if res := e.Move(10, layoutOf(e.Items(), 0, 400)); len(res.Swaps) != 0 {
		t.Fatalf("unexpected swaps before scroll: %+v", res.Swaps)
	}

	if !e.ApplyScroll(req, 100) {
		t.Fatalf("expected request from the same drag to be accepted")
	}
	if got := e.Snapshot().Session.Offset; got != 110 {
		t.Fatalf("expected offset 110; got %v", got)
	}

	// Against the scrolled layout the dragged center (360) is past e's (350).
	res = e.Move(0, layoutOf(e.Items(), 100, 400))
	if len(res.Swaps) != 1 || res.Swaps[0] != (Swap{From: 3, To: 4}) {
		t.Fatalf("expected one swap 3->4; got %+v", res.Swaps)
	}
	if got := order(e.Items()); got != "abcedfgh" {
		t.Fatalf("unexpected order %s", got)
	}
	snap := e.Snapshot().Session
	if snap.Index != 4 || snap.Offset != 10 {
		t.Fatalf("expected index 4 offset 10; got %d %v", snap.Index, snap.Offset)
	}
}

func TestEngine_LateScrollAfterEndIsDropped(t *testing.T) {
	e := New(rows("abcdefgh", 100), rowKey, Options[row]{AutoScrollEnabled: true})
	e.Start(3, "d")
	res := e.Move(0, layoutOf(e.Items(), 0, 400))
	if res.Scroll == nil {
		t.Fatalf("expected a scroll request")
	}
	req := *res.Scroll
	e.End()

	// A new drag starts before the old request resolves.
	e.Start(0, "a")
	if e.ApplyScroll(req, 25) {
		t.Fatalf("expected stale request to be rejected")
	}
	if got := e.Snapshot().Session.Offset; got != 0 {
		t.Fatalf("stale scroll leaked into new session offset: %v", got)
	}
}

func TestEngine_SetItemsRefusedDuringDrag(t *testing.T) {
	e := New(rows("ab", 100), rowKey, Options[row]{})
	e.Start(0, "a")
	if err := e.SetItems(rows("xyz", 100)); !errors.Is(err, ErrDragActive) {
		t.Fatalf("expected ErrDragActive; got %v", err)
	}
	e.End()
	if err := e.SetItems(rows("xyz", 100)); err != nil {
		t.Fatalf("expected reset between drags; got %v", err)
	}
	if got := order(e.Items()); got != "xyz" {
		t.Fatalf("expected xyz; got %s", got)
	}
}

func TestEngine_ItemsReturnsCopy(t *testing.T) {
	src := rows("ab", 100)
	e := New(src, rowKey, Options[row]{})
	src[0].key = "z"
	got := e.Items()
	got[1].key = "y"
	if order(e.Items()) != "ab" {
		t.Fatalf("engine order aliased caller slices: %s", order(e.Items()))
	}
}

func TestEngine_SubscribersSeeImmutableSnapshots(t *testing.T) {
	e := New(rows("abc", 100), rowKey, Options[row]{})
	var seen []Snapshot[string]
	unsub := e.Subscribe(func(s Snapshot[string]) { seen = append(seen, s) })

	e.Start(0, "a")
	e.Move(101, layoutOf(e.Items(), 0, 1000))
	if len(seen) != 2 {
		t.Fatalf("expected 2 notifications; got %d", len(seen))
	}
	if !seen[0].Session.Active || strings.Join(seen[0].Order, "") != "abc" {
		t.Fatalf("unexpected start snapshot: %+v", seen[0])
	}
	if strings.Join(seen[1].Order, "") != "bac" || seen[1].Session.Index != 1 {
		t.Fatalf("unexpected move snapshot: %+v", seen[1])
	}

	seen[1].Order[0] = "z"
	if got := strings.Join(e.Snapshot().Order, ""); got != "bac" {
		t.Fatalf("snapshot mutation leaked into engine: %s", got)
	}

	unsub()
	e.End()
	if len(seen) != 2 {
		t.Fatalf("expected no notifications after unsubscribe; got %d", len(seen))
	}
}
