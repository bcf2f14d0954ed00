package reactor_test

import (
	"errors"
	"testing"

	"github.com/delaneyj/fastreactor/reactor"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type listEvent struct {
	Kind  string
	Item  int
	Index int
}

// record subscribes to every channel of l and returns the shared event log.
func record(l *reactor.ReactiveList[int]) *[]listEvent {
	events := &[]listEvent{}
	l.OnItemAdded(func(item, index int) {
		*events = append(*events, listEvent{"add", item, index})
	})
	l.OnItemRemoved(func(item, index int) {
		*events = append(*events, listEvent{"remove", item, index})
	})
	l.OnChange(func(items []int) {
		*events = append(*events, listEvent{Kind: "change", Item: len(items), Index: -1})
	})
	return events
}

func assertEvents(t *testing.T, want []listEvent, got *[]listEvent) {
	t.Helper()
	if diff := cmp.Diff(want, *got); diff != "" {
		t.Errorf("events mismatch (-want +got):\n%s", diff)
	}
	*got = nil
}

func TestReactiveListAdd(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList[int](tr)
	events := record(l)

	l.Add(1)
	l.Add(2)
	assert.Equal(t, []int{1, 2}, l.Peek())
	assertEvents(t, []listEvent{
		{"add", 1, 0}, {"change", 1, -1},
		{"add", 2, 1}, {"change", 2, -1},
	}, events)
}

func TestReactiveListInsert(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 3)
	events := record(l)

	require.NoError(t, l.Insert(1, 2))
	require.NoError(t, l.Insert(3, 4))
	require.NoError(t, l.Insert(0, 0))
	assert.Equal(t, []int{0, 1, 2, 3, 4}, l.Peek())
	assertEvents(t, []listEvent{
		{"add", 2, 1}, {"change", 3, -1},
		{"add", 4, 3}, {"change", 4, -1},
		{"add", 0, 0}, {"change", 5, -1},
	}, events)

	for _, index := range []int{-1, 6} {
		err := l.Insert(index, 9)
		require.Error(t, err)
		assert.True(t, errors.Is(err, reactor.ErrInvalidIndex))
	}
	assert.Equal(t, 5, len(l.Peek()))
	assertEvents(t, nil, events)
}

func TestReactiveListRemove(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3, 2)
	events := record(l)

	assert.True(t, l.Remove(2))
	assert.Equal(t, []int{1, 3, 2}, l.Peek())
	assertEvents(t, []listEvent{{"remove", 2, 1}, {"change", 3, -1}}, events)

	assert.False(t, l.Remove(42))
	assertEvents(t, nil, events)
}

func TestReactiveListRemoveAt(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 10, 20, 30)
	events := record(l)

	item, ok := l.RemoveAt(1)
	assert.True(t, ok)
	assert.Equal(t, 20, item)
	assertEvents(t, []listEvent{{"remove", 20, 1}, {"change", 2, -1}}, events)

	for _, index := range []int{-1, 2} {
		_, ok := l.RemoveAt(index)
		assert.False(t, ok)
	}
	assertEvents(t, nil, events)
}

func TestReactiveListUpdate(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2)
	events := record(l)

	assert.True(t, l.Update(0, 5))
	assert.Equal(t, []int{5, 2}, l.Peek())
	assertEvents(t, []listEvent{{"change", 2, -1}}, events)

	assert.False(t, l.Update(2, 9))
	assert.False(t, l.Update(-1, 9))
	assertEvents(t, nil, events)
}

func TestReactiveListClear(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3)
	events := record(l)

	var lengths []int
	l.OnItemRemoved(func(item, index int) {
		// the reported index is the last valid one when it fires
		lengths = append(lengths, len(l.Peek()))
		assert.Equal(t, index, len(l.Peek()))
	})

	l.Clear()
	assert.Empty(t, l.Peek())
	assertEvents(t, []listEvent{
		{"remove", 3, 2},
		{"remove", 2, 1},
		{"remove", 1, 0},
		{"change", 0, -1},
	}, events)
	assert.Equal(t, []int{2, 1, 0}, lengths)

	l.Clear()
	assertEvents(t, nil, events)
}

func TestReactiveListReplace(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3)
	events := record(l)

	l.Replace([]int{2, 3, 4})
	assert.Equal(t, []int{2, 3, 4}, l.Peek())
	assertEvents(t, []listEvent{
		{"remove", 3, 2},
		{"remove", 2, 1},
		{"remove", 1, 0},
		{"add", 2, 0},
		{"add", 3, 1},
		{"add", 4, 2},
		{"change", 3, -1},
	}, events)

	l.Set([]int{7})
	assertEvents(t, []listEvent{
		{"remove", 4, 2},
		{"remove", 3, 1},
		{"remove", 2, 0},
		{"add", 7, 0},
		{"change", 1, -1},
	}, events)
}

func TestReactiveListReplaceCopiesInput(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList[int](tr)
	items := []int{1, 2}
	l.Replace(items)
	items[0] = 99
	assert.Equal(t, []int{1, 2}, l.Peek())
}

func TestReactiveListPopShift(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3)
	events := record(l)

	item, ok := l.Pop()
	assert.True(t, ok)
	assert.Equal(t, 3, item)
	item, ok = l.Shift()
	assert.True(t, ok)
	assert.Equal(t, 1, item)
	assertEvents(t, []listEvent{
		{"remove", 3, 2}, {"change", 2, -1},
		{"remove", 1, 0}, {"change", 1, -1},
	}, events)

	l.Pop()
	*events = nil
	_, ok = l.Pop()
	assert.False(t, ok)
	_, ok = l.Shift()
	assert.False(t, ok)
	assertEvents(t, nil, events)
}

func TestReactiveListSnapshots(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3)

	peeked := l.Peek()
	peeked[0] = 100
	got := l.Get()
	got[1] = 200
	assert.Equal(t, []int{1, 2, 3}, l.Peek())

	var seen []int
	l.OnChange(func(items []int) {
		items[0] = -1
		seen = items
	})
	l.Add(4)
	assert.Equal(t, []int{-1, 2, 3, 4}, seen)
	assert.Equal(t, []int{1, 2, 3, 4}, l.Peek())

	empty := reactor.NewReactiveList[string](tr)
	assert.NotNil(t, empty.Peek())
	assert.Empty(t, empty.Peek())
}

func TestReactiveListListenersGetOwnCopies(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2)

	target := map[string]any{}
	cleanup, err := reactor.Hydrate(target, map[string]any{"items": l})
	require.NoError(t, err)
	defer cleanup()

	var second []int
	l.OnChange(func(items []int) {
		items[0] = 99
	})
	l.OnChange(func(items []int) {
		second = items
	})

	l.Add(3)
	assert.Equal(t, []int{1, 2, 3}, second)
	assert.Equal(t, []int{1, 2, 3}, target["items"])
	assert.Equal(t, []int{1, 2, 3}, l.Peek())
}

func TestReactiveListQueries(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, "a", "b")
	assert.Equal(t, 2, l.Len())
	assert.True(t, l.Contains("b"))
	assert.False(t, l.Contains("z"))
	assert.Equal(t, 1, l.IndexOf("b"))
	assert.Equal(t, -1, l.IndexOf("z"))
}

func TestReactiveListInvalidatesDependents(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3)

	var order []string
	size := reactor.NewComputed(tr, func() int { return l.Len() })
	size.OnChange(func(int) { order = append(order, "computed") })
	l.OnItemAdded(func(int, int) { order = append(order, "added") })

	l.Add(4)
	assert.Equal(t, 4, size.Peek())
	assert.Equal(t, []string{"added", "computed"}, order)
}

func TestReactiveListDerived(t *testing.T) {
	tr := reactor.NewTracker()
	l := reactor.NewReactiveList(tr, 1, 2, 3, 4)

	filterRuns := 0
	evens := l.Filter(func(v int) bool {
		filterRuns++
		return v%2 == 0
	})
	labels := reactor.MapList(l, func(v int) string {
		return string(rune('a' + v - 1))
	})
	assert.Equal(t, []int{2, 4}, evens.Peek())
	assert.Equal(t, []string{"a", "b", "c", "d"}, labels.Peek())
	assert.Equal(t, 4, filterRuns)

	l.Add(6)
	l.Add(7)
	assert.Equal(t, 4, filterRuns)

	// any mutation reruns the predicate over every element
	assert.Equal(t, []int{2, 4, 6}, evens.Peek())
	assert.Equal(t, 10, filterRuns)
	assert.Equal(t, []string{"a", "b", "c", "d", "f", "g"}, labels.Peek())
}
