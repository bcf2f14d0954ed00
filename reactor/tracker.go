package reactor

import (
	mapset "github.com/deckarep/golang-set/v2"
)

// frame is one tracking session. A nil dependent marks an untracked region.
type frame struct {
	dependent Dependent
	deps      mapset.Set[Observable]
}

// Tracker records which observables are read while a dependent evaluates.
// Every State, Computed and ReactiveList belongs to one Tracker, and all
// tracked evaluations against it share its stack. A Tracker is not safe for
// concurrent use; give each goroutine that builds a graph its own.
type Tracker struct {
	stack []frame
}

func NewTracker() *Tracker {
	return &Tracker{}
}

var defaultTracker = NewTracker()

// DefaultTracker returns the process-wide tracker, for callers that want a
// single ambient graph instead of passing a Tracker around.
func DefaultTracker() *Tracker {
	return defaultTracker
}

// Track runs fn as the current dependent and returns the observables fn read.
// The session is popped even if fn panics; the panic is not recovered.
func Track[T any](tr *Tracker, dependent Dependent, fn func() T) (deps mapset.Set[Observable], result T) {
	deps = mapset.NewThreadUnsafeSet[Observable]()
	result = trackInto(tr, dependent, deps, fn)
	return deps, result
}

func trackInto[T any](tr *Tracker, dependent Dependent, deps mapset.Set[Observable], fn func() T) T {
	tr.push(frame{dependent: dependent, deps: deps})
	defer tr.pop()
	return fn()
}

// Untracked runs fn without attributing its reads to the current dependent.
func Untracked[T any](tr *Tracker, fn func() T) T {
	tr.push(frame{})
	defer tr.pop()
	return fn()
}

func (tr *Tracker) push(f frame) {
	tr.stack = append(tr.stack, f)
}

func (tr *Tracker) pop() {
	last := len(tr.stack) - 1
	tr.stack[last] = frame{}
	tr.stack = tr.stack[:last]
}

// TrackDependency records a read of o against the innermost session and
// registers the edge o -> dependent. Outside a session it does nothing.
func (tr *Tracker) TrackDependency(o Observable) {
	if len(tr.stack) == 0 {
		return
	}
	top := tr.stack[len(tr.stack)-1]
	if top.dependent == nil {
		return
	}
	if top.deps.Add(o) {
		o.AddDependent(top.dependent)
	}
}

// CurrentDependent returns the innermost dependent being evaluated.
func (tr *Tracker) CurrentDependent() (Dependent, bool) {
	if len(tr.stack) == 0 {
		return nil, false
	}
	d := tr.stack[len(tr.stack)-1].dependent
	return d, d != nil
}

// Depth is the number of open sessions, untracked regions included.
func (tr *Tracker) Depth() int {
	return len(tr.stack)
}
