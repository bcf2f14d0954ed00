package reactor

import (
	"fmt"

	mapset "github.com/deckarep/golang-set/v2"
)

// EvalMode says when a Computed recomputes after being invalidated.
type EvalMode uint8

const (
	Lazy  EvalMode = iota // recompute on the next read
	Eager                 // recompute as soon as it is invalidated
)

func (m EvalMode) String() string {
	switch m {
	case Lazy:
		return "lazy"
	case Eager:
		return "eager"
	default:
		return fmt.Sprintf("EvalMode(%d)", uint8(m))
	}
}

// Computed is a derived value. It is a dependent of everything its function
// read on the last run and an observable for whatever reads it.
//
// The cached value is valid only while the Computed is clean. Without
// listeners or forced eagerness it stays dirty after an invalidation until
// the next read, so many upstream writes cost a single recompute.
type Computed[T any] struct {
	tr *Tracker
	fn func() T

	value      T
	dirty      bool
	computing  bool
	forceEager bool

	// upstream, rebuilt on every recompute
	dependencies mapset.Set[Observable]
	// downstream
	dependents dependentList
	listeners  listenerList[func(T)]
}

var _ Reactive[int] = (*Computed[int])(nil)

// NewComputed creates a Computed and runs fn once to materialize the first
// value and the first set of dependency edges.
func NewComputed[T any](tr *Tracker, fn func() T) *Computed[T] {
	c := &Computed[T]{
		tr:           tr,
		fn:           fn,
		dirty:        true,
		dependencies: mapset.NewThreadUnsafeSet[Observable](),
	}
	c.Peek()
	return c
}

func (c *Computed[T]) Peek() T {
	if c.dirty {
		c.recompute()
	}
	return c.value
}

func (c *Computed[T]) Get() T {
	c.tr.TrackDependency(c)
	return c.Peek()
}

func (c *Computed[T]) Read() T {
	return c.Get()
}

// Set always fails, a Computed only changes through its dependencies.
func (c *Computed[T]) Set(T) error {
	return fmt.Errorf("%w: can't set a computed value", ErrInvalidOperation)
}

// Dirty reports whether the cached value is stale.
func (c *Computed[T]) Dirty() bool {
	return c.dirty
}

// Mode is Eager when forced or when anyone listens for changes.
func (c *Computed[T]) Mode() EvalMode {
	if c.forceEager || c.listeners.len() > 0 {
		return Eager
	}
	return Lazy
}

// SetForceEager keeps the Computed up to date even without listeners.
// Turning it on while dirty recomputes right away.
func (c *Computed[T]) SetForceEager(force bool) {
	c.forceEager = force
	if force && c.dirty {
		prev := c.value
		c.recompute()
		c.emitIfChanged(prev)
	}
}

// Invalidate marks the Computed dirty and cascades to its dependents. In
// eager mode it then recomputes and notifies listeners if the value changed.
func (c *Computed[T]) Invalidate() {
	if c.dirty {
		return
	}
	prev := c.value
	c.dirty = true

	c.dependents.invalidateAll()

	if c.Mode() == Lazy {
		return
	}
	// a dependent may already have pulled the new value
	c.Peek()
	c.emitIfChanged(prev)
}

// OnChange registers fn, switching the Computed to eager mode. A stale value
// is refreshed first so the next upstream change reaches fn.
func (c *Computed[T]) OnChange(fn func(T)) (unsubscribe func()) {
	c.Peek()
	return c.listeners.add(fn)
}

// Dispose severs every upstream edge and leaves the Computed dirty. A later
// read recomputes and attaches it again.
func (c *Computed[T]) Dispose() {
	c.detach()
	c.dirty = true
}

func (c *Computed[T]) AddDependent(d Dependent) {
	c.dependents.add(d)
}

func (c *Computed[T]) RemoveDependent(d Dependent) {
	c.dependents.remove(d)
}

func (c *Computed[T]) recompute() {
	if c.computing {
		panic(fmt.Errorf("%w: computed read itself while recomputing", ErrCircularDependency))
	}
	c.computing = true
	defer func() {
		c.computing = false
	}()

	c.detach()
	// assigned before running so edges made by a panicking fn can still be severed
	c.dependencies = mapset.NewThreadUnsafeSet[Observable]()
	c.value = trackInto(c.tr, c, c.dependencies, c.fn)
	c.dirty = false
}

func (c *Computed[T]) detach() {
	for _, o := range c.dependencies.ToSlice() {
		o.RemoveDependent(c)
	}
	c.dependencies.Clear()
}

func (c *Computed[T]) emitIfChanged(prev T) {
	if identical(prev, c.value) {
		return
	}
	value := c.value
	c.listeners.each(func(fn func(T)) {
		fn(value)
	})
}

func (c *Computed[T]) peekAny() any {
	return c.Peek()
}

func (c *Computed[T]) onChangeAny(fn func(any)) func() {
	return c.OnChange(func(v T) { fn(v) })
}
