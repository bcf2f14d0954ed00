package reactor

// State is a mutable reactive cell, the leaf of the dependency graph.
type State[T any] struct {
	tr         *Tracker
	value      T
	dependents dependentList
	listeners  listenerList[func(T)]
}

var _ Writable[int] = (*State[int])(nil)

func NewState[T any](tr *Tracker, value T) *State[T] {
	return &State[T]{tr: tr, value: value}
}

func (s *State[T]) Get() T {
	s.tr.TrackDependency(s)
	return s.value
}

func (s *State[T]) Read() T {
	return s.Get()
}

func (s *State[T]) Peek() T {
	return s.value
}

// Set stores value, invalidates every dependent and then calls the change
// listeners in registration order. Setting an identical value does nothing.
// A panicking listener stops the pass; later listeners are not called.
func (s *State[T]) Set(value T) {
	if identical(s.value, value) {
		return
	}
	s.value = value

	s.dependents.invalidateAll()
	s.listeners.each(func(fn func(T)) {
		fn(value)
	})
}

// Update sets the result of fn applied to the current value.
func (s *State[T]) Update(fn func(prev T) T) {
	s.Set(fn(s.value))
}

func (s *State[T]) OnChange(fn func(T)) (unsubscribe func()) {
	return s.listeners.add(fn)
}

func (s *State[T]) AddDependent(d Dependent) {
	s.dependents.add(d)
}

func (s *State[T]) RemoveDependent(d Dependent) {
	s.dependents.remove(d)
}

func (s *State[T]) peekAny() any {
	return s.Peek()
}

func (s *State[T]) onChangeAny(fn func(any)) func() {
	return s.OnChange(func(v T) { fn(v) })
}
