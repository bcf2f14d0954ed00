package reactor

import (
	"fmt"
	"slices"
)

// ReactiveList is a reactive ordered sequence. Besides whole-list change
// notification it reports every element added or removed with its index.
// Element events for a mutation always fire before the whole-list change.
type ReactiveList[T any] struct {
	tr         *Tracker
	items      []T
	dependents dependentList
	listeners  listenerList[func([]T)]
	added      listenerList[func(item T, index int)]
	removed    listenerList[func(item T, index int)]
}

var _ Reactive[[]int] = (*ReactiveList[int])(nil)

func NewReactiveList[T any](tr *Tracker, items ...T) *ReactiveList[T] {
	return &ReactiveList[T]{tr: tr, items: clone(items)}
}

// Get returns a copy of the elements and records a dependency on the list.
func (l *ReactiveList[T]) Get() []T {
	l.tr.TrackDependency(l)
	return clone(l.items)
}

func (l *ReactiveList[T]) Read() []T {
	return l.Get()
}

// Peek returns a copy of the elements without recording a dependency.
func (l *ReactiveList[T]) Peek() []T {
	return clone(l.items)
}

func (l *ReactiveList[T]) Len() int {
	l.tr.TrackDependency(l)
	return len(l.items)
}

// IndexOf returns the index of the first element identical to value, or -1.
func (l *ReactiveList[T]) IndexOf(value T) int {
	l.tr.TrackDependency(l)
	return l.indexOf(value)
}

func (l *ReactiveList[T]) Contains(value T) bool {
	return l.IndexOf(value) >= 0
}

// Add appends value.
func (l *ReactiveList[T]) Add(value T) {
	index := len(l.items)
	l.items = append(l.items, value)
	l.emitAdded(value, index)
	l.changed()
}

// Insert places value at index, which must be within [0, Len()].
func (l *ReactiveList[T]) Insert(index int, value T) error {
	if index < 0 || index > len(l.items) {
		return fmt.Errorf("%w: %d outside [0, %d]", ErrInvalidIndex, index, len(l.items))
	}
	l.items = slices.Insert(l.items, index, value)
	l.emitAdded(value, index)
	l.changed()
	return nil
}

// Remove drops the first element identical to value. Nothing is notified if
// there is no such element.
func (l *ReactiveList[T]) Remove(value T) bool {
	index := l.indexOf(value)
	if index < 0 {
		return false
	}
	l.RemoveAt(index)
	return true
}

// RemoveAt drops and returns the element at index. It reports false, with
// no notification, when index is out of range.
func (l *ReactiveList[T]) RemoveAt(index int) (T, bool) {
	if index < 0 || index >= len(l.items) {
		var zero T
		return zero, false
	}
	item := l.items[index]
	l.items = slices.Delete(l.items, index, index+1)
	l.emitRemoved(item, index)
	l.changed()
	return item, true
}

// Update replaces the element at index in place. Only the whole-list change
// is notified.
func (l *ReactiveList[T]) Update(index int, value T) bool {
	if index < 0 || index >= len(l.items) {
		return false
	}
	l.items[index] = value
	l.changed()
	return true
}

// Clear removes every element, reporting removals from the highest index
// down so each reported index is valid when it fires. Clearing an empty list
// notifies nothing.
func (l *ReactiveList[T]) Clear() {
	if len(l.items) == 0 {
		return
	}
	l.removeAll()
	l.changed()
}

// Replace swaps the contents for items: removals of the old elements from
// the highest index down, then additions in order, then one change.
func (l *ReactiveList[T]) Replace(items []T) {
	l.removeAll()
	for i, item := range items {
		l.items = append(l.items, item)
		l.emitAdded(item, i)
	}
	l.changed()
}

// Set is Replace, so a ReactiveList can stand where a Writable is expected.
func (l *ReactiveList[T]) Set(items []T) {
	l.Replace(items)
}

// Pop removes and returns the last element.
func (l *ReactiveList[T]) Pop() (T, bool) {
	return l.RemoveAt(len(l.items) - 1)
}

// Shift removes and returns the first element.
func (l *ReactiveList[T]) Shift() (T, bool) {
	return l.RemoveAt(0)
}

// OnChange registers fn for whole-list changes. fn receives a copy.
func (l *ReactiveList[T]) OnChange(fn func([]T)) (unsubscribe func()) {
	return l.listeners.add(fn)
}

func (l *ReactiveList[T]) OnItemAdded(fn func(item T, index int)) (unsubscribe func()) {
	return l.added.add(fn)
}

func (l *ReactiveList[T]) OnItemRemoved(fn func(item T, index int)) (unsubscribe func()) {
	return l.removed.add(fn)
}

// Filter derives a Computed of the elements pred accepts. Any mutation reruns
// pred over the whole list.
func (l *ReactiveList[T]) Filter(pred func(T) bool) *Computed[[]T] {
	return NewComputed(l.tr, func() []T {
		return filterSlice(l.Get(), pred)
	})
}

// MapList derives a Computed of fn applied to every element of l.
func MapList[T, U any](l *ReactiveList[T], fn func(T) U) *Computed[[]U] {
	return NewComputed(l.tr, func() []U {
		items := l.Get()
		out := make([]U, len(items))
		for i, item := range items {
			out[i] = fn(item)
		}
		return out
	})
}

func (l *ReactiveList[T]) AddDependent(d Dependent) {
	l.dependents.add(d)
}

func (l *ReactiveList[T]) RemoveDependent(d Dependent) {
	l.dependents.remove(d)
}

func (l *ReactiveList[T]) indexOf(value T) int {
	for i, item := range l.items {
		if identical(item, value) {
			return i
		}
	}
	return -1
}

func (l *ReactiveList[T]) removeAll() {
	for i := len(l.items) - 1; i >= 0; i-- {
		item := l.items[i]
		var zero T
		l.items[i] = zero
		l.items = l.items[:i]
		l.emitRemoved(item, i)
	}
}

func (l *ReactiveList[T]) emitAdded(item T, index int) {
	l.added.each(func(fn func(T, int)) {
		fn(item, index)
	})
}

func (l *ReactiveList[T]) emitRemoved(item T, index int) {
	l.removed.each(func(fn func(T, int)) {
		fn(item, index)
	})
}

func (l *ReactiveList[T]) changed() {
	l.dependents.invalidateAll()
	if l.listeners.len() == 0 {
		return
	}
	// copied per listener, so one listener can't change what the next sees
	snapshot := clone(l.items)
	l.listeners.each(func(fn func([]T)) {
		fn(clone(snapshot))
	})
}

func (l *ReactiveList[T]) peekAny() any {
	return l.Peek()
}

func (l *ReactiveList[T]) onChangeAny(fn func(any)) func() {
	return l.OnChange(func(items []T) { fn(items) })
}

// clone never returns nil, so an empty list reads as an empty slice.
func clone[T any](items []T) []T {
	out := make([]T, len(items))
	copy(out, items)
	return out
}
