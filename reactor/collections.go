package reactor

import "slices"

// dependentList keeps dependents in registration order with set semantics.
type dependentList struct {
	items []Dependent
	index map[Dependent]struct{}
}

func (l *dependentList) add(d Dependent) {
	if l.index == nil {
		l.index = map[Dependent]struct{}{}
	}
	if _, ok := l.index[d]; ok {
		return
	}
	l.index[d] = struct{}{}
	l.items = append(l.items, d)
}

func (l *dependentList) remove(d Dependent) {
	if _, ok := l.index[d]; !ok {
		return
	}
	delete(l.index, d)
	if i := slices.Index(l.items, d); i >= 0 {
		l.items = slices.Delete(l.items, i, i+1)
	}
}

func (l *dependentList) len() int {
	return len(l.items)
}

// invalidateAll walks a snapshot, so dependents that detach or attach while
// being invalidated don't disturb this pass.
func (l *dependentList) invalidateAll() {
	if len(l.items) == 0 {
		return
	}
	for _, d := range slices.Clone(l.items) {
		d.Invalidate()
	}
}

type listenerEntry[F any] struct {
	id uint64
	fn F
}

// listenerList holds callbacks in registration order. Funcs aren't
// comparable, so each registration gets an id.
type listenerList[F any] struct {
	nextID  uint64
	entries []listenerEntry[F]
}

func (l *listenerList[F]) add(fn F) (unsubscribe func()) {
	l.nextID++
	id := l.nextID
	l.entries = append(l.entries, listenerEntry[F]{id: id, fn: fn})
	return func() {
		l.remove(id)
	}
}

func (l *listenerList[F]) remove(id uint64) {
	for i, e := range l.entries {
		if e.id == id {
			l.entries = slices.Delete(l.entries, i, i+1)
			return
		}
	}
}

func (l *listenerList[F]) len() int {
	return len(l.entries)
}

// each calls visit for every listener registered when the pass started.
func (l *listenerList[F]) each(visit func(fn F)) {
	if len(l.entries) == 0 {
		return
	}
	for _, e := range slices.Clone(l.entries) {
		visit(e.fn)
	}
}
