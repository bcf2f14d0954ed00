package reactor

// Observable is anything dependents can attach to and detach from.
type Observable interface {
	AddDependent(d Dependent)
	RemoveDependent(d Dependent)
}

// Dependent is anything that can be invalidated by the observables it reads.
// Implementations are used as set keys, so they must be comparable (pointers).
type Dependent interface {
	Invalidate()
}

// Reactive is a single current value that records reads made during a
// tracked evaluation and reports changes to listeners.
type Reactive[T any] interface {
	Observable

	// Get reads the value and records a dependency on it.
	Get() T
	// Read is an alias of Get.
	Read() T
	// Peek reads the value without recording a dependency.
	Peek() T
	// OnChange registers fn and returns a function that deregisters it.
	OnChange(fn func(T)) (unsubscribe func())
}

// Writable is a Reactive that accepts new values.
type Writable[T any] interface {
	Reactive[T]
	Set(value T)
}

// binding is the untyped view of a reactive used by Hydrate.
type binding interface {
	peekAny() any
	onChangeAny(fn func(any)) (unsubscribe func())
}
