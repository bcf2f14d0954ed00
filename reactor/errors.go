package reactor

import "errors"

var (
	// ErrInvalidOperation is returned when an operation is not valid for the
	// receiver, like setting a Computed or asking for items of a non-slice.
	ErrInvalidOperation = errors.New("invalid operation")
	// ErrInvalidIndex is returned by ReactiveList.Insert for an index outside [0, len].
	ErrInvalidIndex = errors.New("invalid index")
	// ErrCircularDependency is the panic value when a Computed reads itself
	// while it is being recomputed.
	ErrCircularDependency = errors.New("circular dependency")
	// ErrInvalidTarget is returned by Hydrate when a binding can't be applied.
	ErrInvalidTarget = errors.New("invalid hydrate target")
)
