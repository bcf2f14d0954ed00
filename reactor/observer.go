package reactor

// Observer keeps a callback in sync with a reactive until it is disposed.
type Observer struct {
	cleanup  func()
	disposed bool
}

// Watch calls callback with the current value of r, then again on every
// change. Watching a Computed gives it a listener, so it turns eager.
func Watch[T any](r Reactive[T], callback func(T)) *Observer {
	callback(r.Peek())
	return &Observer{cleanup: r.OnChange(callback)}
}

// Dispose stops future callbacks. A notification pass already in progress
// still reaches the callback. Calling Dispose again does nothing.
func (o *Observer) Dispose() {
	if o.disposed {
		return
	}
	o.disposed = true
	o.cleanup()
	o.cleanup = nil
}

func (o *Observer) Disposed() bool {
	return o.disposed
}
