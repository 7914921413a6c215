package module

// Notifier is a concurrency primitive for informing a worker routine about the
// arrival of new work unit(s). It behaves like a channel in that it can be
// passed by value and still allows concurrent updates of the same internal
// state.
//
// Semantics:
//   - Notify marks the notifier as activated; activating an already-activated
//     notifier is a no-op.
//   - Receiving from Channel consumes the activation, so exactly one waiting
//     routine is woken per activation.
//   - The activation is remembered: a routine that starts listening after
//     Notify was called still observes it.
type Notifier struct {
	notifier chan struct{} // buffered channel with capacity 1
}

// NewNotifier instantiates a Notifier.
func NewNotifier() Notifier {
	return Notifier{make(chan struct{}, 1)}
}

// Notify sends a notification.
func (n Notifier) Notify() {
	select {
	// dropping the notification if the channel already holds one keeps
	// Notify non-blocking when no routine is draining the channel
	case n.notifier <- struct{}{}:
	default:
	}
}

// Channel returns a channel for receiving notifications.
func (n Notifier) Channel() <-chan struct{} {
	return n.notifier
}
