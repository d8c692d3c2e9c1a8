package member

import (
	"hostlink/internal/host"
)

// BoundIndexer exposes an indexed property as a callable object: invoking it
// with the index arguments calls the getter with the receiver prepended.
type BoundIndexer struct {
	getter *host.Signature
	recv   host.Value
}

// Invoke calls the index getter with the bound receiver.
func (b *BoundIndexer) Invoke(args ...host.Value) (host.Value, error) {
	return b.getter.Invoke(b.recv, args...)
}

// Receiver returns the instance the indexer is bound to.
func (b *BoundIndexer) Receiver() host.Value { return b.recv }

// BoundEvent pairs an event descriptor with its receiver and exposes the
// subscribe/unsubscribe surface.
type BoundEvent struct {
	desc host.Descriptor
	recv host.Value
}

// Name returns the event name.
func (e *BoundEvent) Name() string { return e.desc.Name }

// Subscribe registers a handler on the receiver's event.
func (e *BoundEvent) Subscribe(handler host.Callable) error {
	return e.desc.EventSubscribe(e.recv, handler)
}

// Unsubscribe removes a previously registered handler.
func (e *BoundEvent) Unsubscribe(handler host.Callable) error {
	return e.desc.EventUnsubscribe(e.recv, handler)
}
