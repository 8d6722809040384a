// Package lock serializes capacity-checked writes per storage unit.
package lock

import "context"

// Locker grants exclusive access to a key until the returned release func is called.
type Locker interface {
	Lock(ctx context.Context, key string) (release func(), err error)
}
