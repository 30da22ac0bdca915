// Package respool provides a thread-safe, re-entrant resource pool.
//
// A pool lazily creates, lends out and reclaims expensive resources,
// e.g. network connections, among concurrent goroutines.
// Each resource is used exclusively while it's checked out,
// and a goroutine that already checked out a resource can check out more
// from the same pool without deadlocking itself.
//
// Checkout
//
// Take executes a function against exactly one resource.
// It picks the first idle pool member accepted by the optional filter,
// falls back to the optional default resource,
// and otherwise calls the factory to create a new resource.
// The factory and the function both run outside the pool's lock,
// so a slow factory or a slow function never blocks Take calls on other
// members.
//
// If the function reports the resource as unusable by returning a
// BadResourceError,
// the member is torn down and removed from the pool before the error is
// returned.
// Any other error releases the member back to the pool unchanged.
//
// Scans
//
// Each, EachElement, DeleteIf and Clear visit every element that was a pool
// member when the scan started, exactly once.
// Elements checked out by other goroutines at that moment are waited for and
// visited once they are released.
// Only one scan runs at a time,
// but Take calls are not blocked by an in-progress scan.
//
// Blocking
//
// The pool has no timeout or cancellation primitive.
// A Take function that never returns will block any concurrent scan
// indefinitely.
package respool
