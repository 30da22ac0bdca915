package respool

import (
	"sync"

	"github.com/fishy/errbatch"
)

// Factory is the function used by the pool to create a new resource when
// Take finds no idle member to reuse.
//
// It's called outside the pool's lock, so it's allowed to be slow.
// It must be safe to call concurrently with other pool operations.
type Factory func() (interface{}, error)

// Teardown is the function used by the pool to release a resource's external
// state before the resource is removed from the pool.
//
// It must be safe to call concurrently with other pool operations.
type Teardown func(resource interface{}) error

// Op is the function executed by Take against the resource it acquired.
//
// Returning a *BadResourceError tells the pool the resource is no longer
// usable, see the BadResourceError documentation for details.
type Op func(resource interface{}) (interface{}, error)

// Filter defines a resource predicate, used by Take and DeleteIf.
type Filter func(resource interface{}) bool

// Visitor is the function called by Each on every visited resource.
type Visitor func(resource interface{}) error

// ElementVisitor is the function called by EachElement on every visited
// element.
type ElementVisitor func(e *Element) error

// Element wraps a single resource stored in a Pool.
type Element struct {
	resource interface{}

	// Guarded by the owning pool's mu.
	locked bool
}

// Resource returns the resource wrapped by the element.
func (e *Element) Resource() interface{} {
	return e.resource
}

// Pool is a thread-safe, re-entrant resource pool.
//
// The zero value is not usable, use NewPool.
type Pool struct {
	factory  Factory
	teardown Teardown

	// mu guards elements and every element's locked flag.
	// released is signaled whenever an element becomes idle or leaves the
	// pool, so blocked scans re-check their remaining targets.
	mu       sync.Mutex
	released *sync.Cond
	elements map[*Element]struct{}

	// scanMu serializes whole-pool scans (EachElement, Each, DeleteIf,
	// Clear). Take is never blocked by it.
	scanMu sync.Mutex
}

// NewPool creates a new pool with the given factory and teardown functions.
//
// No resource is created eagerly,
// use Fill to seed the pool with already-created resources.
func NewPool(factory Factory, teardown Teardown) *Pool {
	p := &Pool{
		factory:  factory,
		teardown: teardown,
		elements: make(map[*Element]struct{}),
	}
	p.released = sync.NewCond(&p.mu)
	return p
}

// Fill seeds the pool with already-created resources.
//
// Each resource is added as a new idle member.
// Fill never calls the factory.
func (p *Pool) Fill(resources ...interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, resource := range resources {
		p.elements[&Element{resource: resource}] = struct{}{}
	}
}

// Size returns the current number of pool members,
// both idle and checked out.
func (p *Pool) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.elements)
}

// Take executes op against exactly one resource.
//
// It reuses the first idle member accepted by the filter in opts.
// If there is none and opts carries a default resource,
// the default is added to the pool as a new member and used;
// note that it then stays a pool member after Take returns.
// Otherwise the factory is called to create a new member.
// opts can be nil, which means accept-all filter and no default.
//
// op runs outside the pool's lock,
// so concurrent Take calls can proceed on other members.
//
// If op returns a *BadResourceError,
// the member is torn down and removed from the pool,
// then the error is returned to the caller.
// On any other error the member is released back to the pool and the error
// is returned unchanged.
//
// Take calls can be nested:
// an op is allowed to call Take on the same pool,
// and the nested call will acquire a different member because the outer one
// is still checked out.
func (p *Pool) Take(op Op, opts TakeOptions) (interface{}, error) {
	e, err := p.acquire(opts)
	if err != nil {
		return nil, err
	}
	removed := false
	defer func() {
		if !removed {
			p.release(e)
		}
	}()

	ret, err := op(e.resource)
	if IsBadResource(err) {
		removed = true
		batch := new(errbatch.ErrBatch)
		batch.Add(err)
		batch.Add(p.DeleteElement(e))
		return nil, batch.Compile()
	}
	return ret, err
}

// acquire finds or creates an element and marks it checked out.
func (p *Pool) acquire(opts TakeOptions) (*Element, error) {
	filter := Filter(AcceptAll)
	var def interface{}
	var hasDefault bool
	if opts != nil {
		filter = opts.GetFilter()
		def, hasDefault = opts.GetDefault()
	}

	p.mu.Lock()
	for e := range p.elements {
		if !e.locked && filter(e.resource) {
			e.locked = true
			p.mu.Unlock()
			return e, nil
		}
	}
	if hasDefault {
		e := &Element{resource: def, locked: true}
		p.elements[e] = struct{}{}
		p.mu.Unlock()
		return e, nil
	}
	p.mu.Unlock()

	// The factory could be slow,
	// run it outside the lock so other pool operations are not blocked.
	resource, err := p.factory()
	if err != nil {
		return nil, err
	}
	e := &Element{resource: resource, locked: true}
	p.mu.Lock()
	p.elements[e] = struct{}{}
	p.mu.Unlock()
	return e, nil
}

// release marks e idle and wakes scans blocked on the release condition.
//
// Calling release on an element already removed from the pool is harmless.
func (p *Pool) release(e *Element) {
	p.mu.Lock()
	e.locked = false
	p.released.Broadcast()
	p.mu.Unlock()
}

// DeleteElement tears down e's resource and removes e from the pool.
//
// e is removed even if the teardown fails,
// so a failing teardown cannot keep a dead resource in the pool.
// The teardown error, if any, is returned.
func (p *Pool) DeleteElement(e *Element) error {
	err := p.teardown(e.resource)
	p.mu.Lock()
	delete(p.elements, e)
	p.released.Broadcast()
	p.mu.Unlock()
	return err
}

// EachElement visits every element that is a pool member when the scan
// starts, exactly once, each checked out for the duration of its visit.
//
// Members checked out by other goroutines at scan start are waited for and
// visited once they are released.
// Members removed from the pool before they could be visited
// (by a concurrent Take hitting a bad resource) are skipped.
//
// Every visited element is released immediately after its visit,
// even when the visitor returns an error,
// but a visitor error aborts the rest of the scan and is returned.
//
// Only one scan runs at a time.
// Take calls are not blocked by an in-progress scan.
func (p *Pool) EachElement(visitor ElementVisitor) error {
	p.scanMu.Lock()
	defer p.scanMu.Unlock()

	p.mu.Lock()
	targets := make(map[*Element]struct{}, len(p.elements))
	for e := range p.elements {
		targets[e] = struct{}{}
	}
	p.mu.Unlock()

	for len(targets) > 0 {
		acquired := p.acquireTargets(targets)
		for i, e := range acquired {
			err := visitor(e)
			p.release(e)
			if err != nil {
				// Abort the scan, but don't leak the rest of this batch in
				// checked out state.
				for _, rest := range acquired[i+1:] {
					p.release(rest)
				}
				return err
			}
		}
	}
	return nil
}

// acquireTargets checks out every target that is currently idle,
// removes them from targets, and returns them.
// Targets that are no longer pool members are dropped from targets.
//
// If every remaining target is checked out elsewhere,
// it blocks on the release condition and re-checks after every wakeup.
// The check and the wait happen under the same mutex,
// so a release signaled between them cannot be missed.
func (p *Pool) acquireTargets(targets map[*Element]struct{}) []*Element {
	p.mu.Lock()
	defer p.mu.Unlock()
	for {
		var acquired []*Element
		for e := range targets {
			if _, ok := p.elements[e]; !ok {
				delete(targets, e)
				continue
			}
			if !e.locked {
				e.locked = true
				acquired = append(acquired, e)
				delete(targets, e)
			}
		}
		if len(acquired) > 0 || len(targets) == 0 {
			return acquired
		}
		p.released.Wait()
	}
}

// Each is EachElement with the visitor receiving the wrapped resource
// instead of the element.
func (p *Pool) Each(visitor Visitor) error {
	return p.EachElement(func(e *Element) error {
		return visitor(e.resource)
	})
}

// DeleteIf visits every element like EachElement,
// deleting the ones whose resource satisfies pred and releasing the rest.
//
// Teardown errors don't abort the scan;
// they are combined into the returned error.
func (p *Pool) DeleteIf(pred Filter) error {
	batch := new(errbatch.ErrBatch)
	if err := p.EachElement(func(e *Element) error {
		if pred(e.resource) {
			batch.Add(p.DeleteElement(e))
		}
		return nil
	}); err != nil {
		batch.Add(err)
	}
	return batch.Compile()
}

// Clear deletes every element that is a pool member when the scan starts,
// waiting for members checked out by other goroutines to be released first.
//
// When Clear returns, each of those members was torn down exactly once.
// Teardown errors don't abort the scan;
// they are combined into the returned error.
func (p *Pool) Clear() error {
	batch := new(errbatch.ErrBatch)
	if err := p.EachElement(func(e *Element) error {
		batch.Add(p.DeleteElement(e))
		return nil
	}); err != nil {
		batch.Add(err)
	}
	return batch.Compile()
}

// Close is an alias of Clear.
func (p *Pool) Close() error {
	return p.Clear()
}
