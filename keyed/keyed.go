package keyed

import (
	"sync"

	"github.com/fishy/errbatch"
	"github.com/fishy/rowlock"

	"github.com/fishy/respool"
)

// KeyedPool groups resource pools by string key,
// e.g. one pool of connections per backend host.
//
// The pool for a key is created lazily on its first use.
type KeyedPool struct {
	opts  Options
	pools sync.Map // key(string) -> *respool.Pool
	locks *rowlock.RowLock
}

// Open creates a KeyedPool with the given options.
//
// There's no need to close it,
// unless you want to tear down the pooled resources,
// in which case call Clear.
func Open(opts Options) *KeyedPool {
	return &KeyedPool{
		opts:  opts,
		locks: rowlock.NewRowLock(rowlock.MutexNewLocker),
	}
}

// Pool returns the pool for key, creating it if there is none.
//
// Creation and Drop serialize on a per-key row lock,
// so two racing callers never create two pools for the same key.
// A caller racing a Drop on the same key can still get the pool being
// dropped, see the package documentation for details.
func (kp *KeyedPool) Pool(key string) *respool.Pool {
	if p, ok := kp.pools.Load(key); ok {
		return p.(*respool.Pool)
	}

	kp.locks.Lock(key)
	defer kp.locks.Unlock(key)
	if p, ok := kp.pools.Load(key); ok {
		return p.(*respool.Pool)
	}
	p := respool.NewPool(kp.opts.GetFactory(key), kp.opts.GetTeardown(key))
	kp.pools.Store(key, p)
	if logger := kp.opts.GetLogger(); logger != nil {
		logger.Printf("keyed: created pool for %q", key)
	}
	return p
}

// Take calls Take on the pool for key.
func (kp *KeyedPool) Take(
	key string,
	op respool.Op,
	opts respool.TakeOptions,
) (interface{}, error) {
	return kp.Pool(key).Take(op, opts)
}

// Drop removes the pool for key and clears it,
// tearing down every member and waiting for checked out members to be
// released first.
//
// It returns a NoSuchPoolError if the key has no pool.
func (kp *KeyedPool) Drop(key string) error {
	kp.locks.Lock(key)
	p, ok := kp.pools.Load(key)
	if !ok {
		kp.locks.Unlock(key)
		return &NoSuchPoolError{Key: key}
	}
	kp.pools.Delete(key)
	kp.locks.Unlock(key)

	// Clear can block waiting for checked out members.
	// Run it outside the row lock so new Take calls on the same key are not
	// blocked behind it; they get a fresh pool.
	err := p.(*respool.Pool).Clear()
	if logger := kp.opts.GetLogger(); logger != nil {
		logger.Printf("keyed: dropped pool for %q", key)
	}
	return err
}

// Clear drops the pool of every key,
// and returns combined teardown errors, if any.
func (kp *KeyedPool) Clear() error {
	batch := new(errbatch.ErrBatch)
	kp.pools.Range(func(key, _ interface{}) bool {
		err := kp.Drop(key.(string))
		if err != nil && !IsNoSuchPoolError(err) {
			batch.Add(err)
		}
		return true
	})
	return batch.Compile()
}

// Size returns the total number of resources across the pools of all keys.
func (kp *KeyedPool) Size() int {
	var size int
	kp.pools.Range(func(_, p interface{}) bool {
		size += p.(*respool.Pool).Size()
		return true
	})
	return size
}
