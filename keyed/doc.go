// Package keyed provides resource pools grouped by string key.
//
// A KeyedPool keeps one respool.Pool per key,
// e.g. one pool of connections per backend host,
// creating each pool lazily on the first use of its key.
//
// Concurrency
//
// Each key's pool is created and dropped under a per-key row lock,
// so two racing callers never create two pools for the same key,
// and a Take after a finished Drop always gets a brand new pool.
//
// One race is accepted by design:
// a Take that looked its pool up right before a Drop on the same key may
// create a fresh resource in the dropped pool after the Drop cleared it.
// That resource lives in a pool no longer reachable through the KeyedPool,
// so callers that need strict teardown should stop Take traffic on a key
// before dropping it.
// Serializing every Take behind the row lock would close the window,
// but it would also put a per-key lock on the hot path.
//
// Operations on the pools themselves carry the guarantees documented in
// package respool.
package keyed
