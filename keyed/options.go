package keyed

import (
	"log"

	"github.com/fishy/respool"
)

// KeyFactory defines the function returning the resource factory to be used
// for a key's pool.
type KeyFactory func(key string) respool.Factory

// KeyTeardown defines the function returning the resource teardown to be
// used for a key's pool.
type KeyTeardown func(key string) respool.Teardown

// NopTeardown is the KeyTeardown whose teardowns do nothing.
//
// It's the teardown used when none is set.
func NopTeardown(key string) respool.Teardown {
	return func(resource interface{}) error {
		return nil
	}
}

// Options defines a read-only view of options used in KeyedPool.
type Options interface {
	// GetFactory returns the resource factory for the given key.
	GetFactory(key string) respool.Factory

	// GetTeardown returns the resource teardown for the given key.
	GetTeardown(key string) respool.Teardown

	// GetLogger returns the logger to be used in KeyedPool.
	//
	// If it returns nil, nothing will be logged.
	GetLogger() *log.Logger
}

// OptionsBuilder defines a read-write view of options used in KeyedPool.
type OptionsBuilder interface {
	Options

	// Build builds the read-only view of the options.
	Build() Options

	// SetTeardown sets the teardown used for the pools of new keys.
	SetTeardown(f KeyTeardown) OptionsBuilder

	// SetLogger sets the logger used in KeyedPool.
	SetLogger(logger *log.Logger) OptionsBuilder
}

type options struct {
	factory  KeyFactory
	teardown KeyTeardown
	logger   *log.Logger
}

// NewDefaultOptions creates the default options with the given factory:
// no-op teardowns and no logger.
func NewDefaultOptions(factory KeyFactory) OptionsBuilder {
	return &options{
		factory:  factory,
		teardown: NopTeardown,
	}
}

func (opt *options) GetFactory(key string) respool.Factory {
	return opt.factory(key)
}

func (opt *options) GetTeardown(key string) respool.Teardown {
	return opt.teardown(key)
}

func (opt *options) GetLogger() *log.Logger {
	return opt.logger
}

func (opt *options) Build() Options {
	return opt
}

func (opt *options) SetTeardown(f KeyTeardown) OptionsBuilder {
	opt.teardown = f
	return opt
}

func (opt *options) SetLogger(logger *log.Logger) OptionsBuilder {
	opt.logger = logger
	return opt
}
