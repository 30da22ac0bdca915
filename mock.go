package respool

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/fishy/wrapreader"
)

// MockOperationDelay defines the delay before and after an operation.
// It's useful to mimic network latency in tests.
type MockOperationDelay struct {
	// Before is the delay between the function call and the actual operation.
	Before time.Duration

	// After is the delay between the actual operation completes and the
	// function returns.
	After time.Duration
}

// MockConn is a mock connection to be pooled in tests and examples.
type MockConn struct {
	// ID identifies the connection.
	ID int

	// Payload is the data served by Reader.
	Payload string

	UseDelay   MockOperationDelay
	CloseDelay MockOperationDelay

	mu     sync.Mutex
	closed bool
	uses   int
}

// Use mimics one use of the connection.
//
// It fails if the connection is already closed.
func (c *MockConn) Use() error {
	time.Sleep(c.UseDelay.Before)
	defer time.Sleep(c.UseDelay.After)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("mock conn %d is closed", c.ID)
	}
	c.uses++
	return nil
}

// Uses returns the number of successful Use calls so far.
func (c *MockConn) Uses() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.uses
}

// Close closes the connection.
//
// Closing an already closed connection is an error.
func (c *MockConn) Close() error {
	time.Sleep(c.CloseDelay.Before)
	defer time.Sleep(c.CloseDelay.After)
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return fmt.Errorf("mock conn %d is already closed", c.ID)
	}
	c.closed = true
	return nil
}

// IsClosed reports whether the connection was closed.
func (c *MockConn) IsClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// Reader returns the payload as a stream.
//
// Closing the returned reader also closes the connection,
// mimicking a one-shot connection.
func (c *MockConn) Reader() io.ReadCloser {
	return wrapreader.Wrap(strings.NewReader(c.Payload), c)
}

// MockFactory returns a Factory creating sequentially numbered MockConn
// resources.
//
// The returned factory is safe to call concurrently.
func MockFactory() Factory {
	var mu sync.Mutex
	var next int
	return func() (interface{}, error) {
		mu.Lock()
		defer mu.Unlock()
		next++
		return &MockConn{ID: next}, nil
	}
}

// MockTeardown is a Teardown closing MockConn resources.
func MockTeardown(resource interface{}) error {
	return resource.(*MockConn).Close()
}
