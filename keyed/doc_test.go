package keyed_test

import (
	"fmt"

	"github.com/fishy/respool"
	"github.com/fishy/respool/keyed"
)

func Example() {
	opts := keyed.NewDefaultOptions(
		func(key string) respool.Factory {
			return func() (interface{}, error) {
				return key + "-conn", nil
			}
		},
	).SetTeardown(
		func(key string) respool.Teardown {
			return func(resource interface{}) error {
				fmt.Println("teardown", resource)
				return nil
			}
		},
	).Build()
	pools := keyed.Open(opts)

	use := func(resource interface{}) (interface{}, error) {
		fmt.Println("using", resource)
		return nil, nil
	}
	if _, err := pools.Take("host1", use, nil); err != nil {
		// TODO: handle error
	}
	// The second Take on the same key reuses the same resource.
	if _, err := pools.Take("host1", use, nil); err != nil {
		// TODO: handle error
	}
	if _, err := pools.Take("host2", use, nil); err != nil {
		// TODO: handle error
	}
	fmt.Println(pools.Size())

	if err := pools.Drop("host1"); err != nil {
		// TODO: handle error
	}
	fmt.Println(pools.Size())

	// Output:
	// using host1-conn
	// using host1-conn
	// using host2-conn
	// 2
	// teardown host1-conn
	// 1
}
