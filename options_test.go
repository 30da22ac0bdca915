package respool_test

import (
	"testing"

	"github.com/fishy/respool"
)

func TestTakeOptions(t *testing.T) {
	t.Run(
		"defaults",
		func(t *testing.T) {
			opts := respool.NewTakeOptions().Build()

			filter := opts.GetFilter()
			if filter == nil {
				t.Fatal("GetFilter should never return nil")
			}
			if !filter("anything") {
				t.Error("the default filter should accept everything")
			}

			if _, ok := opts.GetDefault(); ok {
				t.Error("no default resource should be set")
			}
		},
	)

	t.Run(
		"filter",
		func(t *testing.T) {
			opts := respool.NewTakeOptions().SetFilter(
				func(resource interface{}) bool {
					return resource == "a"
				},
			).Build()

			filter := opts.GetFilter()
			if !filter("a") {
				t.Error(`filter should accept "a"`)
			}
			if filter("b") {
				t.Error(`filter should reject "b"`)
			}
		},
	)

	t.Run(
		"default",
		func(t *testing.T) {
			opts := respool.NewTakeOptions().SetDefault("sentinel").Build()

			def, ok := opts.GetDefault()
			if !ok {
				t.Fatal("a default resource should be set")
			}
			if def != "sentinel" {
				t.Errorf("default resource expected %q, got %v", "sentinel", def)
			}
		},
	)

	t.Run(
		"nil-default",
		func(t *testing.T) {
			// Explicitly setting a nil default is different from not setting
			// one.
			opts := respool.NewTakeOptions().SetDefault(nil).Build()

			def, ok := opts.GetDefault()
			if !ok {
				t.Fatal("a default resource should be set")
			}
			if def != nil {
				t.Errorf("default resource expected nil, got %v", def)
			}
		},
	)
}
