// Package components runs an operation once per named data component.
package components

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/xaionaro-go/observability"
)

// Unspecified is the component name passed to the callback when no
// components were requested at all.
const Unspecified = ""

// Names is a list of component identifiers. A nil Names means the caller
// did not specify any components, which is different from an empty list.
type Names []string

// All returns the names of the given components.
func All[T any](set map[string]T) Names {
	names := make(Names, 0, len(set))
	for name := range set {
		names = append(names, name)
	}
	return names
}

// Normalize returns the de-duplicated and sorted component names.
func Normalize(names Names) []string {
	result := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		result = append(result, name)
	}
	sort.Strings(result)
	return result
}

func targets(names Names) []string {
	if names == nil {
		return []string{Unspecified}
	}
	return Normalize(names)
}

// ForEach calls fn once per component in the order given by Normalize,
// stopping on the first error. If names is nil, fn is called once with
// Unspecified.
func ForEach(
	ctx context.Context,
	names Names,
	fn func(ctx context.Context, name string) error,
) error {
	for _, name := range targets(names) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		logger.Tracef(ctx, "component %q", name)
		if err := fn(ctx, name); err != nil {
			return fmt.Errorf("component %q: %w", name, err)
		}
	}
	return nil
}

// ForEachConcurrently calls fn for the same components as ForEach does,
// but each call runs in its own goroutine. All the errors are collected
// into a *multierror.Error.
func ForEachConcurrently(
	ctx context.Context,
	names Names,
	fn func(ctx context.Context, name string) error,
) error {
	var (
		wg     sync.WaitGroup
		locker sync.Mutex
		mErr   *multierror.Error
	)
	for _, name := range targets(names) {
		wg.Add(1)
		observability.Go(ctx, func() {
			defer wg.Done()
			logger.Tracef(ctx, "component %q", name)
			err := fn(ctx, name)
			if err == nil {
				return
			}
			locker.Lock()
			defer locker.Unlock()
			mErr = multierror.Append(mErr, fmt.Errorf("component %q: %w", name, err))
		})
	}
	wg.Wait()
	return mErr.ErrorOrNil()
}
