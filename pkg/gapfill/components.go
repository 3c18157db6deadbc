package gapfill

import (
	"context"
	"fmt"
	"sync"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/xaionaro-go/gapfill/pkg/components"
	"github.com/xaionaro-go/gapfill/pkg/interpolation"
)

// Components is a set of named sequences, e.g. the curves of a well log or
// the channels of a recording.
type Components map[string][]float64

// FillComponents replaces every named component of set with its filled
// copy. A nil names fills all the components of the set. The sequences
// previously stored in set are not modified.
//
// If concurrent is true the components are filled in parallel and all the
// errors are reported, otherwise the first error stops the process.
func FillComponents(
	ctx context.Context,
	set Components,
	names components.Names,
	interp interpolation.Interpolator,
	concurrent bool,
) (_err error) {
	logger.Tracef(ctx, "FillComponents(%v)", names)
	defer func() { logger.Tracef(ctx, "/FillComponents(%v): %v", names, _err) }()

	if names == nil {
		names = components.All(set)
	}

	var locker sync.Mutex
	fillOne := func(ctx context.Context, name string) error {
		locker.Lock()
		seq, ok := set[name]
		locker.Unlock()
		if !ok {
			return fmt.Errorf("%w: %q", ErrUnknownComponent, name)
		}

		filled, err := FillWith(seq, interp)
		if err != nil {
			return err
		}
		logger.Debugf(ctx, "component %q: %+v", name, Analyze(seq, filled))

		locker.Lock()
		defer locker.Unlock()
		set[name] = filled
		return nil
	}

	if concurrent {
		return components.ForEachConcurrently(ctx, names, fillOne)
	}
	return components.ForEach(ctx, names, fillOne)
}
