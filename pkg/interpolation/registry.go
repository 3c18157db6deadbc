package interpolation

import (
	"errors"
	"fmt"
	"sort"
	"sync"
)

var ErrUnknownMethod = errors.New("unknown interpolation method")

// Factory builds an Interpolator. period bounds how far into a gap the
// Interpolator may reach from each side; implementations which are not
// bounded ignore it.
type Factory interface {
	NewInterpolator(period int) (Interpolator, error)
}

// FactoryFunc is a Factory implemented by a plain function.
type FactoryFunc func(period int) (Interpolator, error)

func (fn FactoryFunc) NewInterpolator(period int) (Interpolator, error) {
	return fn(period)
}

var (
	factoryRegistry       = map[string]Factory{}
	factoryRegistryLocker sync.Mutex
)

// RegisterFactory makes a method available under the given name. It is
// supposed to be called from init() of the implementing packages.
func RegisterFactory(
	name string,
	factory Factory,
) {
	factoryRegistryLocker.Lock()
	defer factoryRegistryLocker.Unlock()
	if _, ok := factoryRegistry[name]; ok {
		panic(fmt.Errorf("there is already registered an interpolation method with name %q", name))
	}
	factoryRegistry[name] = factory
}

// Names returns the names of all registered methods, sorted.
func Names() []string {
	factoryRegistryLocker.Lock()
	defer factoryRegistryLocker.Unlock()
	names := make([]string, 0, len(factoryRegistry))
	for name := range factoryRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewByName builds an Interpolator using the factory registered under name.
func NewByName(name string, period int) (Interpolator, error) {
	factoryRegistryLocker.Lock()
	factory, ok := factoryRegistry[name]
	factoryRegistryLocker.Unlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownMethod, name, Names())
	}
	interp, err := factory.NewInterpolator(period)
	if err != nil {
		return nil, fmt.Errorf("unable to initialize interpolation method %q: %w", name, err)
	}
	return interp, nil
}

func init() {
	RegisterFactory("linear", FactoryFunc(func(int) (Interpolator, error) {
		return NewLinear(), nil
	}))
}
