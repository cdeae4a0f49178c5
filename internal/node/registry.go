package node

import (
	"context"
	"fmt"

	"github.com/dmorgan81/cineflow/internal/log"
	"github.com/dmorgan81/cineflow/internal/provider"
	"github.com/samber/do"
	"github.com/samber/lo"
)

// Registry binds each node definition to the generator that runs it.
type Registry struct {
	definitions map[string]Definition
	generators  map[string]provider.Generator
}

// New registers generators by node class. Classes without a definition are
// ignored.
func New(generators map[string]provider.Generator) *Registry {
	r := &Registry{
		definitions: lo.SliceToMap(Definitions, func(d Definition) (string, Definition) { return d.Class, d }),
		generators:  make(map[string]provider.Generator, len(generators)),
	}
	for class, g := range generators {
		if _, ok := r.definitions[class]; ok {
			r.generators[class] = g
		}
	}
	return r
}

// NewRegistry resolves one generator per node class, provided under the
// class name.
func NewRegistry(i *do.Injector) (*Registry, error) {
	generators := make(map[string]provider.Generator, len(Definitions))
	for _, d := range Definitions {
		g, err := do.InvokeNamed[provider.Generator](i, d.Class)
		if err != nil {
			return nil, fmt.Errorf("resolving %s: %w", d.Class, err)
		}
		generators[d.Class] = g
	}
	return New(generators), nil
}

// Definitions returns the runnable nodes in registration order.
func (r *Registry) Definitions() []Definition {
	return lo.Filter(Definitions, func(d Definition, _ int) bool {
		_, ok := r.generators[d.Class]
		return ok
	})
}

func (r *Registry) Definition(class string) (Definition, bool) {
	if _, ok := r.generators[class]; !ok {
		return Definition{}, false
	}
	d, ok := r.definitions[class]
	return d, ok
}

// Run validates the inputs of one invocation and hands them to the node's
// generator.
func (r *Registry) Run(ctx context.Context, class string, in Inputs) (provider.Artifact, error) {
	def, ok := r.Definition(class)
	if !ok {
		return provider.Artifact{}, &InputError{Node: class, Reason: "unknown node"}
	}

	values, err := resolve(def, in)
	if err != nil {
		return provider.Artifact{}, err
	}

	logger := log.FromContextOrDiscard(ctx).With("node", class)
	logger.Debug("running node", "inputs", lo.Keys(values))

	return r.generators[class].Generate(log.NewContext(ctx, logger), request(values))
}
