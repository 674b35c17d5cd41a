// Package registry collects the evolver's name-keyed variant tables
// (opacity laws, initial-condition strategies) behind one lookup type.
package registry

import (
	"fmt"

	"github.com/lisdanil/freddi/internal/initcond"
	"github.com/lisdanil/freddi/internal/opacity"
)

// Registry holds the constructor tables for opacity laws and initial
// conditions, built once at startup.
type Registry struct {
	opacities  map[string]func() opacity.Law
	initconds  map[string]initcond.Func
}

// New builds a Registry with the recognised opacity-law and
// initial-condition variants.
func New() *Registry {
	r := &Registry{
		opacities: make(map[string]func() opacity.Law),
		initconds: make(map[string]initcond.Func),
	}

	r.opacities["Kramers"] = opacity.Kramers
	r.opacities["OPAL"] = opacity.OPAL

	r.initconds["powerF"] = initcond.PowerF
	r.initconds["powerSigma"] = initcond.PowerSigma
	r.initconds["sinusF"] = initcond.SinusF
	r.initconds["quasistat"] = initcond.Quasistat
	r.initconds["gaussF"] = initcond.GaussF

	return r
}

// Opacity returns the named opacity law constructor.
func (r *Registry) Opacity(name string) (opacity.Law, error) {
	fn, ok := r.opacities[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown opacity law %q", name)
	}
	return fn(), nil
}

// InitialCondition returns the named initial-condition strategy.
func (r *Registry) InitialCondition(name string) (initcond.Func, error) {
	fn, ok := r.initconds[name]
	if !ok {
		return nil, fmt.Errorf("registry: unknown initial condition %q", name)
	}
	return fn, nil
}

// ListOpacities returns the registered opacity-law names.
func (r *Registry) ListOpacities() []string {
	names := make([]string, 0, len(r.opacities))
	for name := range r.opacities {
		names = append(names, name)
	}
	return names
}

// ListInitialConditions returns the registered initial-condition names.
func (r *Registry) ListInitialConditions() []string {
	names := make([]string, 0, len(r.initconds))
	for name := range r.initconds {
		names = append(names, name)
	}
	return names
}
