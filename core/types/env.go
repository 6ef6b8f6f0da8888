package types

import "github.com/splicelang/splice/core/invariant"

// Environment carries the per-invocation execution context: the
// function registry and the uniqueness seed the hash built-in mixes
// into its digests. Write-once: the driver constructs one per
// invocation and nothing mutates it afterwards.
type Environment struct {
	funcs *Registry
	seed  uint64
}

// NewEnvironment builds an environment around a registry and a seed.
func NewEnvironment(funcs *Registry, seed uint64) *Environment {
	invariant.NotNil(funcs, "funcs")
	return &Environment{funcs: funcs, seed: seed}
}

// Funcs returns the function registry.
func (e *Environment) Funcs() *Registry { return e.funcs }

// Seed returns the invocation's uniqueness seed.
func (e *Environment) Seed() uint64 { return e.seed }
