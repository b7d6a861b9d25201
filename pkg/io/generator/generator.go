// Package generator defines the interface implemented by file generators.
package generator

// Generator is implemented by specific file generators (proxy config, and
// future scaffolding generators). The type parameters let each implementation
// define its own model and options structures.
type Generator[T any, Options any] interface {
	Generate(model T, opts Options) (string, error)
}
