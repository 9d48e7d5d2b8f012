// Package schema holds the GraphQL schema the overlay analyzes against:
// a single reconfigurable reference plus SDL loading and workspace
// discovery. Queries always observe one consistent schema value; the
// reference is swapped whole, never updated in place.
package schema

import (
	"fmt"
	"os"
	"sync"

	"bennypowers.dev/gqlls/internal/log"
	"github.com/vektah/gqlparser/v2"
	"github.com/vektah/gqlparser/v2/ast"
)

// Registry is the single mutable schema reference. The zero value is usable
// and means "no schema configured": every overlay operation stays inert
// until a schema is set.
type Registry struct {
	mu     sync.RWMutex
	schema *ast.Schema
	path   string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Schema returns the current schema, or nil when none is configured.
func (r *Registry) Schema() *ast.Schema {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.schema
}

// Path returns the file path the current schema was loaded from, "" when
// the schema was set directly or none is configured.
func (r *Registry) Path() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.path
}

// Set swaps in a fully-formed schema value.
func (r *Registry) Set(schema *ast.Schema) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.schema = schema
	r.path = ""
}

// LoadFile reads an SDL file and swaps in the parsed schema. On failure the
// previous schema stays in place.
func (r *Registry) LoadFile(path string) error {
	contents, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	schema, gqlErr := gqlparser.LoadSchema(&ast.Source{Name: path, Input: string(contents)})
	if gqlErr != nil {
		return fmt.Errorf("failed to parse schema %s: %w", path, gqlErr)
	}

	r.mu.Lock()
	r.schema = schema
	r.path = path
	r.mu.Unlock()

	log.Info("Loaded schema from %s (%d types)", path, len(schema.Types))
	return nil
}
