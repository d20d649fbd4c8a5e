package tools

import (
	"fmt"
	"sort"
	"sync"

	"google.golang.org/genai"

	"github.com/GriffinCanCode/AuraOS/internal/domain/state"
	"github.com/GriffinCanCode/AuraOS/internal/shared/types"
)

// Handler interprets one kind of model tool call
type Handler interface {
	Name() string
	Declaration() *genai.FunctionDeclaration
	Apply(store *state.Store, call types.ToolCall) error
}

// Result reports what happened to a single tool call
type Result struct {
	Name    string
	Applied bool
	Err     error
}

// Registry maps tool names to handlers
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// DefaultRegistry returns a registry with every built-in tool
func DefaultRegistry() *Registry {
	r := NewRegistry()
	_ = r.Register(NewCreateEmail())
	return r
}

// Register adds a handler
func (r *Registry) Register(h Handler) error {
	name := h.Name()
	if name == "" {
		return fmt.Errorf("tool name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.handlers[name]; exists {
		return fmt.Errorf("tool %q already registered", name)
	}
	r.handlers[name] = h
	return nil
}

// Get returns the handler for name
func (r *Registry) Get(name string) (Handler, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	h, ok := r.handlers[name]
	return h, ok
}

// Names returns the registered tool names in sorted order
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Declarations returns the function declarations advertised to the model
func (r *Registry) Declarations() []*genai.FunctionDeclaration {
	names := r.Names()

	r.mu.RLock()
	defer r.mu.RUnlock()

	decls := make([]*genai.FunctionDeclaration, 0, len(names))
	for _, name := range names {
		decls = append(decls, r.handlers[name].Declaration())
	}
	return decls
}

// ApplyAll applies every recognised call in order.
// Unrecognised names are reported with Applied false and no error.
func (r *Registry) ApplyAll(store *state.Store, calls []types.ToolCall) []Result {
	results := make([]Result, 0, len(calls))
	for _, call := range calls {
		h, ok := r.Get(call.Name)
		if !ok {
			results = append(results, Result{Name: call.Name})
			continue
		}
		err := h.Apply(store, call)
		results = append(results, Result{Name: call.Name, Applied: err == nil, Err: err})
	}
	return results
}
