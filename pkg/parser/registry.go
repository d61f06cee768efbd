package parser

import (
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/yaklabco/mdtree/pkg/parser/goldmark"
	"github.com/yaklabco/mdtree/pkg/parser/structural"
)

// Built-in backend names.
const (
	BackendGFM        = "gfm"
	BackendCommonMark = "commonmark"
	BackendJSON       = "json"
	BackendYAML       = "yaml"

	// DefaultBackend is used when no backend is configured.
	DefaultBackend = BackendGFM
)

// Factory creates a fresh Tokenizer.
type Factory func() Tokenizer

//nolint:gochecknoglobals // process-wide backend table, guarded by registryMu
var (
	registryMu sync.RWMutex
	registry   = map[string]Factory{
		BackendGFM:        func() Tokenizer { return goldmark.New(goldmark.FlavorGFM) },
		BackendCommonMark: func() Tokenizer { return goldmark.New(goldmark.FlavorCommonMark) },
		BackendJSON:       func() Tokenizer { return structural.New(structural.FormatJSON) },
		BackendYAML:       func() Tokenizer { return structural.New(structural.FormatYAML) },
	}
)

// Register adds or replaces a backend. Names are case-insensitive.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[strings.ToLower(name)] = factory
}

// Backends returns the registered backend names in sorted order.
func Backends() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Lookup returns a new tokenizer for the named backend. An empty name
// selects DefaultBackend.
//
//nolint:ireturn // backends are only known by interface
func Lookup(name string) (Tokenizer, error) {
	if name == "" {
		name = DefaultBackend
	}

	registryMu.RLock()
	factory, ok := registry[strings.ToLower(name)]
	registryMu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w %q (available: %s)", ErrUnknownBackend, name, strings.Join(Backends(), ", "))
	}
	return factory(), nil
}

// ForBackend returns a Parser for the named backend.
func ForBackend(name string, opts ...Option) (*Parser, error) {
	tok, err := Lookup(name)
	if err != nil {
		return nil, err
	}
	if name == "" {
		name = DefaultBackend
	}
	return New(tok, append([]Option{WithName(strings.ToLower(name))}, opts...)...), nil
}
