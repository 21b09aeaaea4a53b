package reporting

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/kbukum/errkit/logger"
)

// Built-in reporter names.
const (
	NameNoop = "noop"
	NameLog  = "log"
	NameOTel = "otel"
)

// Info describes the request an error was raised in.
type Info struct {
	Method    string
	Path      string
	RequestID string
	Status    int
	Type      string
	Code      string
}

// Reporter receives every error the exception handler processes.
type Reporter interface {
	Report(ctx context.Context, err error, info Info)
}

// ReporterFunc adapts a function to Reporter.
type ReporterFunc func(ctx context.Context, err error, info Info)

// Report calls f.
func (f ReporterFunc) Report(ctx context.Context, err error, info Info) {
	f(ctx, err, info)
}

// Noop discards reports.
type Noop struct{}

// Report does nothing.
func (Noop) Report(context.Context, error, Info) {}

// Registry maps reporter names to reporters.
type Registry struct {
	mu        sync.RWMutex
	reporters map[string]Reporter
}

// NewRegistry returns a registry holding the built-in reporters.
func NewRegistry(log *logger.Logger) *Registry {
	if log == nil {
		log = logger.GetGlobalLogger()
	}
	r := &Registry{reporters: make(map[string]Reporter)}
	r.Register(NameNoop, Noop{})
	r.Register(NameLog, NewLogReporter(log))
	r.Register(NameOTel, NewOTelReporter())
	return r
}

// Register adds or replaces a reporter.
func (r *Registry) Register(name string, rep Reporter) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.reporters[name] = rep
}

// Lookup returns the reporter registered under name. An empty name selects noop.
func (r *Registry) Lookup(name string) (Reporter, error) {
	if name == "" {
		name = NameNoop
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	rep, ok := r.reporters[name]
	if !ok {
		return nil, fmt.Errorf("reporting: unknown reporter %q (registered: %v)", name, r.namesLocked())
	}
	return rep, nil
}

// Names returns the registered reporter names in sorted order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.namesLocked()
}

func (r *Registry) namesLocked() []string {
	names := make([]string, 0, len(r.reporters))
	for name := range r.reporters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
