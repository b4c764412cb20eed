package component

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/kbukum/mercurekit/logger"
)

// StopTimeout bounds each component's Stop during shutdown, so one stuck
// subscriber drain cannot hold up the HTTP server behind it.
const StopTimeout = 10 * time.Second

type slot struct {
	c       Component
	running bool
}

// Registry runs the process's components (HTTP server, embedded hub) in
// registration order and stops them in reverse.
type Registry struct {
	mu     sync.RWMutex
	slots  []*slot
	byName map[string]*slot
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*slot)}
}

func (r *Registry) log() *logger.Logger { return logger.Get("components") }

// Register appends c. Names must be unique.
func (r *Registry) Register(c Component) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := c.Name()
	if _, dup := r.byName[name]; dup {
		return fmt.Errorf("component %q already registered", name)
	}
	s := &slot{c: c}
	r.slots = append(r.slots, s)
	r.byName[name] = s

	r.log().Debug("Component registered", map[string]interface{}{logger.FieldComponent: name})
	return nil
}

// StartAll starts every component in order and stops at the first failure.
// Components already running are left for StopAll.
func (r *Registry) StartAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.log()
	log.Info("Starting components", map[string]interface{}{"count": len(r.slots)})
	for _, s := range r.slots {
		name := s.c.Name()
		if err := s.c.Start(ctx); err != nil {
			log.Error("Component failed to start", map[string]interface{}{
				logger.FieldComponent: name,
				logger.FieldError:     err.Error(),
			})
			return fmt.Errorf("start %s: %w", name, err)
		}
		s.running = true
		log.Debug("Component started", map[string]interface{}{logger.FieldComponent: name})
	}
	return nil
}

// StopAll stops running components in reverse order and joins their errors.
func (r *Registry) StopAll(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	log := r.log()
	var errs []error
	for i := len(r.slots) - 1; i >= 0; i-- {
		s := r.slots[i]
		if !s.running {
			continue
		}
		name := s.c.Name()
		stopCtx, cancel := context.WithTimeout(ctx, StopTimeout)
		err := s.c.Stop(stopCtx)
		cancel()
		s.running = false

		if err != nil {
			errs = append(errs, fmt.Errorf("stop %s: %w", name, err))
			log.Error("Component failed to stop", map[string]interface{}{
				logger.FieldComponent: name,
				logger.FieldError:     err.Error(),
			})
			continue
		}
		log.Info("Component stopped", map[string]interface{}{logger.FieldComponent: name})
	}
	return errors.Join(errs...)
}

// HealthAll reports each component's health in registration order.
func (r *Registry) HealthAll(ctx context.Context) []Health {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Health, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s.c.Health(ctx))
	}
	return out
}

// Get returns the component registered as name, or nil.
func (r *Registry) Get(name string) Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if s, ok := r.byName[name]; ok {
		return s.c
	}
	return nil
}

// All returns the components in registration order.
func (r *Registry) All() []Component {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Component, 0, len(r.slots))
	for _, s := range r.slots {
		out = append(out, s.c)
	}
	return out
}
