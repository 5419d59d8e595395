package run

import (
	"sort"
	"sync"
)

// Registry stores checkpoint instances, keyed by directory name.
type Registry struct {
	instances map[string]*Instance
	mu        sync.RWMutex
}

// NewRegistry creates a new checkpoint registry.
func NewRegistry() *Registry {
	return &Registry{
		instances: map[string]*Instance{},
	}
}

// Set adds a checkpoint instance to the registry.
func (r *Registry) Set(instance *Instance) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.instances[instance.Dir] = instance
}

// Get returns the instance for the given checkpoint directory name.
func (r *Registry) Get(dir string) (*Instance, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instance, ok := r.instances[dir]
	return instance, ok
}

// List returns all instances ordered by step.
func (r *Registry) List() []*Instance {
	r.mu.RLock()
	defer r.mu.RUnlock()

	instances := make([]*Instance, 0, len(r.instances))
	for _, instance := range r.instances {
		instances = append(instances, instance)
	}

	sort.Slice(instances, func(i, j int) bool { return instances[i].Step < instances[j].Step })

	return instances
}

// Delete deletes the instance for the given checkpoint directory name.
func (r *Registry) Delete(dir string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.instances, dir)
}
