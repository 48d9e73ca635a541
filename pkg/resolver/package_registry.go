package resolver

import (
	"fmt"
	"sort"
	"sync"
)

// Package is a runtime package record.  Package metadata queries for a
// symbol only succeed once its package has been defined.
type Package struct {
	Name string
}

// PackageRegistry holds the defined packages.  Defining the same package
// twice is an error, so callers check GetPackage first.
type PackageRegistry interface {
	GetPackage(name string) (*Package, bool)
	DefinePackage(name string) (*Package, error)
}

// InMemoryPackageRegistry implements PackageRegistry with a map.
type InMemoryPackageRegistry struct {
	mu       sync.RWMutex
	packages map[string]*Package
}

func NewPackageRegistry() *InMemoryPackageRegistry {
	return &InMemoryPackageRegistry{
		packages: make(map[string]*Package),
	}
}

// GetPackage implements part of the PackageRegistry interface.
func (r *InMemoryPackageRegistry) GetPackage(name string) (*Package, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pkg, ok := r.packages[name]
	return pkg, ok
}

// DefinePackage implements part of the PackageRegistry interface.
func (r *InMemoryPackageRegistry) DefinePackage(name string) (*Package, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.packages[name]; ok {
		return nil, fmt.Errorf("duplicate package definition: %q", name)
	}
	pkg := &Package{Name: name}
	r.packages[name] = pkg
	return pkg, nil
}

// Packages returns the defined packages sorted by name.
func (r *InMemoryPackageRegistry) Packages() []*Package {
	r.mu.RLock()
	defer r.mu.RUnlock()
	pkgs := make([]*Package, 0, len(r.packages))
	for _, pkg := range r.packages {
		pkgs = append(pkgs, pkg)
	}
	sort.Slice(pkgs, func(i, j int) bool {
		return pkgs[i].Name < pkgs[j].Name
	})
	return pkgs
}
