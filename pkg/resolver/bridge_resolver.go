package resolver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stackb/classbridge/pkg/logger"
)

// BridgeResolver loads symbols for a generator, preferring the versions
// produced by other generators and super-source over the host's own.
//
// The exceptions are symbols in excepted packages: JRE classes (which cannot
// be defined by a custom loader), classes the generator itself uses (so that
// identity comparisons against them work) and caller-named packages that
// must keep their host version during generation.  Those always come from
// the host loader.
//
// A symbol missing from the compilation state falls back to the host loader
// with a warning, unless it is an annotation type.
type BridgeResolver struct {
	logger   logger.TreeLogger
	excepted *ExceptedPackages
	index    *ClassIndex
	packages PackageRegistry
	host     SymbolSource
	indexed  SymbolSource

	mu     sync.Mutex
	loaded map[string]*Symbol
}

// NewBridgeResolver constructs a new BridgeResolver.  No index extraction
// happens until the first non-excepted lookup.  A nil packages registry
// gets a fresh in-memory one; a nil logger discards diagnostics.
func NewBridgeResolver(
	context GeneratorContext,
	treeLogger logger.TreeLogger,
	host HostLoader,
	packages PackageRegistry,
	exceptedPackages []string,
) *BridgeResolver {
	if treeLogger == nil {
		treeLogger = logger.Discard
	}
	if packages == nil {
		packages = NewPackageRegistry()
	}
	index := NewClassIndex(context, treeLogger)
	return &BridgeResolver{
		logger:   treeLogger,
		excepted: NewExceptedPackages(exceptedPackages),
		index:    index,
		packages: packages,
		host:     NewDelegatingSource(host),
		indexed:  NewIndexedSource(index, packages),
		loaded:   make(map[string]*Symbol),
	}
}

// Resolve returns the symbol for the given binary name without linking it.
func (r *BridgeResolver) Resolve(name string) (*Symbol, error) {
	return r.loadSymbol(name, false)
}

// ResolveAndLink returns the symbol for the given binary name, linked.
func (r *BridgeResolver) ResolveAndLink(name string) (*Symbol, error) {
	return r.loadSymbol(name, true)
}

// IsExcepted reports whether name is always loaded from the host.
func (r *BridgeResolver) IsExcepted(name string) bool {
	return r.excepted.Contains(name)
}

// ExceptedPackages returns the normalized excepted package prefixes.
func (r *BridgeResolver) ExceptedPackages() []string {
	return r.excepted.Prefixes()
}

// Packages returns the package registry symbols are registered in.
func (r *BridgeResolver) Packages() PackageRegistry {
	return r.packages
}

// Loaded returns the number of distinct names resolved so far.
func (r *BridgeResolver) Loaded() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.loaded)
}

func (r *BridgeResolver) loadSymbol(name string, link bool) (*Symbol, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	sym, ok := r.loaded[name]
	if !ok {
		var err error
		if r.excepted.Contains(name) {
			sym, err = r.host.LoadSymbol(name)
		} else {
			sym, err = r.findSymbol(name)
		}
		if err != nil {
			return nil, err
		}
		r.loaded[name] = sym
	}

	if link {
		if err := sym.Link(); err != nil {
			return nil, err
		}
	}

	return sym, nil
}

// findSymbol tries the compilation state, then the host.
func (r *BridgeResolver) findSymbol(name string) (*Symbol, error) {
	sym, err := r.indexed.LoadSymbol(name)
	if err == nil {
		return sym, nil
	}
	if !errors.Is(err, ErrSymbolNotFound) {
		return nil, err
	}

	sym, err = r.host.LoadSymbol(name)
	if err != nil {
		return nil, err
	}
	if !sym.IsAnnotation() { // annotations are always safe to load
		r.logger.Log(logger.WARN, fmt.Sprintf(
			"Class %s is used by the generator, but not available in generated client code.", name))
	}
	return sym, nil
}
