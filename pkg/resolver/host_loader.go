package resolver

import (
	"errors"
	"fmt"
	"sync"

	"github.com/stackb/classbridge/pkg/java"
)

// HostLoader is the host environment's hierarchical loading primitive.  It
// fails with an error matching ErrSymbolNotFound when the host does not know
// the name either.
type HostLoader interface {
	// LoadByName loads the named symbol.  When link is true the symbol is
	// also linked before it is returned.
	LoadByName(name string, link bool) (*Symbol, error)
}

// ClassPathLoader implements HostLoader over a class path.  Every name is
// defined at most once.
type ClassPathLoader struct {
	classPath *java.ClassPath

	mu     sync.Mutex
	loaded map[string]*Symbol
}

func NewClassPathLoader(classPath *java.ClassPath) *ClassPathLoader {
	return &ClassPathLoader{
		classPath: classPath,
		loaded:    make(map[string]*Symbol),
	}
}

// LoadByName implements the HostLoader interface.
func (l *ClassPathLoader) LoadByName(name string, link bool) (*Symbol, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	sym, ok := l.loaded[name]
	if !ok {
		data, err := l.classPath.ReadClass(java.InternalName(name))
		if err != nil {
			if errors.Is(err, java.ErrClassNotFound) {
				return nil, &SymbolNotFoundError{Name: name, Source: l.classPath.String()}
			}
			return nil, fmt.Errorf("read %s: %w", name, err)
		}
		sym, err = DefineSymbol(name, data, OriginHost)
		if err != nil {
			return nil, err
		}
		l.loaded[name] = sym
	}

	if link {
		if err := sym.Link(); err != nil {
			return nil, err
		}
	}
	return sym, nil
}
