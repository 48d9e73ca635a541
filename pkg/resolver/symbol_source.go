package resolver

// SymbolSource is one place symbols can be loaded from.  A source returns an
// error matching ErrSymbolNotFound when it does not know the name; any other
// error means the name was found but could not be materialized.
type SymbolSource interface {
	// Name identifies the source in diagnostics.
	Name() string
	// LoadSymbol loads the symbol with the given binary name.
	LoadSymbol(name string) (*Symbol, error)
}

// DelegatingSource implements SymbolSource by asking the host loader in
// non-linking mode.
type DelegatingSource struct {
	host HostLoader
}

func NewDelegatingSource(host HostLoader) *DelegatingSource {
	return &DelegatingSource{host: host}
}

// Name implements the SymbolSource interface
func (s *DelegatingSource) Name() string {
	return "host"
}

// LoadSymbol implements the SymbolSource interface.  Host errors are returned
// unmodified.
func (s *DelegatingSource) LoadSymbol(name string) (*Symbol, error) {
	return s.host.LoadByName(name, false)
}

// IndexedSource implements SymbolSource over the compilation state index.
// Packages of the symbols it defines are registered before the symbol is
// materialized.
type IndexedSource struct {
	index    *ClassIndex
	packages PackageRegistry
}

func NewIndexedSource(index *ClassIndex, packages PackageRegistry) *IndexedSource {
	return &IndexedSource{
		index:    index,
		packages: packages,
	}
}

// Name implements the SymbolSource interface
func (s *IndexedSource) Name() string {
	return "compilation-state"
}

// LoadSymbol implements the SymbolSource interface.
func (s *IndexedSource) LoadSymbol(name string) (*Symbol, error) {
	compiled, ok := s.index.Lookup(name)
	if !ok {
		return nil, &SymbolNotFoundError{Name: name, Source: s.Name()}
	}

	if _, ok := s.packages.GetPackage(compiled.PackageName); !ok {
		if _, err := s.packages.DefinePackage(compiled.PackageName); err != nil {
			return nil, err
		}
	}

	return DefineSymbol(name, compiled.Bytes, OriginCompilationState)
}
