package resolver

import "fmt"

// ErrSymbolNotFound is matched (via errors.Is) by every failure to find a
// symbol by name.
var ErrSymbolNotFound = fmt.Errorf("symbol not found")

// SymbolNotFoundError is returned when a source does not know a name.
type SymbolNotFoundError struct {
	// Name is the requested binary name.
	Name string
	// Source is the name of the source that was consulted.
	Source string
}

func (e *SymbolNotFoundError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("symbol not found: %s", e.Name)
	}
	return fmt.Sprintf("symbol not found in %s: %s", e.Source, e.Name)
}

// Is makes errors.Is(err, ErrSymbolNotFound) true.
func (e *SymbolNotFoundError) Is(target error) bool {
	return target == ErrSymbolNotFound
}

// LinkageError is returned when a symbol fails verification during linking.
type LinkageError struct {
	Name   string
	Reason string
}

func (e *LinkageError) Error() string {
	return fmt.Sprintf("linkage error for %s: %s", e.Name, e.Reason)
}
