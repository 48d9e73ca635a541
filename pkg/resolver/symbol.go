package resolver

import (
	"fmt"
	"sync"

	"github.com/stackb/classbridge/pkg/java"
)

// Origin says where a symbol was materialized from.
type Origin int

const (
	// OriginHost symbols come from the host loader.
	OriginHost Origin = iota
	// OriginCompilationState symbols were defined from generated or
	// super-source bytes.
	OriginCompilationState
)

func (o Origin) String() string {
	switch o {
	case OriginHost:
		return "host"
	case OriginCompilationState:
		return "compilation-state"
	default:
		return fmt.Sprintf("Origin(%d)", int(o))
	}
}

// Symbol is a class materialized from its class file bytes.  Symbols are
// compared by pointer: a loader hands out the same *Symbol for every request
// of the same name.
type Symbol struct {
	// Name is the binary name, e.g. "com.foo.Bar$Baz".
	Name string
	// Package is the dotted package name.
	Package string
	// Origin is where the bytes came from.
	Origin Origin
	// ClassFile is the parsed class header.
	ClassFile *java.ClassFile

	mu            sync.Mutex
	linkAttempted bool
	linkErr       error
}

// DefineSymbol materializes a symbol from class file bytes, like
// ClassLoader.defineClass.  The class file must declare the requested name.
func DefineSymbol(name string, data []byte, origin Origin) (*Symbol, error) {
	clazz, err := java.ReadClassFile(data)
	if err != nil {
		return nil, fmt.Errorf("define %s: %w", name, err)
	}
	if want := java.InternalName(name); clazz.Name() != want {
		return nil, fmt.Errorf("define %s: %w", name, &java.ClassFormatError{
			Reason: fmt.Sprintf("wrong name: class file declares %s", clazz.Name()),
		})
	}
	return &Symbol{
		Name:      name,
		Package:   java.PackageOf(name),
		Origin:    origin,
		ClassFile: clazz,
	}, nil
}

// IsAnnotation reports whether the symbol is an annotation type.
func (s *Symbol) IsAnnotation() bool {
	return s.ClassFile != nil && s.ClassFile.IsAnnotation()
}

// Link verifies the symbol.  It runs at most once; later calls return the
// first result.
func (s *Symbol) Link() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.linkAttempted {
		s.linkAttempted = true
		s.linkErr = s.verify()
	}
	return s.linkErr
}

// Linked reports whether Link has completed successfully.
func (s *Symbol) Linked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.linkAttempted && s.linkErr == nil
}

func (s *Symbol) verify() error {
	if s.ClassFile == nil {
		return &LinkageError{Name: s.Name, Reason: "no class file"}
	}
	if s.ClassFile.SuperName() == "" && s.ClassFile.Name() != "java/lang/Object" && s.ClassFile.Name() != "module-info" {
		return &LinkageError{Name: s.Name, Reason: "missing superclass"}
	}
	if s.ClassFile.SuperName() == s.ClassFile.Name() {
		return &LinkageError{Name: s.Name, Reason: "class is its own superclass"}
	}
	return nil
}

// String implements fmt.Stringer
func (s *Symbol) String() string {
	return fmt.Sprintf("(%s<%v>)", s.Name, s.Origin)
}
