package resolver

import "fmt"

// CompiledClass is a class produced by a generator or rewritten by
// super-source during the current compilation.
type CompiledClass struct {
	// InternalName is the slash-separated name, e.g. "com/foo/Bar".
	InternalName string
	// PackageName is the dotted package name.
	PackageName string
	// Bytes is the class file.
	Bytes []byte
}

func (c *CompiledClass) String() string {
	return fmt.Sprintf("%s (%d bytes)", c.InternalName, len(c.Bytes))
}

// CompilationState is the store of compiled classes, keyed by internal name.
type CompilationState interface {
	ClassFileMap() map[string]*CompiledClass
}

// GeneratorContext is whatever the generation pipeline hands the bridge as
// its reference to the compilation state.  Only contexts that also implement
// CompilationStateProvider can be introspected.
type GeneratorContext interface {
	fmt.Stringer
}

// CompilationStateProvider is the capability a GeneratorContext implements
// when it can expose its compilation state.
type CompilationStateProvider interface {
	CompilationState() CompilationState
}
