package resolver

import (
	"fmt"
	"sync"

	"github.com/stackb/classbridge/pkg/java"
	"github.com/stackb/classbridge/pkg/logger"
)

type indexState int

const (
	indexUnbuilt indexState = iota
	indexBuilt
	indexUnavailable
)

// ClassIndex lazily extracts the class file map from a generator context.
// Extraction is attempted once; the result (a map or "unavailable") is fixed
// for the life of the index.
type ClassIndex struct {
	context GeneratorContext
	logger  logger.TreeLogger

	mu      sync.Mutex
	state   indexState
	classes map[string]*CompiledClass
}

func NewClassIndex(context GeneratorContext, logger logger.TreeLogger) *ClassIndex {
	return &ClassIndex{
		context: context,
		logger:  logger,
	}
}

// Lookup returns the compiled class for a binary name.  It returns false
// when the class is not in the compilation state or the state could not be
// extracted.
func (ix *ClassIndex) Lookup(name string) (*CompiledClass, bool) {
	classes := ix.build()
	if classes == nil {
		return nil, false
	}
	compiled, ok := classes[java.InternalName(name)]
	return compiled, ok
}

// Available builds the index if needed and reports whether it is usable.
func (ix *ClassIndex) Available() bool {
	return ix.build() != nil
}

// Len is the number of classes in the index, zero if unavailable.
func (ix *ClassIndex) Len() int {
	return len(ix.build())
}

func (ix *ClassIndex) build() map[string]*CompiledClass {
	ix.mu.Lock()
	defer ix.mu.Unlock()

	if ix.state == indexUnbuilt {
		ix.classes = ix.extractClassFileMap()
		if ix.classes == nil {
			ix.state = indexUnavailable
		} else {
			ix.state = indexBuilt
		}
	}
	return ix.classes
}

func (ix *ClassIndex) extractClassFileMap() map[string]*CompiledClass {
	provider, ok := ix.context.(CompilationStateProvider)
	if !ok {
		ix.logger.Log(logger.WARN, fmt.Sprintf(
			"Could not load generated classes from generator context, encountered unexpected context type %T.", ix.context))
		return nil
	}
	state := provider.CompilationState()
	if state == nil {
		ix.logger.Log(logger.WARN, fmt.Sprintf(
			"Could not load generated classes from generator context %s: no compilation state.", ix.context))
		return nil
	}

	classes := make(map[string]*CompiledClass)
	for name, compiled := range state.ClassFileMap() {
		if compiled == nil {
			continue
		}
		classes[name] = compiled
	}
	return classes
}
