package compilation

import "github.com/stackb/classbridge/pkg/resolver"

// StandardContext is the generator context handed to the bridge.  It
// implements resolver.CompilationStateProvider.
type StandardContext struct {
	name  string
	state *State
}

func NewStandardContext(name string, state *State) *StandardContext {
	return &StandardContext{
		name:  name,
		state: state,
	}
}

// String implements fmt.Stringer
func (c *StandardContext) String() string {
	return c.name
}

// CompilationState implements resolver.CompilationStateProvider.
func (c *StandardContext) CompilationState() resolver.CompilationState {
	if c.state == nil {
		return nil
	}
	return c.state
}
