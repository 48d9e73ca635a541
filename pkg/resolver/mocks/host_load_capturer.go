package mocks

import (
	"testing"

	resolver "github.com/stackb/classbridge/pkg/resolver"
	mock "github.com/stretchr/testify/mock"
)

// HostLoadCapturer records every name the host loader is asked for, along
// with the link argument, and answers with the symbols it was seeded with.
type HostLoadCapturer struct {
	Loader  *HostLoader
	Symbols map[string]*resolver.Symbol
	Got     []string
	Links   []bool
}

func (c *HostLoadCapturer) load(name string, link bool) *resolver.Symbol {
	c.Got = append(c.Got, name)
	c.Links = append(c.Links, link)
	return c.Symbols[name]
}

// Linked reports whether any host load asked for linking.
func (c *HostLoadCapturer) Linked() bool {
	for _, link := range c.Links {
		if link {
			return true
		}
	}
	return false
}

func (c *HostLoadCapturer) err(name string, link bool) error {
	if _, ok := c.Symbols[name]; ok {
		return nil
	}
	return &resolver.SymbolNotFoundError{Name: name, Source: "mock"}
}

func NewHostLoadCapturer(t *testing.T, symbols ...*resolver.Symbol) *HostLoadCapturer {
	c := &HostLoadCapturer{
		Loader:  NewHostLoader(t),
		Symbols: make(map[string]*resolver.Symbol),
	}
	for _, sym := range symbols {
		c.Symbols[sym.Name] = sym
	}

	c.Loader.
		On("LoadByName", mock.AnythingOfType("string"), mock.AnythingOfType("bool")).
		Maybe().
		Return(c.load, c.err)

	return c
}
