package mocks

import (
	resolver "github.com/stackb/classbridge/pkg/resolver"
	mock "github.com/stretchr/testify/mock"
)

// HostLoader is a mock type for the HostLoader type
type HostLoader struct {
	mock.Mock
}

// LoadByName provides a mock function with given fields: name, link
func (_m *HostLoader) LoadByName(name string, link bool) (*resolver.Symbol, error) {
	ret := _m.Called(name, link)

	var r0 *resolver.Symbol
	if rf, ok := ret.Get(0).(func(string, bool) *resolver.Symbol); ok {
		r0 = rf(name, link)
	} else {
		if ret.Get(0) != nil {
			r0 = ret.Get(0).(*resolver.Symbol)
		}
	}

	var r1 error
	if rf, ok := ret.Get(1).(func(string, bool) error); ok {
		r1 = rf(name, link)
	} else {
		r1 = ret.Error(1)
	}

	return r0, r1
}

type mockConstructorTestingTNewHostLoader interface {
	mock.TestingT
	Cleanup(func())
}

// NewHostLoader creates a new instance of HostLoader. It also registers a testing interface on the mock and a cleanup function to assert the mocks expectations.
func NewHostLoader(t mockConstructorTestingTNewHostLoader) *HostLoader {
	mock := &HostLoader{}
	mock.Mock.Test(t)

	t.Cleanup(func() { mock.AssertExpectations(t) })

	return mock
}
