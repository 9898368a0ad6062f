// Package mocks provides centralized mock implementations for testing.
//
// Store mocks are built on testify/mock so tests can set expectations per
// call; the JWT service and password mocks use function fields with fixed
// defaults for simple cases.
//
//	users := new(mocks.UserStore)
//	users.On("GetByEmail", mock.Anything, "a@x.com").Return(nil, store.ErrUserNotFound)
package mocks
