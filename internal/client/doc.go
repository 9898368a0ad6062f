// Package client is a Go client for the to-do API. It keeps the bearer
// token and the signed-in user in a SessionStore between invocations.
package client
