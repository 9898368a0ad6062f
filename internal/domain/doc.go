// Package domain contains the core business entities of the to-do service:
// users, tasks and the authenticated identity that scopes task access.
// It is independent of any storage or transport concern.
package domain
