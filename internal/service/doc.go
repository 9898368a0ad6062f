// Package service contains the application use cases: registering and
// authenticating users, and managing each user's tasks.
//
// Services receive their stores and primitives through constructor
// injection and depend only on the interfaces in internal/store, never on a
// concrete backend. Expected failures are returned as sentinel errors that
// wrap a category from internal/domain; the API layer maps those categories
// to HTTP status codes. Unexpected dependency failures are wrapped in a
// ServiceError and surface as internal errors.
package service
