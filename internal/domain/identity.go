package domain

// Identity is the authenticated principal a task operation runs as.
// It is only produced by the auth service after a token has been verified.
type Identity struct {
	Email string
}

// IsZero reports whether the identity carries no email.
func (i Identity) IsZero() bool {
	return i.Email == ""
}
