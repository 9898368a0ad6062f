package domain

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf16"
)

// User validation errors
var (
	ErrCredentialsRequired = fmt.Errorf("%w: email and password are required", ErrValidation)
	ErrInvalidEmail        = fmt.Errorf("%w: invalid email format", ErrValidation)
	ErrWeakPassword        = fmt.Errorf(
		"%w: password must be at least 6 characters long and include 1 uppercase letter, 1 number, and 1 special symbol",
		ErrValidation,
	)
	ErrEmptyHashedPassword = fmt.Errorf("%w: hashed password cannot be empty", ErrValidation)
)

// MinPasswordLength is the shortest password accepted at registration.
const MinPasswordLength = 6

// PasswordSymbols lists the characters that satisfy the symbol requirement.
const PasswordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

// emailSpace is every character treated as whitespace in an email address,
// including the Unicode spaces and the byte order mark.
const emailSpace = `\t\n\v\f\r \x{00a0}\x{1680}\x{2000}-\x{200a}\x{2028}\x{2029}\x{202f}\x{205f}\x{3000}\x{feff}`

var emailPattern = regexp.MustCompile(
	`^[^` + emailSpace + `@]+@[^` + emailSpace + `@]+\.[^` + emailSpace + `@]+$`,
)

// User represents a registered user. Email is the identity key and is
// matched case-sensitively.
type User struct {
	Email          string    `json:"email"`
	Password       string    `json:"-"` // Plaintext, only set between registration and hashing
	HashedPassword string    `json:"-"`
	CreatedAt      time.Time `json:"-"`
}

// NewUser creates a User from registration input.
// The caller is responsible for hashing Password before storing the user.
func NewUser(email, password string) (*User, error) {
	if err := ValidateRegistration(email, password); err != nil {
		return nil, err
	}

	return &User{
		Email:     email,
		Password:  password,
		CreatedAt: time.Now().UTC(),
	}, nil
}

// Validate checks a user that is about to be persisted.
func (u *User) Validate() error {
	if u.Email == "" {
		return ErrCredentialsRequired
	}
	if !ValidEmail(u.Email) {
		return ErrInvalidEmail
	}
	if u.HashedPassword == "" {
		return ErrEmptyHashedPassword
	}
	return nil
}

// ValidateCredentials checks that both login fields are present.
func ValidateCredentials(email, password string) error {
	if email == "" || password == "" {
		return ErrCredentialsRequired
	}
	return nil
}

// ValidateRegistration applies the presence, email-shape and password-strength
// rules in that order and returns the first failure.
func ValidateRegistration(email, password string) error {
	if err := ValidateCredentials(email, password); err != nil {
		return err
	}
	if !ValidEmail(email) {
		return ErrInvalidEmail
	}
	if !StrongPassword(password) {
		return ErrWeakPassword
	}
	return nil
}

// ValidEmail reports whether email has the local@domain.tld shape.
func ValidEmail(email string) bool {
	return emailPattern.MatchString(email)
}

// StrongPassword reports whether password has at least MinPasswordLength
// characters, an uppercase letter, a digit and one of PasswordSymbols.
// Length is counted in UTF-16 code units, so a character outside the Basic
// Multilingual Plane counts twice. Line terminators are not allowed anywhere
// in the password.
func StrongPassword(password string) bool {
	if strings.ContainsAny(password, "\n\r\u2028\u2029") {
		return false
	}
	if len(utf16.Encode([]rune(password))) < MinPasswordLength {
		return false
	}

	var upper, digit, symbol bool
	for _, r := range password {
		switch {
		case r >= 'A' && r <= 'Z':
			upper = true
		case r >= '0' && r <= '9':
			digit = true
		case strings.ContainsRune(PasswordSymbols, r):
			symbol = true
		}
	}
	return upper && digit && symbol
}
