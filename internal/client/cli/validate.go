package cli

import (
	"strings"
	"unicode/utf8"

	"github.com/dmitrijs2005/localboost/internal/client/client"
	"github.com/dmitrijs2005/localboost/internal/client/models"
)

const (
	maxNameLen     = 255
	phoneDigits    = 10
	minPasswordLen = 8
	maxPasswordLen = 128
)

// formError lists every field problem found before a request is sent.
// It matches client.ErrValidation.
type formError struct {
	problems []string
}

func (e *formError) Error() string {
	return strings.Join(e.problems, "; ")
}

func (e *formError) Unwrap() error {
	return client.ErrValidation
}

func (e *formError) add(msg string) {
	e.problems = append(e.problems, msg)
}

func (e *formError) orNil() error {
	if len(e.problems) == 0 {
		return nil
	}
	return e
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func checkEmail(fe *formError, email string) {
	switch {
	case email == "":
		fe.add("Email is required")
	case !strings.Contains(email, "@"):
		fe.add("Enter a valid email")
	}
}

func validateCredentials(c models.Credentials) error {
	fe := &formError{}
	checkEmail(fe, c.Email)
	if c.Password == "" {
		fe.add("Password is required")
	}
	return fe.orNil()
}

func validateRegistration(r models.Registration) error {
	fe := &formError{}

	switch n := utf8.RuneCountInString(r.Name); {
	case n == 0:
		fe.add("Name is required")
	case n > maxNameLen:
		fe.add("Name is too long")
	}

	checkEmail(fe, r.Email)

	switch {
	case r.Phone == "":
		fe.add("Phone is required")
	case !isDigits(r.Phone, phoneDigits):
		fe.add("Phone must be 10 digits")
	}

	switch n := utf8.RuneCountInString(r.Password); {
	case n == 0:
		fe.add("Password is required")
	case n < minPasswordLen:
		fe.add("Minimum 8 characters")
	case n > maxPasswordLen:
		fe.add("Maximum 128 characters")
	}

	return fe.orNil()
}

func isDigits(s string, n int) bool {
	if len(s) != n {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
