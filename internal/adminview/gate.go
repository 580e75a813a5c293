package adminview

import (
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Gate checks the shared admin password. It keeps casual eyes off the
// console; it is not an access control boundary, since the API itself
// is open.
type Gate struct {
	plain string
	hash  []byte
}

// PlainGate compares against a plain-text password.
func PlainGate(password string) Gate {
	return Gate{plain: password}
}

// HashGate compares against a bcrypt hash.
func HashGate(hash string) (Gate, error) {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return Gate{}, errors.New("adminview: admin password hash is not a bcrypt hash")
	}
	return Gate{hash: []byte(hash)}, nil
}

// Configured reports whether any password is set.
func (g Gate) Configured() bool {
	return g.plain != "" || len(g.hash) > 0
}

// Check reports whether password opens the gate. An unconfigured gate
// never opens.
func (g Gate) Check(password string) bool {
	switch {
	case len(g.hash) > 0:
		return bcrypt.CompareHashAndPassword(g.hash, []byte(password)) == nil
	case g.plain != "":
		return subtle.ConstantTimeCompare([]byte(g.plain), []byte(password)) == 1
	}
	return false
}
