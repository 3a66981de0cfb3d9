package userservice

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

const passwordCost = 12

// set hashes plain. The plain text is kept on the struct for validation.
func (p *Password) set(plain string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), passwordCost)
	if err != nil {
		return err
	}

	p.Plain, p.hash = plain, hash

	return nil
}

// matches reports whether plain is the stored password. A mismatch is not an
// error.
func (p *Password) matches(plain string) (bool, error) {
	if len(p.hash) == 0 {
		return false, nil
	}

	err := bcrypt.CompareHashAndPassword(p.hash, []byte(plain))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return false, nil
	default:
		return false, err
	}
}
