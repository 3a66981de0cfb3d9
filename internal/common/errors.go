package common

import (
	"errors"

	"github.com/lib/pq"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrEditConflict   = errors.New("edit conflict")
	ErrForbidden      = errors.New("forbidden")
)

// UniqueViolation reports whether err is a postgres unique constraint error on
// the named constraint. An empty name matches any constraint.
func UniqueViolation(err error, name string) bool {
	return pqError(err, "23505", name)
}

// ForeignKeyViolation reports whether err is a postgres foreign key error on
// the named constraint. An empty name matches any constraint.
func ForeignKeyViolation(err error, name string) bool {
	return pqError(err, "23503", name)
}

func pqError(err error, code pq.ErrorCode, name string) bool {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == code && (name == "" || pqErr.Constraint == name)
	}

	return false
}
