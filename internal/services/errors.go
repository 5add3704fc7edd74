package services

import "errors"

// ErrValidation is returned when a mandatory field is missing or empty.
var ErrValidation = errors.New("missing required fields")

// ErrWrongCredentials is returned on login failure. Unknown email and
// wrong password collapse into this one error so callers cannot probe
// which addresses are registered.
var ErrWrongCredentials = errors.New("wrong email or password")

// ErrNotOwner is returned when the acting user is not the creator of
// the posting being mutated.
var ErrNotOwner = errors.New("not the owner of this job")
