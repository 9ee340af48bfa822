package repository

import "errors"

// ErrNoRowsAffected signals that a write targeted a row that does not exist.
var ErrNoRowsAffected = errors.New("no rows affected")
