package spool

import "errors"

var (
	ErrNotSpooled   = errors.New("path was not produced by the spooler")
	ErrInvalidForm  = errors.New("invalid multipart form")
	ErrRegistryFail = errors.New("spool registry operation failed")
)
