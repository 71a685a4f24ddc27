package types

import (
	"errors"
	"fmt"
)

var (
	ErrRootNotFound  = errors.New("log directory not found")
	ErrInvalidConfig = errors.New("invalid configuration")
)

// ValidationError names the offending setting. It matches ErrInvalidConfig.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

func (e ValidationError) Unwrap() error {
	return ErrInvalidConfig
}

// LoaderError is an I/O failure on a directory or session log.
type LoaderError struct {
	Path string
	Err  error
}

func (e LoaderError) Error() string {
	return fmt.Sprintf("cannot read session log %s: %v", e.Path, e.Err)
}

func (e LoaderError) Unwrap() error {
	return e.Err
}

// ParseError locates a discarded line within a session log.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e ParseError) Error() string {
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e ParseError) Unwrap() error {
	return e.Err
}
