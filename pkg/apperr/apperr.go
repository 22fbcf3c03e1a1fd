// Package apperr holds the error kinds shared by services and controllers.
package apperr

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"gorm.io/gorm"
)

var (
	ErrNotFound         = errors.New("not found")
	ErrValidation       = errors.New("validation failed")
	ErrInvalidReference = errors.New("invalid reference")
	ErrConflict         = errors.New("conflict")
	ErrForbidden        = errors.New("forbidden")
	// ErrUpstream marks a failure of a remote service the request depended on.
	ErrUpstream = errors.New("upstream failure")
)

// Detail is one field or path level problem.
type Detail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError lists every problem found in an input. It matches ErrValidation with errors.Is.
type ValidationError struct {
	Details []Detail
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Details))
	for _, d := range e.Details {
		parts = append(parts, d.Field+": "+d.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// Checker collects validation details and turns them into a single error.
type Checker struct {
	details []Detail
}

func (c *Checker) Add(field, msg string) {
	c.details = append(c.details, Detail{Field: field, Message: msg})
}

func (c *Checker) Require(field, value string) {
	if strings.TrimSpace(value) == "" {
		c.Add(field, "is required")
	}
}

func (c *Checker) Check(ok bool, field, msg string) {
	if !ok {
		c.Add(field, msg)
	}
}

func (c *Checker) NonNegative(field string, v float64) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		c.Add(field, "must be a finite number")
		return
	}
	if v < 0 {
		c.Add(field, "must be >= 0")
	}
}

func (c *Checker) Err() error {
	if len(c.details) == 0 {
		return nil
	}
	return &ValidationError{Details: c.details}
}

func Invalid(field, msg string) error {
	return &ValidationError{Details: []Detail{{Field: field, Message: msg}}}
}

func NotFound(what string, id uint) error {
	return fmt.Errorf("%s %d: %w", what, id, ErrNotFound)
}

// MustExist turns the result of a repository Exists call into an invalid reference error.
func MustExist(ok bool, err error, field string, id uint) error {
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%s %d does not exist: %w", field, id, ErrInvalidReference)
	}
	return nil
}

// FromDB maps driver level failures of a write or lookup onto error kinds.
// A foreign key failure on insert means a missing parent; on delete it means live children.
func FromDB(err error, what string, deleting bool) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s: %w", what, ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey), strings.Contains(err.Error(), "UNIQUE constraint failed"):
		return fmt.Errorf("%s already exists: %w", what, ErrConflict)
	case errors.Is(err, gorm.ErrForeignKeyViolated), strings.Contains(err.Error(), "FOREIGN KEY constraint failed"):
		if deleting {
			return fmt.Errorf("%s is still referenced: %w", what, ErrConflict)
		}
		return fmt.Errorf("%s references a missing record: %w", what, ErrInvalidReference)
	}
	return err
}
