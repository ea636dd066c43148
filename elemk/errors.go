package elemk

import (
	"fmt"

	"github.com/pkg/errors"
)

// revive:exported
var (
	ErrNilDocument   = errors.New("document is undefined")
	ErrNilSubject    = errors.New("subject is undefined")
	ErrUnknownDriver = errors.New("unknown driver")
)

// PreconditionErr when a value required by an operation is missing. Err, when
// set, is the sentinel describing what was missing.
type PreconditionErr struct {
	Op    string
	Value string
	Err   error
}

func (e *PreconditionErr) Error() string {
	return fmt.Sprintf("%s: %s is undefined", e.Op, e.Value)
}

// Unwrap for errors.Is, errors.Cause stops here so the type stays visible
func (e *PreconditionErr) Unwrap() error {
	return e.Err
}

// SubjectTypeErr when a subject is defined but of a type an operation cannot use
type SubjectTypeErr struct {
	Op   string
	Type string
}

func (e *SubjectTypeErr) Error() string {
	return fmt.Sprintf("%s: subject of type %s is not a node set, element or component", e.Op, e.Type)
}

// MissingMemberErr when a property or method does not exist on a subject
type MissingMemberErr struct {
	Member string
}

func (e *MissingMemberErr) Error() string {
	return "Cannot find " + e.Member + " in subject"
}

// QueryErr when a driver failed to execute a selector
type QueryErr struct {
	Query string
	Err   error
}

func (e *QueryErr) Error() string {
	return "unable to execute query " + e.Query + ": " + e.Err.Error()
}

// Cause for pkg/errors
func (e *QueryErr) Cause() error {
	return e.Err
}

// Unwrap for errors.Is / errors.As
func (e *QueryErr) Unwrap() error {
	return e.Err
}

// IsPrecondition answers if err (or anything it wraps) is a precondition violation
func IsPrecondition(err error) bool {
	var pe *PreconditionErr
	return errors.As(err, &pe)
}

// IsMissingMember answers if err (or anything it wraps) is a missing member error
func IsMissingMember(err error) bool {
	var me *MissingMemberErr
	return errors.As(err, &me)
}
