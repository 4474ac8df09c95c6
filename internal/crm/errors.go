package crm

import (
	"errors"
	"fmt"
)

// errWriteNotAcked marks a write the store completed without acknowledging.
var errWriteNotAcked = errors.New("store did not acknowledge the write")

// The pipeline's failure modes are typed so callers can branch on kind
// instead of string-matching messages. Tool boundaries convert these into
// structured result values; nothing propagates past a tool handler.

// ConnectionError means the remote store was unreachable or rejected auth.
type ConnectionError struct {
	Err error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("failed to connect to Odoo: %v", e.Err)
}

func (e *ConnectionError) Unwrap() error { return e.Err }

// NotFoundError means a named entity (project, lead) is absent.
type NotFoundError struct {
	Entity string
	Key    string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s '%s' not found.", e.Entity, e.Key)
}

// MalformedResponseError means the model output could not be parsed into
// the expected structured document. Raw carries the full response text.
type MalformedResponseError struct {
	Raw    string
	Reason string
}

func (e *MalformedResponseError) Error() string {
	return fmt.Sprintf("malformed model response: %s", e.Reason)
}

// ValidationError means a parseable document did not match the expected
// classification schema, or caller-supplied input was invalid.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("validation failed: %s", e.Reason)
	}
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

// RemoteCallError means the store rejected an operation.
type RemoteCallError struct {
	Op  string
	Err error
}

func (e *RemoteCallError) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Op, e.Err)
}

func (e *RemoteCallError) Unwrap() error { return e.Err }
