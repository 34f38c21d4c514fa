package domain

import (
	"errors"
	"fmt"
)

// Error message string constants - single source of truth for error messages
const (
	ErrMsgItemNotFound   = "item not found"
	ErrMsgPlayerNotFound = "player not found"
	ErrMsgNotFound       = "not found"
	ErrMsgResourceBusy   = "resource busy"
	ErrMsgUnprocessable  = "unprocessable parameters"
	ErrMsgLookupFailed   = "price lookup failed"
	ErrMsgParse          = "parse error"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: %s", domain.ErrXxx, detail) for context.
var (
	// ErrNotFound reports a missing item or player on lookup. Callers treat
	// it as a distinct outcome from a storage failure.
	ErrNotFound = errors.New(ErrMsgNotFound)

	// ErrResourceBusy reports that the backing store file is held open by
	// another process during a destructive rebuild.
	ErrResourceBusy = errors.New(ErrMsgResourceBusy)

	// ErrUnprocessable reports malformed initialization parameters.
	ErrUnprocessable = errors.New(ErrMsgUnprocessable)

	// ErrLookupFailed reports an unreachable or unparseable external price
	// source. Non-fatal: the affected price stays unresolved.
	ErrLookupFailed = errors.New(ErrMsgLookupFailed)

	// ErrParse reports a malformed input field.
	ErrParse = errors.New(ErrMsgParse)
)

// RowParseError identifies the input row on which ingestion failed.
type RowParseError struct {
	Row int
	Err error
}

func (e *RowParseError) Error() string {
	return fmt.Sprintf("row %d: %v", e.Row, e.Err)
}

func (e *RowParseError) Unwrap() error {
	return e.Err
}
