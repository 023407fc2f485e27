package types

import (
	"fmt"
)

// OperationError wraps the error that aborted an order engine operation.
// Nothing staged by the operation was committed.
type OperationError struct {
	Operation   string
	OperationID string
	Err         error
}

// Error implements the error interface.
func (e OperationError) Error() string {
	return fmt.Sprintf("%s (operation %s) rolled back: %v", e.Operation, e.OperationID, e.Err)
}

// Unwrap returns the underlying error.
func (e OperationError) Unwrap() error {
	return e.Err
}

// CommitError represents an error that occurs while committing a ledger transaction.
type CommitError struct {
	Err error
}

// Error implements the error interface.
func (e CommitError) Error() string {
	return fmt.Sprintf("failed to commit ledger transaction: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e CommitError) Unwrap() error {
	return e.Err
}

// ConvertingAmountError represents an error that occurs while converting an amount at a tick price.
type ConvertingAmountError struct {
	TickID int64
	Err    error
}

// Error implements the error interface.
func (e ConvertingAmountError) Error() string {
	return fmt.Sprintf("error converting amount at tick %d: %v", e.TickID, e.Err)
}

// Unwrap returns the underlying error.
func (e ConvertingAmountError) Unwrap() error {
	return e.Err
}

// MissingAccountError is returned when the request does not identify the caller.
type MissingAccountError struct {
	Header string
}

// Error implements the error interface.
func (e MissingAccountError) Error() string {
	return fmt.Sprintf("missing account identity, expected %s header", e.Header)
}

// ParsingAmountError represents an error that occurs while parsing an amount field.
type ParsingAmountError struct {
	Field  string
	Amount string
	Err    error
}

// Error implements the error interface.
func (e ParsingAmountError) Error() string {
	return fmt.Sprintf("error parsing %s %q: %v", e.Field, e.Amount, e.Err)
}

// ParsingTickIDError represents an error that occurs while parsing a tick ID.
type ParsingTickIDError struct {
	TickID string
	Err    error
}

// Error implements the error interface.
func (e ParsingTickIDError) Error() string {
	return fmt.Sprintf("error parsing tick id %q: %v", e.TickID, e.Err)
}

// ParsingBoolError represents an error that occurs while parsing a boolean query parameter.
type ParsingBoolError struct {
	Field string
	Value string
	Err   error
}

// Error implements the error interface.
func (e ParsingBoolError) Error() string {
	return fmt.Sprintf("error parsing %s %q: %v", e.Field, e.Value, e.Err)
}
