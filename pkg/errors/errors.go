// Package errors provides custom error types for the ferceqr system.
// These errors enable programmatic error checking and let the quarterly
// archive preprocessor distinguish expected per-seller defects (missing
// record-type files, broken inner ZIPs) from genuine failures.
package errors

import (
	"errors"
	"fmt"
)

// New returns an error that formats as the given text.
// It's an alias for the standard library errors.New for convenience.
var New = errors.New

// Is reports whether any error in err's chain matches target.
// It's an alias for the standard library errors.Is for convenience.
var Is = errors.Is

// As finds the first error in err's chain that matches target.
// It's an alias for the standard library errors.As for convenience.
var As = errors.As

// Common sentinel errors for the ferceqr system
var (
	// ErrNotFound indicates that a requested resource was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates that provided input was invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrMissingEOCD indicates that a FERC-provided inner ZIP is missing its
	// end of central directory record and cannot be opened
	ErrMissingEOCD = errors.New("missing end of central directory record")

	// ErrMissingRecordType indicates that a seller's inner ZIP has no file
	// for the requested record type (transactions, contracts, ...)
	ErrMissingRecordType = errors.New("record type file not found")

	// ErrDecode indicates that a record-type CSV payload could not be
	// decoded with any of the supported encodings
	ErrDecode = errors.New("cannot decode file")

	// ErrTruncatedZip indicates that a seller's inner ZIP is shorter than
	// its declared size in the outer archive
	ErrTruncatedZip = errors.New("truncated inner ZIP")

	// ErrTimeout indicates that an operation timed out
	ErrTimeout = errors.New("operation timed out")

	// ErrCanceled indicates that an operation was canceled
	ErrCanceled = errors.New("operation canceled")
)

// MissingEOCDError is raised when a seller's inner ZIP inside a quarterly
// archive has no end of central directory signature in its tail.
type MissingEOCDError struct {
	ZipName string
}

// Error implements the error interface
func (e *MissingEOCDError) Error() string {
	return fmt.Sprintf("ZIP file is missing EOCD: %s", e.ZipName)
}

// Is implements errors.Is support
func (e *MissingEOCDError) Is(target error) bool {
	return target == ErrMissingEOCD
}

// NewMissingEOCDError creates a new MissingEOCDError
func NewMissingEOCDError(zipName string) *MissingEOCDError {
	return &MissingEOCDError{ZipName: zipName}
}

// MissingRecordTypeError is raised when a seller's inner ZIP is missing the
// file for a record type, e.g. its transactions or contracts dataset.
type MissingRecordTypeError struct {
	ZipName    string
	RecordType string
}

// Error implements the error interface
func (e *MissingRecordTypeError) Error() string {
	if e.RecordType != "" {
		return fmt.Sprintf("no %s file found in %q", e.RecordType, e.ZipName)
	}
	return fmt.Sprintf("desired record type file not found in %q", e.ZipName)
}

// Is implements errors.Is support
func (e *MissingRecordTypeError) Is(target error) bool {
	return target == ErrMissingRecordType
}

// NewMissingRecordTypeError creates a new MissingRecordTypeError
func NewMissingRecordTypeError(zipName, recordType string) *MissingRecordTypeError {
	return &MissingRecordTypeError{ZipName: zipName, RecordType: recordType}
}

// TruncatedZipError is raised when a seller's inner ZIP decompresses to
// fewer bytes than the outer archive declares for it.
type TruncatedZipError struct {
	ZipName  string
	Expected uint64
	Got      uint64
}

// Error implements the error interface
func (e *TruncatedZipError) Error() string {
	return fmt.Sprintf("truncated inner ZIP for %q: expected %d bytes; got %d bytes", e.ZipName, e.Expected, e.Got)
}

// Is implements errors.Is support
func (e *TruncatedZipError) Is(target error) bool {
	return target == ErrTruncatedZip
}

// DecodeError is raised when a record-type payload cannot be decoded as
// UTF-8 or any of the fallback encodings.
type DecodeError struct {
	Source    string
	Encodings []string
}

// Error implements the error interface
func (e *DecodeError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("cannot decode file %q (tried %v)", e.Source, e.Encodings)
	}
	return fmt.Sprintf("cannot decode file (tried %v)", e.Encodings)
}

// Is implements errors.Is support
func (e *DecodeError) Is(target error) bool {
	return target == ErrDecode
}

// ValidationError represents a validation failure
type ValidationError struct {
	Field   string
	Value   any
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for field %s: %s", e.Field, e.Message)
	}
	return fmt.Sprintf("validation failed: %s", e.Message)
}

// Is implements errors.Is support
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidInput
}

// NewValidationError creates a new ValidationError
func NewValidationError(field string, value any, message string) *ValidationError {
	return &ValidationError{Field: field, Value: value, Message: message}
}

// IOError represents a file system or I/O related error
type IOError struct {
	Operation string
	Path      string
	Err       error
}

// Error implements the error interface
func (e *IOError) Error() string {
	return fmt.Sprintf("I/O error during %s on %s: %v", e.Operation, e.Path, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError creates a new IOError
func NewIOError(operation, path string, err error) *IOError {
	return &IOError{Operation: operation, Path: path, Err: err}
}

// ParseError represents a failure parsing structured data
type ParseError struct {
	Format  string
	Source  string
	Message string
	Err     error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Source != "" {
		return fmt.Sprintf("failed to parse %s from %s: %s", e.Format, e.Source, e.Message)
	}
	return fmt.Sprintf("failed to parse %s: %s", e.Format, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *ParseError) Unwrap() error {
	return e.Err
}

// DownloadError represents a failure downloading a filing from FERC
type DownloadError struct {
	URL        string
	StatusCode int
	Err        error
}

// Error implements the error interface
func (e *DownloadError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("download failed for %s (status %d): %v", e.URL, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("download failed for %s: %v", e.URL, e.Err)
}

// Unwrap implements errors.Unwrap
func (e *DownloadError) Unwrap() error {
	return e.Err
}

// Helper wrapping functions for common patterns

// WrapIO wraps an error as an IOError
func WrapIO(operation, path string, err error) error {
	if err == nil {
		return nil
	}
	return NewIOError(operation, path, err)
}

// WrapParse wraps an error as a ParseError
func WrapParse(format, source string, err error) error {
	if err == nil {
		return nil
	}
	return &ParseError{Format: format, Source: source, Message: err.Error(), Err: err}
}

// WrapValidation wraps an error as a ValidationError
func WrapValidation(field string, err error) error {
	if err == nil {
		return nil
	}
	return &ValidationError{Field: field, Message: err.Error()}
}

// WrapDownload wraps an error as a DownloadError
func WrapDownload(url string, statusCode int, err error) error {
	if err == nil {
		return nil
	}
	return &DownloadError{URL: url, StatusCode: statusCode, Err: err}
}

// IsExpectedDefect reports whether err is one of the per-seller archive
// defects that the preprocessor logs and skips regardless of strict mode.
func IsExpectedDefect(err error) bool {
	return errors.Is(err, ErrMissingRecordType) ||
		errors.Is(err, ErrMissingEOCD) ||
		errors.Is(err, ErrTruncatedZip) ||
		errors.Is(err, ErrDecode)
}
