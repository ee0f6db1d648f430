package errors

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorType represents different categories of errors.
type ErrorType string

const (
	ErrorTypeInput     ErrorType = "input"
	ErrorTypeAssembly  ErrorType = "assembly"
	ErrorTypeTranscode ErrorType = "transcode"
	ErrorTypeAbort     ErrorType = "abort"
	ErrorTypeConfig    ErrorType = "config"
	ErrorTypeIO        ErrorType = "io"
)

// Common error codes.
const (
	ErrCodeDirectoryNotFound  = "ERR_DIRECTORY_NOT_FOUND"
	ErrCodeNoInputFiles       = "ERR_NO_INPUT_FILES"
	ErrCodeFontAssembly       = "ERR_FONT_ASSEMBLY"
	ErrCodeGlyphCapacity      = "ERR_GLYPH_CAPACITY"
	ErrCodeGlyphNameCollision = "ERR_GLYPH_NAME_COLLISION"
	ErrCodeTranscode          = "ERR_TRANSCODE"
	ErrCodeUserAborted        = "ERR_USER_ABORTED"
	ErrCodeConfigInvalid      = "ERR_CONFIG_INVALID"
	ErrCodeReadInput          = "ERR_READ_INPUT"
	ErrCodeWriteOutput        = "ERR_WRITE_OUTPUT"
)

// IconError is a structured error type with context.
type IconError struct {
	Type     ErrorType
	Code     string
	Message  string
	Cause    error
	Context  map[string]interface{}
	FilePath string
}

// Error implements the error interface.
func (e *IconError) Error() string {
	var parts []string

	if e.Code != "" {
		parts = append(parts, fmt.Sprintf("[%s]", e.Code))
	}

	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}

	parts = append(parts, e.Message)

	result := strings.Join(parts, " ")

	if e.Cause != nil {
		result += fmt.Sprintf(": %v", e.Cause)
	}

	return result
}

// Unwrap returns the underlying cause error.
func (e *IconError) Unwrap() error {
	return e.Cause
}

// Is matches on type and code, so sentinel values such as ErrNoInputFiles
// can be used with errors.Is.
func (e *IconError) Is(target error) bool {
	var t *IconError
	if errors.As(target, &t) {
		return e.Type == t.Type && e.Code == t.Code
	}

	return false
}

// WithContext adds context information to the error.
func (e *IconError) WithContext(key string, value interface{}) *IconError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value

	return e
}

// WithFile records the file the error refers to.
func (e *IconError) WithFile(path string) *IconError {
	e.FilePath = path

	return e
}

// Sentinels for errors.Is comparisons.
var (
	ErrDirectoryNotFound = &IconError{Type: ErrorTypeInput, Code: ErrCodeDirectoryNotFound}
	ErrNoInputFiles      = &IconError{Type: ErrorTypeInput, Code: ErrCodeNoInputFiles}
	ErrUserAborted       = &IconError{Type: ErrorTypeAbort, Code: ErrCodeUserAborted}
)

// Error creation functions

// NewDirectoryNotFoundError reports a missing input directory.
func NewDirectoryNotFoundError(dir string, cause error) *IconError {
	return &IconError{
		Type:     ErrorTypeInput,
		Code:     ErrCodeDirectoryNotFound,
		Message:  "input directory not found",
		Cause:    cause,
		FilePath: dir,
	}
}

// NewNoInputFilesError reports an input directory without icons.
func NewNoInputFilesError(dir string) *IconError {
	return &IconError{
		Type:     ErrorTypeInput,
		Code:     ErrCodeNoInputFiles,
		Message:  "no .svg files found",
		FilePath: dir,
	}
}

// NewAssemblyError creates a font assembly error.
func NewAssemblyError(code, message string, cause error) *IconError {
	if code == "" {
		code = ErrCodeFontAssembly
	}

	return &IconError{
		Type:    ErrorTypeAssembly,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// NewTranscodeError creates a transcoding error.
func NewTranscodeError(message string, cause error) *IconError {
	return &IconError{
		Type:    ErrorTypeTranscode,
		Code:    ErrCodeTranscode,
		Message: message,
		Cause:   cause,
	}
}

// NewUserAbortedError is returned when the overwrite confirmation is declined.
func NewUserAbortedError(message string) *IconError {
	return &IconError{
		Type:    ErrorTypeAbort,
		Code:    ErrCodeUserAborted,
		Message: message,
	}
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *IconError {
	return &IconError{
		Type:    ErrorTypeConfig,
		Code:    ErrCodeConfigInvalid,
		Message: message,
		Cause:   cause,
	}
}

// NewIOError creates an I/O error.
func NewIOError(code, message string, cause error) *IconError {
	return &IconError{
		Type:    ErrorTypeIO,
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// IsAssemblyError checks if an error comes from the font assembly stage.
func IsAssemblyError(err error) bool {
	var ie *IconError
	if errors.As(err, &ie) {
		return ie.Type == ErrorTypeAssembly
	}

	return false
}

// IsTranscodeError checks if an error comes from the transcoding stage.
func IsTranscodeError(err error) bool {
	var ie *IconError
	if errors.As(err, &ie) {
		return ie.Type == ErrorTypeTranscode
	}

	return false
}

// CodeOf returns the error code carried by err, or "" for foreign errors.
func CodeOf(err error) string {
	var ie *IconError
	if errors.As(err, &ie) {
		return ie.Code
	}

	return ""
}
