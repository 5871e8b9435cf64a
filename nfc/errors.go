package nfc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode represents a specific type of NFC error for programmatic handling.
type ErrorCode int

const (
	// Tag operation errors (100-199)
	ErrCodeNotSupported ErrorCode = iota + 100
	ErrCodeTagRemoved
	ErrCodeConnectFailed
	ErrCodeReadFailed
	ErrCodeTransceiveFailed
	ErrCodeRetriesExhausted
	ErrCodeInvalidData
)

// NFCError provides structured error information for programmatic handling.
type NFCError struct {
	Code    ErrorCode
	Op      string // Operation that failed (e.g., "ReadIsoDep", "Transceive")
	TagUID  string // Optional: UID of tag involved
	Message string // Human-readable message
	Cause   error  // Underlying error
}

func (e *NFCError) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Message)
	if e.Cause != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Cause.Error())
	}
	return sb.String()
}

func (e *NFCError) Unwrap() error {
	return e.Cause
}

func (e *NFCError) Is(target error) bool {
	if t, ok := target.(*NFCError); ok {
		return e.Code == t.Code
	}
	return false
}

// NewNotSupportedError creates an error for a technology or format the tag does not offer.
func NewNotSupportedError(op, message string) *NFCError {
	if message == "" {
		message = "operation not supported"
	}
	return &NFCError{
		Code:    ErrCodeNotSupported,
		Op:      op,
		Message: message,
	}
}

// NewTagRemovedError creates an error for when a tag is removed mid-operation.
func NewTagRemovedError(op string, cause error) *NFCError {
	return &NFCError{
		Code:    ErrCodeTagRemoved,
		Op:      op,
		Message: "tag removed during operation",
		Cause:   cause,
	}
}

// NewConnectError creates an error for a failed technology connect.
func NewConnectError(op string, cause error) *NFCError {
	return &NFCError{
		Code:    ErrCodeConnectFailed,
		Op:      op,
		Message: "connect failed",
		Cause:   cause,
	}
}

// NewReadError creates an error for read failures.
func NewReadError(op string, cause error) *NFCError {
	return &NFCError{
		Code:    ErrCodeReadFailed,
		Op:      op,
		Message: "read failed",
		Cause:   cause,
	}
}

// NewTransceiveError creates an error for transceive failures.
func NewTransceiveError(op string, cause error) *NFCError {
	return &NFCError{
		Code:    ErrCodeTransceiveFailed,
		Op:      op,
		Message: "transceive failed",
		Cause:   cause,
	}
}

// NewRetriesExhaustedError is returned when every attempt of a retried command failed.
func NewRetriesExhaustedError(op string, attempts int, cause error) *NFCError {
	return &NFCError{
		Code:    ErrCodeRetriesExhausted,
		Op:      op,
		Message: fmt.Sprintf("failed to read data from card after %d attempts", attempts),
		Cause:   cause,
	}
}

// IsNotSupportedError checks if an error indicates an unsupported operation.
func IsNotSupportedError(err error) bool {
	if err == nil {
		return false
	}
	var nfcErr *NFCError
	if errors.As(err, &nfcErr) {
		return nfcErr.Code == ErrCodeNotSupported
	}
	// Fallback to string matching for errors coming straight from the drivers
	errStr := err.Error()
	return strings.Contains(errStr, "not supported") ||
		strings.Contains(errStr, "operation not supported")
}

// IsTagRemovedError checks if an error indicates the tag was removed.
func IsTagRemovedError(err error) bool {
	if err == nil {
		return false
	}
	var nfcErr *NFCError
	if errors.As(err, &nfcErr) && nfcErr.Code == ErrCodeTagRemoved {
		return true
	}
	if IsCardRemovedError(err) {
		return true
	}
	errStr := err.Error()
	return strings.Contains(errStr, "tag removed") ||
		strings.Contains(errStr, "tag lost") ||
		strings.Contains(errStr, "Target was removed")
}

// IsRetriesExhaustedError reports whether a retried command gave up.
func IsRetriesExhaustedError(err error) bool {
	return GetErrorCode(err) == ErrCodeRetriesExhausted
}

// GetErrorCode extracts the ErrorCode from an error if it's an NFCError.
// Returns 0 if the error is not an NFCError.
func GetErrorCode(err error) ErrorCode {
	var nfcErr *NFCError
	if errors.As(err, &nfcErr) {
		return nfcErr.Code
	}
	return 0
}

// WrapError wraps an existing error with NFC context.
func WrapError(code ErrorCode, op, message string, cause error) *NFCError {
	return &NFCError{
		Code:    code,
		Op:      op,
		Message: message,
		Cause:   cause,
	}
}

// Errorf creates an NFCError with a formatted message.
func Errorf(code ErrorCode, op, format string, args ...any) *NFCError {
	return &NFCError{
		Code:    code,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}
