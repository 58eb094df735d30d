// Package errors provides the scan error taxonomy.
// Every fatal pipeline condition carries a Code that maps onto a gRPC status
// so the CLI, HTTP and gRPC surfaces report the same cause.
package errors

import (
	stderrors "errors"
	"fmt"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// ErrorDomain identifies scan errors inside errdetails.ErrorInfo.
const ErrorDomain = "catalogscanner"

// Code identifies the cause of a failed scan.
type Code int

const (
	CodeUnknown Code = iota
	CodeInternal
	CodeInvalidArgument
	CodeNotFound
	CodeUnavailable

	// Fatal scan preconditions.
	CodeInvalidResolution
	CodeUnsupportedCatalog
	CodeInconsistentScroll
	CodeScrollTooSlow
	CodeNoItems
	CodeOCRContract
	CodeMatchFailed
	CodeUnknownScript
)

var codeNames = map[Code]string{
	CodeUnknown:            "UNKNOWN",
	CodeInternal:           "INTERNAL",
	CodeInvalidArgument:    "INVALID_ARGUMENT",
	CodeNotFound:           "NOT_FOUND",
	CodeUnavailable:        "UNAVAILABLE",
	CodeInvalidResolution:  "INVALID_RESOLUTION",
	CodeUnsupportedCatalog: "UNSUPPORTED_CATALOG",
	CodeInconsistentScroll: "INCONSISTENT_SCROLL",
	CodeScrollTooSlow:      "SCROLL_TOO_SLOW",
	CodeNoItems:            "NO_ITEMS",
	CodeOCRContract:        "OCR_CONTRACT",
	CodeMatchFailed:        "MATCH_FAILED",
	CodeUnknownScript:      "UNKNOWN_SCRIPT",
}

func (c Code) String() string {
	if s, ok := codeNames[c]; ok {
		return s
	}
	return codeNames[CodeUnknown]
}

// ParseCode is the inverse of Code.String.
func ParseCode(s string) Code {
	for c, name := range codeNames {
		if name == s {
			return c
		}
	}
	return CodeUnknown
}

// grpcCodeMap maps scan codes to gRPC status codes.
var grpcCodeMap = map[Code]codes.Code{
	CodeUnknown:            codes.Unknown,
	CodeInternal:           codes.Internal,
	CodeInvalidArgument:    codes.InvalidArgument,
	CodeNotFound:           codes.NotFound,
	CodeUnavailable:        codes.Unavailable,
	CodeInvalidResolution:  codes.InvalidArgument,
	CodeUnsupportedCatalog: codes.FailedPrecondition,
	CodeInconsistentScroll: codes.FailedPrecondition,
	CodeScrollTooSlow:      codes.FailedPrecondition,
	CodeNoItems:            codes.FailedPrecondition,
	CodeOCRContract:        codes.Internal,
	CodeMatchFailed:        codes.FailedPrecondition,
	CodeUnknownScript:      codes.FailedPrecondition,
}

// AppError is the base error type with structured error code and metadata.
type AppError struct {
	Code     Code
	Message  string
	Metadata map[string]string
	Cause    error
}

// Error returns the human-readable message. The code is left out so the
// text can be shown to end users as is.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

// Unwrap returns the underlying cause for errors.Is/As.
func (e *AppError) Unwrap() error { return e.Cause }

// GRPCCode returns the corresponding gRPC status code.
func (e *AppError) GRPCCode() codes.Code {
	if c, ok := grpcCodeMap[e.Code]; ok {
		return c
	}
	return codes.Unknown
}

// GRPCStatus returns a gRPC status with an ErrorInfo detail attached.
func (e *AppError) GRPCStatus() *status.Status {
	st := status.New(e.GRPCCode(), e.Error())
	info := &errdetails.ErrorInfo{
		Reason:   e.Code.String(),
		Domain:   ErrorDomain,
		Metadata: e.Metadata,
	}
	if withDetails, err := st.WithDetails(info); err == nil {
		return withDetails
	}
	return st
}

// New creates a new AppError with the given code and message.
func New(code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg}
}

// Newf creates a new AppError with formatted message.
func Newf(code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap wraps an existing error with an AppError.
func Wrap(err error, code Code, msg string) *AppError {
	return &AppError{Code: code, Message: msg, Cause: err}
}

// Wrapf wraps an existing error with formatted message.
func Wrapf(err error, code Code, format string, args ...any) *AppError {
	return &AppError{Code: code, Message: fmt.Sprintf(format, args...), Cause: err}
}

// WithMetadata adds metadata to an AppError.
func (e *AppError) WithMetadata(key, value string) *AppError {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
	return e
}

// FromGRPCError extracts an AppError from a gRPC error if present.
func FromGRPCError(err error) *AppError {
	st, ok := status.FromError(err)
	if !ok {
		return &AppError{Code: CodeUnknown, Message: err.Error(), Cause: err}
	}

	for _, detail := range st.Details() {
		if info, ok := detail.(*errdetails.ErrorInfo); ok && info.GetDomain() == ErrorDomain {
			return &AppError{
				Code:     ParseCode(info.GetReason()),
				Message:  st.Message(),
				Metadata: info.GetMetadata(),
			}
		}
	}

	return &AppError{Code: grpcToCode(st.Code()), Message: st.Message()}
}

// grpcToCode maps gRPC codes back to scan codes (best effort).
func grpcToCode(c codes.Code) Code {
	switch c {
	case codes.InvalidArgument:
		return CodeInvalidArgument
	case codes.NotFound:
		return CodeNotFound
	case codes.Unavailable, codes.DeadlineExceeded:
		return CodeUnavailable
	case codes.Internal:
		return CodeInternal
	default:
		return CodeUnknown
	}
}

// CodeOf returns the code of the first AppError in err's chain.
func CodeOf(err error) Code {
	var appErr *AppError
	if stderrors.As(err, &appErr) {
		return appErr.Code
	}
	return CodeUnknown
}

// IsCode checks if an error has a specific error code.
func IsCode(err error, code Code) bool {
	var appErr *AppError
	return stderrors.As(err, &appErr) && appErr.Code == code
}

// IsFatalScan reports whether err is one of the fatal scan preconditions.
func IsFatalScan(err error) bool {
	c := CodeOf(err)
	return c >= CodeInvalidResolution && c <= CodeUnknownScript
}

// IsRetryable returns true if the error is potentially retryable.
func IsRetryable(err error) bool {
	return IsCode(err, CodeUnavailable)
}
