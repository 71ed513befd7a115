package errcodes

import (
	"fmt"
	"net/http"

	"github.com/pkg/errors"
)

// FieldError is one violated rule, keyed to the form field that caused it.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	HTTPCode int
	Message  string
	Code     string
	// Fields is the ordered list of per-field violations for validation
	// failures; empty for every other kind of error.
	Fields []FieldError
}

func (err *Error) Error() string {
	return err.Message
}

func (err *Error) As(target interface{}) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	te.HTTPCode = err.HTTPCode
	te.Message = err.Message
	te.Code = err.Code
	te.Fields = err.Fields
	return true
}

func (err *Error) Is(target error) bool {
	te, ok := target.(*Error)
	if !ok {
		return false
	}
	return te.HTTPCode == err.HTTPCode &&
		te.Message == err.Message &&
		te.Code == err.Code
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		HTTPCode: http.StatusNotFound,
		Message:  resource + " not found.",
		Code:     "not_found",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		HTTPCode: http.StatusUnsupportedMediaType,
		Message:  "Unsupported Media Type",
		Code:     "unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  fmt.Sprintf("Unknown Parameter %q", param),
		Code:     "unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  msg,
		Code:     "validation_error",
	}
}

// ValidationFailed returns a 422 error carrying every violated field in
// submission order, so a form can report all of them in one pass.
func ValidationFailed(fields []FieldError) error {
	return &Error{
		HTTPCode: http.StatusUnprocessableEntity,
		Message:  "Validation failed.",
		Code:     "validation_failed",
		Fields:   fields,
	}
}

func MalformedPayload() error {
	return &Error{
		HTTPCode: http.StatusBadRequest,
		Message:  "Malformed Payload",
		Code:     "malformed_payload",
	}
}

// Fields extracts the per-field violations from a validation error. It
// returns false when err is not a validation failure, in which case the
// caller should propagate err instead of re-rendering a form.
func Fields(err error) ([]FieldError, bool) {
	var e *Error
	if errors.As(err, &e) && e.Code == "validation_failed" {
		return e.Fields, true
	}
	return nil, false
}
