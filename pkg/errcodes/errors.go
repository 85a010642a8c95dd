package errcodes

import (
	"fmt"
	"net/http"
)

type Error struct {
	HTTPCode int
	Message  string
	Code     string
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

// InvalidAdminKey returns a 403 error for a failed admin key check.
func InvalidAdminKey() error {
	return &Error{
		http.StatusForbidden,
		"Invalid admin key.",
		"invalid_admin_key",
	}
}

// Forbidden returns a 403 error with a message indicating the action is
// forbidden.
func Forbidden(action string) error {
	return &Error{
		http.StatusForbidden,
		action + " is not allowed.",
		"forbidden",
	}
}

// NotFound returns a 404 error with a message indicating the given resource.
func NotFound(resource string) error {
	return &Error{
		http.StatusNotFound,
		resource + " not found.",
		"not_found",
	}
}

// NotAnImage returns a 400 error for proxy requests that target a non-image
// file.
func NotAnImage() error {
	return &Error{
		http.StatusBadRequest,
		"The requested file is not an image.",
		"not_an_image",
	}
}

// TooManyFiles returns a 400 error when an upload exceeds the per-request
// file count limit.
func TooManyFiles(limit int) error {
	return &Error{
		http.StatusBadRequest,
		fmt.Sprintf("At most %d files can be uploaded per request.", limit),
		"too_many_files",
	}
}

// FileTooLarge returns a 413 error when an uploaded file exceeds the size
// limit.
func FileTooLarge(name string, limit int64) error {
	return &Error{
		http.StatusRequestEntityTooLarge,
		fmt.Sprintf("%q exceeds the maximum file size of %d bytes.", name, limit),
		"file_too_large",
	}
}

// Upstream returns a 500 error for failed storage provider calls. The
// underlying detail is logged, not surfaced.
func Upstream() error {
	return &Error{
		http.StatusInternalServerError,
		"Storage provider request failed.",
		"upstream_error",
	}
}

func UnsupportedMediaType() error {
	return &Error{
		http.StatusUnsupportedMediaType,
		"Unsupported Media Type",
		"unsupported_media_type",
	}
}

func UnknownParameter(param string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		fmt.Sprintf("Unknown Parameter %q", param),
		"unknown_parameter",
	}
}

func ValidationTypeError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_type_error",
	}
}

func ValidationError(msg string) error {
	return &Error{
		http.StatusUnprocessableEntity,
		msg,
		"validation_error",
	}
}

func MalformedPayload() error {
	return &Error{
		http.StatusBadRequest,
		"Malformed Payload",
		"malformed_payload",
	}
}

func EmptyRequestBody() error {
	return &Error{
		http.StatusBadRequest,
		"Request body can't be empty.",
		"empty_request_body",
	}
}
