package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches on Status and Code so sentinel values survive wrapping.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || e == nil || t == nil {
		return false
	}
	return e.Status == t.Status && e.Code == t.Code
}

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func NotFound(code, msg string) *Error {
	return New(http.StatusNotFound, code, errors.New(msg))
}

func InvalidRequest(code, msg string) *Error {
	return New(http.StatusBadRequest, code, errors.New(msg))
}

func Unauthorized() *Error {
	return New(http.StatusUnauthorized, "unauthorized", errors.New("Unauthorized"))
}

var (
	ErrCourseNotFound    = NotFound("course_not_found", "Course not found")
	ErrLessonNotFound    = NotFound("lesson_not_found", "Lesson not found")
	ErrUserNotFound      = NotFound("user_not_found", "User not found")
	ErrCourseIDRequired  = InvalidRequest("course_id_required", "Course ID is required")
	ErrAlreadyEnrolled   = InvalidRequest("already_enrolled", "Already enrolled in this course")
	ErrInvalidLoginState = InvalidRequest("invalid_state", "Login session expired, please sign in again")
	ErrLoginDisabled     = New(http.StatusServiceUnavailable, "login_not_configured", errors.New("Login is not configured"))
)

// Status reports the HTTP status for err, defaulting to 500 for anything that is
// not an *Error.
func Status(err error) int {
	var ae *Error
	if errors.As(err, &ae) && ae.Status != 0 {
		return ae.Status
	}
	return http.StatusInternalServerError
}
