package bfchat

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFIG      = "config"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EUNAVAILABLE = "unavailable"
)

// Error represents an application-specific error. Its message is safe to
// show to end users.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("bfchat error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// FetchError reports a failure to retrieve or parse a single page.
// It is recoverable: a crawl records it and moves on.
type FetchError struct {
	URL string
	Err error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// fetchErrorJSON is the wire form of a FetchError.
type fetchErrorJSON struct {
	URL   string `json:"url"`
	Error string `json:"error"`
}

// MarshalJSON encodes the error as {"url": ..., "error": ...}.
func (e *FetchError) MarshalJSON() ([]byte, error) {
	v := fetchErrorJSON{URL: e.URL}
	if e.Err != nil {
		v.Error = e.Err.Error()
	}
	return json.Marshal(v)
}

// UnmarshalJSON decodes the form written by MarshalJSON. The cause comes
// back as a plain error carrying the original message.
func (e *FetchError) UnmarshalJSON(data []byte) error {
	var v fetchErrorJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	e.URL = v.URL
	e.Err = nil
	if v.Error != "" {
		e.Err = errors.New(v.Error)
	}
	return nil
}
