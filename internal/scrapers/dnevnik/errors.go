package dnevnik

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is matched by every *NotFoundError.
	ErrNotFound = errors.New("dnevnik: not found")
	// ErrMalformedPage is matched by every *MalformedPageError.
	ErrMalformedPage = errors.New("dnevnik: malformed page")

	ErrLoginFailed  = errors.New("dnevnik: login failed")
	ErrPageNotFound = errors.New("dnevnik: page not found")
	ErrBadStatus    = errors.New("dnevnik: unexpected response status")
)

// NotFoundError is returned when an identifier pattern has no match in a page.
type NotFoundError struct {
	What    string
	Pattern string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("dnevnik: %s not found (pattern %s)", e.What, e.Pattern)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// page kinds used in MalformedPageError.Page
const (
	PageUsers    = "users"
	PageCalendar = "calendar"
	PageDiary    = "diary"
)

// MalformedPageError is returned when an element that must exist on a page of
// the given kind is missing or has an unexpected shape.
type MalformedPageError struct {
	Page    string
	Section string
	Reason  string
}

func (e *MalformedPageError) Error() string {
	return fmt.Sprintf("dnevnik: malformed %s page: %s: %s", e.Page, e.Section, e.Reason)
}

func (e *MalformedPageError) Is(target error) bool {
	return target == ErrMalformedPage
}

func malformed(page, section, format string, args ...any) error {
	return &MalformedPageError{
		Page:    page,
		Section: section,
		Reason:  fmt.Sprintf(format, args...),
	}
}
