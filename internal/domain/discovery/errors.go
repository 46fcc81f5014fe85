package discovery

import (
	"errors"
	"fmt"
)

// InvalidBaseURLError reports a page URL that cannot serve as a resolution base.
type InvalidBaseURLError struct {
	URL string
	Err error
}

func (e *InvalidBaseURLError) Error() string {
	return fmt.Sprintf("invalid base url %q: %v", e.URL, e.Err)
}

func (e *InvalidBaseURLError) Unwrap() error { return e.Err }

// InvalidHrefError reports a link that cannot be resolved into an absolute URL.
type InvalidHrefError struct {
	Base string
	Href string
	Err  error
}

func (e *InvalidHrefError) Error() string {
	return fmt.Sprintf("invalid href %q (base %q): %v", e.Href, e.Base, e.Err)
}

func (e *InvalidHrefError) Unwrap() error { return e.Err }

// IOError reports a failure reading or writing a file on behalf of the caller.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("failed to %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsInvalidBaseURL checks if an error is an InvalidBaseURLError.
func IsInvalidBaseURL(err error) bool {
	var target *InvalidBaseURLError
	return errors.As(err, &target)
}

// IsInvalidHref checks if an error is an InvalidHrefError.
func IsInvalidHref(err error) bool {
	var target *InvalidHrefError
	return errors.As(err, &target)
}

// IsIO checks if an error is an IOError.
func IsIO(err error) bool {
	var target *IOError
	return errors.As(err, &target)
}
