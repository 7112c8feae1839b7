package domain

import "errors"

// ErrInterpreterUnavailable is returned when the interpreter cannot be run or its version cannot be read.
var ErrInterpreterUnavailable = errors.New("interpreter unavailable")

// ErrInterpreterTooOld is returned when the interpreter is below the minimum supported version.
var ErrInterpreterTooOld = errors.New("interpreter version below minimum")

// ErrDependencyInstall is returned when the dependency installer exits with an error.
var ErrDependencyInstall = errors.New("dependency installation failed")

// ErrHostingUnavailable is returned when a binary required by the launcher is not installed.
var ErrHostingUnavailable = errors.New("hosting facility unavailable")

// ErrMissingCredentials is returned when required credential variables are absent.
var ErrMissingCredentials = errors.New("missing credentials")

// ErrNotInteractive is returned when confirmation is needed but no terminal is attached.
var ErrNotInteractive = errors.New("confirmation requires an interactive terminal")

// ErrMalformedBody is returned when a request body cannot be decoded.
var ErrMalformedBody = errors.New("malformed request body")

// IsFatal reports whether a bootstrap error must stop the process with a failure status.
func IsFatal(err error) bool {
	return errors.Is(err, ErrInterpreterUnavailable) ||
		errors.Is(err, ErrInterpreterTooOld) ||
		errors.Is(err, ErrDependencyInstall) ||
		errors.Is(err, ErrHostingUnavailable)
}
