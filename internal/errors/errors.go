package errors

import (
	"errors"
	"fmt"
)

// Common error types for the Canva integration
var (
	// Authentication errors
	ErrNotAuthenticated = errors.New("not authenticated with Canva")
	ErrStateNotFound    = errors.New("no pending authorization for state")
	ErrTokenExchange    = errors.New("token exchange failed")

	// Export errors
	ErrExportFailed  = errors.New("export job failed")
	ErrExportTimeout = errors.New("export job timed out")

	// Download errors
	ErrDownloadFailed = errors.New("download failed")

	// Remote contract errors
	ErrContractViolation = errors.New("unexpected response from Canva API")

	// General errors
	ErrNotFound = errors.New("not found")
	ErrInternal = errors.New("internal error")
)

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
