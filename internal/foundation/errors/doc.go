// Package errors provides the classified errors used across mdsplit.
//
// Every failure that reaches the CLI is a ClassifiedError built with
// NewError or WrapError. The category selects the exit code, the severity
// selects the log level and the "path" context value is shown to the user:
//
//	err := errors.WrapError(cause, errors.CategoryFileSystem, "failed to write file").
//		WithContext("path", target).
//		Build()
//
// CLIErrorAdapter turns such errors into exit codes and one-line messages.
package errors
