// Package apperrors provides chainable error values for the client library.
// Errors created here work with errors.Is / errors.As while carrying a
// human-readable message that can be refined layer by layer.
package apperrors

// Error extends the standard error interface with methods for deriving
// new errors from an existing one. All derivation methods return a new
// value; the receiver is never mutated.
type Error interface {
	error
	Unwrap() error // support for errors.Is / errors.As

	New(msg string) Error                  // fresh error using current as template
	Msg(msg string) Error                  // new message, wraps the original
	MsgErr(msg string, err ...error) Error // new message, wraps original plus extra errors
	Err(err ...error) Error                // attaches additional errors
	ErrorAll() string                      // full message including wrapped errors
	UnwrapAll() []error                    // all wrapped errors
}
