package lineedit

import "github.com/pkg/errors"

// ConstructionError wraps a failure that prevents an Editor from being
// built at all; New returns one when its keymaps cannot be constructed.
// These are always fatal to the caller.
type ConstructionError struct {
	cause error
}

func (e *ConstructionError) Error() string { return e.cause.Error() }
func (e *ConstructionError) Unwrap() error { return e.cause }

func wrapConstruction(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ConstructionError{cause: errors.Wrap(err, msg)}
}

// IOError wraps a failure reading from or writing to the terminal during a
// session; these are fatal to the current ReadLine call but not to the
// Editor itself (the next ReadLine may succeed, e.g. after SIGWINCH noise).
type IOError struct {
	cause error
}

func (e *IOError) Error() string { return e.cause.Error() }
func (e *IOError) Unwrap() error { return e.cause }

func wrapIO(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &IOError{cause: errors.Wrap(err, msg)}
}

// recoverAction runs fn, recovering a panic raised inside it instead of
// crashing the session; step wraps each ActionFunc call this way. The panic
// is logged through the debug sink, and the result reports whether one
// occurred.
func recoverAction(name string, fn func()) (recovered bool) {
	defer func() {
		if r := recover(); r != nil {
			recovered = true
			debugPrintf("action %q panicked: %v\n", name, r)
		}
	}()
	fn()
	return false
}
