package errdefs

import "errors"

var (
	// ErrConflict indicates a binding or registration clashes with existing state
	ErrConflict = errors.New("conflict")

	// ErrUnauthenticated indicates an identity proof failed verification
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrUnbound indicates no exchange key is bound for the identity
	ErrUnbound = errors.New("identity not bound")

	// ErrCipherFailure indicates authenticated decryption failed
	ErrCipherFailure = errors.New("cipher failure")

	// ErrMalformedInput indicates input could not be parsed or validated
	ErrMalformedInput = errors.New("malformed input")
)

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }

// IsUnauthenticated reports whether err wraps ErrUnauthenticated.
func IsUnauthenticated(err error) bool { return errors.Is(err, ErrUnauthenticated) }

// IsUnbound reports whether err wraps ErrUnbound.
func IsUnbound(err error) bool { return errors.Is(err, ErrUnbound) }

// IsCipherFailure reports whether err wraps ErrCipherFailure.
func IsCipherFailure(err error) bool { return errors.Is(err, ErrCipherFailure) }

// IsMalformedInput reports whether err wraps ErrMalformedInput.
func IsMalformedInput(err error) bool { return errors.Is(err, ErrMalformedInput) }
