package auth

import "errors"

type Kind int

const (
	KindNotAuthenticated Kind = iota + 1
	KindInvalidToken
	KindUnknownSubject
	KindMissingAssertion
	KindForbidden
)

func (k Kind) String() string {
	switch k {
	case KindNotAuthenticated:
		return "not_authenticated"
	case KindInvalidToken:
		return "invalid_token"
	case KindUnknownSubject:
		return "unknown_subject"
	case KindMissingAssertion:
		return "missing_assertion"
	case KindForbidden:
		return "forbidden"
	default:
		return "unknown"
	}
}

// Error is a terminal auth failure for the current request. Reason is safe
// to show to clients. Two errors match under errors.Is when their kinds match,
// so callers compare against the sentinels below regardless of reason text.
type Error struct {
	Kind   Kind
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

var (
	ErrNotAuthenticated = &Error{Kind: KindNotAuthenticated, Reason: "incorrect credentials"}
	ErrInvalidToken     = &Error{Kind: KindInvalidToken, Reason: "invalid or expired token"}
	ErrUnknownSubject   = &Error{Kind: KindUnknownSubject, Reason: "user not found"}
	ErrMissingAssertion = &Error{Kind: KindMissingAssertion, Reason: "invalid or missing identity"}
	ErrForbidden        = &Error{Kind: KindForbidden, Reason: "insufficient permissions"}

	errInvalidPayload = &Error{Kind: KindInvalidToken, Reason: "invalid token payload"}
)

// IsUnauthenticated reports whether err means identity could not be
// established (401). Forbidden is deliberately not part of this class.
func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrNotAuthenticated) ||
		errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrUnknownSubject) ||
		errors.Is(err, ErrMissingAssertion)
}

func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}
