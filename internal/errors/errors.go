package errors

// Kind is the closed set of domain error categories. Services return *Error
// values; the transport layer maps kinds to HTTP status codes and never leaks
// storage or runtime error text to clients.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindInvalidUpdate
	KindInvalidAction
	KindInvalidCredentials
	KindDuplicateEmail
	KindDuplicateRequest
	KindSelfReference
	KindIncorrectPassword
	KindAlreadyReviewed
	KindUnauthenticated
	KindInvalidToken
	KindTokenExpired
	KindNotFound
	KindAuthorization
)

// Error is a domain error with a client-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// KindOf extracts the kind from err, or KindInternal for foreign errors.
func KindOf(err error) Kind {
	if de, ok := err.(*Error); ok {
		return de.Kind
	}
	return KindInternal
}

// IsKind reports whether err is a domain error of the given kind.
func IsKind(err error, k Kind) bool {
	de, ok := err.(*Error)
	return ok && de.Kind == k
}

func newError(k Kind, msg string) *Error { return &Error{Kind: k, Message: msg} }

// Validation creates a client-correctable input error.
func Validation(msg string) *Error { return newError(KindValidation, msg) }

// InvalidUpdate rejects a profile edit as a whole; nothing is partially applied.
func InvalidUpdate(msg string) *Error { return newError(KindInvalidUpdate, msg) }

// InvalidAction rejects a send/review status outside the allowed set.
func InvalidAction(msg string) *Error { return newError(KindInvalidAction, msg) }

// InvalidCredentials is deliberately identical for unknown email and wrong
// password so login failures cannot be used to enumerate users.
func InvalidCredentials() *Error {
	return newError(KindInvalidCredentials, "Invalid credentials")
}

// DuplicateEmail reports a signup against an already-registered email.
func DuplicateEmail() *Error {
	return newError(KindDuplicateEmail, "Email is already registered")
}

// DuplicateRequest reports that a relationship record already exists for the
// pair, in either direction. A pair only ever gets one record.
func DuplicateRequest() *Error {
	return newError(KindDuplicateRequest, "Connection request already exists")
}

// SelfReference rejects a relationship record pointing at its own sender.
func SelfReference() *Error {
	return newError(KindSelfReference, "Cannot send a request to yourself")
}

// IncorrectPassword reports a failed current-password re-verification.
func IncorrectPassword() *Error {
	return newError(KindIncorrectPassword, "Current password is incorrect")
}

// AlreadyReviewed rejects review of a request that is not pending.
func AlreadyReviewed() *Error {
	return newError(KindAlreadyReviewed, "Request has already been reviewed")
}

// Unauthenticated reports a request with no token at all.
func Unauthenticated() *Error {
	return newError(KindUnauthenticated, "Please login first")
}

// InvalidToken reports a token that failed signature or structural checks.
func InvalidToken() *Error {
	return newError(KindInvalidToken, "Invalid token")
}

// TokenExpired is distinguished from InvalidToken for client messaging.
func TokenExpired() *Error {
	return newError(KindTokenExpired, "Session expired. Please login again.")
}

// NotFound reports a missing target resource.
func NotFound(msg string) *Error { return newError(KindNotFound, msg) }

// Authorization reports an action on a resource the caller does not own.
func Authorization(msg string) *Error { return newError(KindAuthorization, msg) }

// Internal wraps unexpected failures with a generic client message.
func Internal() *Error {
	return newError(KindInternal, "Something went wrong")
}
