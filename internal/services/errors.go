package services

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

// Kind classifies a domain failure. The HTTP layer maps kinds to status codes.
type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindBeyondRange
	KindEmptyCollection
	KindInvalidInput
	KindUnauthorized
	KindUnauthenticated
	KindConflict
	KindNoChanges
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "NOT_FOUND"
	case KindBeyondRange:
		return "BEYOND_RANGE"
	case KindEmptyCollection:
		return "EMPTY_COLLECTION"
	case KindInvalidInput:
		return "INVALID_INPUT"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindUnauthenticated:
		return "UNAUTHENTICATED"
	case KindConflict:
		return "CONFLICT"
	case KindNoChanges:
		return "NO_CHANGES"
	default:
		return "UNKNOWN"
	}
}

// Resource names used in errors and response messages.
const (
	ResourcePost    = "post"
	ResourceComment = "comment"
	ResourceLike    = "like"
	ResourceUser    = "user"
)

// Error is the typed failure every service operation returns.
type Error struct {
	Kind     Kind
	Resource string
	Field    string
	// Parent is set when the missing record is the anchor of a list query
	// rather than the requested resource itself.
	Parent bool
	Err    error
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Kind.String())
	if e.Parent {
		b.WriteString("(parent ")
		b.WriteString(e.Resource)
		b.WriteString(")")
	} else if e.Resource != "" {
		b.WriteString("(")
		b.WriteString(e.Resource)
		b.WriteString(")")
	}
	if e.Field != "" {
		b.WriteString(": ")
		b.WriteString(e.Field)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns KindUnknown for errors that did not come from this package.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// AsError extracts the typed error, if any.
func AsError(err error) (*Error, bool) {
	var e *Error
	ok := errors.As(err, &e)
	return e, ok
}

func parentNotFound(resource string) error {
	return &Error{Kind: KindNotFound, Resource: resource, Parent: true}
}

func notFound(resource string) error {
	return &Error{Kind: KindNotFound, Resource: resource}
}

func emptyCollection(resource string) error {
	return &Error{Kind: KindEmptyCollection, Resource: resource}
}

func beyondRange(resource string, page, totalPages int) error {
	return &Error{Kind: KindBeyondRange, Resource: resource, Err: fmt.Errorf("page %d of %d", page, totalPages)}
}

func invalidInput(resource, field string) error {
	return &Error{Kind: KindInvalidInput, Resource: resource, Field: field}
}

func unauthorized(resource string) error {
	return &Error{Kind: KindUnauthorized, Resource: resource, Field: "ownership"}
}

func unauthenticated() error {
	return &Error{Kind: KindUnauthenticated, Resource: ResourceUser}
}

func conflict(resource string) error {
	return &Error{Kind: KindConflict, Resource: resource, Field: "duplicate"}
}

func noChanges(resource string) error {
	return &Error{Kind: KindNoChanges, Resource: resource}
}

// storageFault wraps an unanticipated storage error. It is logged here and
// surfaces as KindUnknown; the storage text never reaches the client.
func storageFault(err error, op string) error {
	slog.Error("storage fault", "op", op, "error", err)
	return &Error{Kind: KindUnknown, Err: pkgerrors.Wrap(err, op)}
}

// isDuplicateKey reports whether err is a unique constraint violation.
func isDuplicateKey(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

func isForeignKeyViolation(err error) bool {
	if errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return strings.Contains(err.Error(), "FOREIGN KEY constraint failed")
}
