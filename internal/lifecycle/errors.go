package lifecycle

import (
	"errors"
	"fmt"

	"github.com/devghori1264/aerophoenix/osplugin/internal/admission"
	"github.com/devghori1264/aerophoenix/osplugin/internal/configstore"
	"github.com/devghori1264/aerophoenix/osplugin/internal/heat"
	"github.com/devghori1264/aerophoenix/osplugin/internal/storage"
	"github.com/devghori1264/aerophoenix/osplugin/internal/validate"
)

// Kind classifies why an operation failed.
type Kind string

const (
	InvalidInput      Kind = "invalid input"
	Conflict          Kind = "conflict"
	NotFoundLocal     Kind = "not found"
	BackendError      Kind = "backend error"
	TranslationFailed Kind = "translation failed"
	StorageError      Kind = "storage error"
)

// Error is returned by every Controller operation that fails.
type Error struct {
	Op   string
	Kind Kind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("%s: %s: %v", e.Op, e.Kind, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of err, or "" when err is nil or not an *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Code maps err onto the status codes of the JSON responses.
func Code(err error) int {
	switch KindOf(err) {
	case "":
		if err == nil {
			return 200
		}
		return 500
	case InvalidInput:
		return 400
	case NotFoundLocal:
		return 404
	case Conflict:
		return 409
	default:
		return 500
	}
}

func fail(op string, kind Kind, err error) *Error {
	return &Error{Op: op, Kind: kind, Err: err}
}

// classify wraps an error from a lower layer using its sentinel. Errors
// without a known sentinel get fallback.
func classify(op string, err error, fallback Kind) *Error {
	var kind Kind
	switch {
	case errors.Is(err, validate.ErrInvalidInput),
		errors.Is(err, admission.ErrInvalidPackageID),
		errors.Is(err, admission.ErrUnsafePath),
		errors.Is(err, admission.ErrBadArchive),
		errors.Is(err, admission.ErrTooLarge),
		errors.Is(err, configstore.ErrEmpty),
		errors.Is(err, configstore.ErrTooLarge):
		kind = InvalidInput
	case errors.Is(err, storage.ErrAlreadyExists),
		errors.Is(err, admission.ErrAlreadyExists):
		kind = Conflict
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, admission.ErrPackageNotFound):
		kind = NotFoundLocal
	case errors.Is(err, admission.ErrTranslation):
		kind = TranslationFailed
	case errors.Is(err, heat.ErrStackNotFound),
		errors.Is(err, heat.ErrNoCredentials):
		kind = BackendError
	default:
		kind = fallback
	}
	return fail(op, kind, err)
}
