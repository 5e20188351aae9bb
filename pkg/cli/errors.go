package cli

import (
	"errors"
	"fmt"

	types "github.com/getmockd/storeadmin/pkg/api/types"
	"github.com/getmockd/storeadmin/pkg/apiclient"
	"github.com/getmockd/storeadmin/pkg/storeapi"
	"github.com/getmockd/storeadmin/pkg/view"
)

// ErrNoFields is returned when a record has no flags, no file and no terminal
// for the interactive form.
var ErrNoFields = errors.New("no fields given: pass flags, --file, or run in a terminal for the interactive form")

// commandError carries a user-facing message while keeping the cause
// available to errors.Is/As.
type commandError struct {
	msg string
	err error
}

func (e *commandError) Error() string { return e.msg }
func (e *commandError) Unwrap() error { return e.err }

// FormatConnectionError returns a user-friendly error message for connection failures.
func FormatConnectionError(err error, baseURL string) string {
	return fmt.Sprintf(`%s

Suggestions:
  • Check that the store backend is running at %s
  • Override the URL with --api-url or STOREADMIN_API_URL
  • Show the effective settings with: storeadmin config`, err, baseURL)
}

// FormatNotFoundError returns a user-friendly error message for not found errors.
func FormatNotFoundError(resourceType string, id types.ID) string {
	return fmt.Sprintf(`%s not found: %s

Suggestions:
  • Check the ID with: storeadmin %ss list
  • Verify you're connected to the right backend`, resourceType, id, resourceType)
}

// FormatUnauthorizedError returns a user-friendly error message for 401/403 responses.
func FormatUnauthorizedError(err error) string {
	return fmt.Sprintf(`%s

Suggestions:
  • Log in with: storeadmin login
  • Check the current token with: storeadmin auth status`, err)
}

// describeError maps client errors to actionable messages. id may be empty
// when the failing call was not about a single record.
func describeError(err error, resourceType string, id types.ID, baseURL string) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, view.ErrStale):
		return &commandError{msg: "the change was saved but refreshing the list failed: " + err.Error(), err: err}
	case apiclient.IsTransport(err):
		return &commandError{msg: FormatConnectionError(err, baseURL), err: err}
	case apiclient.IsUnauthorized(err):
		return &commandError{msg: FormatUnauthorizedError(err), err: err}
	case id != "" && (apiclient.IsNotFound(err) || errors.Is(err, storeapi.ErrNotFound)):
		return &commandError{msg: FormatNotFoundError(resourceType, id), err: err}
	}
	return err
}
