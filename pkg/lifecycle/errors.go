package lifecycle

import "errors"

var (
	// ErrAlreadyStarted signals Start was called on a running lifecycle.
	ErrAlreadyStarted = errors.New("lifecycle: already started")
	// ErrNotDisplayed signals an operation that requires a displayed
	// questionnaire (submit, value updates).
	ErrNotDisplayed = errors.New("lifecycle: no questionnaire displayed")
	// ErrBusy signals the primary action while a user-triggered fetch is
	// still outstanding.
	ErrBusy = errors.New("lifecycle: fetch in progress")
)
