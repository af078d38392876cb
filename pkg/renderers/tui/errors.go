package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrFormRequired is returned when a view without a live form reaches
	// the interactive renderer.
	ErrFormRequired = errors.New("tui: view form is required")
)
