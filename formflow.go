// Package formflow renders dynamically generated questionnaires from a
// declarative schema, validates typed answers per field, and aggregates them
// into a structured submission payload. The root package re-exports the
// pieces most callers wire together.
package formflow

import (
	"io/fs"

	"github.com/goliatone/go-formflow/pkg/lifecycle"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/renderers/tui"
	"github.com/goliatone/go-formflow/pkg/renderers/vanilla"
)

// Snapshot aliases the lifecycle view handed to presentation layers.
type Snapshot = lifecycle.Snapshot

// View aliases the renderer input assembled from a snapshot and form.
type View = render.View

// RenderOptions aliases per-request renderer data.
type RenderOptions = render.Options

// NewLifecycle exposes the lifecycle constructor from the top-level module.
func NewLifecycle(options ...lifecycle.Option) (*lifecycle.Lifecycle, error) {
	return lifecycle.New(options...)
}

// DefaultRegistry returns a renderer registry with the built-in vanilla and
// tui renderers registered.
func DefaultRegistry() (*render.Registry, error) {
	registry := render.NewRegistry()

	html, err := vanilla.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(html)

	terminal, err := tui.New()
	if err != nil {
		return nil, err
	}
	registry.MustRegister(terminal)

	return registry, nil
}

// EmbeddedTemplates exposes the built-in vanilla renderer templates so
// callers can reuse or extend them without importing the renderer package
// directly.
func EmbeddedTemplates() fs.FS {
	return vanilla.TemplatesFS()
}
