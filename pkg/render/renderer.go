// Package render defines the renderer contract shared by the questionnaire
// output surfaces (HTML, terminal) and the registry used to look them up.
package render

import (
	"context"

	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// View carries everything a renderer needs to draw one questionnaire
// instance: the immutable schema, the live aggregator state, and the theme
// configuration the enclosing surface should apply.
type View struct {
	Schema       *schema.Schema
	Form         *form.Form
	Theme        *theme.RendererConfig
	ThemeCSS     string
	Submission   map[string]any
	ErrorMessage string
}

// Options describes per-request data renderers can use without mutating the
// form pipeline.
type Options struct {
	// Values prefills controls keyed by question id before rendering.
	Values map[string]any
	// Errors surfaces externally produced validation feedback keyed by
	// question id; renderers place each message adjacent to its field.
	Errors map[string]string
}

// Renderer converts a questionnaire view into a byte representation.
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, view View, opts Options) ([]byte, error)
}
