package lifecycle

import (
	theme "github.com/goliatone/go-theme"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Snapshot is an immutable view of the lifecycle for presentation layers.
// The theme configuration is returned here for the enclosing surface to
// apply; widgets never write document-level styling themselves.
type Snapshot struct {
	Phase        Phase
	Schema       *schema.Schema
	Theme        *theme.RendererConfig
	ThemeCSS     string
	Visible      bool
	Busy         bool
	HasNext      bool
	Submission   map[string]any
	FieldErrors  map[string]string
	ErrorMessage string
}

// Snapshot captures the current lifecycle state.
func (l *Lifecycle) Snapshot() Snapshot {
	l.mu.Lock()
	defer l.mu.Unlock()

	snap := Snapshot{
		Phase:        l.phase,
		Visible:      l.visible,
		Busy:         l.fetching,
		HasNext:      l.next != nil,
		ErrorMessage: l.errMessage,
	}

	if l.current != nil {
		snap.Schema = l.current.Schema()
		if snap.Schema != nil {
			snap.Theme = snap.Schema.Theme.RendererConfig()
			snap.ThemeCSS = snap.Schema.Theme.CSSVarsStyle()
		}
		snap.FieldErrors = l.current.Errors()
		if len(snap.FieldErrors) == 0 {
			snap.FieldErrors = nil
		}
	}

	if l.submission != nil {
		copied := make(map[string]any, len(l.submission))
		for key, value := range l.submission {
			copied[key] = value
		}
		snap.Submission = copied
	}

	return snap
}
