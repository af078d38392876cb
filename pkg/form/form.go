// Package form aggregates the field controllers of one questionnaire
// instance and exposes the single atomic submit operation.
package form

import (
	"fmt"

	"github.com/goliatone/go-formflow/pkg/fields"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Form holds one controller per question across all pages of a schema,
// flattened and keyed by question id. Question ids are unique schema-wide, so
// answers collapse into a flat map.
type Form struct {
	schema      *schema.Schema
	controllers map[string]*fields.Controller
	order       []string
}

// New instantiates controllers for every question of the schema in page
// order.
func New(s *schema.Schema) *Form {
	f := &Form{
		schema:      s,
		controllers: make(map[string]*fields.Controller),
	}
	if s == nil {
		return f
	}
	for _, q := range s.Questions() {
		if _, exists := f.controllers[q.ID]; exists {
			continue
		}
		f.controllers[q.ID] = fields.NewController(q)
		f.order = append(f.order, q.ID)
	}
	return f
}

// Schema returns the schema this form was built from.
func (f *Form) Schema() *schema.Schema {
	return f.schema
}

// Controller returns the controller bound to a question id.
func (f *Form) Controller(id string) (*fields.Controller, bool) {
	c, ok := f.controllers[id]
	return c, ok
}

// Controllers returns the controllers in schema order.
func (f *Form) Controllers() []*fields.Controller {
	out := make([]*fields.Controller, 0, len(f.order))
	for _, id := range f.order {
		out = append(out, f.controllers[id])
	}
	return out
}

// SetValue routes a value to the controller owning the question id.
func (f *Form) SetValue(id string, v any) error {
	c, ok := f.controllers[id]
	if !ok {
		return fmt.Errorf("form: unknown question id %q", id)
	}
	c.SetValue(v)
	return nil
}

// Value returns the current value for a question id.
func (f *Form) Value(id string) (any, bool) {
	c, ok := f.controllers[id]
	if !ok {
		return nil, false
	}
	return c.Value(), true
}

// Errors returns the current field error messages keyed by question id,
// present only for ids in an error state.
func (f *Form) Errors() map[string]string {
	out := make(map[string]string)
	for id, c := range f.controllers {
		if msg := c.Err(); msg != "" {
			out[id] = msg
		}
	}
	return out
}

// Submit validates every controller and either returns the aggregated answer
// map keyed by question id, or the field error map when any controller
// fails. The operation is atomic: no answers are emitted alongside errors.
// Submitting twice without value changes yields the same outcome.
func (f *Form) Submit() (map[string]any, map[string]string) {
	errs := make(map[string]string)
	for _, id := range f.order {
		if msg := f.controllers[id].Validate(); msg != "" {
			errs[id] = msg
		}
	}
	if len(errs) > 0 {
		return nil, errs
	}

	answers := make(map[string]any, len(f.order))
	for _, id := range f.order {
		answers[id] = f.controllers[id].Value()
	}
	return answers, nil
}

// Reset restores every controller to its type default and clears errors.
func (f *Form) Reset() {
	for _, c := range f.controllers {
		c.Reset()
	}
}
