package fields

import "github.com/goliatone/go-formflow/pkg/schema"

// Controller is the per-question binding owning the authoritative value and
// validation state for one question id. Transient visual state (hover
// previews and the like) belongs to rendering layers and never flows back in
// here.
type Controller struct {
	question  schema.Question
	handler   Handler
	supported bool
	value     any
	err       string
}

// NewController resolves the question's handler and seeds the type default.
func NewController(q schema.Question) *Controller {
	handler, supported := Resolve(q.Type)
	return &Controller{
		question:  q,
		handler:   handler,
		supported: supported,
		value:     handler.Default(q),
	}
}

// Question returns the definition this controller is bound to.
func (c *Controller) Question() schema.Question {
	return c.question
}

// Supported reports whether the question type resolved to a real handler.
// Unsupported controllers accept any value and never report errors.
func (c *Controller) Supported() bool {
	return c.supported
}

// Widget names the widget renderers should draw for this question.
func (c *Controller) Widget() string {
	return c.handler.Widget()
}

// Value returns the current (normalized) value.
func (c *Controller) Value() any {
	return c.value
}

// SetValue normalizes and stores a new value, clearing the field error. Star
// rating re-validates immediately: a rating click is discrete and must give
// instant feedback rather than waiting for submit.
func (c *Controller) SetValue(v any) {
	c.value = c.handler.Normalize(c.question, v)
	c.err = ""
	if c.question.Type == schema.TypeStarRating {
		c.Validate()
	}
}

// Validate applies the handler's rule to the current value, recording the
// resulting error state. It returns the error message, empty when valid.
func (c *Controller) Validate() string {
	if err := c.handler.Validate(c.question, c.value); err != nil {
		c.err = err.Error()
	} else {
		c.err = ""
	}
	return c.err
}

// Err returns the current field error message, empty when valid.
func (c *Controller) Err() string {
	return c.err
}

// Reset restores the type default and clears the error state.
func (c *Controller) Reset() {
	c.value = c.handler.Default(c.question)
	c.err = ""
}
