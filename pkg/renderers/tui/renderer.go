// Package tui runs a questionnaire as an interactive terminal session built
// on survey prompts, writing answers straight into the form aggregator.
package tui

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/fields"
	"github.com/goliatone/go-formflow/pkg/render"
)

const skipLabel = "(skip)"

// Renderer implements render.Renderer for terminal-driven sessions.
type Renderer struct {
	driver       PromptDriver
	outputFormat OutputFormat
}

// New constructs a TUI renderer with defaults (survey driver, JSON output).
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{
		driver:       newSurveyDriver(),
		outputFormat: OutputFormatJSON,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = newSurveyDriver()
	}
	return r, nil
}

// Name reports the renderer identifier.
func (r *Renderer) Name() string {
	return "tui"
}

// ContentType reports the serialization format used by Render.
func (r *Renderer) ContentType() string {
	if r.outputFormat == OutputFormatPrettyText {
		return "text/plain"
	}
	return "application/json"
}

// Render walks every page and question, prompting for values and looping on
// validation failures, then submits the form and serializes the answers.
// Unsupported question types are announced and skipped without blocking the
// session.
func (r *Renderer) Render(ctx context.Context, view render.View, opts render.Options) ([]byte, error) {
	if ctx == nil {
		return nil, errors.New("tui: context is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.driver == nil {
		return nil, errors.New("tui: prompt driver is nil")
	}
	if view.Schema == nil {
		return nil, errors.New("tui: schema is required")
	}
	if view.Form == nil {
		return nil, ErrFormRequired
	}

	if view.Schema.Title != "" {
		_ = r.driver.Info(ctx, view.Schema.Title)
	}

	for id, value := range opts.Values {
		_ = view.Form.SetValue(id, value)
	}

	for _, page := range view.Schema.Pages {
		if page.Title != "" {
			_ = r.driver.Info(ctx, "-- "+page.Title)
		}
		for _, q := range page.Questions {
			controller, ok := view.Form.Controller(q.ID)
			if !ok {
				continue
			}
			if err := r.promptQuestion(ctx, controller); err != nil {
				return nil, err
			}
		}
	}

	answers, fieldErrs := view.Form.Submit()
	if len(fieldErrs) > 0 {
		// Per-question loops validate inline, so a failure here means a
		// required question could not be answered interactively.
		return nil, fmt.Errorf("tui: submission rejected for %d field(s)", len(fieldErrs))
	}

	return r.serialize(view, answers)
}

func (r *Renderer) promptQuestion(ctx context.Context, controller *fields.Controller) error {
	q := controller.Question()
	label := q.Label
	if label == "" {
		label = q.ID
	}

	switch controller.Widget() {
	case fields.WidgetRadioGroup, fields.WidgetSelect, fields.WidgetCheckboxGroup:
		if len(q.Options) == 0 {
			// Nothing to offer, so there is no prompt that could ever satisfy
			// the question. Leave the default in place and let submit report
			// the field instead of re-asking.
			_ = r.driver.Info(ctx, fmt.Sprintf("Skipping question %q: no options available", label))
			return nil
		}
	}

	for {
		var (
			value any
			err   error
			skip  bool
		)

		switch controller.Widget() {
		case fields.WidgetInput:
			value, err = r.driver.Input(ctx, InputConfig{
				Message: label,
				Default: asString(controller.Value()),
			})
		case fields.WidgetTextarea:
			value, err = r.driver.TextArea(ctx, TextAreaConfig{
				Message: label,
				Default: asString(controller.Value()),
			})
		case fields.WidgetRadioGroup, fields.WidgetSelect:
			value, skip, err = r.promptChoice(ctx, label, controller)
		case fields.WidgetCheckboxGroup:
			value, err = r.promptMultiChoice(ctx, label, controller)
		case fields.WidgetRangeSlider:
			value, err = r.driver.Input(ctx, InputConfig{
				Message: fmt.Sprintf("%s [%v..%v]", label, q.Min, q.Max),
				Default: asString(controller.Value()),
			})
		case fields.WidgetStarRating:
			value, skip, err = r.promptRating(ctx, label, controller)
		default:
			_ = r.driver.Info(ctx, fmt.Sprintf("Skipping unsupported question %q", label))
			return nil
		}
		if err != nil {
			return err
		}

		if !skip {
			controller.SetValue(value)
		}
		if msg := controller.Validate(); msg != "" {
			_ = r.driver.Info(ctx, msg)
			continue
		}
		return nil
	}
}

func (r *Renderer) promptChoice(ctx context.Context, label string, controller *fields.Controller) (any, bool, error) {
	q := controller.Question()
	options := make([]string, 0, len(q.Options)+1)
	values := make([]string, 0, len(q.Options)+1)
	if !q.Required {
		options = append(options, skipLabel)
		values = append(values, "")
	}
	for _, option := range q.Options {
		options = append(options, option.Label)
		values = append(values, option.Value)
	}

	defaultIdx := indexOfValue(values, asString(controller.Value()))
	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label,
		Options:      options,
		DefaultIndex: defaultIdx,
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 || idx >= len(values) {
		return nil, true, nil
	}
	return values[idx], false, nil
}

func (r *Renderer) promptMultiChoice(ctx context.Context, label string, controller *fields.Controller) (any, error) {
	q := controller.Question()
	options := make([]string, 0, len(q.Options))
	values := make([]string, 0, len(q.Options))
	for _, option := range q.Options {
		options = append(options, option.Label)
		values = append(values, option.Value)
	}

	defaults := indicesOfValues(values, asStringSlice(controller.Value()))
	indices, err := r.driver.MultiSelect(ctx, SelectConfig{
		Message:  label,
		Options:  options,
		Defaults: defaults,
	})
	if err != nil {
		return nil, err
	}

	selected := make([]string, 0, len(indices))
	for _, idx := range indices {
		if idx >= 0 && idx < len(values) {
			selected = append(selected, values[idx])
		}
	}
	return selected, nil
}

func (r *Renderer) promptRating(ctx context.Context, label string, controller *fields.Controller) (any, bool, error) {
	q := controller.Question()
	options := make([]string, 0, q.Count+1)
	if !q.Required {
		options = append(options, skipLabel)
	}
	for i := 1; i <= q.Count; i++ {
		options = append(options, strings.Repeat("★", i))
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message: label,
		Options: options,
	})
	if err != nil {
		return nil, false, err
	}
	if idx < 0 {
		return nil, true, nil
	}
	if !q.Required {
		if idx == 0 {
			return 0, false, nil
		}
		return idx, false, nil
	}
	return idx + 1, false, nil
}

func (r *Renderer) serialize(view render.View, answers map[string]any) ([]byte, error) {
	if r.outputFormat == OutputFormatPrettyText {
		ids := make([]string, 0, len(answers))
		for id := range answers {
			ids = append(ids, id)
		}
		sort.Strings(ids)

		var b strings.Builder
		for _, id := range ids {
			fmt.Fprintf(&b, "%s=%v\n", id, answers[id])
		}
		return []byte(b.String()), nil
	}
	return json.Marshal(answers)
}

func asString(v any) string {
	switch value := v.(type) {
	case nil:
		return ""
	case string:
		return value
	default:
		return fmt.Sprint(value)
	}
}

func asStringSlice(v any) []string {
	switch values := v.(type) {
	case []string:
		return values
	case []any:
		out := make([]string, 0, len(values))
		for _, value := range values {
			out = append(out, asString(value))
		}
		return out
	default:
		return nil
	}
}

func indexOfValue(values []string, value string) int {
	if value == "" {
		return -1
	}
	for i, candidate := range values {
		if candidate == value {
			return i
		}
	}
	return -1
}

func indicesOfValues(values, selected []string) []int {
	if len(selected) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(selected))
	for _, value := range selected {
		seen[value] = struct{}{}
	}
	var out []int
	for i, value := range values {
		if _, ok := seen[value]; ok {
			out = append(out, i)
		}
	}
	return out
}
