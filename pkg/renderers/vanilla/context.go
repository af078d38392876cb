package vanilla

import (
	"fmt"
	"strconv"

	"github.com/goliatone/go-formflow/pkg/fields"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// buildContext flattens the view into the map structure the templates
// consume. Per-question widget decisions happen here so templates stay
// declarative.
func buildContext(view render.View, opts render.Options) map[string]any {
	s := view.Schema

	pages := make([]map[string]any, 0, len(s.Pages))
	for _, page := range s.Pages {
		questions := make([]map[string]any, 0, len(page.Questions))
		for _, q := range page.Questions {
			questions = append(questions, questionContext(q, view, opts))
		}
		pages = append(pages, map[string]any{
			"id":        page.ID,
			"title":     page.Title,
			"questions": questions,
		})
	}

	ctx := map[string]any{
		"title":        s.Title,
		"description":  s.Description,
		"themeCSS":     view.ThemeCSS,
		"pages":        pages,
		"errorMessage": view.ErrorMessage,
	}
	if view.ThemeCSS == "" {
		ctx["themeCSS"] = s.Theme.CSSVarsStyle()
	}
	if len(view.Submission) > 0 {
		submission := make([]map[string]any, 0, len(view.Submission))
		for _, q := range s.Questions() {
			value, ok := view.Submission[q.ID]
			if !ok {
				continue
			}
			submission = append(submission, map[string]any{
				"id":    q.ID,
				"label": q.Label,
				"value": fmt.Sprint(value),
			})
		}
		ctx["submission"] = submission
	}
	return ctx
}

func questionContext(q schema.Question, view render.View, opts render.Options) map[string]any {
	value, errMsg, widget := currentState(q, view, opts)

	qctx := map[string]any{
		"id":       q.ID,
		"label":    q.Label,
		"required": q.Required,
		"widget":   widget,
		"error":    errMsg,
	}

	switch widget {
	case fields.WidgetInput, fields.WidgetTextarea:
		qctx["value"] = stringValue(value)
	case fields.WidgetRadioGroup, fields.WidgetSelect:
		qctx["options"] = optionContexts(q.Options, func(candidate string) bool {
			return candidate == stringValue(value)
		})
	case fields.WidgetCheckboxGroup:
		selected := stringSet(value)
		qctx["options"] = optionContexts(q.Options, func(candidate string) bool {
			_, ok := selected[candidate]
			return ok
		})
	case fields.WidgetRangeSlider:
		qctx["min"] = formatNumber(q.Min)
		qctx["max"] = formatNumber(q.Max)
		qctx["step"] = formatNumber(q.Step)
		qctx["value"] = formatNumber(numericValue(value, q.Min))
	case fields.WidgetStarRating:
		stars := make([]map[string]any, 0, q.Count)
		rated := int(numericValue(value, 0))
		for i := 1; i <= q.Count; i++ {
			stars = append(stars, map[string]any{
				"index":  strconv.Itoa(i),
				"filled": i <= rated,
			})
		}
		qctx["stars"] = stars
		qctx["value"] = strconv.Itoa(rated)
	}

	return qctx
}

// currentState resolves the value, error and widget for a question from the
// live form when present, falling back to per-request options and defaults.
func currentState(q schema.Question, view render.View, opts render.Options) (any, string, string) {
	var (
		value  any
		errMsg string
		widget string
	)

	if view.Form != nil {
		if c, ok := view.Form.Controller(q.ID); ok {
			value = c.Value()
			errMsg = c.Err()
			widget = c.Widget()
		}
	}
	if widget == "" {
		handler, _ := fields.Resolve(q.Type)
		widget = handler.Widget()
		value = handler.Default(q)
	}
	if override, ok := opts.Values[q.ID]; ok {
		handler, _ := fields.Resolve(q.Type)
		value = handler.Normalize(q, override)
	}
	if msg, ok := opts.Errors[q.ID]; ok && msg != "" {
		errMsg = msg
	}
	return value, errMsg, widget
}

func optionContexts(options []schema.Option, selected func(string) bool) []map[string]any {
	out := make([]map[string]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"selected": selected(option.Value),
		})
	}
	return out
}

func stringValue(v any) string {
	if v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

func stringSet(v any) map[string]struct{} {
	out := make(map[string]struct{})
	switch values := v.(type) {
	case []string:
		for _, value := range values {
			out[value] = struct{}{}
		}
	case []any:
		for _, value := range values {
			out[stringValue(value)] = struct{}{}
		}
	}
	return out
}

// formatNumber renders numeric attributes without a trailing fractional part
// for whole values.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func numericValue(v any, fallback float64) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case int:
		return float64(value)
	case int64:
		return float64(value)
	default:
		return fallback
	}
}
