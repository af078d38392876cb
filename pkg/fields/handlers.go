package fields

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// User-facing validation messages, surfaced inline next to the offending
// field.
const (
	MsgFieldRequired = "This field is required"
	MsgSelectOption  = "Please select an option"
	MsgSelectAtLeast = "Please select at least one option"
	MsgProvideRating = "Please provide a rating"
)

type textHandler struct {
	kind   schema.QuestionType
	widget string
}

func (h textHandler) Type() schema.QuestionType { return h.kind }
func (h textHandler) Widget() string            { return h.widget }

func (h textHandler) Default(schema.Question) any { return "" }

func (h textHandler) Normalize(_ schema.Question, v any) any {
	return coerceString(v)
}

func (h textHandler) Validate(q schema.Question, v any) error {
	if q.Required && strings.TrimSpace(coerceString(v)) == "" {
		return errors.New(MsgFieldRequired)
	}
	return nil
}

// choiceHandler covers single-select kinds (radio group and dropdown). The
// value is the chosen option value; empty string means nothing chosen yet.
type choiceHandler struct {
	kind   schema.QuestionType
	widget string
}

func (h choiceHandler) Type() schema.QuestionType { return h.kind }
func (h choiceHandler) Widget() string            { return h.widget }

func (h choiceHandler) Default(schema.Question) any { return "" }

func (h choiceHandler) Normalize(_ schema.Question, v any) any {
	return coerceString(v)
}

func (h choiceHandler) Validate(q schema.Question, v any) error {
	if q.Required && coerceString(v) == "" {
		return errors.New(MsgSelectOption)
	}
	return nil
}

type multiChoice struct{}

func (multiChoice) Type() schema.QuestionType { return schema.TypeMultiChoice }
func (multiChoice) Widget() string            { return WidgetCheckboxGroup }

func (multiChoice) Default(schema.Question) any { return []string{} }

func (multiChoice) Normalize(_ schema.Question, v any) any {
	return coerceStringSlice(v)
}

func (multiChoice) Validate(q schema.Question, v any) error {
	if q.Required && len(coerceStringSlice(v)) == 0 {
		return errors.New(MsgSelectAtLeast)
	}
	return nil
}

// slider always holds a value, so there is no required-empty case. Out of
// range inputs are clamped at set time, never rejected, and values snap to a
// multiple of step from min.
type slider struct{}

func (slider) Type() schema.QuestionType { return schema.TypeNumericSlider }
func (slider) Widget() string            { return WidgetRangeSlider }

func (slider) Default(q schema.Question) any { return q.Min }

func (slider) Normalize(q schema.Question, v any) any {
	val, ok := coerceFloat(v)
	if !ok {
		return q.Min
	}
	if val < q.Min {
		return q.Min
	}
	if val > q.Max {
		return q.Max
	}
	step := q.Step
	if step <= 0 {
		step = 1
	}
	snapped := q.Min + math.Round((val-q.Min)/step)*step
	if snapped > q.Max {
		snapped = q.Max
	}
	if snapped < q.Min {
		snapped = q.Min
	}
	return snapped
}

func (slider) Validate(schema.Question, any) error { return nil }

// rating holds the selected star index; zero means no rating yet.
type rating struct{}

func (rating) Type() schema.QuestionType { return schema.TypeStarRating }
func (rating) Widget() string            { return WidgetStarRating }

func (rating) Default(schema.Question) any { return 0 }

func (rating) Normalize(q schema.Question, v any) any {
	val, ok := coerceFloat(v)
	if !ok {
		return 0
	}
	count := q.Count
	if count <= 0 {
		count = schema.DefaultStarCount
	}
	stars := int(math.Round(val))
	if stars < 0 {
		stars = 0
	}
	if stars > count {
		stars = count
	}
	return stars
}

func (rating) Validate(q schema.Question, v any) error {
	stars, _ := coerceFloat(v)
	if q.Required && int(stars) == 0 {
		return errors.New(MsgProvideRating)
	}
	return nil
}

// unsupported accepts anything and never blocks submission; a question type
// unseen by this registry must not take the whole form down with it.
type unsupported struct{}

func (unsupported) Type() schema.QuestionType              { return "" }
func (unsupported) Widget() string                         { return WidgetUnsupported }
func (unsupported) Default(schema.Question) any            { return nil }
func (unsupported) Normalize(_ schema.Question, v any) any { return v }
func (unsupported) Validate(schema.Question, any) error    { return nil }

func coerceString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	default:
		return fmt.Sprint(val)
	}
}

func coerceStringSlice(v any) []string {
	switch val := v.(type) {
	case nil:
		return nil
	case []string:
		return val
	case []any:
		out := make([]string, 0, len(val))
		for _, item := range val {
			out = append(out, coerceString(item))
		}
		return out
	case string:
		if val == "" {
			return nil
		}
		return []string{val}
	default:
		return nil
	}
}

func coerceFloat(v any) (float64, bool) {
	switch val := v.(type) {
	case float64:
		return val, true
	case float32:
		return float64(val), true
	case int:
		return float64(val), true
	case int64:
		return float64(val), true
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		return parsed, err == nil
	default:
		return 0, false
	}
}
