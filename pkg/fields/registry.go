package fields

import "github.com/goliatone/go-formflow/pkg/schema"

// Widget identifiers renderers key off when drawing a question.
const (
	WidgetInput         = "input"
	WidgetTextarea      = "textarea"
	WidgetRadioGroup    = "radio-group"
	WidgetCheckboxGroup = "checkbox-group"
	WidgetSelect        = "select"
	WidgetRangeSlider   = "range-slider"
	WidgetStarRating    = "star-rating"
	WidgetUnsupported   = "unsupported"
)

// Handler defines how questions of one type derive, normalize and validate
// their value. Implementations are stateless singletons; per-question state
// lives in the Controller.
type Handler interface {
	Type() schema.QuestionType
	Widget() string
	Default(q schema.Question) any
	Normalize(q schema.Question, v any) any
	Validate(q schema.Question, v any) error
}

var (
	singleLineHandler  = textHandler{kind: schema.TypeSingleLineText, widget: WidgetInput}
	multiLineHandler   = textHandler{kind: schema.TypeMultiLineText, widget: WidgetTextarea}
	singleChoiceRadio  = choiceHandler{kind: schema.TypeSingleChoice, widget: WidgetRadioGroup}
	dropdownHandler    = choiceHandler{kind: schema.TypeDropdownChoice, widget: WidgetSelect}
	multiChoiceHandler = multiChoice{}
	sliderHandler      = slider{}
	ratingHandler      = rating{}
	fallbackHandler    = unsupported{}
)

// Resolve maps a question type onto its handler. The match is a closed,
// exhaustive branch over the known enumeration; anything else resolves to the
// unsupported handler with ok=false so callers can render a placeholder while
// keeping the form submittable.
func Resolve(t schema.QuestionType) (Handler, bool) {
	switch t {
	case schema.TypeSingleLineText:
		return singleLineHandler, true
	case schema.TypeMultiLineText:
		return multiLineHandler, true
	case schema.TypeSingleChoice:
		return singleChoiceRadio, true
	case schema.TypeDropdownChoice:
		return dropdownHandler, true
	case schema.TypeMultiChoice:
		return multiChoiceHandler, true
	case schema.TypeNumericSlider:
		return sliderHandler, true
	case schema.TypeStarRating:
		return ratingHandler, true
	default:
		return fallbackHandler, false
	}
}
