package schema

// QuestionType enumerates the closed set of input kinds a question can be.
// Values outside this set are preserved during decoding and routed to the
// unsupported render path instead of failing the whole questionnaire.
type QuestionType string

const (
	TypeSingleLineText QuestionType = "single-line-text"
	TypeMultiLineText  QuestionType = "multi-line-text"
	TypeSingleChoice   QuestionType = "single-choice"
	TypeMultiChoice    QuestionType = "multi-choice"
	TypeDropdownChoice QuestionType = "dropdown-choice"
	TypeNumericSlider  QuestionType = "numeric-slider"
	TypeStarRating     QuestionType = "star-rating"
)

// Known reports whether t belongs to the closed question-type set.
func (t QuestionType) Known() bool {
	switch t {
	case TypeSingleLineText, TypeMultiLineText, TypeSingleChoice,
		TypeMultiChoice, TypeDropdownChoice, TypeNumericSlider, TypeStarRating:
		return true
	default:
		return false
	}
}

// Option is a selectable choice for choice-like question types.
type Option struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Question models a single input inside a questionnaire. Numeric bounds only
// apply to numeric-slider questions; Count only applies to star-rating.
type Question struct {
	ID       string       `json:"id" yaml:"id"`
	Type     QuestionType `json:"type" yaml:"type"`
	Label    string       `json:"label" yaml:"label"`
	Required bool         `json:"required" yaml:"required"`
	Options  []Option     `json:"options,omitempty" yaml:"options,omitempty"`
	Min      float64      `json:"min,omitempty" yaml:"min,omitempty"`
	Max      float64      `json:"max,omitempty" yaml:"max,omitempty"`
	Step     float64      `json:"step,omitempty" yaml:"step,omitempty"`
	Count    int          `json:"count,omitempty" yaml:"count,omitempty"`
}

// Page groups an ordered sequence of questions under a title.
type Page struct {
	ID        string     `json:"id" yaml:"id"`
	Title     string     `json:"title" yaml:"title"`
	Questions []Question `json:"questions" yaml:"questions"`
}

// Schema is the full declarative description of one questionnaire instance.
// It is immutable once decoded; a new questionnaire is always a brand-new
// Schema value, never a mutation of a displayed one.
type Schema struct {
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Theme       Theme  `json:"theme" yaml:"theme"`
	Pages       []Page `json:"pages" yaml:"pages"`
}

// Questions returns the questions of every page flattened into schema order.
func (s *Schema) Questions() []Question {
	if s == nil {
		return nil
	}
	var out []Question
	for _, page := range s.Pages {
		out = append(out, page.Questions...)
	}
	return out
}

// QuestionByID looks up a question across all pages.
func (s *Schema) QuestionByID(id string) (Question, bool) {
	if s == nil || id == "" {
		return Question{}, false
	}
	for _, page := range s.Pages {
		for _, q := range page.Questions {
			if q.ID == id {
				return q, true
			}
		}
	}
	return Question{}, false
}
