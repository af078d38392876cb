package schema

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"
	"gopkg.in/yaml.v3"
)

// DefaultStarCount is applied when a star-rating question omits its count.
const DefaultStarCount = 5

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// Decode parses a JSON questionnaire payload and normalizes it. The payload
// comes from an external generative collaborator and is treated as untrusted:
// missing optional fields receive defaults, duplicate question ids are
// dropped (first occurrence wins), display strings are stripped of markup,
// and unknown question types pass through for the unsupported render path.
func Decode(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: payload is empty")
	}
	var s Schema
	if err := json.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("schema: decode payload: %w", err)
	}
	if err := normalize(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

// DecodeYAML parses a YAML questionnaire document through the same
// normalization pipeline as Decode. Used for file-based schema documents.
func DecodeYAML(raw []byte) (*Schema, error) {
	if len(raw) == 0 {
		return nil, errors.New("schema: payload is empty")
	}
	var s Schema
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, fmt.Errorf("schema: decode yaml payload: %w", err)
	}
	if err := normalize(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func normalize(s *Schema) error {
	if len(s.Pages) == 0 {
		return errors.New("schema: questionnaire has no pages")
	}

	s.Title = sanitizeText(s.Title)
	s.Description = sanitizeText(s.Description)
	s.Theme.applyDefaults()

	seen := make(map[string]struct{})
	for pi := range s.Pages {
		page := &s.Pages[pi]
		page.Title = sanitizeText(page.Title)
		if page.ID == "" {
			page.ID = fmt.Sprintf("page-%d", pi+1)
		}

		kept := page.Questions[:0]
		for _, q := range page.Questions {
			q.ID = strings.TrimSpace(q.ID)
			if q.ID == "" {
				continue
			}
			if _, dup := seen[q.ID]; dup {
				continue
			}
			seen[q.ID] = struct{}{}
			normalizeQuestion(&q)
			kept = append(kept, q)
		}
		page.Questions = kept
	}
	return nil
}

func normalizeQuestion(q *Question) {
	q.Label = sanitizeText(q.Label)

	for i := range q.Options {
		q.Options[i].Label = sanitizeText(q.Options[i].Label)
		if q.Options[i].Value == "" {
			q.Options[i].Value = q.Options[i].Label
		}
	}

	switch q.Type {
	case TypeNumericSlider:
		if q.Max < q.Min {
			q.Min, q.Max = q.Max, q.Min
		}
		if q.Step <= 0 {
			q.Step = 1
		}
	case TypeStarRating:
		if q.Count <= 0 {
			q.Count = DefaultStarCount
		}
	}
}

// sanitizeText strips any markup from schema-supplied display strings. The
// generator output is arbitrary-shaped and must render safely.
func sanitizeText(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(textSanitizer().Sanitize(trimmed))
}

func textSanitizer() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}
