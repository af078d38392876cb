// Package openapi imports OpenAPI 3 operations as questionnaire schemas so
// generated API forms can drive the same lifecycle as generated
// questionnaires.
package openapi

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/goccy/go-json"

	"github.com/goliatone/go-formflow/pkg/generate"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Importer builds questionnaire schemas from one operation of an OpenAPI
// document. It implements generate.Generator so it can be plugged into the
// lifecycle directly.
type Importer struct {
	raw         []byte
	operationID string
	theme       schema.Theme
}

// Option configures the importer.
type Option func(*Importer)

// WithTheme sets the theme applied to imported questionnaires.
func WithTheme(t schema.Theme) Option {
	return func(i *Importer) {
		i.theme = t
	}
}

// New constructs an Importer for the named operation of the given OpenAPI
// document payload.
func New(raw []byte, operationID string, options ...Option) (*Importer, error) {
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}
	if operationID == "" {
		return nil, errors.New("openapi: operation id is required")
	}
	imp := &Importer{
		raw:         append([]byte(nil), raw...),
		operationID: operationID,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(imp)
	}
	return imp, nil
}

var _ generate.Generator = (*Importer)(nil)

// Generate implements generate.Generator.
func (i *Importer) Generate(ctx context.Context) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	loader := &openapi3.Loader{Context: ctx}
	spec, err := loader.LoadFromData(i.raw)
	if err != nil {
		return nil, &generate.GenerationError{Stage: generate.StageDecode, Err: fmt.Errorf("openapi: load document: %w", err)}
	}

	operation := findOperation(spec, i.operationID)
	if operation == nil {
		return nil, &generate.GenerationError{Stage: generate.StageContent, Err: fmt.Errorf("openapi: operation %q not found", i.operationID)}
	}

	body := requestSchema(operation)
	if body == nil {
		return nil, &generate.GenerationError{Stage: generate.StageContent, Err: fmt.Errorf("openapi: operation %q has no request schema", i.operationID)}
	}

	questions := questionsFromSchema(body)
	if len(questions) == 0 {
		return nil, &generate.GenerationError{Stage: generate.StageContent, Err: fmt.Errorf("openapi: operation %q produced no questions", i.operationID)}
	}

	title := operation.Summary
	if title == "" {
		title = i.operationID
	}

	payload := &schema.Schema{
		Title:       title,
		Description: operation.Description,
		Theme:       i.theme,
		Pages: []schema.Page{
			{
				ID:        i.operationID,
				Title:     title,
				Questions: questions,
			},
		},
	}

	// Round-trip through the tolerant decode pipeline so imported forms obey
	// the same defaulting and sanitization rules as generated ones.
	encoded, err := json.Marshal(payload)
	if err != nil {
		return nil, &generate.GenerationError{Stage: generate.StageContent, Err: err}
	}
	normalized, err := schema.Decode(encoded)
	if err != nil {
		return nil, &generate.GenerationError{Stage: generate.StageContent, Err: err}
	}
	return normalized, nil
}

func findOperation(spec *openapi3.T, operationID string) *openapi3.Operation {
	if spec == nil || spec.Paths == nil {
		return nil
	}
	for _, item := range spec.Paths.Map() {
		if item == nil {
			continue
		}
		for _, op := range item.Operations() {
			if op != nil && op.OperationID == operationID {
				return op
			}
		}
	}
	return nil
}

func requestSchema(operation *openapi3.Operation) *openapi3.Schema {
	if operation.RequestBody == nil || operation.RequestBody.Value == nil {
		return nil
	}
	content := operation.RequestBody.Value.Content
	for _, mediaType := range []string{"application/json", "application/x-www-form-urlencoded"} {
		if mt, ok := content[mediaType]; ok && mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	for _, mt := range content {
		if mt.Schema != nil {
			return mt.Schema.Value
		}
	}
	return nil
}

func questionsFromSchema(body *openapi3.Schema) []schema.Question {
	if body == nil || len(body.Properties) == 0 {
		return nil
	}

	required := make(map[string]bool, len(body.Required))
	for _, name := range body.Required {
		required[name] = true
	}

	names := make([]string, 0, len(body.Properties))
	for name := range body.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	var questions []schema.Question
	for _, name := range names {
		ref := body.Properties[name]
		if ref == nil || ref.Value == nil {
			continue
		}
		q, ok := questionFromProperty(name, ref.Value, required[name])
		if !ok {
			continue
		}
		questions = append(questions, q)
	}
	return questions
}

func questionFromProperty(name string, prop *openapi3.Schema, required bool) (schema.Question, bool) {
	q := schema.Question{
		ID:       name,
		Label:    labelFor(name, prop),
		Required: required,
	}

	switch {
	case len(prop.Enum) > 0 && !typeIs(prop, "array"):
		q.Type = schema.TypeDropdownChoice
		q.Options = optionsFromEnum(prop.Enum)
	case typeIs(prop, "array"):
		if prop.Items == nil || prop.Items.Value == nil || len(prop.Items.Value.Enum) == 0 {
			return schema.Question{}, false
		}
		q.Type = schema.TypeMultiChoice
		q.Options = optionsFromEnum(prop.Items.Value.Enum)
	case typeIs(prop, "boolean"):
		q.Type = schema.TypeSingleChoice
		q.Options = []schema.Option{
			{Value: "true", Label: "Yes"},
			{Value: "false", Label: "No"},
		}
	case typeIs(prop, "integer"), typeIs(prop, "number"):
		if prop.Min == nil || prop.Max == nil {
			return schema.Question{}, false
		}
		q.Type = schema.TypeNumericSlider
		q.Min = *prop.Min
		q.Max = *prop.Max
		q.Step = 1
		if prop.MultipleOf != nil && *prop.MultipleOf > 0 {
			q.Step = *prop.MultipleOf
		}
	case typeIs(prop, "string"):
		if prop.Format == "textarea" {
			q.Type = schema.TypeMultiLineText
		} else {
			q.Type = schema.TypeSingleLineText
		}
	default:
		return schema.Question{}, false
	}

	return q, true
}

func typeIs(prop *openapi3.Schema, kind string) bool {
	return prop.Type != nil && prop.Type.Is(kind)
}

func labelFor(name string, prop *openapi3.Schema) string {
	if prop.Title != "" {
		return prop.Title
	}
	if prop.Description != "" {
		return prop.Description
	}
	return name
}

func optionsFromEnum(values []any) []schema.Option {
	out := make([]schema.Option, 0, len(values))
	for _, value := range values {
		label := fmt.Sprint(value)
		out = append(out, schema.Option{Value: label, Label: label})
	}
	return out
}
