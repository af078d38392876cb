package schema

import (
	"sort"
	"strings"

	theme "github.com/goliatone/go-theme"
)

// Theme carries the semantic presentation tokens of a questionnaire. Values
// are opaque strings; invalid tokens degrade visually but never prevent
// rendering, so no syntax validation happens beyond non-empty defaults.
type Theme struct {
	PrimaryColor      string `json:"primaryColor,omitempty" yaml:"primaryColor,omitempty"`
	BackgroundColor   string `json:"backgroundColor,omitempty" yaml:"backgroundColor,omitempty"`
	TextColor         string `json:"textColor,omitempty" yaml:"textColor,omitempty"`
	QuestionTextColor string `json:"questionTextColor,omitempty" yaml:"questionTextColor,omitempty"`
	AnswerTextColor   string `json:"answerTextColor,omitempty" yaml:"answerTextColor,omitempty"`
	FontFamily        string `json:"fontFamily,omitempty" yaml:"fontFamily,omitempty"`
	BorderRadius      string `json:"borderRadius,omitempty" yaml:"borderRadius,omitempty"`
}

// cssSafe strips characters that could break out of a CSS declaration. Theme
// tokens are untrusted; a mangled token degrades visually, which is fine.
func cssSafe(raw string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '<', '>', '{', '}', ';', '\\':
			return -1
		default:
			return r
		}
	}, raw)
}

func (t *Theme) applyDefaults() {
	t.PrimaryColor = cssSafe(t.PrimaryColor)
	t.BackgroundColor = cssSafe(t.BackgroundColor)
	t.TextColor = cssSafe(t.TextColor)
	t.QuestionTextColor = cssSafe(t.QuestionTextColor)
	t.AnswerTextColor = cssSafe(t.AnswerTextColor)
	t.FontFamily = cssSafe(t.FontFamily)
	t.BorderRadius = cssSafe(t.BorderRadius)

	if t.PrimaryColor == "" {
		t.PrimaryColor = "#4f46e5"
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = "#ffffff"
	}
	if t.TextColor == "" {
		t.TextColor = "#1f2937"
	}
	if t.QuestionTextColor == "" {
		t.QuestionTextColor = t.TextColor
	}
	if t.AnswerTextColor == "" {
		t.AnswerTextColor = t.TextColor
	}
	if t.FontFamily == "" {
		t.FontFamily = "system-ui, sans-serif"
	}
	if t.BorderRadius == "" {
		t.BorderRadius = "8px"
	}
}

// Tokens returns the theme as a flat token map.
func (t Theme) Tokens() map[string]string {
	return map[string]string{
		"primaryColor":      t.PrimaryColor,
		"backgroundColor":   t.BackgroundColor,
		"textColor":         t.TextColor,
		"questionTextColor": t.QuestionTextColor,
		"answerTextColor":   t.AnswerTextColor,
		"fontFamily":        t.FontFamily,
		"borderRadius":      t.BorderRadius,
	}
}

// CSSVars maps the theme tokens onto CSS custom property names.
func (t Theme) CSSVars() map[string]string {
	return map[string]string{
		"--ff-primary":       t.PrimaryColor,
		"--ff-background":    t.BackgroundColor,
		"--ff-text":          t.TextColor,
		"--ff-question-text": t.QuestionTextColor,
		"--ff-answer-text":   t.AnswerTextColor,
		"--ff-font-family":   t.FontFamily,
		"--ff-border-radius": t.BorderRadius,
	}
}

// RendererConfig adapts the schema theme into a go-theme renderer
// configuration so renderers consume it the same way as provider-resolved
// themes. The enclosing presentation layer applies it; widgets never write
// document-level state themselves.
func (t Theme) RendererConfig() *theme.RendererConfig {
	return &theme.RendererConfig{
		Theme:   "questionnaire",
		Tokens:  t.Tokens(),
		CSSVars: t.CSSVars(),
	}
}

// CSSVarsStyle renders the CSS custom properties as a :root block ready to
// embed in a style tag.
func (t Theme) CSSVarsStyle() string {
	vars := t.CSSVars()
	keys := make([]string, 0, len(vars))
	for key := range vars {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(":root {\n")
	for _, key := range keys {
		b.WriteString(key)
		b.WriteString(": ")
		b.WriteString(vars[key])
		b.WriteString(";\n")
	}
	b.WriteString("}")
	return b.String()
}
