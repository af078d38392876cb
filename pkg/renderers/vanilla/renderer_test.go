package vanilla

import (
	"context"
	"strings"
	"testing"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/render"
	"github.com/goliatone/go-formflow/pkg/schema"
)

func fixtureSchema(t *testing.T) *schema.Schema {
	t.Helper()
	s, err := schema.Decode([]byte(`{
  "title":"Feedback",
  "description":"Tell us how it went",
  "pages":[
    {"title":"About you","questions":[
      {"id":"name","type":"single-line-text","label":"Your name","required":true},
      {"id":"bio","type":"multi-line-text","label":"About yourself"},
      {"id":"channel","type":"single-choice","label":"Preferred channel","options":[
        {"value":"email","label":"Email"},{"value":"phone","label":"Phone"}
      ]},
      {"id":"topics","type":"multi-choice","label":"Topics","options":[
        {"value":"go","label":"Go"},{"value":"web","label":"Web"}
      ]},
      {"id":"country","type":"dropdown-choice","label":"Country","options":[
        {"value":"pt","label":"Portugal"},{"value":"us","label":"United States"}
      ]},
      {"id":"years","type":"numeric-slider","label":"Years of experience","min":0,"max":10},
      {"id":"rating","type":"star-rating","label":"Rate us","required":true,"count":5},
      {"id":"future","type":"hologram","label":"Hologram question"}
    ]}
  ]
}`))
	if err != nil {
		t.Fatalf("decode fixture: %v", err)
	}
	return s
}

func renderFixture(t *testing.T, view render.View, opts render.Options) string {
	t.Helper()
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	out, err := r.Render(context.Background(), view, opts)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return string(out)
}

func TestRender_AllWidgets(t *testing.T) {
	s := fixtureSchema(t)
	html := renderFixture(t, render.View{Schema: s}, render.Options{})

	for _, want := range []string{
		`<input type="text" id="name"`,
		`<textarea id="bio"`,
		`type="radio" name="channel" value="email"`,
		`type="checkbox" name="topics" value="go"`,
		`<select id="country"`,
		`type="range" id="years"`,
		`class="ff-stars"`,
		`This question type is not supported.`,
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("expected output to contain %q\n%s", want, html)
		}
	}
	if !strings.Contains(html, "Feedback") {
		t.Fatalf("expected questionnaire title in output")
	}
	if !strings.Contains(html, "Your name *") {
		t.Fatalf("expected required marker on label")
	}
}

func TestRender_ThemeVariables(t *testing.T) {
	s := fixtureSchema(t)
	html := renderFixture(t, render.View{Schema: s}, render.Options{})

	if !strings.Contains(html, "--ff-primary: #4f46e5;") {
		t.Fatalf("expected theme css variables in the style block")
	}
	if !strings.Contains(html, "var(--ff-background)") {
		t.Fatalf("expected body styles to consume theme variables")
	}
}

func TestRender_FieldErrorsAdjacent(t *testing.T) {
	s := fixtureSchema(t)
	f := form.New(s)
	f.Submit()

	html := renderFixture(t, render.View{Schema: s, Form: f}, render.Options{})

	if !strings.Contains(html, `data-error-for="name"`) {
		t.Fatalf("expected error marker next to the name question")
	}
	if !strings.Contains(html, "This field is required") {
		t.Fatalf("expected required message rendered")
	}
	if !strings.Contains(html, "Please provide a rating") {
		t.Fatalf("expected rating message rendered")
	}
	if strings.Contains(html, `data-error-for="bio"`) {
		t.Fatalf("optional question must not carry an error")
	}
}

func TestRender_FormValuesReflected(t *testing.T) {
	s := fixtureSchema(t)
	f := form.New(s)
	f.SetValue("name", "Ada")
	f.SetValue("channel", "phone")
	f.SetValue("topics", []string{"web"})
	f.SetValue("rating", 3)

	html := renderFixture(t, render.View{Schema: s, Form: f}, render.Options{})

	if !strings.Contains(html, `value="Ada"`) {
		t.Fatalf("expected text value reflected")
	}
	if !strings.Contains(html, `value="phone" checked`) {
		t.Fatalf("expected selected radio checked")
	}
	if !strings.Contains(html, `value="web" checked`) {
		t.Fatalf("expected selected checkbox checked")
	}
	if !strings.Contains(html, `data-value="3"`) {
		t.Fatalf("expected star rating value reflected")
	}
}

func TestRender_OptionOverrides(t *testing.T) {
	s := fixtureSchema(t)
	html := renderFixture(t, render.View{Schema: s}, render.Options{
		Values: map[string]any{"name": "Override"},
		Errors: map[string]string{"name": "Server side message"},
	})

	if !strings.Contains(html, `value="Override"`) {
		t.Fatalf("expected overridden value rendered")
	}
	if !strings.Contains(html, "Server side message") {
		t.Fatalf("expected overridden error rendered")
	}
}

func TestRender_SubmissionBlock(t *testing.T) {
	s := fixtureSchema(t)
	html := renderFixture(t, render.View{
		Schema:     s,
		Submission: map[string]any{"name": "Ada", "rating": 5},
	}, render.Options{})

	if !strings.Contains(html, "data-submission") {
		t.Fatalf("expected submission block rendered")
	}
	if !strings.Contains(html, "<dt>Your name</dt>") {
		t.Fatalf("expected submitted label rendered")
	}
	if !strings.Contains(html, "<dd>Ada</dd>") {
		t.Fatalf("expected submitted value rendered")
	}
}

func TestRender_ErrorBanner(t *testing.T) {
	s := fixtureSchema(t)
	html := renderFixture(t, render.View{
		Schema:       s,
		ErrorMessage: "We couldn't load a new questionnaire. Please try again.",
	}, render.Options{})

	if !strings.Contains(html, "ff-banner-error") {
		t.Fatalf("expected error banner rendered")
	}
}

func TestRender_RequiresSchema(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if _, err := r.Render(context.Background(), render.View{}, render.Options{}); err == nil {
		t.Fatalf("expected error for missing schema")
	}
}

func TestRendererMetadata(t *testing.T) {
	r, err := New()
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	if r.Name() != "vanilla" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	if r.ContentType() != "text/html; charset=utf-8" {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}
