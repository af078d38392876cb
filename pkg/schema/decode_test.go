package schema

import (
	"strings"
	"testing"
)

func TestDecode_EmptyPayload(t *testing.T) {
	if _, err := Decode(nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestDecode_InvalidJSON(t *testing.T) {
	if _, err := Decode([]byte(`{"title":`)); err == nil {
		t.Fatalf("expected error for malformed payload")
	}
}

func TestDecode_NoPages(t *testing.T) {
	if _, err := Decode([]byte(`{"title":"Survey","pages":[]}`)); err == nil {
		t.Fatalf("expected error for questionnaire without pages")
	}
}

func TestDecode_DuplicateIDsFirstWins(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[
    {"title":"One","questions":[
      {"id":"q1","type":"single-line-text","label":"First"},
      {"id":"q1","type":"multi-line-text","label":"Shadowed"}
    ]},
    {"title":"Two","questions":[
      {"id":"q1","type":"star-rating","label":"Also shadowed"}
    ]}
  ]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	questions := s.Questions()
	if len(questions) != 1 {
		t.Fatalf("expected 1 question after dedupe, got %d", len(questions))
	}
	if questions[0].Label != "First" {
		t.Fatalf("expected first occurrence to win, got %q", questions[0].Label)
	}
}

func TestDecode_DropsQuestionsWithoutID(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[{"title":"One","questions":[
    {"id":"","type":"single-line-text","label":"No id"},
    {"id":"  ","type":"single-line-text","label":"Blank id"},
    {"id":"kept","type":"single-line-text","label":"Kept"}
  ]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(s.Questions()) != 1 {
		t.Fatalf("expected only the identified question, got %d", len(s.Questions()))
	}
	if _, ok := s.QuestionByID("kept"); !ok {
		t.Fatalf("expected question kept to survive")
	}
}

func TestDecode_SanitizesDisplayStrings(t *testing.T) {
	raw := []byte(`{
  "title":"<script>alert(1)</script>Survey",
  "pages":[{"title":"<b>Page</b>","questions":[
    {"id":"q1","type":"single-choice","label":"<img src=x onerror=alert(1)>Pick",
     "options":[{"value":"a","label":"<i>A</i>"}]}
  ]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Title != "Survey" {
		t.Fatalf("expected title stripped of markup, got %q", s.Title)
	}
	if s.Pages[0].Title != "Page" {
		t.Fatalf("expected page title stripped, got %q", s.Pages[0].Title)
	}
	q := s.Pages[0].Questions[0]
	if q.Label != "Pick" {
		t.Fatalf("expected question label stripped, got %q", q.Label)
	}
	if q.Options[0].Label != "A" {
		t.Fatalf("expected option label stripped, got %q", q.Options[0].Label)
	}
}

func TestDecode_SliderDefaults(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[{"questions":[
    {"id":"inverted","type":"numeric-slider","label":"Inverted","min":10,"max":1},
    {"id":"nostep","type":"numeric-slider","label":"No step","min":0,"max":5}
  ]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	inverted, _ := s.QuestionByID("inverted")
	if inverted.Min != 1 || inverted.Max != 10 {
		t.Fatalf("expected inverted bounds swapped, got min=%v max=%v", inverted.Min, inverted.Max)
	}
	nostep, _ := s.QuestionByID("nostep")
	if nostep.Step != 1 {
		t.Fatalf("expected default step 1, got %v", nostep.Step)
	}
}

func TestDecode_StarRatingDefaultCount(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[{"questions":[{"id":"q1","type":"star-rating","label":"Rate"}]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	q, _ := s.QuestionByID("q1")
	if q.Count != DefaultStarCount {
		t.Fatalf("expected default star count %d, got %d", DefaultStarCount, q.Count)
	}
}

func TestDecode_OptionValueFallsBackToLabel(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[{"questions":[
    {"id":"q1","type":"dropdown-choice","label":"Pick","options":[{"label":"Only label"}]}
  ]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	q, _ := s.QuestionByID("q1")
	if q.Options[0].Value != "Only label" {
		t.Fatalf("expected option value to fall back to label, got %q", q.Options[0].Value)
	}
}

func TestDecode_UnknownTypePreserved(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[{"questions":[{"id":"q1","type":"hologram","label":"Future"}]}]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	q, ok := s.QuestionByID("q1")
	if !ok {
		t.Fatalf("expected unknown-typed question to survive decoding")
	}
	if q.Type.Known() {
		t.Fatalf("expected type %q to report unknown", q.Type)
	}
}

func TestDecode_PageIDDefaults(t *testing.T) {
	raw := []byte(`{
  "title":"Survey",
  "pages":[
    {"questions":[{"id":"q1","type":"single-line-text","label":"A"}]},
    {"id":"custom","questions":[{"id":"q2","type":"single-line-text","label":"B"}]}
  ]
}`)
	s, err := Decode(raw)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if s.Pages[0].ID != "page-1" {
		t.Fatalf("expected generated page id page-1, got %q", s.Pages[0].ID)
	}
	if s.Pages[1].ID != "custom" {
		t.Fatalf("expected explicit page id preserved, got %q", s.Pages[1].ID)
	}
}

func TestDecodeYAML_Document(t *testing.T) {
	raw := []byte(`
title: Survey
pages:
  - title: One
    questions:
      - id: q1
        type: single-line-text
        label: Name
        required: true
      - id: q2
        type: star-rating
        label: Rate us
`)
	s, err := DecodeYAML(raw)
	if err != nil {
		t.Fatalf("decode yaml: %v", err)
	}
	if len(s.Questions()) != 2 {
		t.Fatalf("expected 2 questions, got %d", len(s.Questions()))
	}
	q2, _ := s.QuestionByID("q2")
	if q2.Count != DefaultStarCount {
		t.Fatalf("expected yaml document to pass through normalization, count=%d", q2.Count)
	}
}

func TestDecodeYAML_Invalid(t *testing.T) {
	if _, err := DecodeYAML([]byte("title: [unclosed")); err == nil {
		t.Fatalf("expected error for malformed yaml")
	}
	if _, err := DecodeYAML(nil); err == nil {
		t.Fatalf("expected error for empty yaml payload")
	}
}

func TestQuestionByID_Missing(t *testing.T) {
	s := &Schema{Pages: []Page{{Questions: []Question{{ID: "q1"}}}}}
	if _, ok := s.QuestionByID("q9"); ok {
		t.Fatalf("expected lookup miss for unknown id")
	}
	if _, ok := s.QuestionByID(""); ok {
		t.Fatalf("expected lookup miss for empty id")
	}
}

func TestSanitizeText_TrimsWhitespace(t *testing.T) {
	if got := sanitizeText("  padded  "); got != "padded" {
		t.Fatalf("expected trimmed text, got %q", got)
	}
	if got := sanitizeText("   "); got != "" {
		t.Fatalf("expected empty result for whitespace, got %q", got)
	}
	if got := sanitizeText("<p>  wrapped  </p>"); !strings.Contains(got, "wrapped") {
		t.Fatalf("expected inner text preserved, got %q", got)
	}
}
