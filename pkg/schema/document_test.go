package schema

import (
	"testing"
)

func TestNewDocument_Validation(t *testing.T) {
	if _, err := NewDocument(nil, []byte("{}")); err == nil {
		t.Fatalf("expected error for nil source")
	}
	if _, err := NewDocument(SourceFromFile("q.json"), nil); err == nil {
		t.Fatalf("expected error for empty payload")
	}
}

func TestDocumentRaw_DefensiveCopy(t *testing.T) {
	raw := []byte(`{"title":"Survey"}`)
	doc := MustNewDocument(SourceFromFile("q.json"), raw)

	raw[0] = 'X'
	if doc.Raw()[0] != '{' {
		t.Fatalf("expected document to be isolated from caller buffer")
	}

	copied := doc.Raw()
	copied[0] = 'X'
	if doc.Raw()[0] != '{' {
		t.Fatalf("expected Raw to return a fresh copy each call")
	}
}

func TestDocumentDecode_PicksPipelineByExtension(t *testing.T) {
	yamlDoc := MustNewDocument(SourceFromFile("q.yaml"), []byte(`
title: Survey
pages:
  - questions:
      - id: q1
        type: single-line-text
        label: Name
`))
	s, err := yamlDoc.Decode()
	if err != nil {
		t.Fatalf("decode yaml document: %v", err)
	}
	if s.Title != "Survey" {
		t.Fatalf("expected yaml title, got %q", s.Title)
	}

	jsonDoc := MustNewDocument(SourceFromFile("q.json"), []byte(`{
  "title":"Survey",
  "pages":[{"questions":[{"id":"q1","type":"single-line-text","label":"Name"}]}]
}`))
	if _, err := jsonDoc.Decode(); err != nil {
		t.Fatalf("decode json document: %v", err)
	}
}

func TestSourceFromURL_PanicsOnInvalid(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic for invalid URL")
		}
	}()
	SourceFromURL("://not-a-url")
}

func TestSourceKinds(t *testing.T) {
	if got := SourceFromFile("a/b.json").Kind(); got != SourceKindFile {
		t.Fatalf("expected file kind, got %q", got)
	}
	if got := SourceFromFS("b.json").Kind(); got != SourceKindFS {
		t.Fatalf("expected fs kind, got %q", got)
	}
	if got := SourceFromURL("https://example.com/q.json").Kind(); got != SourceKindURL {
		t.Fatalf("expected url kind, got %q", got)
	}
}
