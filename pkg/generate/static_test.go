package generate

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formflow/pkg/schema"
)

func staticDoc(t *testing.T, name, title string) schema.Document {
	t.Helper()
	raw := []byte(`{
  "title":"` + title + `",
  "pages":[{"questions":[{"id":"q1","type":"single-line-text","label":"Name"}]}]
}`)
	return schema.MustNewDocument(schema.SourceFromFS(name), raw)
}

func TestStaticGenerate_CyclesDocuments(t *testing.T) {
	gen, err := NewStatic(
		staticDoc(t, "a.json", "First"),
		staticDoc(t, "b.json", "Second"),
	)
	if err != nil {
		t.Fatalf("new static: %v", err)
	}

	want := []string{"First", "Second", "First"}
	for i, title := range want {
		s, err := gen.Generate(context.Background())
		if err != nil {
			t.Fatalf("generate %d: %v", i, err)
		}
		if s.Title != title {
			t.Fatalf("generate %d: expected %q, got %q", i, title, s.Title)
		}
	}
}

func TestNewStatic_RequiresDocuments(t *testing.T) {
	if _, err := NewStatic(); err == nil {
		t.Fatalf("expected error without documents")
	}
}

func TestStaticGenerate_DecodeFailure(t *testing.T) {
	doc := schema.MustNewDocument(schema.SourceFromFS("broken.json"), []byte(`{"title":`))
	gen, err := NewStatic(doc)
	if err != nil {
		t.Fatalf("new static: %v", err)
	}

	_, err = gen.Generate(context.Background())
	var genErr *GenerationError
	if !errors.As(err, &genErr) {
		t.Fatalf("expected GenerationError, got %v", err)
	}
	if genErr.Stage != StageDecode {
		t.Fatalf("expected decode stage, got %q", genErr.Stage)
	}
}

func TestStaticGenerate_CanceledContext(t *testing.T) {
	gen, err := NewStatic(staticDoc(t, "a.json", "First"))
	if err != nil {
		t.Fatalf("new static: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := gen.Generate(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context cancellation, got %v", err)
	}
}

func TestNewStaticFromFS(t *testing.T) {
	fsys := fstest.MapFS{
		"surveys/one.json": &fstest.MapFile{Data: []byte(`{
  "title":"One",
  "pages":[{"questions":[{"id":"q1","type":"single-line-text","label":"Name"}]}]
}`)},
		"surveys/two.yaml": &fstest.MapFile{Data: []byte(`
title: Two
pages:
  - questions:
      - id: q1
        type: single-line-text
        label: Name
`)},
	}

	gen, err := NewStaticFromFS(fsys, "surveys/one.json", "surveys/two.yaml")
	if err != nil {
		t.Fatalf("new static from fs: %v", err)
	}

	s, err := gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.Title != "One" {
		t.Fatalf("expected first document, got %q", s.Title)
	}

	s, err = gen.Generate(context.Background())
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if s.Title != "Two" {
		t.Fatalf("expected yaml document decoded, got %q", s.Title)
	}
}

func TestNewStaticFromFS_MissingFile(t *testing.T) {
	if _, err := NewStaticFromFS(fstest.MapFS{}, "missing.json"); err == nil {
		t.Fatalf("expected error for missing file")
	}
	if _, err := NewStaticFromFS(nil, "a.json"); err == nil {
		t.Fatalf("expected error for nil fs")
	}
}
