package generate

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"sync"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// StaticGenerator serves questionnaires from pre-loaded schema documents,
// cycling through them when more than one is supplied. Useful for the CLI,
// examples and tests where no generation service is available.
type StaticGenerator struct {
	mu   sync.Mutex
	docs []schema.Document
	next int
}

// NewStatic constructs a StaticGenerator from one or more documents.
func NewStatic(docs ...schema.Document) (*StaticGenerator, error) {
	if len(docs) == 0 {
		return nil, errors.New("generate: at least one document is required")
	}
	return &StaticGenerator{docs: append([]schema.Document(nil), docs...)}, nil
}

// NewStaticFromFile loads a JSON or YAML schema document from disk.
func NewStaticFromFile(path string) (*StaticGenerator, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, newGenerationError(StageRequest, err)
	}
	doc, err := schema.NewDocument(schema.SourceFromFile(path), raw)
	if err != nil {
		return nil, newGenerationError(StageContent, err)
	}
	return NewStatic(doc)
}

// NewStaticFromFS loads schema documents by name from an fs.FS.
func NewStaticFromFS(fsys fs.FS, names ...string) (*StaticGenerator, error) {
	if fsys == nil {
		return nil, errors.New("generate: fs is required")
	}
	docs := make([]schema.Document, 0, len(names))
	for _, name := range names {
		raw, err := fs.ReadFile(fsys, name)
		if err != nil {
			return nil, newGenerationError(StageRequest, err)
		}
		doc, err := schema.NewDocument(schema.SourceFromFS(name), raw)
		if err != nil {
			return nil, newGenerationError(StageContent, err)
		}
		docs = append(docs, doc)
	}
	return NewStatic(docs...)
}

// Generate implements Generator, decoding the next document in rotation.
func (g *StaticGenerator) Generate(ctx context.Context) (*schema.Schema, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	g.mu.Lock()
	doc := g.docs[g.next%len(g.docs)]
	g.next++
	g.mu.Unlock()

	decoded, err := doc.Decode()
	if err != nil {
		return nil, newGenerationError(StageDecode, err)
	}
	return decoded, nil
}
