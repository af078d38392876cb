// Package generate defines the contract with the external schema generation
// collaborator and the built-in Generator implementations.
package generate

import (
	"context"
	"fmt"

	"github.com/goliatone/go-formflow/pkg/schema"
)

// Generator produces a brand-new questionnaire Schema. Generation is the only
// long-latency operation in the engine; callers must never block interaction
// with a displayed form on it.
type Generator interface {
	Generate(ctx context.Context) (*schema.Schema, error)
}

// GeneratorFunc adapts a plain function to the Generator interface.
type GeneratorFunc func(ctx context.Context) (*schema.Schema, error)

// Generate implements Generator.
func (f GeneratorFunc) Generate(ctx context.Context) (*schema.Schema, error) {
	return f(ctx)
}

// Stages a generation request can fail in.
const (
	StageRequest = "request"
	StageStatus  = "status"
	StageDecode  = "decode"
	StageContent = "content"
)

// GenerationError wraps a schema fetch failure with the stage it occurred in.
// Lifecycle surfaces it to the user only for user-triggered fetches; prefetch
// failures stay logged and silent.
type GenerationError struct {
	Stage string
	Err   error
}

// Error implements the error interface.
func (e *GenerationError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("generate: %s failed", e.Stage)
	}
	return fmt.Sprintf("generate: %s failed: %v", e.Stage, e.Err)
}

// Unwrap exposes the underlying cause for errors.Is/As.
func (e *GenerationError) Unwrap() error {
	return e.Err
}

func newGenerationError(stage string, err error) *GenerationError {
	return &GenerationError{Stage: stage, Err: err}
}
