package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	formflow "github.com/goliatone/go-formflow"
	"github.com/goliatone/go-formflow/pkg/generate"
	openapiimport "github.com/goliatone/go-formflow/pkg/generate/openapi"
	"github.com/goliatone/go-formflow/pkg/lifecycle"
	"github.com/goliatone/go-formflow/pkg/render"
)

func main() {
	source := flag.String("source", "", "questionnaire schema path or URL")
	openapiDoc := flag.String("openapi", "", "OpenAPI document path (import mode)")
	operation := flag.String("operation", "", "operation ID for OpenAPI import mode")
	rendererName := flag.String("renderer", "vanilla", "renderer to use (vanilla|tui)")
	output := flag.String("output", "", "output file (stdout if empty)")
	flag.Parse()

	ctx := context.Background()

	generator, err := buildGenerator(*source, *openapiDoc, *operation)
	if err != nil {
		log.Fatalf("configure generator: %v", err)
	}

	lc, err := formflow.NewLifecycle(
		lifecycle.WithGenerator(generator),
		lifecycle.WithTransitionDelay(0),
		lifecycle.WithRevealDelay(0),
	)
	if err != nil {
		log.Fatalf("configure lifecycle: %v", err)
	}

	if err := lc.Start(ctx); err != nil {
		log.Fatalf("load questionnaire: %v", err)
	}

	registry, err := formflow.DefaultRegistry()
	if err != nil {
		log.Fatalf("configure renderers: %v", err)
	}

	renderer, err := registry.Get(*rendererName)
	if err != nil {
		log.Fatalf("resolve renderer: %v", err)
	}

	snap := lc.Snapshot()
	view := render.View{
		Schema:     snap.Schema,
		Form:       lc.Form(),
		Theme:      snap.Theme,
		ThemeCSS:   snap.ThemeCSS,
		Submission: snap.Submission,
	}

	out, err := renderer.Render(ctx, view, render.Options{})
	if err != nil {
		log.Fatalf("render questionnaire: %v", err)
	}
	lc.Wait()

	if *output != "" {
		if err := os.WriteFile(*output, out, 0o644); err != nil {
			log.Fatalf("write output: %v", err)
		}
		fmt.Printf("Output written to %s\n", *output)
		return
	}
	fmt.Println(string(out))
}

func buildGenerator(source, openapiDoc, operation string) (generate.Generator, error) {
	switch {
	case openapiDoc != "":
		raw, err := os.ReadFile(openapiDoc)
		if err != nil {
			return nil, err
		}
		return openapiimport.New(raw, operation)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		return generate.NewHTTP(source)
	case source != "":
		return generate.NewStaticFromFile(source)
	default:
		return nil, fmt.Errorf("either -source or -openapi is required")
	}
}
