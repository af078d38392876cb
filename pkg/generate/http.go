package generate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/goliatone/go-formflow/pkg/schema"
)

const defaultHTTPTimeout = 30 * time.Second

// HTTPOption configures the HTTP-backed generator.
type HTTPOption func(*HTTPGenerator)

// WithHTTPClient overrides the HTTP client used for generation requests.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(g *HTTPGenerator) {
		if client != nil {
			g.client = client
		}
	}
}

// WithMethod overrides the request method (GET by default).
func WithMethod(method string) HTTPOption {
	return func(g *HTTPGenerator) {
		if method != "" {
			g.method = method
		}
	}
}

// WithHeader adds a header to every generation request.
func WithHeader(key, value string) HTTPOption {
	return func(g *HTTPGenerator) {
		if key == "" {
			return
		}
		if g.headers == nil {
			g.headers = make(http.Header)
		}
		g.headers.Set(key, value)
	}
}

// WithRequestBody supplies a static request payload, switching the method to
// POST unless overridden.
func WithRequestBody(body []byte) HTTPOption {
	return func(g *HTTPGenerator) {
		g.body = append([]byte(nil), body...)
		if g.method == http.MethodGet {
			g.method = http.MethodPost
		}
	}
}

// WithTimeout bounds each generation request.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(g *HTTPGenerator) {
		if timeout > 0 {
			g.timeout = timeout
		}
	}
}

// HTTPGenerator fetches questionnaire payloads from a generation endpoint and
// decodes them through the tolerant schema pipeline. Every failure is
// reported as a *GenerationError.
type HTTPGenerator struct {
	url     string
	method  string
	client  *http.Client
	headers http.Header
	body    []byte
	timeout time.Duration
}

// NewHTTP constructs an HTTPGenerator for the given endpoint.
func NewHTTP(url string, options ...HTTPOption) (*HTTPGenerator, error) {
	if url == "" {
		return nil, errors.New("generate: endpoint url is required")
	}
	g := &HTTPGenerator{
		url:     url,
		method:  http.MethodGet,
		client:  http.DefaultClient,
		timeout: defaultHTTPTimeout,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(g)
	}
	return g, nil
}

// Generate implements Generator.
func (g *HTTPGenerator) Generate(ctx context.Context) (*schema.Schema, error) {
	if ctx == nil {
		return nil, errors.New("generate: context is required")
	}

	reqCtx := ctx
	var cancel context.CancelFunc
	if g.timeout > 0 {
		reqCtx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	var body io.Reader
	if len(g.body) > 0 {
		body = bytes.NewReader(g.body)
	}

	req, err := http.NewRequestWithContext(reqCtx, g.method, g.url, body)
	if err != nil {
		return nil, newGenerationError(StageRequest, err)
	}
	req.Header.Set("Accept", "application/json")
	if len(g.body) > 0 {
		req.Header.Set("Content-Type", "application/json")
	}
	for key, values := range g.headers {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, newGenerationError(StageRequest, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newGenerationError(StageStatus, fmt.Errorf("unexpected status %s", resp.Status))
	}

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, newGenerationError(StageRequest, err)
	}

	decoded, err := schema.Decode(payload)
	if err != nil {
		return nil, newGenerationError(StageDecode, err)
	}
	return decoded, nil
}
