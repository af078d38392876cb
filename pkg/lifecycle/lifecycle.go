// Package lifecycle orchestrates fetching, displaying and replacing
// questionnaire instances: load the first schema, show it, prefetch the next
// one in the background, and swap on the user's request with a defined
// visibility protocol.
package lifecycle

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/goliatone/go-formflow/pkg/form"
	"github.com/goliatone/go-formflow/pkg/generate"
	"github.com/goliatone/go-formflow/pkg/schema"
)

// Phase identifies the lifecycle state.
type Phase string

const (
	PhaseIdle            Phase = "idle"
	PhaseLoadingInitial  Phase = "loading-initial"
	PhaseDisplayed       Phase = "displayed"
	PhaseTransitioning   Phase = "transitioning"
	PhaseLoadingFallback Phase = "loading-fallback"
	PhaseErrored         Phase = "errored"
)

const (
	defaultTransitionDelay = 300 * time.Millisecond
	defaultRevealDelay     = 50 * time.Millisecond
)

// Option configures a Lifecycle.
type Option func(*Lifecycle)

// WithGenerator injects the schema generation collaborator. Required.
func WithGenerator(gen generate.Generator) Option {
	return func(l *Lifecycle) {
		l.generator = gen
	}
}

// WithLogger overrides the logger used for background prefetch failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Lifecycle) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithTransitionDelay sets the exit-presentation delay applied before a
// prefetched schema is swapped in.
func WithTransitionDelay(d time.Duration) Option {
	return func(l *Lifecycle) {
		if d >= 0 {
			l.transitionDelay = d
		}
	}
}

// WithRevealDelay sets the delay before a freshly installed questionnaire
// turns visible (presentation fade-in).
func WithRevealDelay(d time.Duration) Option {
	return func(l *Lifecycle) {
		if d >= 0 {
			l.revealDelay = d
		}
	}
}

// WithSleep injects the suspension primitive so tests can run without real
// delays.
func WithSleep(sleep func(time.Duration)) Option {
	return func(l *Lifecycle) {
		if sleep != nil {
			l.sleep = sleep
		}
	}
}

// WithObserver registers a callback invoked with a fresh Snapshot after every
// state change, so presentation layers can re-render.
func WithObserver(observer func(Snapshot)) Option {
	return func(l *Lifecycle) {
		l.observer = observer
	}
}

// Lifecycle holds exactly one current questionnaire and at most one
// prefetched next schema. All mutation happens under the mutex; the prefetch
// goroutine is the only background writer and only ever touches the next
// slot and the in-flight guard.
type Lifecycle struct {
	generator       generate.Generator
	logger          *slog.Logger
	transitionDelay time.Duration
	revealDelay     time.Duration
	sleep           func(time.Duration)
	observer        func(Snapshot)

	mu          sync.Mutex
	phase       Phase
	current     *form.Form
	next        *schema.Schema
	visible     bool
	fetching    bool
	prefetching bool
	submission  map[string]any
	errMessage  string

	prefetchWG sync.WaitGroup
}

// New constructs a Lifecycle in the Idle phase.
func New(options ...Option) (*Lifecycle, error) {
	l := &Lifecycle{
		logger:          slog.Default(),
		transitionDelay: defaultTransitionDelay,
		revealDelay:     defaultRevealDelay,
		sleep:           time.Sleep,
		phase:           PhaseIdle,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(l)
	}
	if l.generator == nil {
		return nil, errors.New("lifecycle: generator is required")
	}
	return l, nil
}

// Start performs the initial load: Idle → LoadingInitial → Displayed, or
// Errored when generation fails. The error is also returned so callers can
// react; there is no automatic retry, only the primary action.
func (l *Lifecycle) Start(ctx context.Context) error {
	l.mu.Lock()
	if l.phase != PhaseIdle {
		l.mu.Unlock()
		return ErrAlreadyStarted
	}
	l.phase = PhaseLoadingInitial
	l.fetching = true
	l.mu.Unlock()
	l.notify()

	return l.fetchAndDisplay(ctx)
}

// Advance is the single primary action: request a new questionnaire. With a
// prefetched schema available it transitions out and swaps it in; otherwise
// it falls back to a synchronous fetch. From the error phase it acts as the
// manual retry. While a user-triggered fetch is outstanding it reports busy.
func (l *Lifecycle) Advance(ctx context.Context) error {
	l.mu.Lock()
	if l.fetching {
		l.mu.Unlock()
		return ErrBusy
	}
	switch l.phase {
	case PhaseDisplayed, PhaseErrored:
	default:
		l.mu.Unlock()
		return ErrNotDisplayed
	}

	if l.next != nil {
		l.phase = PhaseTransitioning
		l.visible = false
		l.mu.Unlock()
		l.notify()

		l.sleep(l.transitionDelay)

		l.mu.Lock()
		l.current = form.New(l.next)
		l.next = nil
		l.submission = nil
		l.errMessage = ""
		l.visible = true
		l.phase = PhaseDisplayed
		l.mu.Unlock()
		l.notify()

		l.prefetch(ctx)
		return nil
	}

	l.phase = PhaseLoadingFallback
	l.visible = false
	l.fetching = true
	l.submission = nil
	if l.current != nil {
		l.current.Reset()
	}
	l.mu.Unlock()
	l.notify()

	return l.fetchAndDisplay(ctx)
}

// fetchAndDisplay runs a user-triggered fetch (initial or fallback) and
// installs the result as the current questionnaire. Generation failures
// surface to the user via the error phase.
func (l *Lifecycle) fetchAndDisplay(ctx context.Context) error {
	next, err := l.generator.Generate(ctx)

	l.mu.Lock()
	l.fetching = false
	if err != nil {
		l.phase = PhaseErrored
		l.errMessage = userMessage(err)
		l.mu.Unlock()
		l.notify()
		return err
	}

	l.current = form.New(next)
	l.submission = nil
	l.errMessage = ""
	l.visible = false
	l.phase = PhaseDisplayed
	l.mu.Unlock()
	l.notify()

	l.sleep(l.revealDelay)

	l.mu.Lock()
	l.visible = true
	l.mu.Unlock()
	l.notify()

	l.prefetch(ctx)
	return nil
}

// prefetch starts the fire-and-forget background fetch of the next schema.
// At most one prefetch is in flight at any time; a request while one is
// pending is a no-op. Failures are logged and leave the next slot empty,
// never degrading the displayed questionnaire.
func (l *Lifecycle) prefetch(ctx context.Context) {
	l.mu.Lock()
	if l.prefetching {
		l.mu.Unlock()
		return
	}
	l.prefetching = true
	l.mu.Unlock()

	l.prefetchWG.Add(1)
	go func() {
		defer l.prefetchWG.Done()

		next, err := l.generator.Generate(ctx)

		l.mu.Lock()
		l.prefetching = false
		if err != nil {
			l.mu.Unlock()
			l.logger.Warn("lifecycle: background prefetch failed", "error", err)
			return
		}
		// Results apply to the next slot only; the displayed questionnaire
		// is never replaced by a prefetch.
		l.next = next
		l.mu.Unlock()
		l.notify()
	}()
}

// Wait blocks until any in-flight background prefetch completes. Intended
// for orderly shutdown and tests.
func (l *Lifecycle) Wait() {
	l.prefetchWG.Wait()
}

// Submit validates and aggregates the current questionnaire. It never
// changes the lifecycle phase; the result stays attached to the display
// until the next transition clears it.
func (l *Lifecycle) Submit() (map[string]any, map[string]string, error) {
	l.mu.Lock()
	if l.phase != PhaseDisplayed || l.current == nil {
		l.mu.Unlock()
		return nil, nil, ErrNotDisplayed
	}
	answers, fieldErrs := l.current.Submit()
	if fieldErrs == nil {
		l.submission = answers
	} else {
		l.submission = nil
	}
	l.mu.Unlock()
	l.notify()
	return answers, fieldErrs, nil
}

// SetValue routes a user input to the field controller owning the question
// id on the current questionnaire.
func (l *Lifecycle) SetValue(id string, v any) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase != PhaseDisplayed || l.current == nil {
		return ErrNotDisplayed
	}
	return l.current.SetValue(id, v)
}

// Form exposes the current aggregator for interactive surfaces. Nil unless a
// questionnaire is displayed.
func (l *Lifecycle) Form() *form.Form {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.phase != PhaseDisplayed {
		return nil
	}
	return l.current
}

func (l *Lifecycle) notify() {
	if l.observer == nil {
		return
	}
	l.observer(l.Snapshot())
}

func userMessage(err error) string {
	var genErr *generate.GenerationError
	if errors.As(err, &genErr) {
		return "We couldn't load a new questionnaire. Please try again."
	}
	return "Something went wrong. Please try again."
}
