package inappbrowser

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
	"github.com/dmitrymomot/inappbrowser/pkg/eventloop"
	"github.com/dmitrymomot/inappbrowser/pkg/logger"
	"github.com/dmitrymomot/inappbrowser/pkg/overlay"
	"github.com/dmitrymomot/inappbrowser/pkg/redirect"
	"github.com/dmitrymomot/inappbrowser/pkg/useragent"
)

// Outcome is the result of a single Run.
type Outcome uint8

const (
	OutcomeDisabled Outcome = iota
	OutcomeExcluded
	OutcomeStandard
	OutcomeDetected
)

func (o Outcome) String() string {
	switch o {
	case OutcomeDisabled:
		return "disabled"
	case OutcomeExcluded:
		return "excluded"
	case OutcomeStandard:
		return "standard"
	case OutcomeDetected:
		return "detected"
	default:
		return "unknown"
	}
}

// Option configures Run and Init.
type Option func(*options)

type options struct {
	logger    *slog.Logger
	sink      analytics.Sink
	scheduler eventloop.Scheduler
	presenter *overlay.Presenter

	cacheSize int

	// server-side rendering only
	entranceDelay time.Duration
	links         func(*Page, useragent.Platform) *overlay.Links
	clientScript  bool
}

func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		if l != nil {
			o.logger = l
		}
	}
}

// WithSink sets the analytics sink. Without one no event is emitted.
func WithSink(s analytics.Sink) Option {
	return func(o *options) { o.sink = s }
}

// WithScheduler sets the event loop delays run on. Without one, delayed work
// runs inline.
func WithScheduler(s eventloop.Scheduler) Option {
	return func(o *options) {
		if s != nil {
			o.scheduler = s
		}
	}
}

// WithPresenter shares a presenter, and its markup cache, across pages.
func WithPresenter(p *overlay.Presenter) Option {
	return func(o *options) {
		if p != nil {
			o.presenter = p
		}
	}
}

func withMarkupCache(size int) Option {
	return func(o *options) { o.cacheSize = size }
}

func newOptions(opts []Option) *options {
	o := &options{
		logger:    slog.Default(),
		scheduler: eventloop.Inline{},
	}
	for _, opt := range opts {
		opt(o)
	}
	if o.presenter == nil {
		o.presenter = overlay.NewPresenter(
			overlay.WithLogger(o.logger),
			overlay.WithCache(o.cacheSize),
		)
	}
	return o
}

// Init runs the detection flow once the page is ready: immediately when it
// already is, otherwise when page.Ready fires. A page can be initialized once.
func Init(ctx context.Context, page *Page, cfg Config, opts ...Option) error {
	if page == nil {
		return ErrNilPage
	}
	if !page.registered.CompareAndSwap(false, true) {
		return ErrAlreadyInitialized
	}

	o := newOptions(opts)
	start := func() {
		page.once.Do(func() { run(ctx, page, cfg.Resolve(), o) })
	}

	if page.Ready == nil {
		start()
		return nil
	}
	page.Ready.OnReady(start)
	return nil
}

// Run performs one detection pass on the page and reports how it ended.
// Presenting the overlay is scheduled after the configured delay; the
// analytics event, if any, is emitted before Run returns.
func Run(ctx context.Context, page *Page, cfg Config, opts ...Option) Outcome {
	if page == nil {
		return OutcomeDisabled
	}
	return run(ctx, page, cfg.Resolve(), newOptions(opts))
}

func run(ctx context.Context, page *Page, s Settings, o *options) Outcome {
	if !s.Enabled {
		return OutcomeDisabled
	}
	if s.Excluded(page.path()) {
		return OutcomeExcluded
	}

	client := useragent.Parse(page.UserAgent)
	if !client.IsInApp() {
		return OutcomeStandard
	}

	browser := client.Family().String()
	o.logger.InfoContext(ctx, "in-app browser detected",
		logger.Browser(browser),
		logger.Platform(client.Platform().OS()),
		logger.URL(page.location().String()),
	)

	if s.ShowOverlay {
		o.scheduler.AfterFunc(s.OverlayDelay, func() {
			present(ctx, page, client, s, o)
		})
	}

	if s.AnalyticsEnabled && o.sink != nil {
		e := analytics.NewEvent(s.EventName, browser, client.Signature())
		if err := o.sink.Track(ctx, e); err != nil {
			o.logger.WarnContext(ctx, "analytics event dropped",
				logger.Error(err),
				logger.Event(e.Name),
				logger.EventID(e.ID),
			)
		}
	}

	return OutcomeDetected
}

func present(ctx context.Context, page *Page, client useragent.Client, s Settings, o *options) {
	platform := client.Platform()
	location := page.location()

	opts := overlay.Options{
		Colors:        s.Colors,
		Messages:      s.Messages,
		AllowDismiss:  s.AllowDismiss,
		EntranceDelay: o.entranceDelay,
		ClientScript:  o.clientScript,
		Scheduler:     o.scheduler,
		OnOpen: func() {
			n := redirect.Attempt(location, platform, page.Navigator, o.scheduler)
			o.logger.DebugContext(ctx, "redirect attempted",
				logger.Platform(platform.OS()),
				slog.Int("requests", n),
			)
		},
	}
	if o.links != nil {
		opts.Links = o.links(page, platform)
	}

	if ov := o.presenter.Present(ctx, page.Tree, client.Classification(), platform, opts); ov != nil {
		page.overlay = ov
	}
}
