package inappbrowser_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/inappbrowser"
	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
	"github.com/dmitrymomot/inappbrowser/pkg/dom"
	"github.com/dmitrymomot/inappbrowser/pkg/eventloop"
	"github.com/dmitrymomot/inappbrowser/pkg/logger"
	"github.com/dmitrymomot/inappbrowser/pkg/overlay"
	"github.com/dmitrymomot/inappbrowser/pkg/redirect"
)

const (
	facebookIOS      = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 [FBAN/FBIOS;FBAV/123.0.0.0]"
	instagramIOS     = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Instagram 250.0.0.21.109"
	instagramAndroid = "Mozilla/5.0 (Linux; Android 13; Pixel 7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/116.0.0.0 Mobile Safari/537.36 Instagram 250.0.0.21.109 Android"
	desktopChrome    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	html             = `<!DOCTYPE html><html><head><title>t</title></head><body><main>article</main></body></html>`
)

type navigator struct {
	requests  []string
	navigated bool
}

func (n *navigator) Navigate(target string)     { n.requests = append(n.requests, "navigate "+target) }
func (n *navigator) OpenExternal(target string) { n.requests = append(n.requests, "external "+target) }
func (n *navigator) Navigated() bool            { return n.navigated }

type recorder struct {
	mu     sync.Mutex
	events []analytics.Event
	err    error
}

func (r *recorder) Track(_ context.Context, e analytics.Event) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	return r.err
}

func (r *recorder) Events() []analytics.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]analytics.Event(nil), r.events...)
}

func newPage(t *testing.T, ua, rawURL string) (*inappbrowser.Page, *dom.Document, *navigator) {
	t.Helper()
	doc, err := dom.ParseString(html)
	require.NoError(t, err)
	u, err := url.Parse(rawURL)
	require.NoError(t, err)
	nav := &navigator{}
	return &inappbrowser.Page{UserAgent: ua, URL: u, Tree: doc, Navigator: nav}, doc, nav
}

func quiet() inappbrowser.Option {
	return inappbrowser.WithLogger(logger.Discard())
}

func TestRun(t *testing.T) {
	ctx := context.Background()

	t.Run("disabled produces nothing", func(t *testing.T) {
		page, doc, _ := newPage(t, facebookIOS, "https://example.com/article")
		sink := &recorder{}

		out := inappbrowser.Run(ctx, page, inappbrowser.Config{Enabled: inappbrowser.Bool(false)},
			inappbrowser.WithSink(sink), quiet())

		assert.Equal(t, inappbrowser.OutcomeDisabled, out)
		assert.False(t, doc.Contains(overlay.ID))
		assert.Empty(t, sink.Events())
	})

	t.Run("excluded path", func(t *testing.T) {
		for _, path := range []string{"/admin", "/admin/settings"} {
			page, doc, _ := newPage(t, facebookIOS, "https://example.com"+path)
			sink := &recorder{}

			out := inappbrowser.Run(ctx, page, inappbrowser.Config{ExcludePaths: []string{"/admin"}},
				inappbrowser.WithSink(sink), quiet())

			assert.Equal(t, inappbrowser.OutcomeExcluded, out, path)
			assert.False(t, doc.Contains(overlay.ID), path)
			assert.Empty(t, sink.Events(), path)
		}
	})

	t.Run("standard browser", func(t *testing.T) {
		for _, cfg := range []inappbrowser.Config{{}, {AllowDismiss: inappbrowser.Bool(false), OverlayDelayMs: 10}} {
			page, doc, _ := newPage(t, desktopChrome, "https://example.com/")
			sink := &recorder{}

			out := inappbrowser.Run(ctx, page, cfg, inappbrowser.WithSink(sink), quiet())

			assert.Equal(t, inappbrowser.OutcomeStandard, out)
			assert.False(t, doc.Contains(overlay.ID))
			assert.Empty(t, sink.Events())
		}
	})

	t.Run("facebook on iOS shows platform instructions", func(t *testing.T) {
		page, doc, _ := newPage(t, facebookIOS, "https://example.com/article")

		out := inappbrowser.Run(ctx, page, inappbrowser.Config{ExcludePaths: []string{}}, quiet())

		assert.Equal(t, inappbrowser.OutcomeDetected, out)
		require.Equal(t, 1, doc.Count(overlay.ID))
		steps := doc.Find("#" + overlay.ID + " .redirect-step")
		assert.Contains(t, steps.Eq(0).Text(), "bottom right")
		assert.Contains(t, steps.Eq(1).Text(), "Open in Safari")
		assert.NotNil(t, page.Overlay())
	})

	t.Run("custom analytics event", func(t *testing.T) {
		page, _, _ := newPage(t, instagramIOS, "https://example.com/")
		sink := &recorder{}

		inappbrowser.Run(ctx, page, inappbrowser.Config{
			Analytics: inappbrowser.AnalyticsConfig{Enabled: inappbrowser.Bool(true), EventName: "custom_event"},
		}, inappbrowser.WithSink(sink), quiet())

		require.Len(t, sink.Events(), 1)
		assert.Equal(t, "custom_event", sink.Events()[0].Name)
		assert.Equal(t, "Instagram", sink.Events()[0].Browser)
		assert.Equal(t, instagramIOS, sink.Events()[0].UserAgent)
	})

	t.Run("analytics explicitly disabled", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		sink := &recorder{}

		inappbrowser.Run(ctx, page, inappbrowser.Config{
			Analytics: inappbrowser.AnalyticsConfig{Enabled: inappbrowser.Bool(false)},
		}, inappbrowser.WithSink(sink), quiet())

		assert.Empty(t, sink.Events())
		assert.True(t, doc.Contains(overlay.ID))
	})

	t.Run("sink failure does not affect the overlay", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		sink := &recorder{err: errors.New("collector down")}
		buf := &bytes.Buffer{}

		out := inappbrowser.Run(ctx, page, inappbrowser.Config{},
			inappbrowser.WithSink(sink),
			inappbrowser.WithLogger(logger.New(logger.WithOutput(buf))),
		)

		assert.Equal(t, inappbrowser.OutcomeDetected, out)
		assert.True(t, doc.Contains(overlay.ID))
		assert.Contains(t, buf.String(), "analytics event dropped")
		assert.Contains(t, buf.String(), `"browser":"Instagram"`)
	})

	t.Run("overlay hidden but event emitted", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		sink := &recorder{}

		out := inappbrowser.Run(ctx, page, inappbrowser.Config{ShowOverlay: inappbrowser.Bool(false)},
			inappbrowser.WithSink(sink), quiet())

		assert.Equal(t, inappbrowser.OutcomeDetected, out)
		assert.False(t, doc.Contains(overlay.ID))
		assert.Len(t, sink.Events(), 1)
	})

	t.Run("overlay waits for the configured delay", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		loop := eventloop.NewManual()

		inappbrowser.Run(ctx, page, inappbrowser.Config{OverlayDelayMs: 500},
			inappbrowser.WithScheduler(loop), quiet())
		assert.False(t, doc.Contains(overlay.ID))

		loop.Advance(499 * time.Millisecond)
		assert.False(t, doc.Contains(overlay.ID))
		loop.Advance(time.Millisecond)
		assert.True(t, doc.Contains(overlay.ID))
	})

	t.Run("zero delay still goes through the scheduler", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		loop := eventloop.NewManual()

		inappbrowser.Run(ctx, page, inappbrowser.Config{}, inappbrowser.WithScheduler(loop), quiet())
		assert.False(t, doc.Contains(overlay.ID))
		loop.Flush()
		assert.True(t, doc.Contains(overlay.ID))
	})

	t.Run("running twice keeps one overlay", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, quiet())
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, quiet())
		assert.Equal(t, 1, doc.Count(overlay.ID))
	})

	t.Run("no render tree", func(t *testing.T) {
		page, _, _ := newPage(t, instagramIOS, "https://example.com/")
		page.Tree = nil
		sink := &recorder{}

		out := inappbrowser.Run(ctx, page, inappbrowser.Config{}, inappbrowser.WithSink(sink), quiet())
		assert.Equal(t, inappbrowser.OutcomeDetected, out)
		assert.Nil(t, page.Overlay())
		assert.Len(t, sink.Events(), 1)
	})

	t.Run("nil url is the root path", func(t *testing.T) {
		page, _, _ := newPage(t, instagramIOS, "https://example.com/")
		page.URL = nil
		out := inappbrowser.Run(ctx, page, inappbrowser.Config{ExcludePaths: []string{"/"}}, quiet())
		assert.Equal(t, inappbrowser.OutcomeExcluded, out)
	})

	t.Run("nil page", func(t *testing.T) {
		assert.Equal(t, inappbrowser.OutcomeDisabled, inappbrowser.Run(ctx, nil, inappbrowser.Config{}))
	})
}

func TestRunActions(t *testing.T) {
	ctx := context.Background()

	t.Run("android open issues chrome intent then fallback", func(t *testing.T) {
		page, _, nav := newPage(t, instagramAndroid, "https://example.com/article?id=7")
		loop := eventloop.NewManual()
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, inappbrowser.WithScheduler(loop), quiet())
		loop.Flush()

		require.True(t, page.Overlay().Click(overlay.ActionOpen))
		require.Len(t, nav.requests, 1)
		assert.Equal(t, "navigate "+redirect.ChromeIntent(page.URL), nav.requests[0])
		assert.Contains(t, nav.requests[0], "package=com.android.chrome")

		loop.Advance(999 * time.Millisecond)
		assert.Len(t, nav.requests, 1)
		loop.Advance(time.Millisecond)
		require.Len(t, nav.requests, 2)
		assert.Contains(t, nav.requests[1], "action=android.intent.action.VIEW")
	})

	t.Run("android fallback skipped after navigation", func(t *testing.T) {
		page, _, nav := newPage(t, instagramAndroid, "https://example.com/")
		loop := eventloop.NewManual()
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, inappbrowser.WithScheduler(loop), quiet())
		loop.Flush()

		page.Overlay().Click(overlay.ActionOpen)
		nav.navigated = true
		loop.Advance(redirect.FallbackDelay)
		assert.Len(t, nav.requests, 1)
	})

	t.Run("iOS open asks for an external context", func(t *testing.T) {
		page, _, nav := newPage(t, facebookIOS, "https://example.com/article")
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, quiet())

		page.Overlay().Click(overlay.ActionOpen)
		assert.Equal(t, []string{"external https://example.com/article"}, nav.requests)
	})

	t.Run("dismiss removes the overlay after the transition", func(t *testing.T) {
		page, doc, _ := newPage(t, facebookIOS, "https://example.com/")
		loop := eventloop.NewManual()
		inappbrowser.Run(ctx, page, inappbrowser.Config{}, inappbrowser.WithScheduler(loop), quiet())
		loop.Flush()

		require.True(t, page.Overlay().Click(overlay.ActionDismiss))
		assert.True(t, doc.Contains(overlay.ID))
		loop.Advance(overlay.DismissDelay)
		assert.Equal(t, 0, doc.Count(overlay.ID))
	})

	t.Run("no dismiss control when not allowed", func(t *testing.T) {
		page, doc, _ := newPage(t, facebookIOS, "https://example.com/")
		inappbrowser.Run(ctx, page, inappbrowser.Config{AllowDismiss: inappbrowser.Bool(false)}, quiet())

		assert.Equal(t, 0, doc.Find(`[data-action="dismiss"]`).Length())
		assert.False(t, page.Overlay().Offers(overlay.ActionDismiss))
	})
}

func TestInit(t *testing.T) {
	ctx := context.Background()

	t.Run("waits for the ready signal", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		page.Ready = inappbrowser.NewReadySignal()
		sink := &recorder{}

		require.NoError(t, inappbrowser.Init(ctx, page, inappbrowser.Config{}, inappbrowser.WithSink(sink), quiet()))
		assert.False(t, doc.Contains(overlay.ID))
		assert.Empty(t, sink.Events())

		assert.True(t, page.Ready.Fire())
		assert.True(t, doc.Contains(overlay.ID))
		assert.Len(t, sink.Events(), 1)

		assert.False(t, page.Ready.Fire())
		assert.Len(t, sink.Events(), 1)
	})

	t.Run("runs immediately when already ready", func(t *testing.T) {
		for _, ready := range []*inappbrowser.ReadySignal{nil, inappbrowser.AlreadyReady()} {
			page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
			page.Ready = ready
			require.NoError(t, inappbrowser.Init(ctx, page, inappbrowser.Config{}, quiet()))
			assert.True(t, doc.Contains(overlay.ID))
		}
	})

	t.Run("at most once per page", func(t *testing.T) {
		page, _, _ := newPage(t, instagramIOS, "https://example.com/")
		sink := &recorder{}

		require.NoError(t, inappbrowser.Init(ctx, page, inappbrowser.Config{}, inappbrowser.WithSink(sink), quiet()))
		err := inappbrowser.Init(ctx, page, inappbrowser.Config{}, inappbrowser.WithSink(sink), quiet())
		require.ErrorIs(t, err, inappbrowser.ErrAlreadyInitialized)
		assert.Len(t, sink.Events(), 1)
	})

	t.Run("nil page", func(t *testing.T) {
		require.ErrorIs(t, inappbrowser.Init(ctx, nil, inappbrowser.Config{}), inappbrowser.ErrNilPage)
	})

	t.Run("on a running event loop", func(t *testing.T) {
		page, doc, _ := newPage(t, instagramIOS, "https://example.com/")
		page.Ready = inappbrowser.NewReadySignal()

		loop := eventloop.New(eventloop.WithLogger(logger.Discard()))
		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		go func() { _ = loop.Run(runCtx) }()

		require.NoError(t, inappbrowser.Init(ctx, page, inappbrowser.Config{}, inappbrowser.WithScheduler(loop), quiet()))

		present := make(chan bool, 1)
		loop.Post(func() {
			page.Ready.Fire()
			loop.Post(func() { present <- doc.Contains(overlay.ID) })
		})

		select {
		case ok := <-present:
			assert.True(t, ok)
		case <-time.After(time.Second):
			t.Fatal("overlay not presented")
		}
	})
}

func TestOutcomeString(t *testing.T) {
	assert.Equal(t, "disabled", inappbrowser.OutcomeDisabled.String())
	assert.Equal(t, "excluded", inappbrowser.OutcomeExcluded.String())
	assert.Equal(t, "standard", inappbrowser.OutcomeStandard.String())
	assert.Equal(t, "detected", inappbrowser.OutcomeDetected.String())
}

func TestLogsDetection(t *testing.T) {
	buf := &bytes.Buffer{}
	page, _, _ := newPage(t, instagramAndroid, "https://example.com/")

	inappbrowser.Run(context.Background(), page, inappbrowser.Config{},
		inappbrowser.WithLogger(slog.New(slog.NewJSONHandler(buf, nil))))

	assert.Contains(t, buf.String(), "in-app browser detected")
	assert.Contains(t, buf.String(), `"browser":"Instagram"`)
	assert.Contains(t, buf.String(), `"platform":"android"`)
}
