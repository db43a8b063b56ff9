package inappbrowser

import (
	"bytes"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
	"github.com/dmitrymomot/inappbrowser/pkg/dom"
	"github.com/dmitrymomot/inappbrowser/pkg/eventloop"
	"github.com/dmitrymomot/inappbrowser/pkg/logger"
	"github.com/dmitrymomot/inappbrowser/pkg/overlay"
	"github.com/dmitrymomot/inappbrowser/pkg/redirect"
	"github.com/dmitrymomot/inappbrowser/pkg/useragent"
)

const markupCacheSize = 128

// Middleware injects the overlay into HTML pages requested from in-app
// browsers. Responses for standard browsers, excluded paths and anything
// that is not a successful text/html GET pass through untouched. So do
// partial responses such as htmx swaps or fetch calls: the page they land
// in already went through the middleware.
//
// Analytics events are delivered by an analytics.Queue so the response never
// waits on a sink. A sink passed with WithSink is wrapped in one unless it
// already is a *analytics.Queue, which lets callers close it on shutdown.
//
// Nothing can wait on the server, so the overlay is inserted right away and
// the configured delay becomes a CSS entrance delay. The open control is
// rendered as a link to the platform's redirect target and a small script
// scoped to the overlay handles dismissal and the Android fallback.
func Middleware(cfg Config, opts ...Option) func(http.Handler) http.Handler {
	s := cfg.Resolve()

	o := newOptions(append([]Option{withMarkupCache(markupCacheSize)}, opts...))
	o.scheduler = eventloop.Inline{}
	o.entranceDelay = s.OverlayDelay
	o.clientScript = true
	o.links = serverLinks
	s.OverlayDelay = 0
	if _, queued := o.sink.(*analytics.Queue); o.sink != nil && !queued {
		o.sink = analytics.NewQueue(o.sink, analytics.WithQueueLogger(o.logger))
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !s.Enabled || s.Excluded(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			w.Header().Add("Vary", "User-Agent")
			w.Header().Add("Vary", "HX-Request")
			if r.Method != http.MethodGet || partial(r) || !useragent.Parse(r.UserAgent()).IsInApp() {
				next.ServeHTTP(w, r)
				return
			}

			rec := &bufferedResponse{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)

			if !rec.injectable() || !dom.IsDocument(bytes.NewReader(rec.body.Bytes())) {
				rec.flush(rec.body.Bytes())
				return
			}

			doc, err := dom.Parse(bytes.NewReader(rec.body.Bytes()))
			if err != nil {
				o.logger.DebugContext(r.Context(), "response left unchanged",
					logger.Error(err),
					logger.Component("middleware"),
				)
				rec.flush(rec.body.Bytes())
				return
			}

			page := &Page{UserAgent: r.UserAgent(), URL: requestURL(r), Tree: doc}
			if run(r.Context(), page, s, o) != OutcomeDetected || page.Overlay() == nil {
				rec.flush(rec.body.Bytes())
				return
			}

			var out bytes.Buffer
			if err := doc.Render(&out); err != nil {
				o.logger.DebugContext(r.Context(), "response left unchanged",
					logger.Error(err),
					logger.Component("middleware"),
				)
				rec.flush(rec.body.Bytes())
				return
			}
			rec.flush(out.Bytes())
		})
	}
}

// partial reports requests whose response is swapped into an existing page
// instead of replacing it.
func partial(r *http.Request) bool {
	if r.Header.Get("HX-Request") == "true" {
		return true
	}
	dest := r.Header.Get("Sec-Fetch-Dest")
	return dest != "" && dest != "document"
}

// serverLinks maps the redirect plan onto plain link attributes.
func serverLinks(page *Page, platform useragent.Platform) *overlay.Links {
	plan := redirect.Plan(page.location(), platform)
	if len(plan) == 0 {
		return nil
	}

	links := &overlay.Links{Primary: plan[0].URL}
	if plan[0].Kind == redirect.KindOpenExternal {
		links.Target = redirect.ExternalTarget
	}
	for _, req := range plan[1:] {
		if req.Fallback {
			links.Fallback = req.URL
		}
	}
	return links
}

// requestURL rebuilds the absolute URL the client asked for.
func requestURL(r *http.Request) *url.URL {
	scheme := "http"
	if r.TLS != nil {
		scheme = "https"
	}
	if proto := r.Header.Get("X-Forwarded-Proto"); proto != "" {
		scheme = strings.ToLower(strings.TrimSpace(strings.Split(proto, ",")[0]))
	}

	return &url.URL{
		Scheme:   scheme,
		Host:     r.Host,
		Path:     r.URL.Path,
		RawPath:  r.URL.RawPath,
		RawQuery: r.URL.RawQuery,
	}
}

// bufferedResponse holds the body and status until the middleware decides
// whether to rewrite them. Headers go straight to the wrapped writer.
type bufferedResponse struct {
	http.ResponseWriter
	status      int
	wroteHeader bool
	body        bytes.Buffer
}

func (b *bufferedResponse) WriteHeader(code int) {
	if b.wroteHeader {
		return
	}
	b.status = code
	b.wroteHeader = true
}

func (b *bufferedResponse) Write(p []byte) (int, error) {
	b.WriteHeader(http.StatusOK)
	return b.body.Write(p)
}

func (b *bufferedResponse) injectable() bool {
	h := b.Header()
	return b.status == http.StatusOK &&
		h.Get("Content-Encoding") == "" &&
		strings.HasPrefix(strings.ToLower(h.Get("Content-Type")), "text/html")
}

func (b *bufferedResponse) flush(body []byte) {
	h := b.Header()
	if h.Get("Content-Length") != "" {
		h.Set("Content-Length", strconv.Itoa(len(body)))
	}
	b.ResponseWriter.WriteHeader(b.status)
	_, _ = b.ResponseWriter.Write(body)
}
