// Package inappbrowser detects pages opened inside the embedded browsers of
// social apps (Instagram, Facebook, LinkedIn, Twitter, TikTok, Snapchat,
// WhatsApp, Line and WeChat) and overlays instructions for reopening the
// page in the device's default browser.
//
// The host page is an explicit value. A Page carries the user agent, the
// current URL, a ready signal and the collaborators the flow acts on: the
// render tree the overlay is inserted into and the navigator used for
// redirect attempts. Delays run on an eventloop.Scheduler and detections
// are reported to an analytics.Sink.
//
//	loop := eventloop.New()
//	go loop.Run(ctx)
//
//	page := &inappbrowser.Page{
//	    UserAgent: ua,
//	    URL:       u,
//	    Ready:     inappbrowser.NewReadySignal(),
//	    Tree:      doc,
//	    Navigator: nav,
//	}
//	_ = inappbrowser.Init(ctx, page, cfg,
//	    inappbrowser.WithScheduler(loop),
//	    inappbrowser.WithSink(analytics.NewLogSink(log)),
//	)
//	loop.Post(func() { page.Ready.Fire() })
//
// Run performs a single synchronous pass and returns its Outcome. Init runs
// it at most once per page, when the page becomes ready.
//
// # Server-side rendering
//
// Middleware applies the same flow to HTML responses of an http.Handler.
// The overlay is inserted into the response document and its controls work
// without any page-level script. Partial responses such as htmx swaps
// and bodies without an html or body element are left alone, and
// analytics events go through an analytics.Queue off the request path.
//
// # Configuration
//
// Config is a plain record with yaml, json and env tags; see pkg/config for
// loading it. Every field is optional and falls back to its default on its
// own. Only an explicit false disables a switch.
package inappbrowser
