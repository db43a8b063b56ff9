package redirect

import (
	"net/url"
	"strings"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/eventloop"
	"github.com/dmitrymomot/inappbrowser/pkg/useragent"
)

const (
	// ChromePackage is the Android package the first intent is addressed to
	ChromePackage = "com.android.chrome"

	// ViewAction is the generic Android action used by the fallback intent
	ViewAction = "android.intent.action.VIEW"

	// FallbackDelay is how long the Android flow waits before the generic intent
	FallbackDelay = 1000 * time.Millisecond

	// ExternalTarget is the window target that asks iOS to leave the web view
	ExternalTarget = "_system"
)

// Kind tells the navigator how to issue a request.
type Kind uint8

const (
	// KindNavigate replaces the current location
	KindNavigate Kind = iota + 1

	// KindOpenExternal asks the system to open the URL outside the embedded view
	KindOpenExternal
)

func (k Kind) String() string {
	switch k {
	case KindNavigate:
		return "navigate"
	case KindOpenExternal:
		return "open_external"
	default:
		return "unknown"
	}
}

// Request is a single navigation step.
type Request struct {
	Kind  Kind
	URL   string
	Delay time.Duration
	// Fallback requests are skipped once the page has navigated away.
	Fallback bool
}

// Navigator is the page's navigation subsystem.
type Navigator interface {
	// Navigate sets the page location.
	Navigate(target string)
	// OpenExternal opens target in a context outside the embedded view.
	OpenExternal(target string)
	// Navigated reports whether the page has already left.
	Navigated() bool
}

// Plan returns the navigation requests for the platform, in issue order.
// The result is empty for a nil URL or an unsupported platform.
func Plan(current *url.URL, platform useragent.Platform) []Request {
	if current == nil {
		return nil
	}

	switch {
	case platform.Android:
		return []Request{
			{
				Kind: KindNavigate,
				URL:  ChromeIntent(current),
			},
			{
				Kind:     KindNavigate,
				URL:      GenericIntent(current),
				Delay:    FallbackDelay,
				Fallback: true,
			},
		}
	case platform.IOS:
		return []Request{
			{
				Kind: KindOpenExternal,
				URL:  current.String(),
			},
		}
	default:
		return nil
	}
}

// Attempt issues the planned requests. Delayed requests go through the
// scheduler; without one they are dropped. It returns the number of requests
// issued or scheduled.
func Attempt(current *url.URL, platform useragent.Platform, nav Navigator, sched eventloop.Scheduler) int {
	if nav == nil {
		return 0
	}

	issued := 0
	for _, req := range Plan(current, platform) {
		if req.Delay <= 0 {
			issue(nav, req)
			issued++
			continue
		}
		if sched == nil {
			continue
		}
		sched.AfterFunc(req.Delay, func() {
			if req.Fallback && nav.Navigated() {
				return
			}
			issue(nav, req)
		})
		issued++
	}
	return issued
}

func issue(nav Navigator, req Request) {
	switch req.Kind {
	case KindNavigate:
		nav.Navigate(req.URL)
	case KindOpenExternal:
		nav.OpenExternal(req.URL)
	}
}

// ChromeIntent builds an intent URL addressed to the Chrome package.
func ChromeIntent(current *url.URL) string {
	return intent(current, "package="+ChromePackage)
}

// GenericIntent builds a VIEW intent with no package constraint so the
// system chooser picks the browser.
func GenericIntent(current *url.URL) string {
	return intent(current, "action="+ViewAction)
}

func intent(current *url.URL, target string) string {
	scheme := current.Scheme
	if scheme != "http" {
		scheme = "https"
	}

	var b strings.Builder
	b.WriteString("intent://")
	b.WriteString(current.Host)
	b.WriteString(current.EscapedPath())
	if current.RawQuery != "" {
		b.WriteString("?")
		b.WriteString(current.RawQuery)
	}
	if current.Fragment != "" {
		b.WriteString("#")
		b.WriteString(current.EscapedFragment())
	}
	b.WriteString("#Intent;scheme=")
	b.WriteString(scheme)
	b.WriteString(";")
	b.WriteString(target)
	b.WriteString(";end")
	return b.String()
}
