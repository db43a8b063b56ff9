package overlay

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/maypok86/otter"
	"github.com/microcosm-cc/bluemonday"

	"github.com/dmitrymomot/inappbrowser/pkg/eventloop"
	"github.com/dmitrymomot/inappbrowser/pkg/logger"
	"github.com/dmitrymomot/inappbrowser/pkg/useragent"
)

// ID is the reserved element id of the overlay. At most one element with
// this id exists in a render tree.
const ID = "browser-redirect-overlay"

// DismissDelay matches the exit transition duration.
const DismissDelay = 300 * time.Millisecond

// Action is a user action offered by the overlay.
type Action string

const (
	// ActionOpen hands the page over to the default browser
	ActionOpen Action = "open"

	// ActionDismiss closes the overlay and keeps the in-app browser
	ActionDismiss Action = "dismiss"
)

// RenderTree is the part of the page the overlay reads and mutates.
type RenderTree interface {
	Contains(id string) bool
	Append(id, markup string) error
	SetStyle(id, property, value string) bool
	Remove(id string) bool
}

// Options controls a single Present call.
type Options struct {
	Colors       Colors
	Messages     Messages
	AllowDismiss bool
	// EntranceDelay postpones the entrance animation, for callers that
	// cannot postpone the insertion itself.
	EntranceDelay time.Duration
	Links         *Links
	ClientScript  bool

	// OnOpen runs when the primary action is clicked.
	OnOpen func()
	// OnDismiss runs when the dismiss control is clicked. Nil means Dismiss
	// with Scheduler.
	OnDismiss func()
	Scheduler eventloop.Scheduler
}

// Overlay is a live overlay instance together with its action handlers.
type Overlay struct {
	tree     RenderTree
	handlers map[Action]func()
}

// Click dispatches a user action. It reports false when the overlay is gone
// or does not offer the action.
func (o *Overlay) Click(action Action) bool {
	if o == nil || !o.tree.Contains(ID) {
		return false
	}
	fn, ok := o.handlers[action]
	if !ok {
		return false
	}
	fn()
	return true
}

// Offers reports whether the overlay exposes the action.
func (o *Overlay) Offers(action Action) bool {
	if o == nil {
		return false
	}
	_, ok := o.handlers[action]
	return ok
}

// Visible reports whether the overlay is still in the render tree.
func (o *Overlay) Visible() bool {
	return o != nil && o.tree.Contains(ID)
}

// PresenterOption configures a Presenter.
type PresenterOption func(*Presenter)

// WithLogger sets the presenter logger.
func WithLogger(l *slog.Logger) PresenterOption {
	return func(p *Presenter) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithCache keeps up to size rendered overlays keyed by view.
func WithCache(size int) PresenterOption {
	return func(p *Presenter) {
		if size <= 0 {
			return
		}
		cache, err := otter.MustBuilder[string, string](size).
			Cost(func(_ string, _ string) uint32 { return 1 }).
			Build()
		if err != nil {
			p.logger.Warn("overlay markup cache disabled",
				logger.Error(err),
				logger.Component("overlay"),
			)
			return
		}
		p.cache = &cache
	}
}

// WithSanitizer replaces the policy applied to the body message.
func WithSanitizer(policy *bluemonday.Policy) PresenterOption {
	return func(p *Presenter) {
		if policy != nil {
			p.sanitizer = policy
		}
	}
}

// Presenter builds and inserts overlays.
type Presenter struct {
	sanitizer *bluemonday.Policy
	cache     *otter.Cache[string, string]
	logger    *slog.Logger
}

// NewPresenter creates a presenter. The body message accepts the user
// generated content subset of HTML.
func NewPresenter(opts ...PresenterOption) *Presenter {
	p := &Presenter{
		sanitizer: bluemonday.UGCPolicy(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Close releases the markup cache.
func (p *Presenter) Close() {
	if p.cache != nil {
		p.cache.Close()
	}
}

// Markup renders the overlay subtree for a view.
func (p *Presenter) Markup(ctx context.Context, v View) (string, error) {
	key := v.key()
	if p.cache != nil {
		if markup, ok := p.cache.Get(key); ok {
			return markup, nil
		}
	}

	var sb strings.Builder
	if err := Component(v, p.sanitizer.Sanitize(v.Messages.Body)).Render(ctx, &sb); err != nil {
		return "", err
	}

	markup := sb.String()
	if p.cache != nil {
		p.cache.Set(key, markup)
	}
	return markup, nil
}

// Present inserts the overlay for a detected in-app browser. It returns nil
// without touching the tree when an overlay is already present or the tree
// is unavailable.
func (p *Presenter) Present(ctx context.Context, tree RenderTree, c useragent.Classification, platform useragent.Platform, opts Options) *Overlay {
	if tree == nil || tree.Contains(ID) {
		return nil
	}

	markup, err := p.Markup(ctx, NewView(c.Family, platform, opts))
	if err != nil {
		p.logger.DebugContext(ctx, "overlay rendering failed",
			logger.Error(err),
			logger.Component("overlay"),
		)
		return nil
	}

	if err := tree.Append(ID, markup); err != nil {
		p.logger.DebugContext(ctx, "overlay not inserted",
			logger.Error(err),
			logger.Browser(c.Family.String()),
			logger.Component("overlay"),
		)
		return nil
	}

	o := &Overlay{tree: tree, handlers: make(map[Action]func(), 2)}
	if opts.OnOpen != nil {
		o.handlers[ActionOpen] = opts.OnOpen
	}
	if opts.AllowDismiss {
		if opts.OnDismiss != nil {
			o.handlers[ActionDismiss] = opts.OnDismiss
		} else {
			sched := opts.Scheduler
			o.handlers[ActionDismiss] = func() { Dismiss(tree, sched) }
		}
	}
	return o
}

// Dismiss plays the exit transition and removes the overlay once it ends.
// Without a scheduler the overlay is removed right away. It reports false
// when there is no overlay.
func Dismiss(tree RenderTree, sched eventloop.Scheduler) bool {
	if tree == nil || !tree.Contains(ID) {
		return false
	}

	tree.SetStyle(ID, "animation", "brOverlayFadeOut 0.3s ease-out forwards")
	if sched == nil {
		tree.Remove(ID)
		return true
	}

	sched.AfterFunc(DismissDelay, func() { tree.Remove(ID) })
	return true
}
