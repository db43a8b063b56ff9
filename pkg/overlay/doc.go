// Package overlay renders the full-screen instructions shown inside in-app
// browsers and removes them again on dismissal.
//
// A Presenter turns a detection result into a View (colors, copy, icon and
// platform-specific instruction steps), renders it with a templ component and
// appends it to a RenderTree under the reserved ID. Presenting is idempotent:
// while an overlay is in the tree further calls do nothing.
//
// User actions are registered on the returned *Overlay instead of global
// callbacks:
//
//	o := presenter.Present(ctx, tree, classification, platform, overlay.Options{
//	    AllowDismiss: true,
//	    OnOpen:       func() { redirect.Attempt(u, platform, nav, loop) },
//	    Scheduler:    loop,
//	})
//	o.Click(overlay.ActionDismiss) // fades out, removed after DismissDelay
//
// # Instruction copy
//
// Instagram and Facebook have bespoke steps for iOS and Android, LinkedIn has
// its own steps on every platform. All other combinations get a generic
// two-step sequence naming Safari on iOS and Chrome elsewhere.
//
// # Sanitizing
//
// Messages.Body may carry inline HTML and passes through a bluemonday UGC
// policy. Titles and steps are always escaped. Color values that are not
// plain CSS colors are replaced by defaults so they cannot break out of the
// stylesheet.
package overlay
