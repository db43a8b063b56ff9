// Package redirect hands the current page over to the device's default
// browser.
//
// The hand-off is best effort: the embedding app may block it. Plan computes
// the ordered navigation requests for a platform without side effects;
// Attempt executes them against a Navigator.
//
//   - Android: an intent addressed to Chrome right away, then a generic VIEW
//     intent after one second if the page is still there.
//   - iOS: a single request to open the URL outside the embedded view.
//   - Anything else: no requests.
//
// Usage:
//
//	redirect.Attempt(pageURL, client.Platform(), navigator, loop)
package redirect
