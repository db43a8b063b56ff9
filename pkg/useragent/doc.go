// Package useragent detects in-app browsers from HTTP User-Agent strings.
//
// It identifies:
//   - In-app browser family – Instagram, Facebook, LinkedIn, Twitter, TikTok,
//     Snapchat, WhatsApp, Line, WeChat or Standard for everything else
//   - Platform – iOS, Android or unknown
//
// Classification is a pure function over plain substring look-ups. It never
// fails: empty or malformed signatures are simply Standard.
//
// # Architecture
//
// Classify walks an ordered marker list (inapp.go) and returns the first
// family whose marker occurs in the signature. ParsePlatform (platform.go)
// relies on lower-cased keyword sets. Parse combines both into a Client.
//
//	┌────────────┐  UA string ┌───────────────┐
//	│    Parse   │──────────▶│  inapp.go     │──┐
//	└────────────┘            └───────────────┘  │
//	      │                                      ├──► Client
//	      │                   ┌───────────────┐  │
//	      └──────────────────▶│  platform.go  │──┘
//	                          └───────────────┘
//
// # Usage
//
//	import "github.com/dmitrymomot/inappbrowser/pkg/useragent"
//
//	client := useragent.Parse(r.UserAgent())
//	if client.IsInApp() {
//	    log.Printf("in-app browser: %s", client.GetShortIdentifier())
//	}
//
// # Detection order
//
// Markers are checked as Instagram, Facebook (FBAN or FBAV), LinkedIn
// (LinkedInApp), Twitter, TikTok (musical_ly or TikTok), Snapchat, WhatsApp,
// Line and WeChat (MicroMessenger). Detection is heuristic; a signature that
// mentions one of these tokens for unrelated reasons is classified anyway.
package useragent
