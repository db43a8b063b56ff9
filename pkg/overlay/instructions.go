package overlay

import "github.com/dmitrymomot/inappbrowser/pkg/useragent"

// Glyphs used for the icon badge, the action button and instruction steps.
const (
	IconCompass = "🧭"
	IconGlobe   = "🌐"
	IconDotsH   = "⋯"
	IconDotsV   = "⋮"
	labelSafari = "Open in Safari"
	labelChrome = "Open in Chrome"
	nameSafari  = "Safari"
	nameChrome  = "Chrome"
)

// Step is one line of the instruction list.
type Step struct {
	Text string
	Icon string
}

// ActionIcon returns the glyph shown on the badge and the primary button.
func ActionIcon(p useragent.Platform) string {
	if p.IOS {
		return IconCompass
	}
	return IconGlobe
}

// ActionLabel returns the primary button label.
func ActionLabel(p useragent.Platform) string {
	if p.IOS {
		return labelSafari
	}
	return labelChrome
}

func browserName(p useragent.Platform) string {
	if p.IOS {
		return nameSafari
	}
	return nameChrome
}

func selectStep(p useragent.Platform) Step {
	return Step{Text: `Select "Open in ` + browserName(p) + `"`, Icon: ActionIcon(p)}
}

// Instructions returns the steps for a family on a platform. Combinations
// without bespoke copy get the generic two-step sequence.
func Instructions(family useragent.Family, p useragent.Platform) []Step {
	switch {
	case family == useragent.FamilyInstagram && p.IOS:
		return []Step{
			{Text: "Tap the three dots (•••) in the top right corner", Icon: IconDotsH},
			{Text: `Select "Open in Safari"`, Icon: IconCompass},
		}
	case family == useragent.FamilyInstagram && p.Android:
		return []Step{
			{Text: "Tap the three dots (⋮) in the top right corner", Icon: IconDotsV},
			{Text: `Select "Open in Chrome"`, Icon: IconGlobe},
		}
	case family == useragent.FamilyFacebook && p.IOS:
		return []Step{
			{Text: "Tap the three dots (•••) in the bottom right", Icon: IconDotsH},
			{Text: `Select "Open in Safari"`, Icon: IconCompass},
		}
	case family == useragent.FamilyFacebook && p.Android:
		return []Step{
			{Text: "Tap the three dots (⋮) in the top right corner", Icon: IconDotsV},
			{Text: `Select "Open in external browser"`, Icon: IconGlobe},
		}
	case family == useragent.FamilyLinkedIn:
		return []Step{
			{Text: "Tap the three dots (⋮) or share icon", Icon: IconDotsV},
			selectStep(p),
		}
	default:
		return []Step{
			{Text: "Look for a menu icon (⋮ or •••) in the app", Icon: IconDotsV},
			selectStep(p),
		}
	}
}
