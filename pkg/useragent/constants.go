package useragent

// Family identifies the application whose embedded web view rendered the page.
type Family uint8

// In-app browser families. FamilyStandard is the zero value and covers every
// regular browser.
const (
	// FamilyStandard identifies a regular, stand-alone browser
	FamilyStandard Family = iota

	// FamilyInstagram identifies Instagram's in-app browser
	FamilyInstagram

	// FamilyFacebook identifies Facebook and Messenger in-app browsers
	FamilyFacebook

	// FamilyLinkedIn identifies LinkedIn's in-app browser
	FamilyLinkedIn

	// FamilyTwitter identifies Twitter's in-app browser
	FamilyTwitter

	// FamilyTikTok identifies TikTok's in-app browser
	FamilyTikTok

	// FamilySnapchat identifies Snapchat's in-app browser
	FamilySnapchat

	// FamilyWhatsApp identifies WhatsApp's in-app browser
	FamilyWhatsApp

	// FamilyLine identifies LINE's in-app browser
	FamilyLine

	// FamilyWeChat identifies WeChat's in-app browser
	FamilyWeChat
)

var familyNames = [...]string{
	FamilyStandard:  "Standard",
	FamilyInstagram: "Instagram",
	FamilyFacebook:  "Facebook",
	FamilyLinkedIn:  "LinkedIn",
	FamilyTwitter:   "Twitter",
	FamilyTikTok:    "TikTok",
	FamilySnapchat:  "Snapchat",
	FamilyWhatsApp:  "WhatsApp",
	FamilyLine:      "Line",
	FamilyWeChat:    "WeChat",
}

// String returns the display name used in logs and analytics events.
func (f Family) String() string {
	if int(f) < len(familyNames) {
		return familyNames[f]
	}
	return familyNames[FamilyStandard]
}

// Families returns every in-app family in detection priority order.
func Families() []Family {
	out := make([]Family, 0, len(markers))
	for _, m := range markers {
		out = append(out, m.family)
	}
	return out
}

// Operating system identifiers relevant to the redirect flow
const (
	// OSiOS identifies Apple iOS and iPadOS
	OSiOS = "ios"

	// OSAndroid identifies Google Android
	OSAndroid = "android"

	// OSUnknown is used for every other operating system
	OSUnknown = "unknown"
)
