package useragent

import "strings"

// Classification is the result of inspecting a client signature.
type Classification struct {
	Family   Family
	Embedded bool
}

// IsStandard reports whether no in-app browser was detected.
func (c Classification) IsStandard() bool { return c.Family == FamilyStandard }

// marker ties a family to the substrings that identify it. Any keyword
// matching is enough.
type marker struct {
	family   Family
	keywords []string
}

// Detection markers in order of checking priority. Matching is case-sensitive:
// app tokens like "Line" would collide with common words otherwise.
var markers = []marker{
	{family: FamilyInstagram, keywords: []string{"Instagram"}},
	// FBAN = Facebook app name, FBAV = Facebook app version
	{family: FamilyFacebook, keywords: []string{"FBAN", "FBAV"}},
	{family: FamilyLinkedIn, keywords: []string{"LinkedInApp"}},
	{family: FamilyTwitter, keywords: []string{"Twitter"}},
	{family: FamilyTikTok, keywords: []string{"musical_ly", "TikTok"}},
	{family: FamilySnapchat, keywords: []string{"Snapchat"}},
	{family: FamilyWhatsApp, keywords: []string{"WhatsApp"}},
	{family: FamilyLine, keywords: []string{"Line"}},
	{family: FamilyWeChat, keywords: []string{"MicroMessenger"}},
}

func (m marker) match(signature string) bool {
	for _, keyword := range m.keywords {
		if strings.Contains(signature, keyword) {
			return true
		}
	}
	return false
}

// Classify detects the in-app browser family of a client signature.
// The first matching marker wins; unknown and empty signatures are Standard.
func Classify(signature string) Classification {
	if signature == "" {
		return Classification{Family: FamilyStandard}
	}

	for _, m := range markers {
		if m.match(signature) {
			return Classification{Family: m.family, Embedded: true}
		}
	}

	return Classification{Family: FamilyStandard}
}
