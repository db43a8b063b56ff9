package useragent

import "strings"

// keywordSet optimizes keyword lookups using map structure
type keywordSet map[string]struct{}

func newKeywordSet(keywords ...string) keywordSet {
	result := make(keywordSet, len(keywords))
	for _, word := range keywords {
		result[word] = struct{}{}
	}
	return result
}

func (k keywordSet) contains(s string) bool {
	for keyword := range k {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}

var (
	iOSKeywords     = newKeywordSet("iphone", "ipad", "ipod")
	androidKeywords = newKeywordSet("android")
)

// Platform holds the flags that pick icons, instruction copy and the
// redirect mechanism.
type Platform struct {
	IOS     bool
	Android bool
}

// OS returns the platform as one of the OS* identifiers.
func (p Platform) OS() string {
	switch {
	case p.IOS:
		return OSiOS
	case p.Android:
		return OSAndroid
	default:
		return OSUnknown
	}
}

// ParsePlatform derives platform flags from a client signature.
// iOS wins when a signature mentions both platforms.
func ParsePlatform(signature string) Platform {
	if signature == "" {
		return Platform{}
	}

	lowerUA := strings.ToLower(signature)

	if iOSKeywords.contains(lowerUA) {
		return Platform{IOS: true}
	}

	if androidKeywords.contains(lowerUA) {
		return Platform{Android: true}
	}

	return Platform{}
}
