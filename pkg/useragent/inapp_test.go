package useragent_test

import (
	"testing"

	"github.com/dmitrymomot/inappbrowser/pkg/useragent"

	"github.com/stretchr/testify/assert"
)

const (
	uaInstagramIOS   = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Instagram 307.0.0.34.111 (iPhone15,3; iOS 17_1; en_US; en; scale=3.00; 1290x2796; 531487419)"
	uaFacebookIOS    = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_6 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 [FBAN/FBIOS;FBDV/iPhone14,5;FBMD/iPhone;FBSN/iOS;FBSV/16.6;FBSS/3;FBID/phone;FBLC/en_US;FBOP/5]"
	uaFacebookAndr   = "Mozilla/5.0 (Linux; Android 13; SM-S908B Build/TP1A.220624.014; wv) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/116.0.5845.163 Mobile Safari/537.36 [FB_IAB/FB4A;FBAV/431.0.0.33.118;]"
	uaLinkedIn       = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_5 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 [LinkedInApp]/9.27.6414"
	uaTwitter        = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_3 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Twitter for iPhone/9.58"
	uaTikTokLegacy   = "Mozilla/5.0 (Linux; Android 12; Pixel 6) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/108.0.5359.128 Mobile Safari/537.36 trill_280301 JsSdk/1.0 NetType/WIFI Channel/googleplay AppName/musical_ly app_version/28.3.1"
	uaTikTok         = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_1 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 TikTok 26.5.0 rv:265017"
	uaSnapchat       = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Snapchat/12.38.0.28 (like Safari/8615.1.26.10.23, panda)"
	uaWhatsApp       = "WhatsApp/2.23.20.0 A"
	uaLine           = "Mozilla/5.0 (iPhone; CPU iPhone OS 16_0 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 Safari Line/13.15.0"
	uaWeChat         = "Mozilla/5.0 (Linux; Android 10; MI 9) AppleWebKit/537.36 (KHTML, like Gecko) Version/4.0 Chrome/78.0.3904.62 XWEB/2693 MMWEBSDK/201201 Mobile Safari/537.36 MMWEBID/7311 MicroMessenger/8.0.1.1841(0x2800015D) Process/toolsmp WeChat/arm64 Weixin NetType/WIFI Language/zh_CN ABI/arm64"
	uaDesktopChrome  = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
	uaMobileSafari   = "Mozilla/5.0 (iPhone; CPU iPhone OS 14_4 like Mac OS X) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/14.0 Mobile/15E148 Safari/604.1"
	uaAndroidChrome  = "Mozilla/5.0 (Linux; Android 11; Pixel 5) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Mobile Safari/537.36"
	uaDesktopFirefox = "Mozilla/5.0 (X11; Ubuntu; Linux x86_64; rv:89.0) Gecko/20100101 Firefox/89.0"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		ua       string
		expected useragent.Family
	}{
		{name: "Instagram", ua: uaInstagramIOS, expected: useragent.FamilyInstagram},
		{name: "Facebook FBAN", ua: uaFacebookIOS, expected: useragent.FamilyFacebook},
		{name: "Facebook FBAV", ua: uaFacebookAndr, expected: useragent.FamilyFacebook},
		{name: "Facebook bare version token", ua: "FBAV/123", expected: useragent.FamilyFacebook},
		{name: "LinkedIn", ua: uaLinkedIn, expected: useragent.FamilyLinkedIn},
		{name: "Twitter", ua: uaTwitter, expected: useragent.FamilyTwitter},
		{name: "TikTok legacy app name", ua: uaTikTokLegacy, expected: useragent.FamilyTikTok},
		{name: "TikTok", ua: uaTikTok, expected: useragent.FamilyTikTok},
		{name: "Snapchat", ua: uaSnapchat, expected: useragent.FamilySnapchat},
		{name: "WhatsApp", ua: uaWhatsApp, expected: useragent.FamilyWhatsApp},
		{name: "Line", ua: uaLine, expected: useragent.FamilyLine},
		{name: "WeChat", ua: uaWeChat, expected: useragent.FamilyWeChat},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := useragent.Classify(tc.ua)
			assert.Equal(t, tc.expected, result.Family)
			assert.True(t, result.Embedded)
			assert.False(t, result.IsStandard())
		})
	}
}

func TestClassifyStandard(t *testing.T) {
	tests := []struct {
		name string
		ua   string
	}{
		{name: "Empty UA", ua: ""},
		{name: "Desktop Chrome", ua: uaDesktopChrome},
		{name: "Mobile Safari", ua: uaMobileSafari},
		{name: "Android Chrome", ua: uaAndroidChrome},
		{name: "Desktop Firefox", ua: uaDesktopFirefox},
		{name: "Garbage", ua: "\x00\xff not a browser at all"},
		{name: "Lower-case marker", ua: "instagram line fbav"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := useragent.Classify(tc.ua)
			assert.Equal(t, useragent.Classification{Family: useragent.FamilyStandard}, result)
			assert.True(t, result.IsStandard())
		})
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Run("Instagram before Facebook", func(t *testing.T) {
		result := useragent.Classify("Instagram 300.0 FBAV/1.0")
		assert.Equal(t, useragent.FamilyInstagram, result.Family)
	})

	t.Run("Facebook before Line", func(t *testing.T) {
		result := useragent.Classify("Line/13.1 FBAN/FBIOS")
		assert.Equal(t, useragent.FamilyFacebook, result.Family)
	})

	t.Run("deterministic", func(t *testing.T) {
		first := useragent.Classify(uaWeChat)
		for range 10 {
			assert.Equal(t, first, useragent.Classify(uaWeChat))
		}
	})
}

func TestFamilyString(t *testing.T) {
	assert.Equal(t, "Standard", useragent.FamilyStandard.String())
	assert.Equal(t, "Instagram", useragent.FamilyInstagram.String())
	assert.Equal(t, "Facebook", useragent.FamilyFacebook.String())
	assert.Equal(t, "WeChat", useragent.FamilyWeChat.String())
	assert.Equal(t, "Standard", useragent.Family(200).String())
}

func TestFamilies(t *testing.T) {
	families := useragent.Families()
	assert.Len(t, families, 9)
	assert.Equal(t, useragent.FamilyInstagram, families[0])
	assert.Equal(t, useragent.FamilyFacebook, families[1])
	assert.Equal(t, useragent.FamilyWeChat, families[len(families)-1])
	assert.NotContains(t, families, useragent.FamilyStandard)
}
