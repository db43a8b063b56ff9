package inappbrowser

import (
	"strings"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/analytics"
	"github.com/dmitrymomot/inappbrowser/pkg/overlay"
)

// Config is the plain input record. The zero value enables the feature with
// every default. Optional switches are pointers so an absent field can be
// told apart from an explicit false.
type Config struct {
	Enabled        *bool            `yaml:"enabled" json:"enabled" env:"ENABLED"`
	ShowOverlay    *bool            `yaml:"show_overlay" json:"showOverlay" env:"SHOW_OVERLAY"`
	AllowDismiss   *bool            `yaml:"allow_dismiss" json:"allowDismiss" env:"ALLOW_DISMISS"`
	OverlayDelayMs uint             `yaml:"overlay_delay_ms" json:"overlayDelayMs" env:"OVERLAY_DELAY_MS"`
	Colors         overlay.Colors   `yaml:"colors" json:"colors" envPrefix:"COLOR_"`
	Messages       overlay.Messages `yaml:"messages" json:"messages" envPrefix:"MESSAGE_"`
	Analytics      AnalyticsConfig  `yaml:"analytics" json:"analytics" envPrefix:"ANALYTICS_"`
	ExcludePaths   []string         `yaml:"exclude_paths" json:"excludePaths" env:"EXCLUDE_PATHS" envSeparator:","`
}

type AnalyticsConfig struct {
	Enabled   *bool  `yaml:"enabled" json:"enabled" env:"ENABLED"`
	EventName string `yaml:"event_name" json:"eventName" env:"EVENT_NAME"`
}

// Bool returns a pointer to v, for building a Config in code.
func Bool(v bool) *bool { return &v }

// Settings is a Config with every default applied.
type Settings struct {
	Enabled          bool
	ShowOverlay      bool
	AllowDismiss     bool
	OverlayDelay     time.Duration
	Colors           overlay.Colors
	Messages         overlay.Messages
	AnalyticsEnabled bool
	EventName        string
	ExcludePaths     []string
}

// Resolve applies the defaults field by field. Switches default to true;
// only an explicit false turns them off.
func (c Config) Resolve() Settings {
	s := Settings{
		Enabled:          isNotFalse(c.Enabled),
		ShowOverlay:      isNotFalse(c.ShowOverlay),
		AllowDismiss:     isNotFalse(c.AllowDismiss),
		OverlayDelay:     time.Duration(c.OverlayDelayMs) * time.Millisecond,
		Colors:           c.Colors.Resolve(),
		Messages:         c.Messages.Resolve(),
		AnalyticsEnabled: isNotFalse(c.Analytics.Enabled),
		EventName:        c.Analytics.EventName,
	}
	if s.EventName == "" {
		s.EventName = analytics.DefaultEventName
	}
	for _, p := range c.ExcludePaths {
		if p = strings.TrimSpace(p); p != "" {
			s.ExcludePaths = append(s.ExcludePaths, p)
		}
	}
	return s
}

// Excluded reports whether path equals or starts with an excluded prefix.
func (s Settings) Excluded(path string) bool {
	for _, prefix := range s.ExcludePaths {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func isNotFalse(b *bool) bool {
	return b == nil || *b
}
