package overlay

import (
	"fmt"
	"regexp"
	"strconv"
	"time"

	"github.com/dmitrymomot/inappbrowser/pkg/useragent"
)

// Default appearance.
const (
	DefaultPrimary     = "#1A1D32"
	DefaultAccent      = "#FF7A5A"
	DefaultSurface     = "#1E1E1E"
	DefaultText        = "#FFFFFF"
	DefaultTitleAccent = "Open in"
	DefaultTitleMain   = " Browser"
	DefaultBody        = "For the best experience and to enable all features, please open this link in your default browser."
	DismissLabel       = "Continue anyway"

	// fallbackAccentRGB is used for translucent tints when the accent is not a 6-digit hex color
	fallbackAccentRGB = "255, 122, 90"
)

// Colors of the overlay. Empty or invalid fields fall back to defaults.
type Colors struct {
	Primary string `yaml:"primary" json:"primary" env:"PRIMARY"`
	Accent  string `yaml:"accent" json:"accent" env:"ACCENT"`
	Surface string `yaml:"surface" json:"surface" env:"SURFACE"`
	Text    string `yaml:"text" json:"text" env:"TEXT"`
}

// Messages of the overlay. Empty fields fall back to defaults.
type Messages struct {
	TitleAccent string `yaml:"title_accent" json:"titleAccent" env:"TITLE_ACCENT"`
	TitleMain   string `yaml:"title_main" json:"titleMain" env:"TITLE_MAIN"`
	// Body may contain basic inline HTML; it is sanitized before rendering.
	Body string `yaml:"body" json:"body" env:"BODY"`
}

// Links turns the primary action into a plain link. Used when the overlay
// is rendered on the server and no in-page handler can run.
type Links struct {
	Primary  string
	Fallback string
	// Target is the window target of the primary link, empty for same window.
	Target string
}

// View is everything the markup depends on.
type View struct {
	Colors        Colors
	Messages      Messages
	Icon          string
	ActionLabel   string
	Steps         []Step
	AllowDismiss  bool
	EntranceDelay time.Duration
	Links         *Links
	ClientScript  bool
}

var colorPattern = regexp.MustCompile(`^(#[0-9a-fA-F]{3,8}|[a-zA-Z]+|rgba?\([0-9.,%\s]+\)|hsla?\([0-9.,%\sdeg]+\))$`)

// color returns c if it is a safe CSS color value, def otherwise.
func color(c, def string) string {
	if c == "" || !colorPattern.MatchString(c) {
		return def
	}
	return c
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

// Resolve fills empty or invalid fields with the defaults, field by field.
func (c Colors) Resolve() Colors {
	return Colors{
		Primary: color(c.Primary, DefaultPrimary),
		Accent:  color(c.Accent, DefaultAccent),
		Surface: color(c.Surface, DefaultSurface),
		Text:    color(c.Text, DefaultText),
	}
}

// Resolve fills empty fields with the defaults, field by field.
func (m Messages) Resolve() Messages {
	return Messages{
		TitleAccent: orDefault(m.TitleAccent, DefaultTitleAccent),
		TitleMain:   orDefault(m.TitleMain, DefaultTitleMain),
		Body:        orDefault(m.Body, DefaultBody),
	}
}

// NewView builds the view for a detected family on a platform.
func NewView(family useragent.Family, platform useragent.Platform, opts Options) View {
	return View{
		Colors:        opts.Colors.Resolve(),
		Messages:      opts.Messages.Resolve(),
		Icon:          ActionIcon(platform),
		ActionLabel:   ActionLabel(platform),
		Steps:         Instructions(family, platform),
		AllowDismiss:  opts.AllowDismiss,
		EntranceDelay: opts.EntranceDelay,
		Links:         opts.Links,
		ClientScript:  opts.ClientScript,
	}
}

// key identifies a view in the markup cache.
func (v View) key() string {
	links := Links{}
	if v.Links != nil {
		links = *v.Links
	}
	return fmt.Sprintf("%v|%v|%s|%s|%v|%t|%d|%v|%t",
		v.Colors, v.Messages, v.Icon, v.ActionLabel, v.Steps,
		v.AllowDismiss, v.EntranceDelay, links, v.ClientScript)
}

var hexPattern = regexp.MustCompile(`^#?([a-fA-F\d]{2})([a-fA-F\d]{2})([a-fA-F\d]{2})$`)

// hexToRGB converts "#RRGGBB" to "r, g, b" for rgba() tints.
func hexToRGB(hex string) string {
	m := hexPattern.FindStringSubmatch(hex)
	if m == nil {
		return fallbackAccentRGB
	}
	r, _ := strconv.ParseUint(m[1], 16, 8)
	g, _ := strconv.ParseUint(m[2], 16, 8)
	b, _ := strconv.ParseUint(m[3], 16, 8)
	return fmt.Sprintf("%d, %d, %d", r, g, b)
}
