package notify

import (
	"embed"
	"fmt"
	"time"
	_ "time/tzdata"

	"github.com/aymerick/raymond"
	"golang.org/x/text/language"

	"github.com/clixs/waitlist-api/internal/models"
)

//go:embed templates/*.hbs
var templateFS embed.FS

const subjectPrefix = "New Waitlist Signup: "

// Content is the rendered email for one submission.
type Content struct {
	Subject string
	HTML    string
	Text    string
}

var (
	supportedLocales = []language.Tag{
		language.AmericanEnglish,
		language.Hebrew,
		language.BritishEnglish,
		language.German,
	}
	// Indexed like supportedLocales.
	localeLayouts = []string{
		"1/2/2006, 3:04:05 PM",
		"2.1.2006, 15:04:05",
		"02/01/2006, 15:04:05",
		"2.1.2006, 15:04:05",
	}
	localeMatcher = language.NewMatcher(supportedLocales)
)

// TimestampFormatter renders instants the way a reader in one locale and time
// zone expects to see them.
type TimestampFormatter struct {
	layout   string
	location *time.Location
}

func NewTimestampFormatter(locale, zone string) (*TimestampFormatter, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("notify: parse locale %q: %w", locale, err)
	}
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("notify: load time zone %q: %w", zone, err)
	}

	// Unmatched locales fall back to index 0.
	_, index, _ := localeMatcher.Match(tag)

	return &TimestampFormatter{layout: localeLayouts[index], location: loc}, nil
}

func (f *TimestampFormatter) Format(t time.Time) string {
	return t.In(f.location).Format(f.layout)
}

// Renderer turns a submission into email content. It is safe for concurrent use.
type Renderer struct {
	html      *raymond.Template
	text      *raymond.Template
	timestamp *TimestampFormatter
	siteName  string
}

func NewRenderer(cfg *Config) (*Renderer, error) {
	formatter, err := NewTimestampFormatter(cfg.Locale, cfg.TimeZone)
	if err != nil {
		return nil, err
	}

	html, err := parseTemplate("templates/signup.html.hbs")
	if err != nil {
		return nil, err
	}
	text, err := parseTemplate("templates/signup.txt.hbs")
	if err != nil {
		return nil, err
	}

	return &Renderer{html: html, text: text, timestamp: formatter, siteName: cfg.SiteName}, nil
}

func parseTemplate(name string) (*raymond.Template, error) {
	source, err := templateFS.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("notify: read template %s: %w", name, err)
	}
	tpl, err := raymond.Parse(string(source))
	if err != nil {
		return nil, fmt.Errorf("notify: parse template %s: %w", name, err)
	}
	return tpl, nil
}

func (r *Renderer) Render(sub *models.Submission) (*Content, error) {
	if sub == nil {
		return nil, ErrNoSubmission
	}

	ctx := map[string]interface{}{
		"email": sub.Email,
		"date":  r.timestamp.Format(sub.ReceivedAt),
		"site":  r.siteName,
	}

	html, err := r.html.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify: render html: %w", err)
	}
	text, err := r.text.Exec(ctx)
	if err != nil {
		return nil, fmt.Errorf("notify: render text: %w", err)
	}

	return &Content{
		Subject: subjectPrefix + sub.Email,
		HTML:    html,
		Text:    text,
	}, nil
}
