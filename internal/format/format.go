// Package format renders track metadata into the decorated status-line
// string consumed by the bar host.
//
// The markup is a single pango span carrying a color attribute:
//
//	<span color="COLOR">ICON TRACK TEXT</span>
//
// The track text (title plus artist suffix) is HTML-escaped before
// interpolation; the icon and color are emitted verbatim so glyph
// character references like &#xf1bc; survive untouched.
package format

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"github.com/genricoloni/spotbar/internal/config"
	"github.com/genricoloni/spotbar/internal/domain"
	"go.uber.org/zap"
)

// Formatter turns track metadata into the decorated status line.
// Formatting is pure: identical inputs always yield identical output.
type Formatter struct {
	logger *zap.Logger
	cfg    config.Status
	featRe *regexp.Regexp
}

// New creates a formatter for the given resolved configuration
func New(cfg config.Status, logger *zap.Logger) *Formatter {
	f := &Formatter{
		logger: logger,
		cfg:    cfg,
	}
	if cfg.RemoveFeat {
		re, err := regexp.Compile(cfg.FeatRegex)
		if err != nil {
			// config.Load validates the pattern, so this only fires
			// for hand-built configs; stripping is simply disabled
			logger.Warn("Unusable feat pattern, stripping disabled", zap.Error(err))
		} else {
			f.featRe = re
		}
	}
	return f
}

// Format implements domain.Formatter. It returns ("", false) when
// there is nothing to show, i.e. nil metadata or an empty title.
func (f *Formatter) Format(meta *domain.TrackMetadata) (string, bool) {
	if meta == nil || meta.Title == "" {
		return "", false
	}

	text := f.stripFeat(meta.Title) + artistSuffix(meta.Artists)
	text = truncate(text, f.cfg.MaxLength)

	return fmt.Sprintf("<span color=%q>%s %s</span>",
		f.cfg.Color, f.cfg.Icon, html.EscapeString(text)), true
}

// stripFeat removes the "(feat. ...)" fragment from the title when the
// configuration asks for it
func (f *Formatter) stripFeat(title string) string {
	if f.featRe == nil {
		return title
	}
	return strings.TrimSpace(f.featRe.ReplaceAllString(title, ""))
}

// artistSuffix builds the " (A, B, C)" fragment, joining the names in
// the order the player reported them. No artists, no suffix.
func artistSuffix(artists []string) string {
	if len(artists) == 0 {
		return ""
	}
	return " (" + strings.Join(artists, ", ") + ")"
}

// truncate cuts s to at most max Unicode characters. The cut is always
// at a rune boundary, so a multi-byte character is never split, and no
// ellipsis is appended. Cutting inside the artist parenthetical can
// leave an unmatched "(" in the output; that cosmetic artifact is
// accepted as-is.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
