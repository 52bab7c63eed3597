package style

import (
	"regexp"
	"sort"

	"github.com/charmbracelet/lipgloss"
)

// MarkupParser handles parsing and rendering of [tag]...[/tag] markup
type MarkupParser struct {
	styles   map[string]lipgloss.Style
	patterns map[string]*regexp.Regexp
}

// NewMarkupParser creates a new markup parser with default styles
func NewMarkupParser() *MarkupParser {
	p := &MarkupParser{
		styles:   map[string]lipgloss.Style{},
		patterns: map[string]*regexp.Regexp{},
	}
	for tag, st := range map[string]lipgloss.Style{
		"title":   TitleStyle,
		"success": SuccessStyle,
		"error":   ErrorStyle,
		"warning": WarningStyle,
		"info":    InfoStyle,
		"code":    CodeStyle,
		"path":    PathStyle,
		"muted":   MutedStyle,
		"bold":    lipgloss.NewStyle().Bold(true),

		"added":   AddedStyle,
		"removed": RemovedStyle,
		"updated": UpdatedStyle,
	} {
		p.AddStyle(tag, st)
	}
	return p
}

// AddStyle allows adding custom styles
func (p *MarkupParser) AddStyle(tag string, style lipgloss.Style) {
	p.styles[tag] = style
	p.patterns[tag] = regexp.MustCompile(`\[` + regexp.QuoteMeta(tag) + `\](.*?)\[/` + regexp.QuoteMeta(tag) + `\]`)
}

func (p *MarkupParser) tags() []string {
	tags := make([]string, 0, len(p.styles))
	for tag := range p.styles {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Render processes markup text and returns styled output
func (p *MarkupParser) Render(text string) string {
	return p.apply(text, func(tag, content string) string {
		return p.styles[tag].Render(content)
	})
}

// Strip removes known tags and keeps their content.
func (p *MarkupParser) Strip(text string) string {
	return p.apply(text, func(_, content string) string {
		return content
	})
}

func (p *MarkupParser) apply(text string, fn func(tag, content string) string) string {
	result := text
	// nested tags need more than one pass
	for {
		before := result
		for _, tag := range p.tags() {
			pattern := p.patterns[tag]
			result = pattern.ReplaceAllStringFunc(result, func(match string) string {
				sub := pattern.FindStringSubmatch(match)
				if len(sub) != 2 {
					return match
				}
				return fn(tag, sub[1])
			})
		}
		if result == before {
			return result
		}
	}
}

// Global parser instance
var defaultParser = NewMarkupParser()

// Render is a convenience function using the default parser
func Render(text string) string {
	return defaultParser.Render(text)
}

// Strip is a convenience function using the default parser
func Strip(text string) string {
	return defaultParser.Strip(text)
}
