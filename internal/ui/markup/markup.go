// Package markup renders the small HTML-ish tag set embedded in generated
// question bodies (<u> for the reading target, <b> for emphasis) as styled
// terminal text. Unknown tags are stripped rather than shown raw.
package markup

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ZaneDavis9616/jlptn1/internal/ui/theme"
)

var (
	underlineStyle = lipgloss.NewStyle().Underline(true).Foreground(theme.Accent)
	boldStyle      = lipgloss.NewStyle().Bold(true)
)

// Render converts embedded markup to styled terminal text.
func Render(body string) string {
	out := body
	out = replaceSpans(out, "u", func(s string) string { return underlineStyle.Render(s) })
	out = replaceSpans(out, "b", func(s string) string { return boldStyle.Render(s) })
	out = stripTags(out)
	out = unescape(out)
	return out
}

// Strip removes all markup, yielding plain text. Used where styled output
// would be wrong, e.g. measuring widths or one-line previews.
func Strip(body string) string {
	return unescape(stripTags(body))
}

// replaceSpans rewrites <tag>…</tag> spans via the style function.
// Unclosed tags are left for stripTags to clean up.
func replaceSpans(s, tag string, style func(string) string) string {
	open := "<" + tag + ">"
	close := "</" + tag + ">"

	var b strings.Builder
	for {
		i := strings.Index(s, open)
		if i < 0 {
			break
		}
		rest := s[i+len(open):]
		j := strings.Index(rest, close)
		if j < 0 {
			break
		}
		b.WriteString(s[:i])
		b.WriteString(style(rest[:j]))
		s = rest[j+len(close):]
	}
	b.WriteString(s)
	return b.String()
}

// stripTags removes any remaining <...> sequences.
func stripTags(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '<':
			depth++
		case r == '>' && depth > 0:
			depth--
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func unescape(s string) string {
	r := strings.NewReplacer(
		"&lt;", "<",
		"&gt;", ">",
		"&amp;", "&",
		"&quot;", `"`,
	)
	return r.Replace(s)
}
