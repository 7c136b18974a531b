// Package export renders generated descriptions in the selected output format
// and exports history for download.
package export

import (
	"fmt"
	"html"
	"strings"
	"unicode"

	"github.com/abdulachik/descricoes/internal/prompt"
)

// FormatDescription renders text in the given export format. Plain text and
// Markdown are returned unchanged since the model already writes Markdown.
func FormatDescription(text, format string) string {
	switch format {
	case prompt.FormatHTML:
		return ToHTML(text)
	default:
		return text
	}
}

// ToHTML converts the Markdown subset the model produces (headings, bold and
// bullet lists) into an HTML fragment. All text is escaped.
func ToHTML(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")

	blocks := []string{`<div class="produto-descricao">`}
	inList := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		item, isItem := listItem(trimmed)
		level, title, isHeading := heading(trimmed)

		if inList && !isItem {
			blocks = append(blocks, "</ul>")
			inList = false
		}

		switch {
		case isItem:
			if !inList {
				blocks = append(blocks, "<ul>")
				inList = true
			}
			blocks = append(blocks, "<li>"+inline(item)+"</li>")
		case trimmed == "":
		case isHeading:
			blocks = append(blocks, fmt.Sprintf("<h%d>%s</h%d>", level, inline(title), level))
		default:
			blocks = append(blocks, "<p>"+inline(trimmed)+"</p>")
		}
	}
	if inList {
		blocks = append(blocks, "</ul>")
	}
	blocks = append(blocks, "</div>")

	return strings.Join(blocks, "\n")
}

func listItem(line string) (string, bool) {
	for _, marker := range []string{"* ", "- ", "• "} {
		if strings.HasPrefix(line, marker) {
			return strings.TrimSpace(line[len(marker):]), true
		}
	}
	return "", false
}

// heading parses an ATX heading. The run of '#' must end the line or be
// followed by a space, so hashtag lines such as "#promo #frete" stay text.
func heading(line string) (int, string, bool) {
	level := 0
	for level < len(line) && line[level] == '#' {
		level++
	}
	if level == 0 || (level < len(line) && line[level] != ' ' && line[level] != '\t') {
		return 0, "", false
	}
	title := strings.TrimSpace(line[level:])
	if level > 6 {
		level = 6
	}
	return level, title, true
}

// inline escapes s and turns **bold** pairs into <strong> elements. An
// unmatched trailing marker is kept literally.
func inline(s string) string {
	parts := strings.Split(html.EscapeString(s), "**")
	unbalanced := len(parts)%2 == 0

	var b strings.Builder
	for i, part := range parts {
		if i > 0 {
			switch {
			case unbalanced && i == len(parts)-1:
				b.WriteString("**")
			case i%2 == 1:
				b.WriteString("<strong>")
			default:
				b.WriteString("</strong>")
			}
		}
		b.WriteString(part)
	}
	return b.String()
}

// WordCount counts words in text, ignoring tokens made only of markup such as
// "**" or "-".
func WordCount(text string) int {
	n := 0
	for _, field := range strings.Fields(text) {
		if strings.IndexFunc(field, func(r rune) bool {
			return unicode.IsLetter(r) || unicode.IsDigit(r)
		}) >= 0 {
			n++
		}
	}
	return n
}

// WithinCeiling reports whether text respects the word ceiling of sizeLabel.
func WithinCeiling(text, sizeLabel string) bool {
	return WordCount(text) <= prompt.WordCeiling(sizeLabel)
}
