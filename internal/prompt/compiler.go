// Package prompt turns a product form submission into the instruction text sent
// to the generation provider.
package prompt

import (
	"fmt"
	"strings"

	"github.com/abdulachik/descricoes/internal/catalog"
)

// Compile builds the generation prompt for in. It is pure: the same input always
// yields the same text.
func Compile(in ProductInput) string {
	keywords := strings.Join(in.KeywordList(), ", ")
	if keywords == "" {
		keywords = NotSpecified
	}

	sections := []string{
		headerPrompt,
		fmt.Sprintf(productPrompt,
			strings.TrimSpace(in.Name),
			in.Category,
			in.Tone,
			keywords,
			NormalizeSize(in.Size),
			WordCeiling(in.Size),
		),
		guidelinesPrompt(in),
	}

	if instr := catalog.Lookup(in.TemplateID); instr != "" {
		sections = append(sections, fmt.Sprintf(templatePrompt, catalog.Name(in.TemplateID), instr))
	}

	sections = append(sections, outputPrompt)
	return strings.Join(sections, "\n\n")
}

// guidelinesPrompt appends the optional directives after the fixed rules,
// numbering them after the last fixed item.
func guidelinesPrompt(in ProductInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, guidelinesTemplate, in.Tone)

	n := 5
	if in.IncludeSpecs {
		fmt.Fprintf(&b, "\n%d. %s", n, specsDirective)
		n++
	}
	if in.IncludeHashtags {
		fmt.Fprintf(&b, "\n%d. %s", n, hashtagDirective)
	}
	return b.String()
}
