package prompt

import (
	"fmt"
	"slices"
	"strings"
)

// Categories offered by the product form.
var Categories = []string{
	"Roupas e Moda",
	"Eletrônicos",
	"Casa e Jardim",
	"Beleza e Saúde",
	"Esportes",
	"Automotivo",
	"Brinquedos",
	"Alimentos",
	"Livros",
	"Outros",
}

// Tones offered by the product form.
var Tones = []string{
	"Persuasivo/Vendedor",
	"Informativo/Técnico",
	"Descontraído/Jovem",
	"Luxo/Premium",
	"Ecológico/Sustentável",
}

// Output formats a description can be rendered in.
const (
	FormatPlain    = "Texto simples"
	FormatHTML     = "HTML"
	FormatMarkdown = "Markdown"
)

// Formats lists the output formats in presentation order.
var Formats = []string{FormatPlain, FormatHTML, FormatMarkdown}

// ProductInput is one submission of the product form.
type ProductInput struct {
	Name            string `json:"name"`
	Category        string `json:"category"`
	Tone            string `json:"tone"`
	Keywords        string `json:"keywords"`
	Size            string `json:"size"`
	TemplateID      string `json:"template_id"`
	IncludeHashtags bool   `json:"include_hashtags"`
	IncludeSpecs    bool   `json:"include_specs"`
	Format          string `json:"format"`
}

// FieldError reports an invalid product field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Validate checks the fields that must be set before a prompt is worth sending.
// Size and template are deliberately permissive: unknown values fall back to defaults.
func (in ProductInput) Validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return &FieldError{Field: "name", Message: "product name is required"}
	}
	if !slices.Contains(Categories, in.Category) {
		return &FieldError{Field: "category", Message: fmt.Sprintf("unknown category %q", in.Category)}
	}
	if !slices.Contains(Tones, in.Tone) {
		return &FieldError{Field: "tone", Message: fmt.Sprintf("unknown tone %q", in.Tone)}
	}
	if in.Format != "" && !slices.Contains(Formats, in.Format) {
		return &FieldError{Field: "format", Message: fmt.Sprintf("unknown format %q", in.Format)}
	}
	return nil
}

// OutputFormat returns the requested format, defaulting to Markdown.
func (in ProductInput) OutputFormat() string {
	if in.Format == "" {
		return FormatMarkdown
	}
	return in.Format
}

// KeywordList splits the comma separated keywords, dropping blanks.
func (in ProductInput) KeywordList() []string {
	var out []string
	for _, kw := range strings.Split(in.Keywords, ",") {
		if kw = strings.TrimSpace(kw); kw != "" {
			out = append(out, kw)
		}
	}
	return out
}

// Example returns a filled-in sample product for quick trials.
func Example() ProductInput {
	return ProductInput{
		Name:     "Fone Bluetooth à Prova d'Água",
		Category: "Eletrônicos",
		Tone:     Tones[0],
		Keywords: "fone bluetooth, à prova d'água, esporte",
		Size:     SizeMedium,
		Format:   FormatMarkdown,
	}
}

// FillFromExample fills the product fields left empty with the sample
// product. Options such as tone, size and format are kept as given.
func (in ProductInput) FillFromExample() ProductInput {
	sample := Example()
	if strings.TrimSpace(in.Name) == "" {
		in.Name = sample.Name
	}
	if in.Category == "" {
		in.Category = sample.Category
	}
	if strings.TrimSpace(in.Keywords) == "" {
		in.Keywords = sample.Keywords
	}
	return in
}
