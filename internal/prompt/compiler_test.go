package prompt

import (
	"strconv"
	"strings"
	"testing"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleInput() ProductInput {
	return ProductInput{
		Name:       "Fone Bluetooth à Prova d'Água",
		Category:   "Eletrônicos",
		Tone:       "Persuasivo/Vendedor",
		Keywords:   "sustentável, à prova d'água ,, premium",
		Size:       SizeMedium,
		TemplateID: "amazon_style",
	}
}

func TestCompile(t *testing.T) {
	t.Run("contains name and ceiling for every size", func(t *testing.T) {
		for _, size := range Sizes() {
			in := sampleInput()
			in.Size = size

			out := Compile(in)
			assert.Contains(t, out, in.Name)
			assert.Contains(t, out, "máximo "+strconv.Itoa(WordCeiling(size))+" palavras")
		}
	})

	t.Run("normalizes keywords", func(t *testing.T) {
		out := Compile(sampleInput())
		assert.Contains(t, out, "- Palavras-chave: sustentável, à prova d'água, premium\n")
	})

	t.Run("empty keywords render marker", func(t *testing.T) {
		for _, kw := range []string{"", "   ", " , ,"} {
			in := sampleInput()
			in.Keywords = kw

			out := Compile(in)
			assert.Contains(t, out, "- Palavras-chave: "+NotSpecified)
			assert.NotContains(t, out, "- Palavras-chave: \n")
		}
	})

	t.Run("includes template instructions", func(t *testing.T) {
		out := Compile(sampleInput())
		assert.Contains(t, out, catalog.Lookup("amazon_style"))
		assert.Contains(t, out, "Estilo Amazon")
	})

	t.Run("unknown template degrades to no instructions", func(t *testing.T) {
		in := sampleInput()
		in.TemplateID = "does_not_exist"

		out := Compile(in)
		require.NotEmpty(t, out)
		assert.NotContains(t, out, "ESTILO DO TEMPLATE")
		for _, tpl := range catalog.List() {
			assert.NotContains(t, out, tpl.Instructions)
		}
	})

	t.Run("optional directives", func(t *testing.T) {
		in := sampleInput()
		out := Compile(in)
		assert.NotContains(t, out, hashtagDirective)
		assert.NotContains(t, out, specsDirective)

		in.IncludeHashtags = true
		out = Compile(in)
		assert.Contains(t, out, "5. "+hashtagDirective)

		in.IncludeSpecs = true
		out = Compile(in)
		assert.Contains(t, out, "5. "+specsDirective)
		assert.Contains(t, out, "6. "+hashtagDirective)
	})

	t.Run("deterministic", func(t *testing.T) {
		in := sampleInput()
		in.IncludeHashtags = true
		assert.Equal(t, Compile(in), Compile(in))
	})

	t.Run("trims product name", func(t *testing.T) {
		in := sampleInput()
		in.Name = "  Tênis Nike  "
		assert.Contains(t, Compile(in), "- Nome: Tênis Nike\n")
	})

	t.Run("ends with output instruction", func(t *testing.T) {
		assert.True(t, strings.HasSuffix(Compile(sampleInput()), outputPrompt))
	})
}

func TestWordCeiling(t *testing.T) {
	tests := []struct {
		label string
		want  int
	}{
		{SizeShort, 50},
		{SizeMedium, 150},
		{SizeLong, 300},
		{"short", 50},
		{"MEDIUM", 150},
		{"long", 300},
		{"", 300},
		{"Gigante", 300},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.want, WordCeiling(tt.label))
		})
	}
}

func TestNormalizeSize(t *testing.T) {
	assert.Equal(t, SizeShort, NormalizeSize("short"))
	assert.Equal(t, SizeLong, NormalizeSize("whatever"))
	assert.Equal(t, []string{SizeShort, SizeMedium, SizeLong}, Sizes())
}

func TestProductInput_Validate(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		assert.NoError(t, sampleInput().Validate())
	})

	t.Run("missing name", func(t *testing.T) {
		in := sampleInput()
		in.Name = "   "

		err := in.Validate()
		var fe *FieldError
		require.ErrorAs(t, err, &fe)
		assert.Equal(t, "name", fe.Field)
	})

	t.Run("unknown category", func(t *testing.T) {
		in := sampleInput()
		in.Category = "Pets"

		var fe *FieldError
		require.ErrorAs(t, in.Validate(), &fe)
		assert.Equal(t, "category", fe.Field)
	})

	t.Run("unknown tone", func(t *testing.T) {
		in := sampleInput()
		in.Tone = "Sarcástico"

		var fe *FieldError
		require.ErrorAs(t, in.Validate(), &fe)
		assert.Equal(t, "tone", fe.Field)
	})

	t.Run("unknown format", func(t *testing.T) {
		in := sampleInput()
		in.Format = "PDF"

		var fe *FieldError
		require.ErrorAs(t, in.Validate(), &fe)
		assert.Equal(t, "format", fe.Field)
	})

	t.Run("unknown size and template are allowed", func(t *testing.T) {
		in := sampleInput()
		in.Size = "XL"
		in.TemplateID = "does_not_exist"
		assert.NoError(t, in.Validate())
	})
}

func TestProductInput_OutputFormat(t *testing.T) {
	assert.Equal(t, FormatMarkdown, ProductInput{}.OutputFormat())
	assert.Equal(t, FormatHTML, ProductInput{Format: FormatHTML}.OutputFormat())
}

func TestExample(t *testing.T) {
	in := Example()
	assert.NoError(t, in.Validate())
	assert.Equal(t, []string{"fone bluetooth", "à prova d'água", "esporte"}, in.KeywordList())
}

func TestProductInput_FillFromExample(t *testing.T) {
	t.Run("empty fields take the sample", func(t *testing.T) {
		in := ProductInput{Tone: Tones[1], Size: SizeShort}.FillFromExample()
		assert.Equal(t, Example().Name, in.Name)
		assert.Equal(t, "Eletrônicos", in.Category)
		assert.Equal(t, "fone bluetooth, à prova d'água, esporte", in.Keywords)
		assert.Equal(t, Tones[1], in.Tone)
		assert.Equal(t, SizeShort, in.Size)
	})

	t.Run("given fields are kept", func(t *testing.T) {
		in := ProductInput{Name: "Caneca", Keywords: "porcelana"}.FillFromExample()
		assert.Equal(t, "Caneca", in.Name)
		assert.Equal(t, "porcelana", in.Keywords)
		assert.Equal(t, "Eletrônicos", in.Category)
	})
}
