package export

import (
	"bytes"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/abdulachik/descricoes/internal/db"
	"github.com/abdulachik/descricoes/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatDescription(t *testing.T) {
	text := "**Fone** sem fio\n* bateria 20h"

	t.Run("plain text unchanged", func(t *testing.T) {
		assert.Equal(t, text, FormatDescription(text, prompt.FormatPlain))
	})

	t.Run("markdown unchanged", func(t *testing.T) {
		assert.Equal(t, text, FormatDescription(text, prompt.FormatMarkdown))
	})

	t.Run("html", func(t *testing.T) {
		want := strings.Join([]string{
			`<div class="produto-descricao">`,
			"<p><strong>Fone</strong> sem fio</p>",
			"<ul>",
			"<li>bateria 20h</li>",
			"</ul>",
			"</div>",
		}, "\n")
		assert.Equal(t, want, FormatDescription(text, prompt.FormatHTML))
	})
}

func TestToHTML(t *testing.T) {
	t.Run("escapes markup", func(t *testing.T) {
		out := ToHTML("<script>alert(1)</script> & mais")
		assert.NotContains(t, out, "<script>")
		assert.Contains(t, out, "&lt;script&gt;")
		assert.Contains(t, out, "&amp; mais")
	})

	t.Run("headings", func(t *testing.T) {
		out := ToHTML("## Destaques\ntexto")
		assert.Contains(t, out, "<h2>Destaques</h2>")
		assert.Contains(t, out, "<p>texto</p>")
	})

	t.Run("hashtag line is a paragraph", func(t *testing.T) {
		out := ToHTML("Compre já!\n\n#fonebluetooth #esporte #promo")
		assert.Contains(t, out, "<p>#fonebluetooth #esporte #promo</p>")
		assert.NotContains(t, out, "<h1>")
	})

	t.Run("bare hash run is an empty heading", func(t *testing.T) {
		assert.Contains(t, ToHTML("###"), "<h3></h3>")
	})

	t.Run("list closed before paragraph", func(t *testing.T) {
		out := ToHTML("- um\n- dois\n\nfim")
		assert.Contains(t, out, "<ul>\n<li>um</li>\n<li>dois</li>\n</ul>\n<p>fim</p>")
	})

	t.Run("multiple bold spans", func(t *testing.T) {
		assert.Equal(t, "<strong>a</strong> e <strong>b</strong>", inline("**a** e **b**"))
	})

	t.Run("unbalanced bold kept literal", func(t *testing.T) {
		assert.Equal(t, "<strong>a</strong> **b", inline("**a** **b"))
	})
}

func TestWordCount(t *testing.T) {
	tests := []struct {
		text string
		want int
	}{
		{"", 0},
		{"uma palavra", 2},
		{"**Destaque** - item\n* outro", 3},
		{"Bateria de 20h!", 3},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, WordCount(tt.text), tt.text)
	}
}

func TestWithinCeiling(t *testing.T) {
	short := strings.Repeat("palavra ", 50)
	assert.True(t, WithinCeiling(short, prompt.SizeShort))
	assert.False(t, WithinCeiling(short+"extra", prompt.SizeShort))
	assert.True(t, WithinCeiling(short+"extra", prompt.SizeMedium))
}

func sampleDescription() db.Description {
	return db.Description{
		ID:          7,
		ProductName: "Caneca \"Café\"",
		Category:    "Casa e Jardim",
		Tone:        "Amigável/Casual",
		Keywords:    "porcelana, presente",
		Size:        prompt.SizeShort,
		TemplateID:  "amazon_style",
		Output:      "**Caneca** linda",
		Format:      prompt.FormatHTML,
		CreatedAt:   time.Date(2026, 3, 5, 14, 30, 0, 0, time.UTC),
	}
}

func TestWriteHistoryCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteHistoryCSV(&buf, []db.Description{sampleDescription()}))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, csvHeader, records[0])
	assert.Equal(t, []string{
		"7", "Caneca \"Café\"", "Casa e Jardim", "Amigável/Casual",
		"porcelana, presente", prompt.SizeShort, "Estilo Amazon", "05/03/2026 14:30",
	}, records[1])

	t.Run("formula cells are neutralized", func(t *testing.T) {
		d := sampleDescription()
		d.ProductName = "=HYPERLINK(\"http://x\")"
		d.Keywords = "+1, barato"

		var buf bytes.Buffer
		require.NoError(t, WriteHistoryCSV(&buf, []db.Description{d}))

		records, err := csv.NewReader(&buf).ReadAll()
		require.NoError(t, err)
		assert.Equal(t, "'=HYPERLINK(\"http://x\")", records[1][1])
		assert.Equal(t, "'+1, barato", records[1][4])
		assert.Equal(t, "Casa e Jardim", records[1][2])
	})

	t.Run("empty history has header only", func(t *testing.T) {
		var buf bytes.Buffer
		require.NoError(t, WriteHistoryCSV(&buf, nil))
		assert.Equal(t, strings.Join(csvHeader, ",")+"\n", buf.String())
	})
}

func TestWritePage(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WritePage(&buf, sampleDescription()))

	out := buf.String()
	assert.Contains(t, out, "<!DOCTYPE html>")
	assert.Contains(t, out, "<title>Caneca &#34;Café&#34;</title>")
	assert.Contains(t, out, "<p><strong>Caneca</strong> linda</p>")
	assert.Contains(t, out, "Estilo Amazon")
}
