package export

import (
	"fmt"
	"html/template"
	"io"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/db"
)

var pageTemplate = template.Must(template.New("page").Parse(`<!DOCTYPE html>
<html lang="pt-BR">
<head>
<meta charset="utf-8">
<title>{{.Title}}</title>
<style>
body { font-family: sans-serif; max-width: 720px; margin: 2rem auto; line-height: 1.5; }
.meta { color: #666; font-size: 0.9rem; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<p class="meta">{{.Category}} · {{.Template}} · {{.Date}}</p>
{{.Body}}
</body>
</html>
`))

type pageData struct {
	Title    string
	Category string
	Template string
	Date     string
	Body     template.HTML
}

// WritePage renders a standalone HTML document for one description.
func WritePage(w io.Writer, d db.Description) error {
	data := pageData{
		Title:    d.ProductName,
		Category: d.Category,
		Template: catalog.Name(d.TemplateID),
		Date:     d.CreatedAt.Format(DateLayout),
		// ToHTML escapes all model text.
		Body: template.HTML(ToHTML(d.Output)),
	}
	if err := pageTemplate.Execute(w, data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}
