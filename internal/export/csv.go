package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/abdulachik/descricoes/internal/catalog"
	"github.com/abdulachik/descricoes/internal/db"
)

// DateLayout is the display layout used in exports.
const DateLayout = "02/01/2006 15:04"

var csvHeader = []string{"ID", "Produto", "Categoria", "Tom", "Palavras-chave", "Tamanho", "Template", "Data"}

// WriteHistoryCSV writes one row per description in the order given.
func WriteHistoryCSV(w io.Writer, items []db.Description) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, d := range items {
		row := []string{
			strconv.FormatInt(d.ID, 10),
			cell(d.ProductName),
			cell(d.Category),
			cell(d.Tone),
			cell(d.Keywords),
			cell(d.Size),
			catalog.Name(d.TemplateID),
			d.CreatedAt.Format(DateLayout),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", d.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// cell prefixes values a spreadsheet would evaluate as a formula.
func cell(s string) string {
	if s != "" && strings.ContainsRune("=+-@\t\r", rune(s[0])) {
		return "'" + s
	}
	return s
}
