package infra

// pdf.go: catalog listing export using go-pdf/fpdf.
// A4 landscape table with one row per product:
//   - código, descrição, nome comercial
//   - quantidade and preço unitário (blank for manually created products)
// The header row is repeated on every page.

import (
	"fmt"
	"io"
	"time"

	"catalogo/internal/dto"

	"github.com/go-pdf/fpdf"
)

type colunaPDF struct {
	titulo  string
	largura float64 // fraction of the content width
	alinha  string
}

var colunasCatalogo = []colunaPDF{
	{"Código", 0.12, "L"},
	{"Descrição", 0.34, "L"},
	{"Nome comercial", 0.32, "L"},
	{"Qtd.", 0.09, "R"},
	{"Preço unit.", 0.13, "R"},
}

// GerarCatalogoPDF writes the product catalog as a PDF document to w.
func GerarCatalogoPDF(w io.Writer, produtos []dto.ProdutoResponse, geradoEm time.Time) error {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.SetAutoPageBreak(true, 12)
	// Core fonts are cp1252; accented Portuguese text needs translating.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 20

	cabecalho := func() {
		pdf.SetFont("Helvetica", "B", 8)
		pdf.SetFillColor(230, 230, 230)
		for _, col := range colunasCatalogo {
			pdf.CellFormat(contentW*col.largura, 6, tr(col.titulo), "1", 0, col.alinha, true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Helvetica", "", 8)
	}

	pdf.SetHeaderFunc(func() {
		if pdf.PageNo() > 1 {
			cabecalho()
		}
	})
	pdf.SetFooterFunc(func() {
		pdf.SetY(-10)
		pdf.SetFont("Helvetica", "I", 7)
		pdf.CellFormat(contentW, 5, tr(fmt.Sprintf("Página %d", pdf.PageNo())), "", 0, "R", false, 0, "")
	})

	pdf.AddPage()

	// ── Title ────────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(contentW, 8, tr("Catálogo de produtos"), "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 8)
	pdf.CellFormat(contentW, 5,
		tr(fmt.Sprintf("%d produtos, gerado em %s", len(produtos), geradoEm.Format("02/01/2006 15:04"))),
		"", 1, "L", false, 0, "")
	pdf.Ln(2)

	cabecalho()

	// ── Rows ─────────────────────────────────────────────────────────────────
	for _, p := range produtos {
		valores := []string{
			p.Codigo,
			truncar(p.Descricao, 60),
			truncar(p.NomeComercial, 55),
			"",
			"",
		}
		if p.Quantidade.Valid {
			valores[3] = p.Quantidade.Decimal.StringFixed(2)
		}
		if p.PrecoUnitario.Valid {
			valores[4] = p.PrecoUnitario.Decimal.StringFixed(2)
		}
		for i, col := range colunasCatalogo {
			pdf.CellFormat(contentW*col.largura, 5, tr(valores[i]), "1", 0, col.alinha, false, 0, "")
		}
		pdf.Ln(-1)
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("pdf: write catalog: %w", err)
	}
	return nil
}

func truncar(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
