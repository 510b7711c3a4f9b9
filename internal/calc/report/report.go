package report

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/phpdave11/gofpdf"
	"github.com/xuri/excelize/v2"

	"Hidro/internal/history"
)

const title = "Histórico de cálculos"

var sheetHeader = []any{"ID", "Data", "Cálculo", "Resultado", "Unidade", "Regime", "Fórmula", "Entradas"}

func inputsLine(in map[string]string) string {
	if len(in) == 0 {
		return ""
	}
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+" = "+in[k])
	}
	return strings.Join(parts, "; ")
}

// BuildPDF renders the log, newest first, with each entry's derivation.
func BuildPDF(entries []history.Entry, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(title, true)
	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.Cell(0, 10, tr(title))
	pdf.Ln(12)
	pdf.SetFont("Helvetica", "", 10)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Gerado em: %s", generated.Format(history.TimeLayout))))
	pdf.Ln(6)
	pdf.Cell(0, 6, tr(fmt.Sprintf("Registros: %d", len(entries))))
	pdf.Ln(10)

	if len(entries) == 0 {
		pdf.SetFont("Helvetica", "I", 11)
		pdf.Cell(0, 6, tr("Nenhum cálculo registrado."))
	}
	for _, e := range entries {
		pdf.SetFont("Helvetica", "B", 12)
		pdf.Cell(0, 7, tr(fmt.Sprintf("%s  (%s)", e.CategoryName, e.CreatedAt)))
		pdf.Ln(7)
		pdf.SetFont("Helvetica", "", 11)
		line := fmt.Sprintf("Resultado: %s %s", e.Display, e.Unit)
		if e.Regime != "" {
			line += " - " + e.Regime
		}
		pdf.Cell(0, 6, tr(line))
		pdf.Ln(6)
		if in := inputsLine(e.Inputs); in != "" {
			pdf.MultiCell(0, 5, tr("Entradas: "+in), "", "L", false)
		}
		pdf.SetFont("Courier", "", 9)
		for _, step := range e.Derivation {
			pdf.MultiCell(0, 4.5, tr(step), "", "L", false)
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildXLSX writes one row per entry on a single sheet.
func BuildXLSX(entries []history.Entry) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "Histórico"
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, err
	}
	if err := f.SetSheetRow(sheet, "A1", &sheetHeader); err != nil {
		return nil, err
	}
	for i, e := range entries {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		row := []any{e.ID, e.CreatedAt, e.CategoryName, e.Value, e.Unit, e.Regime, e.Formula, inputsLine(e.Inputs)}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return nil, err
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
