package importer

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
	"Hidro/internal/units"
)

var ErrEmptySheet = errors.New("empty sheet")

// column is one header cell: "diameter (mm)" reads as field diameter in mm.
type column struct {
	name string
	unit string
}

// Row is the outcome of one spreadsheet row; Error is set when the row
// could not be turned into a request at all.
type Row struct {
	Line     int            `json:"line"`
	Response *calc.Response `json:"response,omitempty"`
	Error    string         `json:"error,omitempty"`
}

type Result struct {
	Count int   `json:"count"`
	Rows  []Row `json:"rows"`
}

func parseHeader(cells []string) ([]column, error) {
	cols := make([]column, len(cells))
	found := false
	for i, c := range cells {
		name := strings.TrimSpace(c)
		unit := ""
		if open := strings.Index(name, "("); open >= 0 && strings.HasSuffix(name, ")") {
			unit = strings.TrimSpace(name[open+1 : len(name)-1])
			name = strings.TrimSpace(name[:open])
		}
		cols[i] = column{name: name, unit: unit}
		if strings.EqualFold(name, "category") {
			found = true
		}
	}
	if !found {
		return nil, fmt.Errorf("header has no category column")
	}
	return cols, nil
}

// parseRow maps a data row onto a request. Per-row unit cells are not
// supported; units come from the header.
func parseRow(cols []column, row []string) (calc.Request, error) {
	req := calc.Request{Values: map[string]calc.Raw{}, Units: map[string]string{}}
	var conv calc.Conversion
	for i, col := range cols {
		if i >= len(row) {
			break
		}
		cell := strings.TrimSpace(row[i])
		switch strings.ToLower(col.name) {
		case "":
			continue
		case "category":
			req.Category = catalog.ID(cell)
		case "measurement_type":
			conv.MeasurementType = units.Family(cell)
		case "from":
			conv.From = cell
		case "to":
			conv.To = cell
		default:
			req.Values[col.name] = calc.Raw(cell)
			if col.unit != "" {
				req.Units[col.name] = col.unit
			}
		}
	}
	if req.Category == "" {
		return req, fmt.Errorf("missing category")
	}
	c, err := catalog.Lookup(req.Category)
	if err != nil {
		return req, err
	}
	if c.UsesConversion() {
		req.Conversion = &conv
	}
	return req, nil
}

// Evaluate reads the first sheet of an xlsx workbook and evaluates each row.
// Blank rows are skipped.
func Evaluate(r io.Reader) (Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return Result{}, err
	}
	defer f.Close()

	rows, err := f.GetRows(f.GetSheetName(0))
	if err != nil {
		return Result{}, err
	}
	if len(rows) < 2 {
		return Result{}, ErrEmptySheet
	}
	cols, err := parseHeader(rows[0])
	if err != nil {
		return Result{}, err
	}

	out := Result{Rows: []Row{}}
	for i := 1; i < len(rows); i++ {
		if blank(rows[i]) {
			continue
		}
		line := Row{Line: i + 1}
		req, err := parseRow(cols, rows[i])
		if err == nil {
			var res calc.Result
			if res, err = calc.Run(req); err == nil {
				resp := calc.NewResponse(res)
				line.Response = &resp
				if resp.Valid {
					out.Count++
				}
			}
		}
		if err != nil {
			line.Error = err.Error()
		}
		out.Rows = append(out.Rows, line)
	}
	return out, nil
}

func blank(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
