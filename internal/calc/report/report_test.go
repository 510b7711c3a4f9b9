package report

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
	"Hidro/internal/history"
	"Hidro/internal/repo"
)

func seeded(t *testing.T) *history.Store {
	t.Helper()
	ctx := context.Background()
	s := history.NewStore(repo.NewMemoryStore())
	s.Load(ctx)
	req := calc.NewRequest(catalog.Reynolds,
		map[string]float64{"density": 1000, "velocity": 2, "diameter": 0.1, "viscosity": 0.001}, nil)
	res, err := calc.Evaluate(req)
	require.NoError(t, err)
	_, err = s.Record(ctx, req, res)
	require.NoError(t, err)
	return s
}

func TestBuildPDF(t *testing.T) {
	s := seeded(t)
	data, err := BuildPDF(s.Entries(), time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))

	empty, err := BuildPDF(nil, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(empty, []byte("%PDF")))
}

func TestBuildXLSX(t *testing.T) {
	s := seeded(t)
	data, err := BuildXLSX(s.Entries())
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows("Histórico")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "Cálculo", rows[0][2])
	assert.Equal(t, "Número de Reynolds", rows[1][2])
	v, err := strconv.ParseFloat(rows[1][3], 64)
	require.NoError(t, err)
	assert.InDelta(t, 200000, v, 1e-6)
	assert.Equal(t, "Turbulento", rows[1][5])
}

func TestInputsLineIsSorted(t *testing.T) {
	assert.Equal(t, "a = 1 m; b = 2 s", inputsLine(map[string]string{"b": "2 s", "a": "1 m"}))
	assert.Empty(t, inputsLine(nil))
}

func TestHandlers(t *testing.T) {
	h := &Handler{Store: seeded(t)}

	rec := httptest.NewRecorder()
	h.PDF(rec, httptest.NewRequest(http.MethodGet, "/api/history/report.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))

	rec = httptest.NewRecorder()
	h.XLSX(rec, httptest.NewRequest(http.MethodGet, "/api/history/export.xlsx", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "historico.xlsx")
}
