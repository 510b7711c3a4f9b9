package batch

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"Hidro/internal/calc"
	"Hidro/internal/catalog"
)

func TestCalculate(t *testing.T) {
	out, err := Calculate(Input{Items: []calc.Request{
		calc.NewRequest(catalog.Pressure, map[string]float64{"force": 100, "area": 2}, nil),
		calc.NewRequest(catalog.Pressure, map[string]float64{"force": 100}, nil),
		calc.NewRequest(catalog.FlowRate, map[string]float64{"area": 0.5, "velocity": 3}, nil),
	}})
	require.NoError(t, err)
	require.Len(t, out.Results, 3)

	assert.True(t, out.Results[0].Valid)
	assert.Equal(t, 50.0, *out.Results[0].Value)
	assert.False(t, out.Results[1].Ready)
	assert.Nil(t, out.Results[1].Value)
	assert.InDelta(t, 1.5, *out.Results[2].Value, 1e-12)
}

func TestCalculateErrors(t *testing.T) {
	_, err := Calculate(Input{})
	assert.ErrorIs(t, err, ErrNoItems)

	_, err = Calculate(Input{Items: []calc.Request{{Category: "torque"}}})
	assert.ErrorIs(t, err, catalog.ErrUnknownCategory)

	_, err = Calculate(Input{Items: make([]calc.Request, MaxItems+1)})
	assert.Error(t, err)
}

func TestHandler(t *testing.T) {
	h := &Handler{}
	rec := httptest.NewRecorder()
	body := `{"items":[{"category":"density","values":{"mass":"10","volume":"2"}}]}`
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/calc/batch", strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"value":5`)

	rec = httptest.NewRecorder()
	h.Calc(rec, httptest.NewRequest(http.MethodPost, "/api/calc/batch", strings.NewReader(`{"items":[]}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
