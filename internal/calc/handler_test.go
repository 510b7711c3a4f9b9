package calc

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/categories", h.Categories).Methods("GET")
	r.HandleFunc("/api/categories/{id}", h.Category).Methods("GET")
	r.HandleFunc("/api/units", h.Units).Methods("GET")
	r.HandleFunc("/api/calc/{id}", h.Calc).Methods("POST")
	return r
}

func post(t *testing.T, r http.Handler, path, body string) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	var out Response
	if rec.Code == http.StatusOK {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	}
	return rec, out
}

func TestCalcHandlerValid(t *testing.T) {
	var recorded []Request
	h := &Handler{Record: func(_ context.Context, req Request, res Result) (int64, error) {
		recorded = append(recorded, req)
		return 17, nil
	}}
	rec, out := post(t, newRouter(h), "/api/calc/reynolds",
		`{"values":{"density":1000,"velocity":2,"diameter":0.1,"viscosity":0.001},"record":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, out.Valid)
	require.NotNil(t, out.Value)
	assert.InDelta(t, 200000, *out.Value, 1e-6)
	assert.Equal(t, "200000", out.Display)
	assert.Equal(t, "Turbulento", out.Regime)
	assert.Equal(t, int64(17), out.HistoryID)
	require.Len(t, recorded, 1)
	assert.Equal(t, "reynolds", string(recorded[0].Category))
}

func TestCalcHandlerIncompleteIsNotRecorded(t *testing.T) {
	called := false
	h := &Handler{Record: func(context.Context, Request, Result) (int64, error) {
		called = true
		return 1, nil
	}}
	rec, out := post(t, newRouter(h), "/api/calc/pressure", `{"values":{"area":2},"record":true}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.False(t, out.Ready)
	assert.False(t, out.Valid)
	assert.Nil(t, out.Value)
	assert.Empty(t, out.Display)
	assert.False(t, called)
}

func TestCalcHandlerInvalidNumericIsSuppressed(t *testing.T) {
	rec, out := post(t, newRouter(&Handler{}), "/api/calc/friction-factor",
		`{"values":{"reynolds":"1e8","relativeRoughness":-1}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, out.Ready)
	assert.False(t, out.Valid)
	assert.Nil(t, out.Value)
	assert.Empty(t, out.Derivation)
}

func TestCalcHandlerConversion(t *testing.T) {
	rec, out := post(t, newRouter(&Handler{}), "/api/calc/unit-conversion",
		`{"values":{"value":1},"conversion":{"measurement_type":"pressure","from":"atm","to":"Pa"}}`)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NotNil(t, out.Value)
	assert.Equal(t, 101325.0, *out.Value)
	assert.Equal(t, "Pa", out.Unit)
}

func TestCalcHandlerErrors(t *testing.T) {
	r := newRouter(&Handler{})
	rec, _ := post(t, r, "/api/calc/torque", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec, _ = post(t, r, "/api/calc/pressure", `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCategoryEndpoints(t *testing.T) {
	r := newRouter(&Handler{})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list []categorySummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	assert.Len(t, list, 14)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/unit-conversion", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var detail struct {
		ID               string `json:"id"`
		MeasurementTypes []struct {
			Family string   `json:"family"`
			Units  []string `json:"units"`
		} `json:"measurement_types"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	assert.Equal(t, "unit-conversion", detail.ID)
	assert.Len(t, detail.MeasurementTypes, 10)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/categories/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/units", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"base":"Pa"`)
}
