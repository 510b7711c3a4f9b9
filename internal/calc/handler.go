package calc

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"Hidro/internal/catalog"
	"Hidro/internal/logger"
	"Hidro/internal/units"
)

// RecordFunc appends a valid evaluation to the history and returns its id.
type RecordFunc func(ctx context.Context, req Request, res Result) (int64, error)

type Handler struct {
	Record RecordFunc
	Log    *logger.Logger
}

type calcRequest struct {
	Request
	Record bool `json:"record"`
}

type categorySummary struct {
	ID      catalog.ID `json:"id"`
	Name    string     `json:"name"`
	Title   string     `json:"title"`
	Formula string     `json:"formula"`
}

type categoryDetail struct {
	catalog.Category
	MeasurementTypes []catalog.MeasurementType `json:"measurement_types,omitempty"`
}

type familyUnits struct {
	Family units.Family `json:"family"`
	Name   string       `json:"name"`
	Base   string       `json:"base"`
	Units  []units.Unit `json:"units"`
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(v)
}

func (h *Handler) Categories(w http.ResponseWriter, r *http.Request) {
	all := catalog.All()
	out := make([]categorySummary, 0, len(all))
	for _, c := range all {
		out = append(out, categorySummary{ID: c.ID, Name: c.Name, Title: c.Title, Formula: c.Formula})
	}
	writeJSON(w, out)
}

func (h *Handler) Category(w http.ResponseWriter, r *http.Request) {
	c, err := catalog.Lookup(catalog.ID(mux.Vars(r)["id"]))
	if err != nil {
		http.Error(w, "Unknown category", http.StatusNotFound)
		return
	}
	detail := categoryDetail{Category: c}
	if c.UsesConversion() {
		detail.MeasurementTypes = catalog.MeasurementTypes()
	}
	writeJSON(w, detail)
}

func (h *Handler) Units(w http.ResponseWriter, r *http.Request) {
	fams := units.Families()
	out := make([]familyUnits, 0, len(fams))
	for _, f := range fams {
		out = append(out, familyUnits{Family: f, Name: units.DisplayName(f), Base: units.Base(f), Units: units.Units(f)})
	}
	writeJSON(w, out)
}

func (h *Handler) Calc(w http.ResponseWriter, r *http.Request) {
	var input calcRequest
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		http.Error(w, "Invalid request payload", http.StatusBadRequest)
		return
	}
	if id := mux.Vars(r)["id"]; id != "" {
		input.Category = catalog.ID(id)
	}

	res, err := Run(input.Request)
	if err != nil {
		if errors.Is(err, catalog.ErrUnknownCategory) {
			http.Error(w, "Unknown category", http.StatusNotFound)
			return
		}
		http.Error(w, "Calculation error", http.StatusBadRequest)
		return
	}

	out := NewResponse(res)
	if input.Record && out.Valid && h.Record != nil {
		id, err := h.Record(r.Context(), input.Request, res)
		if err != nil {
			if h.Log != nil {
				h.Log.Warn("record failed", "category", input.Category, "error", err)
			}
		} else {
			out.HistoryID = id
		}
	}
	writeJSON(w, out)
}
