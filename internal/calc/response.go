package calc

import (
	"time"

	"Hidro/internal/catalog"
	"Hidro/internal/metrics"
)

// Response is the wire shape of a Result. Value, derivation and secondary
// outputs are only filled in for valid results, so nothing non-finite is
// ever encoded.
type Response struct {
	Category   catalog.ID `json:"category"`
	Ready      bool       `json:"ready"`
	Valid      bool       `json:"valid"`
	Value      *float64   `json:"value"`
	Display    string     `json:"display"`
	Unit       string     `json:"unit"`
	Regime     string     `json:"regime,omitempty"`
	Derivation []string   `json:"derivation,omitempty"`
	Secondary  []Output   `json:"secondary,omitempty"`
	Alternates []Output   `json:"alternates,omitempty"`
	HistoryID  int64      `json:"history_id,omitempty"`
}

func NewResponse(res Result) Response {
	out := Response{
		Category: res.Category,
		Ready:    res.Ready(),
		Valid:    res.Valid(),
		Unit:     res.Unit,
	}
	if !out.Valid {
		return out
	}
	v := *res.Value
	out.Value = &v
	out.Display = FormatResult(res)
	out.Regime = res.Regime
	out.Derivation = res.Derivation
	out.Secondary = res.Secondary
	out.Alternates = res.Alternates
	return out
}

// Run evaluates req and records the outcome in the evaluation metrics.
func Run(req Request) (Result, error) {
	start := time.Now()
	res, err := Evaluate(req)
	if err != nil {
		return res, err
	}
	outcome := metrics.OutcomeOK
	switch {
	case !res.Ready():
		outcome = metrics.OutcomeIncomplete
	case !res.Valid():
		outcome = metrics.OutcomeInvalid
	}
	metrics.ObserveEvaluation(string(req.Category), outcome, time.Since(start))
	return res, nil
}
